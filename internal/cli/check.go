package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/shelftrack/internal/config"
	"github.com/mrlokans/shelftrack/internal/entrypoint"
)

// ErrInconsistent is returned by the check command when the store has orphan
// authors or books without author records.
var ErrInconsistent = errors.New("inventory is inconsistent")

// CheckCommand reports authors without books and books without authors.
type CheckCommand struct {
	DatabasePath string
	Fix          bool

	cfg *config.Config
	Out io.Writer
}

func NewCheckCommand(cfg *config.Config) *CheckCommand {
	return &CheckCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *CheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the inventory database")
	fs.BoolVar(&cmd.Fix, "fix", false, "Delete authors that no book references")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check that every author has a book and every book has an author.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *CheckCommand) Run() error {
	app, err := entrypoint.Open(cmd.DatabasePath, cmd.cfg.Database.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer app.Close()

	out := cmd.Out
	if cmd.Fix {
		removed, err := app.Reconciler.SweepOrphans()
		if err != nil {
			return err
		}
		for _, a := range removed {
			fmt.Fprintf(out, "  [FIXED] removed author %d \"%s\"\n", a.ID, a.Name)
		}
	}

	report, err := app.Reconciler.Verify()
	if err != nil {
		return err
	}

	for _, a := range report.OrphanAuthors {
		fmt.Fprintf(out, "  [ORPHAN] author %d \"%s\" has no books\n", a.ID, a.Name)
	}
	for _, b := range report.MissingAuthors {
		fmt.Fprintf(out, "  [MISSING] book %d \"%s\" references author %d which has no record\n", b.ID, b.Title, b.AuthorID)
	}

	if !report.OK() {
		return fmt.Errorf("%w: %d orphan authors, %d books without author records",
			ErrInconsistent, len(report.OrphanAuthors), len(report.MissingAuthors))
	}

	fmt.Fprintln(out, "Inventory is consistent.")
	return nil
}
