package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/shelftrack/internal/config"
	"github.com/mrlokans/shelftrack/internal/entrypoint"
	"github.com/mrlokans/shelftrack/internal/stockfile"
)

// ExportCommand writes the inventory to a stock list file.
type ExportCommand struct {
	FilePath     string
	DatabasePath string
	Force        bool

	cfg *config.Config
	Out io.Writer
}

func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path of the stock list to write (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the inventory database")
	fs.BoolVar(&cmd.Force, "force", false, "Overwrite the file if it already exists")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every book, ordered by id, as id,title,authorID,qty lines.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ExportCommand) Run() error {
	app, err := entrypoint.Open(cmd.DatabasePath, cmd.cfg.Database.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer app.Close()

	n, err := app.Inventory.Export(cmd.FilePath, cmd.Force)
	switch {
	case errors.Is(err, stockfile.ErrFileExists):
		return fmt.Errorf("%w, use -force to overwrite", err)
	case errors.Is(err, stockfile.ErrNothingToExport):
		fmt.Fprintln(cmd.Out, "No books in database to export.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(cmd.Out, "Successfully exported %d books to %s\n", n, cmd.FilePath)
	return nil
}
