package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/shelftrack/internal/config"
	"github.com/mrlokans/shelftrack/internal/entrypoint"
	"github.com/mrlokans/shelftrack/internal/stockfile"
)

// ImportCommand adds the books of a stock list file to the database.
type ImportCommand struct {
	FilePath     string
	DatabasePath string
	Verbose      bool
	DryRun       bool

	cfg *config.Config
	Out io.Writer
}

func NewImportCommand(cfg *config.Config) *ImportCommand {
	return &ImportCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the stock list file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the inventory database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List every book found in the file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books from a stock list into the inventory database.\n\n")
		fmt.Fprintf(os.Stderr, "Each line holds id,title,authorID,qty. Lines starting with '#' are ignored.\n")
		fmt.Fprintf(os.Stderr, "Books whose id is already in the database are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file stock.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -file stock.txt -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	out := cmd.Out
	fmt.Fprintln(out, "Stock Import")
	fmt.Fprintln(out, "============")

	if cmd.DryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "File: %s\n", cmd.FilePath)

	loaded, err := stockfile.LoadFile(cmd.FilePath)
	if err != nil {
		return err
	}
	for _, d := range loaded.Skipped {
		fmt.Fprintf(out, "  [SKIP] %s\n", d)
	}

	if len(loaded.Books) == 0 {
		fmt.Fprintln(out, "No books found in stock file")
		return nil
	}
	fmt.Fprintf(out, "Found %d books\n", len(loaded.Books))

	if cmd.Verbose {
		fmt.Fprintln(out, "\n=== Books Found ===")
		for _, b := range loaded.Books {
			fmt.Fprintf(out, "%d. \"%s\" author %d, qty %d\n", b.ID, b.Title, b.AuthorID, b.Qty)
		}
	}

	if cmd.DryRun {
		fmt.Fprintln(out, "\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	fmt.Fprintf(out, "\nSaving to database: %s\n", cmd.DatabasePath)

	app, err := entrypoint.Open(cmd.DatabasePath, cmd.cfg.Database.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer app.Close()

	result, err := app.Inventory.Import(loaded.Books, cmd.FilePath)
	if err != nil {
		return fmt.Errorf("import failed after %d books: %w", result.Imported, err)
	}

	fmt.Fprintln(out, "\n=== Import Summary ===")
	fmt.Fprintf(out, "Books imported: %d/%d\n", result.Imported, len(loaded.Books))

	if len(result.Duplicates) > 0 {
		fmt.Fprintf(out, "\n%d books already in the database were skipped:\n", len(result.Duplicates))
		for _, id := range result.Duplicates {
			fmt.Fprintf(out, "  [SKIP] book %d\n", id)
		}
	}
	if len(result.Invalid) > 0 {
		fmt.Fprintf(out, "\n%d books were rejected:\n", len(result.Invalid))
		for _, reason := range result.Invalid {
			fmt.Fprintf(out, "  [ERROR] %s\n", reason)
		}
	}
	if len(result.OrphansRemoved) > 0 {
		fmt.Fprintf(out, "\nRemoved %d authors without books\n", len(result.OrphansRemoved))
	}
	if len(result.MissingAuthors) > 0 {
		fmt.Fprintf(out, "\n%d books have no author record:\n", len(result.MissingAuthors))
		for _, b := range result.MissingAuthors {
			fmt.Fprintf(out, "  [WARN] book %d \"%s\" references author %d\n", b.ID, b.Title, b.AuthorID)
		}
	}

	return nil
}
