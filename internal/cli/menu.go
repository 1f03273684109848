package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/shelftrack/internal/config"
	"github.com/mrlokans/shelftrack/internal/entrypoint"
	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/inventory"
	"github.com/mrlokans/shelftrack/internal/stockfile"
)

const mainMenu = `============= Main Menu ============
Select one of the following options:
    1 - Enter book
    2 - Update book
    3 - Delete book
    4 - Search books
    5 - View details of all books
    6 - Export books to file
    0 - Exit
: `

// MenuCommand runs the interactive inventory menu.
type MenuCommand struct {
	DatabasePath string
	StockFile    string

	cfg *config.Config
	In  io.Reader
	Out io.Writer
}

func NewMenuCommand(cfg *config.Config) *MenuCommand {
	return &MenuCommand{
		cfg: cfg,
		In:  os.Stdin,
		Out: os.Stdout,
	}
}

func (cmd *MenuCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the inventory database")
	fs.StringVar(&cmd.StockFile, "stock", cmd.cfg.Stock.File, "Stock list to load when the database is empty (skips the question)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [menu] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run the interactive bookstore inventory menu.\n\n")
		fmt.Fprintf(os.Stderr, "When the database has no books yet, they are loaded from the -stock file,\n")
		fmt.Fprintf(os.Stderr, "from a file named at the prompt, or from the built-in sample stock.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MenuCommand) Run() error {
	app, err := entrypoint.Open(cmd.DatabasePath, cmd.cfg.Database.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	p := inventory.NewTerminal(cmd.In, cmd.Out)
	if err := cmd.prepare(app, p); err != nil {
		app.Close()
		return err
	}

	sessionCfg := *cmd.cfg
	sessionCfg.Database.Path = cmd.DatabasePath
	shutdown := app.StartBackground(&sessionCfg)

	cmd.loop(app.Inventory, p)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdown(ctx)

	if err := app.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	fmt.Fprintln(p, "Database disconnected.")
	fmt.Fprintln(p)
	fmt.Fprintln(p, "Goodbye!")
	return nil
}

// prepare fills an empty store with stock and removes authors that the
// loaded stock does not reference.
func (cmd *MenuCommand) prepare(app *entrypoint.App, p inventory.Prompter) error {
	count, err := app.Books.Count()
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}

	if count == 0 {
		stock, source, err := cmd.chooseStock(p)
		if err != nil {
			return err
		}
		if len(stock) > 0 {
			result, err := app.Inventory.Import(stock, source)
			if err != nil {
				return err
			}
			for _, reason := range result.Invalid {
				fmt.Fprintf(p, "Skipping %s\n", reason)
			}
			for _, id := range result.Duplicates {
				fmt.Fprintf(p, "Skipping book %d: id listed more than once\n", id)
			}
		}
	}

	seeded, err := app.DB.Seed(nil)
	if err != nil {
		return err
	}
	if seeded.BooksLoaded > 0 {
		fmt.Fprintln(p, "Sample book table populated and loaded.")
	} else {
		fmt.Fprintln(p, "Book table loaded.")
	}
	if seeded.AuthorsLoaded > 0 {
		fmt.Fprintln(p, "Empty author table populated and loaded.")
	} else {
		fmt.Fprintln(p, "Author table loaded.")
	}

	removed, err := app.Reconciler.SweepOrphans()
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		fmt.Fprintf(p, "Removed %d authors without books.\n", len(removed))
	}

	report, err := app.Reconciler.Verify()
	if err != nil {
		return err
	}
	if len(report.MissingAuthors) > 0 {
		fmt.Fprintf(p, "%d books have no author record; update their author to add one.\n", len(report.MissingAuthors))
	}
	return nil
}

// chooseStock returns the stock for an empty store and the file it came from,
// or nil for the default stock. Load failures and end of input fall back to
// the default.
func (cmd *MenuCommand) chooseStock(p inventory.Prompter) ([]entities.Book, string, error) {
	path := cmd.StockFile
	if path == "" {
		answer, err := ask(p, "Would you like to load book data from a file?\nEnter 'y' to load from file or any other key to use default data\n: ")
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, "", err
		}
		if err != nil || strings.ToLower(answer) != "y" {
			return nil, "", nil
		}
		path, err = ask(p, "Enter the filepath for the book data file: ")
		if errors.Is(err, io.EOF) {
			return nil, "", nil
		}
		if err != nil {
			return nil, "", err
		}
	}

	loaded, err := stockfile.LoadFile(path)
	if err == nil {
		for _, d := range loaded.Skipped {
			fmt.Fprintln(p, d.String())
		}
		fmt.Fprintf(p, "Loaded %d books from %s.\n", len(loaded.Books), path)
	}
	if err != nil || len(loaded.Books) == 0 {
		if err != nil {
			fmt.Fprintf(p, "Error reading file: %v\n", err)
		}
		fmt.Fprintln(p, "Failed to load custom data. Using default data instead.")
		return nil, "", nil
	}
	return loaded.Books, path, nil
}

// loop runs the main menu until the operator exits or input ends. Errors from
// a menu action are reported and the menu is shown again.
func (cmd *MenuCommand) loop(svc *inventory.Service, p inventory.Prompter) {
	for {
		choice, err := ask(p, mainMenu)
		if err != nil {
			return
		}

		switch choice {
		case "1":
			_, err = svc.Enter(p)
		case "2":
			err = svc.Update(p)
		case "3":
			err = svc.Delete(p)
		case "4":
			err = svc.Search(p)
		case "5":
			err = svc.ViewDetails(p)
		case "6":
			err = svc.ExportToFile(p)
		case "0":
			return
		default:
			fmt.Fprintln(p, "You have entered an invalid input. Please try again.")
		}

		if err != nil {
			report(p, err)
		}
	}
}

func report(w io.Writer, err error) {
	if errors.Is(err, inventory.ErrAborted) {
		fmt.Fprintln(w, "Operation aborted.")
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func ask(p inventory.Prompter, prompt string) (string, error) {
	answer, err := p.Ask(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
