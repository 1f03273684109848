package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/shelftrack/internal/cli"
	"github.com/mrlokans/shelftrack/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every subcommand in internal/cli.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	config.LoadEnvFiles()
	cfg := config.NewConfig()

	name := "menu"
	var args []string
	if len(os.Args) >= 2 {
		name = os.Args[1]
		args = os.Args[2:]
	}

	var cmd command
	switch name {
	case "menu":
		cmd = cli.NewMenuCommand(cfg)
	case "import":
		cmd = cli.NewImportCommand(cfg)
	case "export":
		cmd = cli.NewExportCommand(cfg)
	case "check":
		cmd = cli.NewCheckCommand(cfg)
	case "history":
		cmd = cli.NewHistoryCommand(cfg)
	case "version":
		fmt.Printf("shelftrack %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		if len(name) > 0 && name[0] == '-' {
			// Flags without a command belong to the menu.
			cmd = cli.NewMenuCommand(cfg)
			args = os.Args[1:]
			break
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  menu      Run the interactive inventory menu (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  import    Import books from a stock list file\n")
	fmt.Fprintf(os.Stderr, "  export    Export all books to a stock list file\n")
	fmt.Fprintf(os.Stderr, "  check     Report authors without books and books without authors\n")
	fmt.Fprintf(os.Stderr, "  history   Show the audit trail of inventory changes\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
