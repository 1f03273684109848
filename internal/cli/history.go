package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/shelftrack/internal/config"
	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/entrypoint"
)

var auditEventTypes = []entities.AuditEventType{
	entities.AuditEventEnter,
	entities.AuditEventUpdate,
	entities.AuditEventDelete,
	entities.AuditEventAuthor,
	entities.AuditEventImport,
	entities.AuditEventExport,
}

// HistoryCommand prints the audit trail, newest first, or every event of one
// workflow run.
type HistoryCommand struct {
	DatabasePath string
	OperationID  string
	EventType    string
	Limit        int
	Offset       int

	cfg *config.Config
	Out io.Writer
}

func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the inventory database")
	fs.StringVar(&cmd.OperationID, "op", "", "Show every event of one operation")
	fs.StringVar(&cmd.EventType, "type", "", "Only show events of this type ("+typeNames()+")")
	fs.IntVar(&cmd.Limit, "limit", 20, "Maximum number of events to show")
	fs.IntVar(&cmd.Offset, "offset", 0, "Number of newest events to skip")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show the audit trail of inventory changes, newest first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HistoryCommand) Run() error {
	var eventType entities.AuditEventType
	if cmd.EventType != "" {
		var ok bool
		eventType, ok = parseEventType(cmd.EventType)
		if !ok {
			return fmt.Errorf("unknown event type %q, expected one of %s: %w",
				cmd.EventType, typeNames(), entities.ErrInvalidInput)
		}
	}

	app, err := entrypoint.Open(cmd.DatabasePath, cmd.cfg.Database.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer app.Close()

	out := cmd.Out

	if cmd.OperationID != "" {
		events, err := app.Audit.GetOperation(cmd.OperationID)
		if err != nil {
			return fmt.Errorf("failed to load operation: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintf(out, "No events recorded for operation %s.\n", cmd.OperationID)
			return nil
		}
		fmt.Fprintf(out, "Operation %s:\n", cmd.OperationID)
		for _, e := range events {
			printEvent(out, e)
		}
		return nil
	}

	var events []entities.AuditEvent
	var total int64
	if eventType != "" {
		events, total, err = app.Audit.GetEventsByType(eventType, cmd.Limit, cmd.Offset)
	} else {
		events, total, err = app.Audit.GetEvents(cmd.Limit, cmd.Offset)
	}
	if err != nil {
		return fmt.Errorf("failed to load audit events: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(out, "No audit events found.")
		return nil
	}
	for _, e := range events {
		printEvent(out, e)
		fmt.Fprintf(out, "      op %s\n", e.OperationID)
	}
	fmt.Fprintf(out, "\nShowing %d of %d events.\n", len(events), total)
	return nil
}

func printEvent(out io.Writer, e entities.AuditEvent) {
	entity := e.EntityType
	if e.EntityID != nil {
		entity = fmt.Sprintf("%s %d", e.EntityType, *e.EntityID)
	}

	fmt.Fprintf(out, "  %s  %-7s %-16s %-12s %s",
		e.CreatedAt.Format("2006-01-02 15:04:05"), e.EventType, e.Action, entity, e.Description)
	if e.Status == entities.AuditStatusFailed {
		fmt.Fprintf(out, " [FAILED: %s]", e.ErrorMsg)
	}
	fmt.Fprintln(out)
}

func parseEventType(name string) (entities.AuditEventType, bool) {
	for _, t := range auditEventTypes {
		if strings.EqualFold(name, string(t)) {
			return t, true
		}
	}
	return "", false
}

func typeNames() string {
	names := make([]string, len(auditEventTypes))
	for i, t := range auditEventTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
