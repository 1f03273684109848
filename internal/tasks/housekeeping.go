package tasks

import (
	"context"
	"fmt"
	"log"
)

// Housekeeping runs the audit cleanup in the background of a menu session.
// Inventory tables are only written by the menu itself.
type Housekeeping struct {
	client        *Client
	retentionDays int
	cancel        context.CancelFunc
}

// StartHousekeeping opens the task queue for the database at dbPath, registers
// the cleanup queue, starts the workers and enqueues one cleanup run.
func StartHousekeeping(dbPath string, cfg Config, retentionDays int, cleaner AuditEventCleaner) (*Housekeeping, error) {
	client, err := NewClient(dbPath, cfg)
	if err != nil {
		return nil, err
	}

	client.Register(NewCleanupAuditEventsQueue(cleaner))

	ctx, cancel := context.WithCancel(context.Background())
	go client.Start(ctx)

	h := &Housekeeping{client: client, retentionDays: retentionDays, cancel: cancel}
	if err := h.Enqueue(); err != nil {
		h.Close(context.Background())
		return nil, err
	}
	return h, nil
}

// Enqueue schedules one audit cleanup.
func (h *Housekeeping) Enqueue() error {
	_, err := h.client.Add(CleanupAuditEventsTask{RetentionDays: h.retentionDays}).Save()
	if err != nil {
		return fmt.Errorf("failed to enqueue housekeeping tasks: %w", err)
	}
	return nil
}

// Close stops the workers, waiting until ctx is done for running tasks, and
// closes the task database.
func (h *Housekeeping) Close(ctx context.Context) {
	h.client.Stop(ctx)
	h.cancel()
	if err := h.client.Close(); err != nil {
		log.Printf("[TASK] Error closing task database: %v", err)
	}
}
