package audit

import (
	"log"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/shelftrack/internal/database/audit"
	"github.com/mrlokans/shelftrack/internal/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Service provides high-level audit logging functionality.
// Writes are synchronous.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// NewOperation returns an id grouping the events of one workflow run.
func (s *Service) NewOperation() string {
	return uuid.New().String()
}

// record saves the event, logging instead of failing: auditing must never abort
// an inventory operation.
func (s *Service) record(event *entities.AuditEvent) {
	if err := s.repo.LogEvent(event); err != nil {
		log.Printf("Failed to log audit event %s: %v", event.Action, err)
	}
}

// LogBook records a book mutation (enter, update, delete).
func (s *Service) LogBook(operationID string, eventType entities.AuditEventType, action string, bookID int, description string, err error) {
	event := &entities.AuditEvent{
		OperationID: operationID,
		EventType:   eventType,
		Action:      action,
		Description: truncate(description, 500),
		EntityType:  "book",
		EntityID:    &bookID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// LogAuthor records a reconciliation side effect on an author row.
func (s *Service) LogAuthor(operationID string, action string, authorID int, description string) {
	event := &entities.AuditEvent{
		OperationID: operationID,
		EventType:   entities.AuditEventAuthor,
		Action:      action,
		Description: truncate(description, 500),
		EntityType:  "author",
		EntityID:    &authorID,
		Status:      entities.AuditStatusSuccess,
	}

	s.record(event)
}

// LogImport records a stock import.
func (s *Service) LogImport(operationID, source string, imported, skipped int, err error) {
	event := &entities.AuditEvent{
		OperationID: operationID,
		EventType:   entities.AuditEventImport,
		Action:      "stock_import",
		Description: "Imported stock from " + source,
		EntityType:  "book",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"source":   source,
		"imported": imported,
		"skipped":  skipped,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// LogExport records a stock export.
func (s *Service) LogExport(operationID, path string, books int, err error) {
	event := &entities.AuditEvent{
		OperationID: operationID,
		EventType:   entities.AuditEventExport,
		Action:      "stock_export",
		Description: "Exported stock to " + path,
		EntityType:  "book",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"path":  path,
		"books": books,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves paginated audit events of one type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetOperation retrieves all events of one workflow run.
func (s *Service) GetOperation(operationID string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsByOperation(operationID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
