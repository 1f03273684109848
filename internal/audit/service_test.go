package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/shelftrack/internal/database/audit"
	"github.com/mrlokans/shelftrack/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_NewOperation(t *testing.T) {
	svc, _ := setupTestService(t)

	a := svc.NewOperation()
	b := svc.NewOperation()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestService_LogBook(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful enter", func(t *testing.T) {
		svc.LogBook("op-1", entities.AuditEventEnter, "book_enter", 3007, "Entered Dune", nil)

		var event entities.AuditEvent
		err := db.Where("action = ?", "book_enter").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "book", event.EntityType)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, 3007, *event.EntityID)
		assert.Equal(t, "op-1", event.OperationID)
	})

	t.Run("failed delete", func(t *testing.T) {
		svc.LogBook("op-2", entities.AuditEventDelete, "book_delete", 3001, "Delete failed", errors.New("disk I/O error"))

		var event entities.AuditEvent
		err := db.Where("action = ?", "book_delete").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "disk I/O error")
	})
}

func TestService_LogAuthor(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogAuthor("op-1", "author_removed", 1290, "Charles Dickens removed")

	var event entities.AuditEvent
	err := db.Where("action = ?", "author_removed").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventAuthor, event.EventType)
	assert.Equal(t, "author", event.EntityType)
	require.NotNil(t, event.EntityID)
	assert.Equal(t, 1290, *event.EntityID)
}

func TestService_LogImportExport(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogImport("op-1", "stock.txt", 6, 1, nil)
	svc.LogExport("op-2", "out.txt", 6, errors.New("permission denied"))

	var imp entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "stock_import").First(&imp).Error)
	assert.Equal(t, entities.AuditStatusSuccess, imp.Status)
	assert.Contains(t, imp.Metadata, `"imported":6`)
	assert.Contains(t, imp.Metadata, `"skipped":1`)

	var exp entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "stock_export").First(&exp).Error)
	assert.Equal(t, entities.AuditStatusFailed, exp.Status)
	assert.Contains(t, exp.ErrorMsg, "permission denied")
}

func TestService_GetOperation(t *testing.T) {
	svc, _ := setupTestService(t)

	op := svc.NewOperation()
	svc.LogBook(op, entities.AuditEventDelete, "book_delete", 3001, "deleted", nil)
	svc.LogAuthor(op, "author_removed", 1290, "removed")
	svc.LogBook(svc.NewOperation(), entities.AuditEventEnter, "book_enter", 3007, "entered", nil)

	events, err := svc.GetOperation(op)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "book_delete", events[0].Action)
	assert.Equal(t, "author_removed", events[1].Action)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)
	repo := auditRepo.NewRepository(db)

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-72 * time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "recent"}))

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := svc.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "recent", events[0].Action)
}

func TestService_GetEventsByType(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogBook(svc.NewOperation(), entities.AuditEventEnter, "book_enter", 4001, "Entered Dune", nil)
	svc.LogExport(svc.NewOperation(), "stock.txt", 6, nil)

	events, total, err := svc.GetEventsByType(entities.AuditEventExport, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, entities.AuditEventExport, events[0].EventType)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("a", 20)
	got := truncate(long, 10)
	assert.Len(t, got, 10)
	assert.True(t, strings.HasSuffix(got, "..."))
}
