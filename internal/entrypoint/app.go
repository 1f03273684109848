// Package entrypoint wires the store, reconciler, audit trail and workflows
// into one App for the command-line commands.
package entrypoint

import (
	"context"
	"log"
	"time"

	"github.com/mrlokans/shelftrack/internal/audit"
	"github.com/mrlokans/shelftrack/internal/config"
	"github.com/mrlokans/shelftrack/internal/database"
	auditRepo "github.com/mrlokans/shelftrack/internal/database/audit"
	"github.com/mrlokans/shelftrack/internal/database/authors"
	"github.com/mrlokans/shelftrack/internal/database/books"
	"github.com/mrlokans/shelftrack/internal/inventory"
	"github.com/mrlokans/shelftrack/internal/reconcile"
	"github.com/mrlokans/shelftrack/internal/scheduler"
	"github.com/mrlokans/shelftrack/internal/tasks"
)

// ShutdownFunc stops background work started for a session.
type ShutdownFunc func(ctx context.Context)

type App struct {
	DB         *database.Database
	Books      *books.Repository
	Authors    *authors.Repository
	Reconciler *reconcile.Reconciler
	Audit      *audit.Service
	Inventory  *inventory.Service
}

// Open opens the database at dbPath and builds the services on top of it.
// logLevel is one of silent, error, warn or info.
func Open(dbPath, logLevel string) (*App, error) {
	db, err := database.NewDatabase(dbPath, database.ParseLogLevel(logLevel))
	if err != nil {
		return nil, err
	}

	bookRepo := books.NewRepository(db.DB)
	authorRepo := authors.NewRepository(db.DB)
	rec := reconcile.New(bookRepo, authorRepo)
	auditor := audit.NewService(auditRepo.NewRepository(db.DB))

	return &App{
		DB:         db,
		Books:      bookRepo,
		Authors:    authorRepo,
		Reconciler: rec,
		Audit:      auditor,
		Inventory:  inventory.NewService(bookRepo, authorRepo, rec, auditor),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

// StartBackground starts the housekeeping task queue and the backup scheduler
// when they are enabled in cfg. Failures are logged and leave the session
// running without them.
func (a *App) StartBackground(cfg *config.Config) ShutdownFunc {
	var housekeeping *tasks.Housekeeping
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		var err error
		housekeeping, err = tasks.StartHousekeeping(cfg.Database.Path, taskCfg, cfg.Audit.RetentionDays, a.Audit)
		if err != nil {
			log.Printf("Failed to start task queue: %v", err)
			housekeeping = nil
		}
	}

	var backup *scheduler.BackupScheduler
	if cfg.Backup.Enabled {
		backup = scheduler.NewBackupScheduler(a.Inventory, cfg.Backup.Schedule, cfg.Backup.Path)
		if err := backup.Start(context.Background()); err != nil {
			log.Printf("Failed to start backup scheduler: %v", err)
			backup = nil
		} else if next := backup.NextRunTime(); next != nil {
			log.Printf("[BACKUP] Next backup of %s at %s", cfg.Backup.Path, next.Format(time.RFC3339))
		}
	}

	return func(ctx context.Context) {
		if backup != nil {
			backup.Stop()
		}
		if housekeeping != nil {
			housekeeping.Close(ctx)
		}
	}
}
