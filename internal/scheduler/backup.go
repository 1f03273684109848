package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// StockExporter writes the current stock list to a file.
type StockExporter interface {
	Export(path string, overwrite bool) (int, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// BackupScheduler periodically exports the stock list to a backup file while
// a menu session is open.
type BackupScheduler struct {
	exporter StockExporter
	schedule string
	path     string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewBackupScheduler(exporter StockExporter, schedule, path string) *BackupScheduler {
	return &BackupScheduler{
		exporter: exporter,
		schedule: schedule,
		path:     path,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start schedules the backup job. It stops again when ctx is cancelled.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.path == "" {
		log.Printf("[BACKUP] Backup path not configured, skipping")
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunNow(); err != nil {
			log.Printf("[BACKUP] %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("[BACKUP] Started with schedule '%s', writing to %s", s.schedule, s.path)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running backup to finish.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false
}

// RunNow writes the backup immediately, replacing the previous one.
func (s *BackupScheduler) RunNow() error {
	start := time.Now()
	n, err := s.exporter.Export(s.path, true)
	if err != nil {
		return fmt.Errorf("backup to %s failed: %w", s.path, err)
	}
	log.Printf("[BACKUP] Wrote %d books to %s in %v", n, s.path, time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next backup will run, or nil when stopped.
func (s *BackupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}
