package tasks

import "time"

// Config holds configuration for the housekeeping task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often backlite removes finished tasks. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config for a single-operator session.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}
