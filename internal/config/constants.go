package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the inventory database
	DefaultDatabasePath = "./ebookstore.db"

	// DefaultBackupPath is where the scheduled backup writes the stock list
	DefaultBackupPath = "./ebookstore-backup.txt"
)
