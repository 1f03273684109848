package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelftrack/internal/entities"
)

var defaultStock = []entities.Book{
	{ID: 3001, Title: "A Tale of Two Cities", AuthorID: 1290, Qty: 30},
	{ID: 3002, Title: "The Left Hand of Darkness", AuthorID: 8937, Qty: 40},
	{ID: 3003, Title: "The Lion the Witch and the Wardrobe", AuthorID: 2356, Qty: 25},
	{ID: 3004, Title: "The Lord of the Rings", AuthorID: 6380, Qty: 37},
	{ID: 3005, Title: "Alice's Adventures in Wonderland", AuthorID: 5620, Qty: 12},
	{ID: 3006, Title: "The Long Way to a Small Angry Planet", AuthorID: 2001, Qty: 27},
}

var defaultAuthors = []entities.Author{
	{ID: 1290, Name: "Charles Dickens", Country: "England"},
	{ID: 8937, Name: "Ursula K. Le Guin", Country: "California"},
	{ID: 2356, Name: "C.S. Lewis", Country: "Ireland"},
	{ID: 6380, Name: "J.R.R. Tolkien", Country: "South Africa"},
	{ID: 5620, Name: "Lewis Carroll", Country: "England"},
	{ID: 2001, Name: "Becky Chambers", Country: "California"},
}

// DefaultStock returns a copy of the built-in sample inventory.
func DefaultStock() []entities.Book {
	return append([]entities.Book(nil), defaultStock...)
}

// DefaultAuthors returns a copy of the authors for the built-in sample inventory.
func DefaultAuthors() []entities.Author {
	return append([]entities.Author(nil), defaultAuthors...)
}

type Database struct {
	DB *gorm.DB
}

// ParseLogLevel maps a config string to a gorm log level. Unknown values are silent.
func ParseLogLevel(level string) logger.LogLevel {
	switch level {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// NewDatabase opens the sqlite store at dbPath and creates the book, author and
// audit tables if they do not exist yet. Writers wait up to five seconds for a
// lock held by the background audit cleanup.
func NewDatabase(dbPath string, logLevel logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Author{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedResult reports which tables Seed populated.
type SeedResult struct {
	BooksLoaded   int
	AuthorsLoaded int
}

// Seed populates the book table with stock and the author table with the default
// authors, each only when the table is empty. A nil stock means the default stock.
// Authors nobody references are left for the orphan sweep.
func (d *Database) Seed(stock []entities.Book) (SeedResult, error) {
	var result SeedResult
	if stock == nil {
		stock = DefaultStock()
	}

	var bookCount int64
	if err := d.DB.Model(&entities.Book{}).Count(&bookCount).Error; err != nil {
		return result, fmt.Errorf("failed to count books: %w", err)
	}
	if bookCount == 0 && len(stock) > 0 {
		if err := d.DB.Create(&stock).Error; err != nil {
			return result, fmt.Errorf("failed to seed books: %w", err)
		}
		result.BooksLoaded = len(stock)
	}

	var authorCount int64
	if err := d.DB.Model(&entities.Author{}).Count(&authorCount).Error; err != nil {
		return result, fmt.Errorf("failed to count authors: %w", err)
	}
	if authorCount == 0 {
		authors := DefaultAuthors()
		if err := d.DB.Create(&authors).Error; err != nil {
			return result, fmt.Errorf("failed to seed authors: %w", err)
		}
		result.AuthorsLoaded = len(authors)
	}

	return result, nil
}
