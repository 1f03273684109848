// Package books provides the book half of the storage gateway.
//
// Every mutation is a single auto-committed statement. Lookups that match no
// row return entities.ErrNotFound, and inserting an id that is already present
// returns entities.ErrDuplicateKey without touching the table.
//
// # Usage
//
//	repo := books.NewRepository(db.DB)
//	book, err := repo.GetBookByID(3001)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/shelftrack/internal/entities"
)

// Repository handles all book table operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id int) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// FindByAuthorID returns the lowest-id book that references authorID.
func (r *Repository) FindByAuthorID(authorID int) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("authorID = ?", authorID).Order("id ASC").First(&book).Error
	if err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// FindByTitle returns the lowest-id book whose title matches title, ignoring case
// and surrounding whitespace.
func (r *Repository) FindByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("LOWER(TRIM(title)) = LOWER(TRIM(?))", title).Order("id ASC").First(&book).Error
	if err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// CountByAuthor counts the books referencing authorID.
func (r *Repository) CountByAuthor(authorID int) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("authorID = ?", authorID).Count(&count).Error
	return count, err
}

// Count returns the number of books in the table.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// Insert adds a new book row. The id must not be taken.
func (r *Repository) Insert(book *entities.Book) error {
	var existing int64
	if err := r.db.Model(&entities.Book{}).Where("id = ?", book.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("book %d: %w", book.ID, entities.ErrDuplicateKey)
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("book %d: %w", book.ID, translate(err))
	}
	return nil
}

// UpdateTitle sets the title of book id.
func (r *Repository) UpdateTitle(id int, title string) error {
	return r.updateColumn(id, "title", title)
}

// UpdateAuthor points book id at authorID.
func (r *Repository) UpdateAuthor(id int, authorID int) error {
	return r.updateColumn(id, "authorID", authorID)
}

// UpdateQuantity sets the stock quantity of book id.
func (r *Repository) UpdateQuantity(id int, qty int) error {
	return r.updateColumn(id, "qty", qty)
}

func (r *Repository) updateColumn(id int, column string, value any) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, entities.ErrNotFound)
	}
	return nil
}

// Delete removes book id.
func (r *Repository) Delete(id int) error {
	result := r.db.Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListAll returns every book ordered by id, the order used for export.
func (r *Repository) ListAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// ListInventory returns every book joined with its author's name.
func (r *Repository) ListInventory() ([]entities.InventoryRow, error) {
	var rows []entities.InventoryRow
	err := r.inventoryQuery().Scan(&rows).Error
	return rows, err
}

// SearchByTitle returns books whose title contains query (case-sensitive).
func (r *Repository) SearchByTitle(query string) ([]entities.InventoryRow, error) {
	var rows []entities.InventoryRow
	err := r.inventoryQuery().Where("instr(book.title, ?) > 0", query).Scan(&rows).Error
	return rows, err
}

// SearchByAuthor returns books whose author's name contains query (case-sensitive).
func (r *Repository) SearchByAuthor(query string) ([]entities.InventoryRow, error) {
	var rows []entities.InventoryRow
	err := r.inventoryQuery().Where("instr(author.name, ?) > 0", query).Scan(&rows).Error
	return rows, err
}

// SearchByID returns the inventory row for book id, if any.
func (r *Repository) SearchByID(id int) ([]entities.InventoryRow, error) {
	var rows []entities.InventoryRow
	err := r.inventoryQuery().Where("book.id = ?", id).Scan(&rows).Error
	return rows, err
}

// ListDetails returns title, author name and country for every book.
func (r *Repository) ListDetails() ([]entities.BookDetail, error) {
	var details []entities.BookDetail
	err := r.db.Table("book").
		Select("book.title AS title, COALESCE(author.name, '') AS author_name, COALESCE(author.country, '') AS author_country").
		Joins("LEFT JOIN author ON book.authorID = author.id").
		Order("book.id ASC").
		Scan(&details).Error
	return details, err
}

// ListMissingAuthors returns books whose author id has no author row.
func (r *Repository) ListMissingAuthors() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Table("book").
		Select("book.*").
		Joins("LEFT JOIN author ON book.authorID = author.id").
		Where("author.id IS NULL").
		Order("book.id ASC").
		Scan(&books).Error
	return books, err
}

// Books whose author row is missing still appear, with an empty author name.
func (r *Repository) inventoryQuery() *gorm.DB {
	return r.db.Table("book").
		Select("book.id AS id, book.title AS title, COALESCE(author.name, '') AS author_name, book.qty AS qty").
		Joins("LEFT JOIN author ON book.authorID = author.id").
		Order("book.id ASC")
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entities.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return entities.ErrDuplicateKey
	default:
		return err
	}
}
