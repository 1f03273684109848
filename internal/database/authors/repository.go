// Package authors provides the author half of the storage gateway.
//
// # Usage
//
//	repo := authors.NewRepository(db.DB)
//	book, author, err := repo.FindByName("Lewis Carroll")
package authors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/shelftrack/internal/entities"
)

// Repository handles all author table operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAuthorByID retrieves an author by ID.
func (r *Repository) GetAuthorByID(id int) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Where("id = ?", id).First(&author).Error
	if err != nil {
		return nil, translate(err)
	}
	return &author, nil
}

// Exists reports whether an author row with id is present.
func (r *Repository) Exists(id int) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Count returns the number of author rows.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Count(&count).Error
	return count, err
}

// nameMatch is the flat row produced by the book/author join in FindByName.
type nameMatch struct {
	BookID        int
	BookTitle     string
	BookQty       int
	AuthorID      int
	AuthorName    string
	AuthorCountry string
}

// FindByName returns the first book (by book id) whose author's name equals name
// exactly, together with that author.
func (r *Repository) FindByName(name string) (*entities.Book, *entities.Author, error) {
	var matches []nameMatch
	err := r.db.Table("book").
		Select("book.id AS book_id, book.title AS book_title, book.qty AS book_qty, " +
			"author.id AS author_id, author.name AS author_name, author.country AS author_country").
		Joins("INNER JOIN author ON book.authorID = author.id").
		Where("author.name = ?", name).
		Order("book.id ASC").
		Limit(1).
		Scan(&matches).Error
	if err != nil {
		return nil, nil, err
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("author %q: %w", name, entities.ErrNotFound)
	}

	m := matches[0]
	book := &entities.Book{ID: m.BookID, Title: m.BookTitle, AuthorID: m.AuthorID, Qty: m.BookQty}
	author := &entities.Author{ID: m.AuthorID, Name: m.AuthorName, Country: m.AuthorCountry}
	return book, author, nil
}

// Insert adds a new author row. Fails with entities.ErrDuplicateKey if the id exists.
func (r *Repository) Insert(author *entities.Author) error {
	exists, err := r.Exists(author.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("author %d: %w", author.ID, entities.ErrDuplicateKey)
	}
	if err := r.db.Create(author).Error; err != nil {
		return fmt.Errorf("author %d: %w", author.ID, translate(err))
	}
	return nil
}

// UpdateName renames author id.
func (r *Repository) UpdateName(id int, name string) error {
	return r.updateColumn(id, "name", name)
}

// UpdateCountry sets the country of author id.
func (r *Repository) UpdateCountry(id int, country string) error {
	return r.updateColumn(id, "country", country)
}

func (r *Repository) updateColumn(id int, column, value string) error {
	result := r.db.Model(&entities.Author{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("author %d: %w", id, entities.ErrNotFound)
	}
	return nil
}

// Delete removes author id.
func (r *Repository) Delete(id int) error {
	result := r.db.Where("id = ?", id).Delete(&entities.Author{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("author %d: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListOrphans returns authors that no book references.
func (r *Repository) ListOrphans() ([]entities.Author, error) {
	var orphans []entities.Author
	err := r.db.Table("author").
		Select("author.*").
		Joins("LEFT JOIN book ON book.authorID = author.id").
		Where("book.id IS NULL").
		Order("author.id ASC").
		Scan(&orphans).Error
	return orphans, err
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
