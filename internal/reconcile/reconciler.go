// Package reconcile keeps book and author rows consistent.
//
// The store enforces no foreign key between book.authorID and author.id, so
// every rule that a cascading constraint would normally provide lives here:
//
//   - no author row outlives the last book that references it
//   - a new author id only gets an author row once a book uses it
//   - a name that already belongs to an author resolves to that author's id
//
// The Reconciler never prompts. Where a decision needs the operator (reusing an
// author id, accepting a duplicate title) it returns what it found and the
// caller asks.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/mrlokans/shelftrack/internal/entities"
)

// BookStore is the part of the book gateway the reconciler needs.
type BookStore interface {
	GetBookByID(id int) (*entities.Book, error)
	FindByAuthorID(authorID int) (*entities.Book, error)
	FindByTitle(title string) (*entities.Book, error)
	CountByAuthor(authorID int) (int64, error)
	UpdateAuthor(id int, authorID int) error
	Delete(id int) error
	ListMissingAuthors() ([]entities.Book, error)
}

// AuthorStore is the part of the author gateway the reconciler needs.
type AuthorStore interface {
	GetAuthorByID(id int) (*entities.Author, error)
	Exists(id int) (bool, error)
	FindByName(name string) (*entities.Book, *entities.Author, error)
	Insert(author *entities.Author) error
	UpdateName(id int, name string) error
	Delete(id int) error
	ListOrphans() ([]entities.Author, error)
}

type Reconciler struct {
	books   BookStore
	authors AuthorStore
}

func New(books BookStore, authors AuthorStore) *Reconciler {
	return &Reconciler{books: books, authors: authors}
}

// AuthorClaim is the outcome of resolving a candidate author id for a new book.
type AuthorClaim struct {
	AuthorID int
	// ExistingBook is a stored book already referencing AuthorID, or nil if the
	// id is unused. When set, the operator must confirm the reuse.
	ExistingBook *entities.Book
}

// NeedsNewAuthor reports whether no stored book referenced the id before this
// operation, i.e. the author row still has to be created.
func (c AuthorClaim) NeedsNewAuthor() bool {
	return c.ExistingBook == nil
}

// ResolveAuthorID validates a candidate author id and reports whether it is
// already assigned to a stored book.
func (r *Reconciler) ResolveAuthorID(candidate int) (AuthorClaim, error) {
	if err := ValidateID(candidate); err != nil {
		return AuthorClaim{}, err
	}

	claim := AuthorClaim{AuthorID: candidate}
	book, err := r.books.FindByAuthorID(candidate)
	switch {
	case err == nil:
		claim.ExistingBook = book
	case errors.Is(err, entities.ErrNotFound):
	default:
		return AuthorClaim{}, fmt.Errorf("failed to look up author id %d: %w", candidate, err)
	}
	return claim, nil
}

// CompleteAuthor returns the stored author for authorID when books already
// reference it. isNew is true when the caller must collect a name and country.
// It must run before the new book row referencing authorID is inserted.
//
// A referenced id without an author row is left behind when an earlier entry
// stopped between inserting the book and the author; it is treated as new so
// the missing data can be supplied.
func (r *Reconciler) CompleteAuthor(authorID int) (author *entities.Author, isNew bool, err error) {
	count, err := r.books.CountByAuthor(authorID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count books for author %d: %w", authorID, err)
	}
	if count == 0 {
		return nil, true, nil
	}

	author, err = r.authors.GetAuthorByID(authorID)
	if errors.Is(err, entities.ErrNotFound) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load author %d: %w", authorID, err)
	}
	return author, false, nil
}

// EnsureAuthor inserts author unless a row with its id already exists.
// created reports whether a row was written.
func (r *Reconciler) EnsureAuthor(author entities.Author) (created bool, err error) {
	exists, err := r.authors.Exists(author.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check author %d: %w", author.ID, err)
	}
	if exists {
		return false, nil
	}
	if err := r.authors.Insert(&author); err != nil {
		return false, err
	}
	return true, nil
}

// CheckTitle returns a stored book with the same title (ignoring case and
// surrounding whitespace), or nil when the title is not taken.
func (r *Reconciler) CheckTitle(title string) (*entities.Book, error) {
	book, err := r.books.FindByTitle(title)
	if errors.Is(err, entities.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check title: %w", err)
	}
	return book, nil
}
