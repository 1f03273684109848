package reconcile

import (
	"errors"
	"fmt"

	"github.com/mrlokans/shelftrack/internal/entities"
)

// NameResolution describes what RenameAuthor did to a book and its author.
type NameResolution struct {
	BookID      int
	OldAuthorID int
	// AuthorID is the author the book references afterwards.
	AuthorID int
	// Country of the author the book now references.
	Country string
	// Repointed is set when the name belonged to another author and the book
	// now references that author's id.
	Repointed bool
	// Renamed is set when the book's own author row took the new name.
	Renamed bool
	// Created is set when the book's author row was missing and was created
	// with the new name.
	Created bool
	// OldAuthorRemoved is set when repointing left the old author with no books.
	OldAuthorRemoved bool
}

// RenameAuthor changes the author name of book bookID.
//
// If another author already carries newName, the book is repointed to that
// author's id and the old author is deleted once no book references it.
// Otherwise the book's current author row is renamed in place; the id does not
// change, so every other book by that author sees the new name too.
func (r *Reconciler) RenameAuthor(bookID int, newName string) (NameResolution, error) {
	book, err := r.books.GetBookByID(bookID)
	if err != nil {
		return NameResolution{}, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}

	res := NameResolution{
		BookID:      book.ID,
		OldAuthorID: book.AuthorID,
		AuthorID:    book.AuthorID,
	}

	_, match, err := r.authors.FindByName(newName)
	switch {
	case err == nil:
		res.AuthorID = match.ID
		res.Country = match.Country
		if match.ID == book.AuthorID {
			return res, nil
		}
		if err := r.books.UpdateAuthor(book.ID, match.ID); err != nil {
			return res, fmt.Errorf("failed to repoint book %d to author %d: %w", book.ID, match.ID, err)
		}
		res.Repointed = true

		removed, err := r.removeIfOrphan(book.AuthorID)
		if err != nil {
			return res, err
		}
		res.OldAuthorRemoved = removed
		return res, nil

	case errors.Is(err, entities.ErrNotFound):
		return r.renameInPlace(res, newName)

	default:
		return res, fmt.Errorf("failed to look up author %q: %w", newName, err)
	}
}

func (r *Reconciler) renameInPlace(res NameResolution, newName string) (NameResolution, error) {
	current, err := r.authors.GetAuthorByID(res.AuthorID)
	switch {
	case err == nil:
		if err := r.authors.UpdateName(current.ID, newName); err != nil {
			return res, fmt.Errorf("failed to rename author %d: %w", current.ID, err)
		}
		res.Renamed = true
		res.Country = current.Country
		return res, nil

	case errors.Is(err, entities.ErrNotFound):
		if _, err := r.EnsureAuthor(entities.Author{ID: res.AuthorID, Name: newName}); err != nil {
			return res, fmt.Errorf("failed to create author %d: %w", res.AuthorID, err)
		}
		res.Created = true
		return res, nil

	default:
		return res, fmt.Errorf("failed to load author %d: %w", res.AuthorID, err)
	}
}
