package reconcile

import (
	"errors"
	"fmt"

	"github.com/mrlokans/shelftrack/internal/entities"
)

// DeleteResult reports the records removed by DeleteBook.
type DeleteResult struct {
	Book entities.Book
	// Author is the book's author as it was before the delete; nil if the
	// author row was already missing.
	Author *entities.Author
	// AuthorRemoved is set when the deleted book was the author's last one.
	AuthorRemoved bool
	// RemainingBooks is how many books still reference the author.
	RemainingBooks int64
}

// DeleteBook deletes book bookID and then its author if no other book
// references it. The count must run after the book row is gone.
func (r *Reconciler) DeleteBook(bookID int) (DeleteResult, error) {
	book, err := r.books.GetBookByID(bookID)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}

	res := DeleteResult{Book: *book}
	author, err := r.authors.GetAuthorByID(book.AuthorID)
	switch {
	case err == nil:
		res.Author = author
	case errors.Is(err, entities.ErrNotFound):
	default:
		return res, fmt.Errorf("failed to load author %d: %w", book.AuthorID, err)
	}

	if err := r.books.Delete(book.ID); err != nil {
		return res, fmt.Errorf("failed to delete book %d: %w", book.ID, err)
	}

	remaining, err := r.books.CountByAuthor(book.AuthorID)
	if err != nil {
		return res, fmt.Errorf("failed to count books for author %d: %w", book.AuthorID, err)
	}
	res.RemainingBooks = remaining
	if remaining > 0 || res.Author == nil {
		return res, nil
	}

	if err := r.authors.Delete(book.AuthorID); err != nil && !errors.Is(err, entities.ErrNotFound) {
		return res, fmt.Errorf("failed to delete author %d: %w", book.AuthorID, err)
	}
	res.AuthorRemoved = true
	return res, nil
}

// removeIfOrphan deletes author authorID when no book references it.
func (r *Reconciler) removeIfOrphan(authorID int) (bool, error) {
	count, err := r.books.CountByAuthor(authorID)
	if err != nil {
		return false, fmt.Errorf("failed to count books for author %d: %w", authorID, err)
	}
	if count > 0 {
		return false, nil
	}

	err = r.authors.Delete(authorID)
	if errors.Is(err, entities.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete author %d: %w", authorID, err)
	}
	return true, nil
}

// SweepOrphans deletes every author that no book references and returns them.
func (r *Reconciler) SweepOrphans() ([]entities.Author, error) {
	orphans, err := r.authors.ListOrphans()
	if err != nil {
		return nil, fmt.Errorf("failed to list orphan authors: %w", err)
	}

	var removed []entities.Author
	for _, a := range orphans {
		ok, err := r.removeIfOrphan(a.ID)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, a)
		}
	}
	return removed, nil
}

// Report is the result of an invariant check over the whole store.
type Report struct {
	// OrphanAuthors are author rows no book references.
	OrphanAuthors []entities.Author
	// MissingAuthors are books whose author id has no author row.
	MissingAuthors []entities.Book
}

// OK reports whether the store has neither orphans nor missing authors.
func (rep Report) OK() bool {
	return len(rep.OrphanAuthors) == 0 && len(rep.MissingAuthors) == 0
}

// Verify checks the store for orphan authors and books with missing authors.
func (r *Reconciler) Verify() (Report, error) {
	var rep Report
	var err error

	rep.OrphanAuthors, err = r.authors.ListOrphans()
	if err != nil {
		return rep, fmt.Errorf("failed to list orphan authors: %w", err)
	}
	rep.MissingAuthors, err = r.books.ListMissingAuthors()
	if err != nil {
		return rep, fmt.Errorf("failed to list books with missing authors: %w", err)
	}
	return rep, nil
}
