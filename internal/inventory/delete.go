package inventory

import (
	"fmt"

	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/reconcile"
)

// Delete removes a book chosen by the operator, and its author when that was
// the author's last book, then lists the remaining inventory.
func (s *Service) Delete(p Prompter) error {
	record, err := s.SelectBook(p)
	if err != nil {
		return err
	}

	ok, err := confirm(p, "To delete this book enter 'y' or any other key to cancel: ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(p, "Operation cancelled.")
		return nil
	}

	res, err := s.DeleteBook(record.Book.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(p, "%d %s deleted.\n", res.Book.ID, res.Book.Title)
	if res.Author != nil {
		if res.AuthorRemoved {
			fmt.Fprintf(p, "%s deleted.\n", res.Author.Name)
		} else {
			fmt.Fprintf(p, "%s remains in the database.\n", res.Author.Name)
		}
	}

	return s.ShowInventory(p)
}

// DeleteBook deletes a book and, if no other book references it, its author.
func (s *Service) DeleteBook(bookID int) (reconcile.DeleteResult, error) {
	opID := s.events.NewOperation()

	res, err := s.rec.DeleteBook(bookID)
	if err != nil {
		s.events.LogBook(opID, entities.AuditEventDelete, "book_delete", bookID, fmt.Sprintf("Deleted book %d", bookID), err)
		return res, err
	}

	s.events.LogBook(opID, entities.AuditEventDelete, "book_delete", bookID, "Deleted "+res.Book.Title, nil)
	if res.AuthorRemoved {
		s.events.LogAuthor(opID, "author_removed", res.Author.ID, "Removed "+res.Author.Name+" with their last book")
	}
	return res, nil
}
