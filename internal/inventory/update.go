package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/shelftrack/internal/display"
	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/reconcile"
	"github.com/mrlokans/shelftrack/internal/stockfile"
)

const updateMenu = `========== Update Submenu ==========
Enter the updated quantity or
enter 't' to update the title or
enter 'a' to update the author name and country or
enter 'x' to cancel the operation
: `

const authorMenu = `Enter '1' to update author name
or enter '2' to update author country
or any other key to go back to the main menu
: `

// SelectBook lists the inventory, asks for a book id and prints the summary
// of the chosen book.
func (s *Service) SelectBook(p Prompter) (entities.BookRecord, error) {
	rows, err := s.books.ListInventory()
	if err != nil {
		return entities.BookRecord{}, fmt.Errorf("failed to list books: %w", err)
	}
	display.Inventory(p, rows)
	if len(rows) == 0 {
		return entities.BookRecord{}, fmt.Errorf("no books in the inventory: %w", entities.ErrNotFound)
	}

	var book *entities.Book
	for {
		answer, err := ask(p, "Select a book.\nEnter its id number: ")
		if err != nil {
			return entities.BookRecord{}, err
		}
		id, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(p, "Please enter a four digit book id number.")
			continue
		}

		book, err = s.books.GetBookByID(id)
		if err != nil {
			return entities.BookRecord{}, fmt.Errorf("no book found with id %d: %w", id, err)
		}
		break
	}

	author, err := s.authorOf(book)
	if err != nil {
		return entities.BookRecord{}, err
	}
	record := entities.BookRecord{Book: *book, Author: author}
	display.Summary(p, record)
	return record, nil
}

// Update lets the operator change the quantity, title or author of one book.
func (s *Service) Update(p Prompter) error {
	record, err := s.SelectBook(p)
	if err != nil {
		return err
	}

	answer, err := ask(p, updateMenu)
	if err != nil {
		return err
	}

	switch strings.ToLower(answer) {
	case "t":
		title, err := askTitleText(p, "Enter the updated title: ")
		if err != nil {
			return err
		}
		if err := s.UpdateTitle(record.Book.ID, title); err != nil {
			return err
		}
		fmt.Fprintf(p, "Title of book %d updated to:\n%s.\n", record.Book.ID, title)
		return nil

	case "a":
		return s.updateAuthor(p, record)

	case "x":
		fmt.Fprintln(p, "Operation cancelled.")
		return nil
	}

	qty, err := strconv.Atoi(answer)
	if err != nil {
		return fmt.Errorf("%q is not a quantity or menu option: %w", answer, entities.ErrInvalidInput)
	}
	if err := s.UpdateQuantity(record.Book.ID, qty); err != nil {
		return err
	}
	fmt.Fprintf(p, "Quantity of book %s updated to\n%d.\n", record.Book.Title, qty)
	return nil
}

// updateAuthor runs the author submenu for the selected book. An author shared
// by several books is only edited once the operator agrees to change it for
// all of them.
func (s *Service) updateAuthor(p Prompter, record entities.BookRecord) error {
	count, err := s.books.CountByAuthor(record.Book.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to count books for author %d: %w", record.Book.AuthorID, err)
	}
	if count > 1 {
		ok, err := confirm(p, "Enter 'y' to update this author information for all books with this author\n or any other key to cancel: ")
		if err != nil {
			return err
		}
		if !ok {
			return ErrSharedAuthor
		}
		fmt.Fprintln(p, "Update this author information for all their books.")
	}

	for {
		choice, err := ask(p, authorMenu)
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			name, err := askText(p, "Enter the updated author name: ", "Please enter the author's name.")
			if err != nil {
				return err
			}
			res, err := s.RenameAuthor(record.Book.ID, name)
			if err != nil {
				return err
			}
			if !res.Renamed && !res.Created {
				fmt.Fprintf(p, "%s already exists in the database.\n", name)
				fmt.Fprintf(p, "%s's country is %s.\n", name, res.Country)
			}
			if res.OldAuthorRemoved {
				fmt.Fprintf(p, "Author %d has no books left and was removed.\n", res.OldAuthorID)
			}
			fmt.Fprintf(p, "Author of book %s updated to\n%s.\n", record.Book.Title, name)

		case "2":
			country, err := ask(p, "Enter the updated author country: ")
			if err != nil {
				return err
			}
			if _, err := s.UpdateCountry(record.Book.ID, country); err != nil {
				return err
			}
			fmt.Fprintf(p, "Author country of book %s updated to\n%s.\n", record.Book.Title, country)

		default:
			return nil
		}
	}
}

// UpdateQuantity sets the stock quantity of a book.
func (s *Service) UpdateQuantity(bookID, qty int) error {
	if qty < 0 {
		return fmt.Errorf("quantity %d is negative: %w", qty, entities.ErrInvalidInput)
	}

	err := s.books.UpdateQuantity(bookID, qty)
	s.events.LogBook(s.events.NewOperation(), entities.AuditEventUpdate, "book_quantity", bookID,
		fmt.Sprintf("Set quantity to %d", qty), err)
	if err != nil {
		return fmt.Errorf("failed to update quantity of book %d: %w", bookID, err)
	}
	return nil
}

// UpdateTitle renames a book. Titles need not be unique.
func (s *Service) UpdateTitle(bookID int, title string) error {
	if err := stockfile.ValidateTitle(title); err != nil {
		return err
	}

	err := s.books.UpdateTitle(bookID, title)
	s.events.LogBook(s.events.NewOperation(), entities.AuditEventUpdate, "book_title", bookID,
		"Set title to "+title, err)
	if err != nil {
		return fmt.Errorf("failed to update title of book %d: %w", bookID, err)
	}
	return nil
}

// UpdateCountry sets the country of the author of book bookID. The author row
// is shared, so every book by that author sees the change.
func (s *Service) UpdateCountry(bookID int, country string) (*entities.Author, error) {
	book, err := s.books.GetBookByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}

	if err := s.authors.UpdateCountry(book.AuthorID, country); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("author %d of book %d has no record, set a name first: %w", book.AuthorID, bookID, err)
		}
		return nil, fmt.Errorf("failed to update country of author %d: %w", book.AuthorID, err)
	}
	s.events.LogAuthor(s.events.NewOperation(), "author_country", book.AuthorID, "Set country to "+country)

	return s.authors.GetAuthorByID(book.AuthorID)
}

// RenameAuthor changes the author name of book bookID. A name that already
// belongs to another author moves the book to that author.
func (s *Service) RenameAuthor(bookID int, name string) (reconcile.NameResolution, error) {
	if strings.TrimSpace(name) == "" {
		return reconcile.NameResolution{}, fmt.Errorf("author name is empty: %w", entities.ErrInvalidInput)
	}

	opID := s.events.NewOperation()
	res, err := s.rec.RenameAuthor(bookID, name)
	if err != nil {
		s.events.LogBook(opID, entities.AuditEventUpdate, "book_author", bookID, "Set author to "+name, err)
		return res, err
	}

	switch {
	case res.Repointed:
		s.events.LogBook(opID, entities.AuditEventUpdate, "book_author", bookID,
			fmt.Sprintf("Moved from author %d to %d", res.OldAuthorID, res.AuthorID), nil)
	case res.Renamed:
		s.events.LogAuthor(opID, "author_renamed", res.AuthorID, "Renamed to "+name)
	case res.Created:
		s.events.LogAuthor(opID, "author_created", res.AuthorID, "Created author "+name)
	}
	if res.OldAuthorRemoved {
		s.events.LogAuthor(opID, "author_removed", res.OldAuthorID, "Removed author with no books")
	}
	return res, nil
}
