package inventory

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/mrlokans/shelftrack/internal/display"
	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/reconcile"
	"github.com/mrlokans/shelftrack/internal/stockfile"
)

// Enter collects a new book from the operator and stores it together with its
// author when the author is new.
func (s *Service) Enter(p Prompter) (*entities.Book, error) {
	fmt.Fprintln(p, "Enter a book into the database.")
	fmt.Fprintln(p, "Please enter the book information.")

	title, err := s.askTitle(p)
	if err != nil {
		return nil, err
	}
	qty, err := askQuantity(p)
	if err != nil {
		return nil, err
	}
	bookID, err := s.askBookID(p)
	if err != nil {
		return nil, err
	}
	claim, err := s.askAuthorID(p)
	if err != nil {
		return nil, err
	}

	author, isNew, err := s.rec.CompleteAuthor(claim.AuthorID)
	if err != nil {
		return nil, err
	}
	if isNew {
		name, err := askText(p, "Author name: ", "Please enter the author's name.")
		if err != nil {
			return nil, err
		}
		country, err := ask(p, "Author country: ")
		if err != nil {
			return nil, err
		}
		author = &entities.Author{ID: claim.AuthorID, Name: name, Country: country}
	}

	book := &entities.Book{ID: bookID, Title: title, AuthorID: claim.AuthorID, Qty: qty}
	created, err := s.store(book, *author)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p, "%s entered into database.\n", book.Title)
	if created {
		fmt.Fprintf(p, "%s entered into database.\n", author.Name)
	} else {
		fmt.Fprintln(p, "Author information confirmed present in database.")
	}

	if err := s.ShowInventory(p); err != nil {
		return book, err
	}
	return book, nil
}

// store inserts book and then makes sure its author row exists. If the author
// cannot be written the book row is removed again.
func (s *Service) store(book *entities.Book, author entities.Author) (bool, error) {
	opID := s.events.NewOperation()

	if err := s.books.Insert(book); err != nil {
		if errors.Is(err, entities.ErrDuplicateKey) {
			err = fmt.Errorf("book %d: %w: %w", book.ID, ErrBookIDTaken, err)
		}
		s.events.LogBook(opID, entities.AuditEventEnter, "book_enter", book.ID, "Entered "+book.Title, err)
		return false, err
	}

	created, err := s.rec.EnsureAuthor(author)
	if err != nil {
		if delErr := s.books.Delete(book.ID); delErr != nil {
			log.Printf("Failed to remove book %d after author insert failed: %v", book.ID, delErr)
		}
		err = fmt.Errorf("failed to store author %d: %w", author.ID, err)
		s.events.LogBook(opID, entities.AuditEventEnter, "book_enter", book.ID, "Entered "+book.Title, err)
		return false, err
	}

	s.events.LogBook(opID, entities.AuditEventEnter, "book_enter", book.ID, "Entered "+book.Title, nil)
	if created {
		s.events.LogAuthor(opID, "author_created", author.ID, "Created author "+author.Name)
	}
	return created, nil
}

// askTitle re-prompts until the title is unused or the operator accepts the
// duplicate.
func (s *Service) askTitle(p Prompter) (string, error) {
	for {
		title, err := askTitleText(p, "Title: ")
		if err != nil {
			return "", err
		}

		existing, err := s.rec.CheckTitle(title)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return title, nil
		}

		fmt.Fprintf(p, "A book with %s already exists.\n", title)
		fmt.Fprintln(p, "Enter 'y' to accept this title or any other key to try again.")
		ok, err := confirm(p, ": ")
		if err != nil {
			return "", err
		}
		if ok {
			return title, nil
		}
	}
}

func askTitleText(p Prompter, prompt string) (string, error) {
	for {
		title, err := askText(p, prompt, "Please enter a title.")
		if err != nil {
			return "", err
		}
		if stockfile.ValidateTitle(title) == nil {
			return title, nil
		}
		fmt.Fprintln(p, "Titles cannot contain commas or control characters.")
	}
}

func askQuantity(p Prompter) (int, error) {
	for {
		answer, err := ask(p, "Quantity: ")
		if err != nil {
			return 0, err
		}
		qty, err := strconv.Atoi(answer)
		if err != nil || qty < 0 {
			fmt.Fprintln(p, "Please enter a number of zero or more.")
			continue
		}
		return qty, nil
	}
}

// askBookID re-prompts until the operator enters an unused four-digit id.
func (s *Service) askBookID(p Prompter) (int, error) {
	for {
		id, err := askID(p, "Book id: ")
		if err != nil {
			return 0, err
		}

		book, err := s.books.GetBookByID(id)
		if errors.Is(err, entities.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(p, "Book id %d is assigned to %s.\n", id, book.Title)
		fmt.Fprintln(p, "Please try again.")
	}
}

// askAuthorID re-prompts until the operator enters an unused author id or
// confirms reuse of one that other books already reference.
func (s *Service) askAuthorID(p Prompter) (reconcile.AuthorClaim, error) {
	for {
		id, err := askID(p, "authorID: ")
		if err != nil {
			return reconcile.AuthorClaim{}, err
		}

		claim, err := s.rec.ResolveAuthorID(id)
		if err != nil {
			return reconcile.AuthorClaim{}, err
		}
		if claim.NeedsNewAuthor() {
			return claim, nil
		}

		name := display.UnknownAuthor
		author, err := s.authorOf(claim.ExistingBook)
		if err != nil {
			return reconcile.AuthorClaim{}, err
		}
		if author != nil {
			name = author.Name
		}

		fmt.Fprintf(p, "authorID %d is assigned to %s.\n", id, name)
		fmt.Fprintln(p, "Enter 'y' to accept this author or any other key to try again.")
		ok, err := confirm(p, ": ")
		if err != nil {
			return reconcile.AuthorClaim{}, err
		}
		if ok {
			return claim, nil
		}
	}
}
