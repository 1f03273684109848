package inventory

import (
	"fmt"

	"github.com/mrlokans/shelftrack/internal/display"
	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/reconcile"
)

const searchMenu = `Enter the title to search for:
    or enter 'a' to search by author
    or enter 10 to search by book id
    : `

// Search asks for a title fragment, an author name fragment or a book id and
// lists the matching books.
func (s *Service) Search(p Prompter) error {
	answer, err := ask(p, searchMenu)
	if err != nil {
		return err
	}

	var rows []entities.InventoryRow
	switch answer {
	case "10":
		id, err := askID(p, "Enter the book id to search for: ")
		if err != nil {
			return err
		}
		rows, err = s.SearchID(id)
		if err != nil {
			return err
		}

	case "a":
		name, err := ask(p, "Enter author name: ")
		if err != nil {
			return err
		}
		rows, err = s.SearchAuthor(name)
		if err != nil {
			return err
		}

	default:
		rows, err = s.SearchTitle(answer)
		if err != nil {
			return err
		}
	}

	display.Inventory(p, rows)
	return nil
}

// SearchTitle returns books whose title contains query, matched case-sensitively.
func (s *Service) SearchTitle(query string) ([]entities.InventoryRow, error) {
	rows, err := s.books.SearchByTitle(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search titles: %w", err)
	}
	return rows, nil
}

// SearchAuthor returns books whose author name contains query, matched case-sensitively.
func (s *Service) SearchAuthor(query string) ([]entities.InventoryRow, error) {
	rows, err := s.books.SearchByAuthor(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	return rows, nil
}

// SearchID returns the book with the given id, if any.
func (s *Service) SearchID(id int) ([]entities.InventoryRow, error) {
	if err := reconcile.ValidateID(id); err != nil {
		return nil, err
	}
	rows, err := s.books.SearchByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to search book %d: %w", id, err)
	}
	return rows, nil
}

// ShowInventory prints every book.
func (s *Service) ShowInventory(p Prompter) error {
	rows, err := s.books.ListInventory()
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}
	display.Inventory(p, rows)
	return nil
}

// ViewDetails prints title, author name and country for every book.
func (s *Service) ViewDetails(p Prompter) error {
	details, err := s.books.ListDetails()
	if err != nil {
		return fmt.Errorf("failed to load book details: %w", err)
	}
	display.Details(p, details)
	return nil
}
