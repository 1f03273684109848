package inventory

import (
	"errors"
	"fmt"

	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/stockfile"
)

// ImportResult summarises a bulk import.
type ImportResult struct {
	Imported int
	// Duplicates are ids that were already in the store; those rows were skipped.
	Duplicates []int
	// Invalid describes rows rejected for out-of-range or empty values.
	Invalid []string
	// MissingAuthors are books, imported or not, that reference an author id
	// without an author row.
	MissingAuthors []entities.Book
	// OrphansRemoved are authors deleted because no book references them.
	OrphansRemoved []entities.Author
}

// Skipped returns how many rows were not imported.
func (r ImportResult) Skipped() int {
	return len(r.Duplicates) + len(r.Invalid)
}

// Import inserts parsed stock rows. Rows whose id is taken are skipped, never
// overwritten. Authors left without books are swept afterwards.
func (s *Service) Import(rows []entities.Book, source string) (ImportResult, error) {
	opID := s.events.NewOperation()

	result, err := s.importRows(rows)
	s.events.LogImport(opID, source, result.Imported, result.Skipped(), err)
	if err != nil {
		return result, err
	}

	result.OrphansRemoved, err = s.rec.SweepOrphans()
	if err != nil {
		return result, err
	}
	for _, a := range result.OrphansRemoved {
		s.events.LogAuthor(opID, "author_removed", a.ID, "Removed "+a.Name+" with no books")
	}

	report, err := s.rec.Verify()
	if err != nil {
		return result, err
	}
	result.MissingAuthors = report.MissingAuthors
	return result, nil
}

func (s *Service) importRows(rows []entities.Book) (ImportResult, error) {
	var result ImportResult
	for i := range rows {
		book := rows[i]
		if reason := invalidReason(book); reason != "" {
			result.Invalid = append(result.Invalid, fmt.Sprintf("book %d: %s", book.ID, reason))
			continue
		}

		err := s.books.Insert(&book)
		if errors.Is(err, entities.ErrDuplicateKey) {
			result.Duplicates = append(result.Duplicates, book.ID)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to import book %d: %w", book.ID, err)
		}
		result.Imported++
	}
	return result, nil
}

func invalidReason(book entities.Book) string {
	switch {
	case !entities.ValidID(book.ID):
		return "id out of range"
	case !entities.ValidID(book.AuthorID):
		return "author id out of range"
	case book.Qty < 0:
		return "negative quantity"
	}
	if err := stockfile.ValidateTitle(book.Title); err != nil {
		return "unusable title"
	}
	return ""
}

// Export writes every book, ordered by id, to path. An existing file is only
// replaced when overwrite is set.
func (s *Service) Export(path string, overwrite bool) (int, error) {
	opID := s.events.NewOperation()

	books, err := s.books.ListAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load books: %w", err)
	}

	err = stockfile.ExportFile(path, books, overwrite)
	s.events.LogExport(opID, path, len(books), err)
	if err != nil {
		return 0, err
	}
	return len(books), nil
}

// ExportToFile asks for a path and exports the stock there, asking before it
// replaces an existing file.
func (s *Service) ExportToFile(p Prompter) error {
	path, err := askText(p, "Enter the filepath to save books (e.g., my_books.txt): ", "Please enter a file path.")
	if err != nil {
		return err
	}

	if stockfile.Exists(path) {
		ok, err := confirm(p, fmt.Sprintf("File '%s' already exists. Overwrite? (y/n): ", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(p, "Export cancelled.")
			return nil
		}
	}

	n, err := s.Export(path, true)
	if errors.Is(err, stockfile.ErrNothingToExport) {
		fmt.Fprintln(p, "No books in database to export.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(p, "Successfully exported %d books to %s\n", n, path)
	return nil
}
