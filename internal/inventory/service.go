// Package inventory implements the operator workflows of the bookstore:
// entering, updating, deleting and searching books, plus bulk import and
// export of the stock list.
//
// Workflows talk to the operator through a Prompter and re-prompt on bad
// input until they get a usable answer or input ends, in which case they
// return ErrAborted. Author bookkeeping is delegated to a reconcile.Reconciler
// so that no workflow can leave an author row without books.
package inventory

import (
	"errors"

	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/reconcile"
)

var (
	// ErrAborted is returned when input ends before a workflow completes.
	ErrAborted = errors.New("operation aborted")
	// ErrSharedAuthor is returned when the operator declines to edit an author
	// that several books share.
	ErrSharedAuthor = errors.New("author is shared by several books; to change the author of one book only, delete that book and enter it again")
	// ErrBookIDTaken is returned when a book id is already in use.
	ErrBookIDTaken = errors.New("book id is already taken")
)

// BookGateway is the book storage the workflows need.
type BookGateway interface {
	GetBookByID(id int) (*entities.Book, error)
	Insert(book *entities.Book) error
	UpdateTitle(id int, title string) error
	UpdateQuantity(id int, qty int) error
	CountByAuthor(authorID int) (int64, error)
	Delete(id int) error
	ListAll() ([]entities.Book, error)
	ListInventory() ([]entities.InventoryRow, error)
	SearchByTitle(query string) ([]entities.InventoryRow, error)
	SearchByAuthor(query string) ([]entities.InventoryRow, error)
	SearchByID(id int) ([]entities.InventoryRow, error)
	ListDetails() ([]entities.BookDetail, error)
}

// AuthorGateway is the author storage the workflows need.
type AuthorGateway interface {
	GetAuthorByID(id int) (*entities.Author, error)
	UpdateCountry(id int, country string) error
}

// EventLogger records what the workflows changed.
type EventLogger interface {
	NewOperation() string
	LogBook(operationID string, eventType entities.AuditEventType, action string, bookID int, description string, err error)
	LogAuthor(operationID string, action string, authorID int, description string)
	LogImport(operationID, source string, imported, skipped int, err error)
	LogExport(operationID, path string, books int, err error)
}

type Service struct {
	books   BookGateway
	authors AuthorGateway
	rec     *reconcile.Reconciler
	events  EventLogger
}

// NewService creates the workflow service. events may be nil.
func NewService(books BookGateway, authors AuthorGateway, rec *reconcile.Reconciler, events EventLogger) *Service {
	if events == nil {
		events = nopEvents{}
	}
	return &Service{
		books:   books,
		authors: authors,
		rec:     rec,
		events:  events,
	}
}

// authorOf returns the author row of book, or nil if it is missing.
func (s *Service) authorOf(book *entities.Book) (*entities.Author, error) {
	author, err := s.authors.GetAuthorByID(book.AuthorID)
	if errors.Is(err, entities.ErrNotFound) {
		return nil, nil
	}
	return author, err
}

type nopEvents struct{}

func (nopEvents) NewOperation() string { return "" }

func (nopEvents) LogBook(string, entities.AuditEventType, string, int, string, error) {}

func (nopEvents) LogAuthor(string, string, int, string) {}

func (nopEvents) LogImport(string, string, int, int, error) {}

func (nopEvents) LogExport(string, string, int, error) {}
