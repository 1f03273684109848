package inventory

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelftrack/internal/entities"
	"github.com/mrlokans/shelftrack/internal/stockfile"
)

func TestEnter_NewAuthor(t *testing.T) {
	f := setupSeeded(t)
	p, out := script("Dune", "10", "4001", "7001", "Frank Herbert", "USA")

	book, err := f.svc.Enter(p)
	require.NoError(t, err)
	assert.Equal(t, &entities.Book{ID: 4001, Title: "Dune", AuthorID: 7001, Qty: 10}, book)

	author, err := f.authors.GetAuthorByID(7001)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", author.Name)
	assert.Equal(t, "USA", author.Country)

	assert.Contains(t, out.String(), "Dune entered into database.")
	assert.Contains(t, out.String(), "Frank Herbert entered into database.")
	assert.Contains(t, out.String(), "4001 : Dune : Frank Herbert : 10")
	f.assertNoOrphans(t)
}

func TestEnter_ReuseAuthor(t *testing.T) {
	f := setupSeeded(t)
	p, out := script(
		"A Wizard of Earthsea", "5",
		"3001", "4002", // 3001 is taken
		"8937", "n", // decline, try again
		"8937", "y",
	)

	book, err := f.svc.Enter(p)
	require.NoError(t, err)
	assert.Equal(t, 4002, book.ID)
	assert.Equal(t, 8937, book.AuthorID)

	assert.Contains(t, out.String(), "Book id 3001 is assigned to A Tale of Two Cities.")
	assert.Contains(t, out.String(), "authorID 8937 is assigned to Ursula K. Le Guin.")
	assert.Contains(t, out.String(), "Author information confirmed present in database.")
	assert.NotContains(t, out.String(), "Author name: ")

	count, err := f.books.CountByAuthor(8937)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	author, err := f.authors.GetAuthorByID(8937)
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", author.Name)
}

func TestEnter_DuplicateTitle(t *testing.T) {
	t.Run("retry", func(t *testing.T) {
		f := setupSeeded(t)
		p, out := script("the lord of the rings ", "n", "Dune", "1", "4001", "7001", "Frank Herbert", "USA")

		book, err := f.svc.Enter(p)
		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		assert.Contains(t, out.String(), "A book with the lord of the rings already exists.")
	})

	t.Run("accept", func(t *testing.T) {
		f := setupSeeded(t)
		p, _ := script("The Lord of the Rings", "Y", "3", "4001", "6380", "y")

		book, err := f.svc.Enter(p)
		require.NoError(t, err)
		assert.Equal(t, "The Lord of the Rings", book.Title)

		found, err := f.books.SearchByTitle("The Lord of the Rings")
		require.NoError(t, err)
		assert.Equal(t, []int{3004, 4001}, ids(found))
	})
}

func TestEnter_RetriesInvalidInput(t *testing.T) {
	f := setupSeeded(t)
	p, out := script(
		"", "Kindred",
		"abc", "-1", "3",
		"999", "10000", "1000",
		"x", "9999",
		"Octavia E. Butler", "California",
	)

	book, err := f.svc.Enter(p)
	require.NoError(t, err)
	assert.Equal(t, &entities.Book{ID: 1000, Title: "Kindred", AuthorID: 9999, Qty: 3}, book)

	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a number of zero or more."))
	assert.Equal(t, 3, strings.Count(out.String(), idHint))
	assert.Contains(t, out.String(), "Please enter a title.")
}

func TestEnter_AbortsOnEndOfInput(t *testing.T) {
	f := setupSeeded(t)
	p, _ := script("Dune", "10", "4001")

	_, err := f.svc.Enter(p)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, int64(6), f.bookCount(t))
	f.assertNoOrphans(t)
}

func TestEnter_RecoversMissingAuthorRow(t *testing.T) {
	f := setupSeeded(t)
	// A book whose author row was never written.
	require.NoError(t, f.books.Insert(&entities.Book{ID: 4001, Title: "Dune", AuthorID: 7001, Qty: 1}))

	p, _ := script("Dune Messiah", "2", "4002", "7001", "y", "Frank Herbert", "USA")

	_, err := f.svc.Enter(p)
	require.NoError(t, err)

	author, err := f.authors.GetAuthorByID(7001)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", author.Name)

	rep, err := f.rec.Verify()
	require.NoError(t, err)
	assert.True(t, rep.OK())
}

func TestEnter_AuditTrail(t *testing.T) {
	f := setupSeeded(t)
	p, _ := script("Dune", "10", "4001", "7001", "Frank Herbert", "USA")

	_, err := f.svc.Enter(p)
	require.NoError(t, err)

	events, _, err := f.audit.GetEvents(10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	events, err = f.audit.GetOperation(events[0].OperationID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "book_enter", events[0].Action)
	assert.Equal(t, "author_created", events[1].Action)
	assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
}

func TestStore_DuplicateBookID(t *testing.T) {
	f := setupSeeded(t)

	_, err := f.svc.store(&entities.Book{ID: 3001, Title: "Copy", AuthorID: 7001, Qty: 1},
		entities.Author{ID: 7001, Name: "Nobody"})
	assert.ErrorIs(t, err, ErrBookIDTaken)
	assert.ErrorIs(t, err, entities.ErrDuplicateKey)

	book, err := f.books.GetBookByID(3001)
	require.NoError(t, err)
	assert.Equal(t, "A Tale of Two Cities", book.Title)

	exists, err := f.authors.Exists(7001)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnter_TitleWithComma(t *testing.T) {
	f := setupSeeded(t)
	p, out := script("Love, Actually", "Love Actually", "3", "4001", "1290", "y")

	book, err := f.svc.Enter(p)
	require.NoError(t, err)
	assert.Equal(t, "Love Actually", book.Title)
	assert.Contains(t, out.String(), "Titles cannot contain commas or control characters.")

	path := filepath.Join(t.TempDir(), "stock.txt")
	n, err := f.svc.Export(path, false)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	loaded, err := stockfile.LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Skipped)
	assert.Len(t, loaded.Books, 7)
}
