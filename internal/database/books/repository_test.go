package books

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelftrack/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "books.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.Author{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	books := []entities.Book{
		{ID: 3001, Title: "A Tale of Two Cities", AuthorID: 1290, Qty: 30},
		{ID: 3002, Title: "Great Expectations", AuthorID: 1290, Qty: 4},
		{ID: 3003, Title: "The Lord of the Rings", AuthorID: 6380, Qty: 37},
		{ID: 3004, Title: "Dune", AuthorID: 7001, Qty: 2},
	}
	authors := []entities.Author{
		{ID: 1290, Name: "Charles Dickens", Country: "England"},
		{ID: 6380, Name: "J.R.R. Tolkien", Country: "South Africa"},
	}
	require.NoError(t, db.Create(&books).Error)
	require.NoError(t, db.Create(&authors).Error)
}

func TestRepository_GetBookByID(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	book, err := repo.GetBookByID(3003)
	require.NoError(t, err)
	assert.Equal(t, "The Lord of the Rings", book.Title)
	assert.Equal(t, 6380, book.AuthorID)

	_, err = repo.GetBookByID(9999)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_FindByAuthorID(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	book, err := repo.FindByAuthorID(1290)
	require.NoError(t, err)
	assert.Equal(t, 3001, book.ID)

	_, err = repo.FindByAuthorID(5555)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_FindByTitle(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	book, err := repo.FindByTitle("  great EXPECTATIONS ")
	require.NoError(t, err)
	assert.Equal(t, 3002, book.ID)

	_, err = repo.FindByTitle("Great")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	seed(t, db)

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	count, err = repo.CountByAuthor(1290)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepository_Insert(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	err := repo.Insert(&entities.Book{ID: 3005, Title: "Bleak House", AuthorID: 1290, Qty: 1})
	require.NoError(t, err)

	book, err := repo.GetBookByID(3005)
	require.NoError(t, err)
	assert.Equal(t, "Bleak House", book.Title)
}

func TestRepository_Insert_DuplicateLeavesRowUnchanged(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	err := repo.Insert(&entities.Book{ID: 3001, Title: "Replacement", AuthorID: 6380, Qty: 1})
	assert.ErrorIs(t, err, entities.ErrDuplicateKey)

	book, err := repo.GetBookByID(3001)
	require.NoError(t, err)
	assert.Equal(t, "A Tale of Two Cities", book.Title)
	assert.Equal(t, 30, book.Qty)
}

func TestRepository_Updates(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	require.NoError(t, repo.UpdateTitle(3004, "Dune Messiah"))
	require.NoError(t, repo.UpdateAuthor(3004, 6380))
	require.NoError(t, repo.UpdateQuantity(3004, 0))

	book, err := repo.GetBookByID(3004)
	require.NoError(t, err)
	assert.Equal(t, entities.Book{ID: 3004, Title: "Dune Messiah", AuthorID: 6380, Qty: 0}, *book)
}

func TestRepository_Updates_MissingBook(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	assert.ErrorIs(t, repo.UpdateTitle(4000, "x"), entities.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateAuthor(4000, 1290), entities.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateQuantity(4000, 1), entities.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	require.NoError(t, repo.Delete(3004))
	_, err := repo.GetBookByID(3004)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(3004), entities.ErrNotFound)
}

func TestRepository_ListAll_OrderedByID(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	books, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, books, 4)
	for i, id := range []int{3001, 3002, 3003, 3004} {
		assert.Equal(t, id, books[i].ID)
	}
}

func TestRepository_ListInventory_MissingAuthorHasEmptyName(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	rows, err := repo.ListInventory()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, entities.InventoryRow{ID: 3001, Title: "A Tale of Two Cities", AuthorName: "Charles Dickens", Qty: 30}, rows[0])
	assert.Equal(t, entities.InventoryRow{ID: 3004, Title: "Dune", AuthorName: "", Qty: 2}, rows[3])
}

func TestRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	rows, err := repo.SearchByTitle("of")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3001, rows[0].ID)
	assert.Equal(t, 3003, rows[1].ID)

	rows, err = repo.SearchByTitle("dune")
	require.NoError(t, err)
	assert.Empty(t, rows, "title search is case-sensitive")

	rows, err = repo.SearchByAuthor("Dickens")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.SearchByID(3003)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "J.R.R. Tolkien", rows[0].AuthorName)

	rows, err = repo.SearchByID(1234)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepository_ListDetails(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	details, err := repo.ListDetails()
	require.NoError(t, err)
	require.Len(t, details, 4)
	assert.Equal(t, entities.BookDetail{Title: "The Lord of the Rings", AuthorName: "J.R.R. Tolkien", AuthorCountry: "South Africa"}, details[2])
	assert.Equal(t, entities.BookDetail{Title: "Dune"}, details[3])
}

func TestRepository_ListMissingAuthors(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	missing, err := repo.ListMissingAuthors()
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, entities.Book{ID: 3004, Title: "Dune", AuthorID: 7001, Qty: 2}, missing[0])
}
