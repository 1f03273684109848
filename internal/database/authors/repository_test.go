package authors

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
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "authors.db")), &gorm.Config{
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
		{ID: 3005, Title: "Alice's Adventures in Wonderland", AuthorID: 5620, Qty: 12},
	}
	authors := []entities.Author{
		{ID: 1290, Name: "Charles Dickens", Country: "England"},
		{ID: 5620, Name: "Lewis Carroll", Country: "England"},
		{ID: 8937, Name: "Ursula K. Le Guin", Country: "California"},
	}
	require.NoError(t, db.Create(&books).Error)
	require.NoError(t, db.Create(&authors).Error)
}

func TestRepository_GetAuthorByID(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	author, err := repo.GetAuthorByID(5620)
	require.NoError(t, err)
	assert.Equal(t, "Lewis Carroll", author.Name)

	_, err = repo.GetAuthorByID(1000)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ExistsAndCount(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	ok, err := repo.Exists(8937)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(4444)
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepository_FindByName(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	book, author, err := repo.FindByName("Charles Dickens")
	require.NoError(t, err)
	assert.Equal(t, 3001, book.ID)
	assert.Equal(t, 1290, book.AuthorID)
	assert.Equal(t, entities.Author{ID: 1290, Name: "Charles Dickens", Country: "England"}, *author)
}

func TestRepository_FindByName_ExactMatchOnly(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	_, _, err := repo.FindByName("charles dickens")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, _, err = repo.FindByName("Dickens")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_FindByName_IgnoresAuthorsWithoutBooks(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	_, _, err := repo.FindByName("Ursula K. Le Guin")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_Insert(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	require.NoError(t, repo.Insert(&entities.Author{ID: 2001, Name: "Becky Chambers", Country: "California"}))

	err := repo.Insert(&entities.Author{ID: 1290, Name: "Someone Else", Country: "Nowhere"})
	assert.ErrorIs(t, err, entities.ErrDuplicateKey)

	author, err := repo.GetAuthorByID(1290)
	require.NoError(t, err)
	assert.Equal(t, "Charles Dickens", author.Name)
}

func TestRepository_Updates(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	require.NoError(t, repo.UpdateName(5620, "C. L. Dodgson"))
	require.NoError(t, repo.UpdateCountry(5620, "Wales"))

	author, err := repo.GetAuthorByID(5620)
	require.NoError(t, err)
	assert.Equal(t, entities.Author{ID: 5620, Name: "C. L. Dodgson", Country: "Wales"}, *author)

	assert.ErrorIs(t, repo.UpdateName(4444, "x"), entities.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateCountry(4444, "x"), entities.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	require.NoError(t, repo.Delete(8937))
	assert.ErrorIs(t, repo.Delete(8937), entities.ErrNotFound)
}

func TestRepository_ListOrphans(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewRepository(db)

	orphans, err := repo.ListOrphans()
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, 8937, orphans[0].ID)
	assert.Equal(t, "Ursula K. Le Guin", orphans[0].Name)
}
