package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/shelftrack/internal/entities"
)

func TestInventory(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		var buf bytes.Buffer
		Inventory(&buf, []entities.InventoryRow{
			{ID: 3001, Title: "A Tale of Two Cities", AuthorName: "Charles Dickens", Qty: 30},
			{ID: 4001, Title: "Stray", Qty: 1},
		})

		expected := "Book inventory\n" +
			" id  : title : author : qty\n" +
			"3001 : A Tale of Two Cities : Charles Dickens : 30\n" +
			"4001 : Stray : (unknown author) : 1\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		Inventory(&buf, nil)
		assert.Equal(t, "No books found.\n", buf.String())
	})
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, entities.BookRecord{
		Book:   entities.Book{ID: 3005, Title: "Alice's Adventures in Wonderland", AuthorID: 5620, Qty: 12},
		Author: &entities.Author{ID: 5620, Name: "Lewis Carroll", Country: "England"},
	})

	out := buf.String()
	assert.Contains(t, out, "3005 : Alice's Adventures in Wonderland")
	assert.Contains(t, out, "5620 : Lewis Carroll : England")
	assert.Contains(t, out, "quantity: 12")
}

func TestSummary_MissingAuthor(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, entities.BookRecord{Book: entities.Book{ID: 4001, Title: "Stray", AuthorID: 7000, Qty: 1}})
	assert.Contains(t, buf.String(), "7000 : (unknown author) : ")
}

func TestDetails(t *testing.T) {
	var buf bytes.Buffer
	Details(&buf, []entities.BookDetail{
		{Title: "The Lord of the Rings", AuthorName: "J.R.R. Tolkien", AuthorCountry: "South Africa"},
	})

	out := buf.String()
	assert.Contains(t, out, "Details\n")
	assert.Contains(t, out, "Title: The Lord of the Rings\n")
	assert.Contains(t, out, "Author's Name: J.R.R. Tolkien\n")
	assert.Contains(t, out, "Author's Country: South Africa\n")
}
