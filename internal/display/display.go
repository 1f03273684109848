// Package display renders inventory listings and book details as plain text.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/shelftrack/internal/entities"
)

// UnknownAuthor is shown for books whose author row is missing.
const UnknownAuthor = "(unknown author)"

const detailRule = "-----------------------------------------------------"

// Inventory prints the book inventory table, or "No books found." when rows is empty.
func Inventory(w io.Writer, rows []entities.InventoryRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}

	fmt.Fprintln(w, "Book inventory")
	fmt.Fprintln(w, " id  : title : author : qty")
	for _, row := range rows {
		fmt.Fprintf(w, "%d : %s : %s : %d\n", row.ID, row.Title, authorName(row.AuthorName), row.Qty)
	}
}

// Summary prints the selected-book summary shown before an update or delete.
func Summary(w io.Writer, record entities.BookRecord) {
	name, country := UnknownAuthor, ""
	if record.Author != nil {
		name, country = record.Author.Name, record.Author.Country
	}

	var b strings.Builder
	b.WriteString("Selected book summary\n\n")
	b.WriteString("id : title\n")
	fmt.Fprintf(&b, "%d : %s\n\n", record.Book.ID, record.Book.Title)
	b.WriteString("authorID : author name : country\n")
	fmt.Fprintf(&b, "%d : %s : %s\n\n", record.Book.AuthorID, name, country)
	fmt.Fprintf(&b, "quantity: %d\n", record.Book.Qty)
	fmt.Fprint(w, b.String())
}

// Details prints the title, author name and country of every book.
func Details(w io.Writer, details []entities.BookDetail) {
	fmt.Fprintln(w, "Details")
	fmt.Fprintln(w, detailRule)
	for _, d := range details {
		fmt.Fprintf(w, "\nTitle: %s\n", d.Title)
		fmt.Fprintf(w, "Author's Name: %s\n", authorName(d.AuthorName))
		fmt.Fprintf(w, "Author's Country: %s\n", d.AuthorCountry)
		fmt.Fprintln(w, detailRule)
	}
}

func authorName(name string) string {
	if name == "" {
		return UnknownAuthor
	}
	return name
}
