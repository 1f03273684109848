package entities

// Valid range for book and author identifiers: four-digit positive integers.
const (
	MinID = 1000
	MaxID = 9999
)

// ValidID reports whether id is inside the four-digit identifier range.
func ValidID(id int) bool {
	return id >= MinID && id <= MaxID
}

type Book struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Title    string `gorm:"column:title" json:"title"`
	AuthorID int    `gorm:"column:authorID;index" json:"author_id"`
	Qty      int    `gorm:"column:qty" json:"qty"`
}

func (Book) TableName() string {
	return "book"
}

type Author struct {
	ID      int    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name    string `gorm:"column:name" json:"name"`
	Country string `gorm:"column:country" json:"country"`
}

func (Author) TableName() string {
	return "author"
}

// InventoryRow is a book joined with its author's name, as shown in listings.
// AuthorName is empty when the author row is missing.
type InventoryRow struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	Qty        int    `json:"qty"`
}

// BookDetail is the title/author/country view used by the details screen.
type BookDetail struct {
	Title         string `json:"title"`
	AuthorName    string `json:"author_name"`
	AuthorCountry string `json:"author_country"`
}

// BookRecord is a book together with its author, as selected for update or delete.
// Author is nil when the book references an author id with no author row.
type BookRecord struct {
	Book   Book
	Author *Author
}

// AuthorName returns the author's name, or an empty string if the author row is missing.
func (r BookRecord) AuthorName() string {
	if r.Author == nil {
		return ""
	}
	return r.Author.Name
}
