// Package stockfile reads and writes the plain-text stock list format:
//
//	# comment
//	3001,A Tale of Two Cities,1290,30
//
// One book per line as id,title,authorID,qty. Blank lines and lines starting
// with '#' are ignored. Malformed lines are skipped and reported, never fatal.
package stockfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mrlokans/shelftrack/internal/entities"
)

var (
	ErrFileExists      = errors.New("file already exists")
	ErrNothingToExport = errors.New("no books to export")
)

const fieldCount = 4

// Diagnostic describes a skipped line.
type Diagnostic struct {
	Line   int
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Skipping line %d: %s", d.Line, d.Reason)
}

// LoadResult holds the parsed books in file order and the lines that were skipped.
type LoadResult struct {
	Books   []entities.Book
	Skipped []Diagnostic
}

// Parse reads a stock list from r.
func Parse(r io.Reader) (LoadResult, error) {
	var result LoadResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		if !utf8.ValidString(raw) {
			return LoadResult{}, fmt.Errorf("line %d is not valid UTF-8: %w", lineNum, entities.ErrFileIO)
		}
		if lineNum == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		book, reason := parseLine(line)
		if reason != "" {
			result.Skipped = append(result.Skipped, Diagnostic{Line: lineNum, Reason: reason})
			continue
		}
		result.Books = append(result.Books, book)
	}
	if err := scanner.Err(); err != nil {
		return LoadResult{}, fmt.Errorf("failed to read stock list: %v: %w", err, entities.ErrFileIO)
	}

	return result, nil
}

func parseLine(line string) (entities.Book, string) {
	parts := strings.Split(line, ",")
	if len(parts) != fieldCount {
		return entities.Book{}, "incorrect format"
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entities.Book{}, "invalid data"
	}
	authorID, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return entities.Book{}, "invalid data"
	}
	qty, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return entities.Book{}, "invalid data"
	}

	return entities.Book{
		ID:       id,
		Title:    strings.TrimSpace(parts[1]),
		AuthorID: authorID,
		Qty:      qty,
	}, ""
}

// LoadFile parses the stock list at path. Open and read failures wrap
// entities.ErrFileIO so callers can fall back to the default stock.
func LoadFile(path string) (LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to open %s: %v: %w", path, err, entities.ErrFileIO)
	}
	defer file.Close()

	return Parse(file)
}

// ValidateTitle rejects titles that cannot be stored on one stock list line:
// empty titles and titles containing a comma or a control character.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is empty: %w", entities.ErrInvalidInput)
	}
	for _, r := range title {
		if r == ',' {
			return fmt.Errorf("title %q contains a comma: %w", title, entities.ErrInvalidInput)
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("title %q contains a control character: %w", title, entities.ErrInvalidInput)
		}
	}
	return nil
}

func validateBooks(books []entities.Book) error {
	for _, b := range books {
		if err := ValidateTitle(b.Title); err != nil {
			return fmt.Errorf("book %d: %w", b.ID, err)
		}
	}
	return nil
}

// Write writes the header and one line per book to w. Nothing is written when
// a title would not read back as a single field.
func Write(w io.Writer, books []entities.Book) error {
	if err := validateBooks(books); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Book data exported from shelftrack")
	fmt.Fprintln(bw, "# Format: id,title,authorID,qty")
	for _, b := range books {
		fmt.Fprintf(bw, "%d,%s,%d,%d\n", b.ID, b.Title, b.AuthorID, b.Qty)
	}
	return bw.Flush()
}

// ExportFile writes books to path. An existing file is only replaced when
// overwrite is set.
func ExportFile(path string, books []entities.Book, overwrite bool) error {
	if len(books) == 0 {
		return ErrNothingToExport
	}

	if Exists(path) && !overwrite {
		return fmt.Errorf("%s: %w", path, ErrFileExists)
	}
	if err := validateBooks(books); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v: %w", path, err, entities.ErrFileIO)
	}

	if err := Write(file, books); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %v: %w", path, err, entities.ErrFileIO)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v: %w", path, err, entities.ErrFileIO)
	}
	return nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
