// Package database provides the storage gateway for the inventory.
//
// # Architecture
//
// The database layer is organized into table-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, table creation, default stock seeding
//	├── books/           # book table: lookups, mutations, inventory listings, search
//	├── authors/         # author table: lookups, name matching, orphan listing
//	└── audit/           # audit_events table
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./ebookstore.db", logger.Silent)
//
//	booksRepo := books.NewRepository(db.DB)
//	authorsRepo := authors.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(3001)
//	author, err := authorsRepo.GetAuthorByID(book.AuthorID)
//
// # Referential Integrity
//
// The book.authorID column has no foreign key constraint. Keeping book and
// author rows consistent is the job of internal/reconcile, which is built on
// the book and author repositories.
//
// # Errors
//
// Repositories translate gorm errors into the sentinels in internal/entities:
// a lookup with no row returns entities.ErrNotFound and inserting an existing
// id returns entities.ErrDuplicateKey.
package database
