package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/shelftrack/internal/audit"
	"github.com/mrlokans/shelftrack/internal/database/authors"
	"github.com/mrlokans/shelftrack/internal/database/books"
	"github.com/mrlokans/shelftrack/internal/inventory"
	"github.com/mrlokans/shelftrack/internal/reconcile"
	"github.com/mrlokans/shelftrack/internal/scheduler"
	"github.com/mrlokans/shelftrack/internal/tasks"
)

// =============================================================================
// Storage Gateway
// =============================================================================

var _ reconcile.BookStore = (*books.Repository)(nil)
var _ reconcile.AuthorStore = (*authors.Repository)(nil)

var _ inventory.BookGateway = (*books.Repository)(nil)
var _ inventory.AuthorGateway = (*authors.Repository)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ inventory.EventLogger = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.StockExporter = (*inventory.Service)(nil)

// =============================================================================
// Operator Interaction
// =============================================================================

var _ inventory.Prompter = (*inventory.Terminal)(nil)
