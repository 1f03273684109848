// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Storage Gateway
//
//   - BookStore / AuthorStore: what the reconciler needs from the tables (internal/reconcile/reconciler.go)
//   - BookGateway / AuthorGateway: what the book workflows read directly (internal/inventory/service.go)
//
// Both pairs are satisfied by internal/database/books and internal/database/authors.
//
// ## Audit Trail
//
//   - EventLogger: workflow event recording (internal/inventory/service.go)
//   - AuditEventCleaner: retention cleanup (internal/tasks/cleanup_audit.go)
//
// ## Background Work
//
//   - StockExporter: writes the inventory to a stock file (internal/scheduler/backup.go)
//
// ## Operator Interaction
//
//   - Prompter: writes prompts and reads answers (internal/inventory/prompt.go)
//
// # Adding a New Menu Action
//
//  1. Add a workflow method to inventory.Service that takes a Prompter:
//
//     func (s *Service) Restock(p Prompter) error {
//         record, err := s.SelectBook(p)
//         ...
//     }
//
//  2. Route a menu key to it in internal/cli/menu.go.
//
// Workflows that touch both tables go through the reconciler so every book
// keeps a matching author row.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks covering this module.
package interfaces
