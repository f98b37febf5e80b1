// Package pagination provides utilities for CLI pagination, sorting, and result formatting.
//
// This package contains shared pagination logic used across CLI commands, including:
//   - PaginationParams: CLI flag parsing and validation
//   - PaginationMeta: Response metadata for paginated results
//   - ProjectSorter: Field-validated sorting for project listings
//
// The pagination package ensures consistent pagination behavior across all cot commands
// that return lists of items (projects, documents, tasks, etc.).
package pagination
