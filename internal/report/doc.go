// Package report holds the fixed catalog of aggregate reports and the
// runner that executes them against a store.
//
// Each report is identified by a ReportID. Its Definition pairs a parameter
// schema with a queryir.Select whose column names are the result schema.
// Definitions are looked up with an exhaustive switch; there is no
// string-keyed registry.
//
// Before a query runs, the runner checks that every table it reads exists
// (MISSING_RELATION otherwise) and that no percentage denominator is empty
// (the Table is then flagged EmptyDataset). Caller parameters are bound as
// SQL arguments, never concatenated.
//
// The package also provides the listing views used by the dashboard and the
// directories: quantity breakdowns, provider and receiver directories, the
// contact directory and distinct city lists.
package report
