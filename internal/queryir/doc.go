// Package queryir provides a declarative intermediate representation for
// the aggregate report queries run against the food-donation store.
//
// Every report in the catalog is a value of these types rather than a SQL
// string. The representation is the contract between the catalog and the
// SQL backend (internal/querysql):
//
//	[report catalog] → [Query IR] → [SQLite SQL + bound args]
//
// SEALED INTERFACES:
//
// Query, Expr and Predicate are sealed interfaces using the marker method
// pattern. Only types in this package implement them, so backends can use
// exhaustive type switches:
//
//	switch e := expr.(type) {
//	case Field:
//	case Count:
//	case Sum:
//	case Avg:
//	case Share:
//	case ColumnRef:
//	}
//
// JOINS:
//
// Joins carry an explicit JoinKind. The zero value JoinUnspecified is
// rejected by Validate: whether a join drops unmatched rows (inner) or keeps
// them with NULLs (left) changes result completeness, so every join has to
// say which it is.
//
// PARAMETERS:
//
// Caller-supplied values only enter a query through Param and In
// predicates. Backends MUST bind them as placeholders and never splice them
// into the SQL text. Table and column names come from the static catalog.
package queryir
