package queryir

// Query represents an abstract query in the IR.
//
// This is a sealed interface - only types in this package implement it.
type Query interface {
	queryNode()
}

// Expr is a value-producing term in a SELECT list or ORDER BY.
//
// This is a sealed interface - only types in this package implement it.
type Expr interface {
	exprNode()
}

// Predicate is a filter condition used in WHERE and JOIN ... ON.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// Source names a table and the alias fields use to reference it.
type Source struct {
	Table string
	Alias string
}

// Ref returns the name fields qualify themselves with.
func (s Source) Ref() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Table
}

// JoinKind selects how unmatched rows are treated.
type JoinKind int

const (
	// JoinUnspecified is invalid. Validate reports it.
	JoinUnspecified JoinKind = iota
	// JoinInner silently drops rows without a match.
	JoinInner
	// JoinLeft keeps every row of the left side, with NULLs for the right.
	JoinLeft
)

// String returns the SQL keyword for the join kind.
func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "INNER JOIN"
	case JoinLeft:
		return "LEFT JOIN"
	default:
		return "JOIN(unspecified)"
	}
}

// Join attaches another source to the query.
type Join struct {
	Kind   JoinKind
	Source Source
	On     Predicate
}

// Column is one entry of the SELECT list. As is the stable result column name.
type Column struct {
	Expr Expr
	As   string
}

// Order is one ORDER BY term.
type Order struct {
	Expr Expr
	Desc bool
}

// Select is the single query shape used by the catalog.
//
// Semantics:
//
//	SELECT [DISTINCT] <columns> FROM <from> <joins...>
//	WHERE <filter> GROUP BY <group by> ORDER BY <order by> LIMIT <limit>
//
// Limit 0 means no limit.
type Select struct {
	Distinct bool
	From     Source
	Joins    []Join
	Columns  []Column
	Filter   Predicate
	GroupBy  []Field
	OrderBy  []Order
	Limit    int
}

func (Select) queryNode() {}

// ColumnNames returns the result column names in SELECT order.
func (s Select) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.As
	}
	return names
}

// Field references a column of a source: <Source>.<Name>.
type Field struct {
	Source string
	Name   string
}

// F is shorthand for Field{Source: source, Name: name}.
func F(source, name string) Field {
	return Field{Source: source, Name: name}
}

func (Field) exprNode() {}

// ColumnRef references a result column by its As name. Used in ORDER BY.
type ColumnRef struct {
	Name string
}

func (ColumnRef) exprNode() {}

// Count counts rows. A nil Arg means COUNT(*); otherwise NULLs in Arg are
// not counted, which is what makes left-joined zero-match rows report 0.
type Count struct {
	Arg      *Field
	Distinct bool
}

func (Count) exprNode() {}

// Sum adds up Arg. With OrZero an empty input yields 0 instead of NULL.
type Sum struct {
	Arg    Field
	OrZero bool
}

func (Sum) exprNode() {}

// Avg averages Arg.
type Avg struct {
	Arg Field
}

func (Avg) exprNode() {}

// Share expresses a group's row count as a percentage of every row in
// Total, rounded to Precision decimal places:
//
//	ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM <total>), <precision>)
//
// Runners must check Total for zero rows before executing the query.
type Share struct {
	Total     string
	Precision int
}

func (Share) exprNode() {}

// Equals compares a field with a literal from the catalog itself (never
// caller input). Value must be a string, int64 or bool.
type Equals struct {
	Field Field
	Value any
}

func (Equals) predicateNode() {}

// FieldEquals compares two fields. Used for join conditions.
type FieldEquals struct {
	Left  Field
	Right Field
}

func (FieldEquals) predicateNode() {}

// Param compares a field with a named caller-supplied parameter, resolved
// at compile time from the compiler's parameter map.
type Param struct {
	Field Field
	Name  string
}

func (Param) predicateNode() {}

// In matches a field against any of Values. An empty Values matches nothing.
type In struct {
	Field  Field
	Values []any
}

func (In) predicateNode() {}

// And is a conjunction. Empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}
