// Package querysql compiles queryir queries to parameterized SQLite SQL.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/foodwaste/internal/queryir"
)

// SQLCompiler compiles queryir.Select to parameterized SQL for SQLite.
//
// CRITICAL: All caller values are parameterized (never interpolated).
// CRITICAL: Result order is deterministic: explicit ORDER BY terms first,
// then every GROUP BY field ascending as a tie-breaker.
type SQLCompiler struct {
	// Params holds the values for queryir.Param predicates, keyed by name.
	Params map[string]any
}

// NewSQLCompiler creates a new SQLCompiler with the given parameter values.
func NewSQLCompiler(params map[string]any) *SQLCompiler {
	if params == nil {
		params = map[string]any{}
	}
	return &SQLCompiler{Params: params}
}

// Compile converts a query to SQL. Returns (sql, args, error).
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if q == nil {
		return "", nil, fmt.Errorf("cannot compile nil query")
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileSelect(q queryir.Select) (string, []any, error) {
	if result := queryir.Validate(q); !result.OK() {
		return "", nil, fmt.Errorf("invalid query: %s", strings.Join(result.Problems, "; "))
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	cols := make([]string, len(q.Columns))
	for i, col := range q.Columns {
		expr, err := c.compileExpr(col.Expr)
		if err != nil {
			return "", nil, fmt.Errorf("compile column %q: %w", col.As, err)
		}
		cols[i] = fmt.Sprintf("%s AS %s", expr, col.As)
	}
	sb.WriteString(strings.Join(cols, ", "))

	sb.WriteString(" FROM ")
	sb.WriteString(compileSource(q.From))

	for _, j := range q.Joins {
		on, onArgs, err := c.compilePredicate(j.On)
		if err != nil {
			return "", nil, fmt.Errorf("compile join ON %s: %w", j.Source.Ref(), err)
		}
		fmt.Fprintf(&sb, " %s %s ON %s", j.Kind, compileSource(j.Source), on)
		args = append(args, onArgs...)
	}

	if q.Filter != nil {
		where, whereArgs, err := c.compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
		args = append(args, whereArgs...)
	}

	if len(q.GroupBy) > 0 {
		groups := make([]string, len(q.GroupBy))
		for i, f := range q.GroupBy {
			groups[i] = compileField(f)
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(groups, ", "))
	}

	if order, err := c.compileOrder(q); err != nil {
		return "", nil, err
	} else if order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	return sb.String(), args, nil
}

// compileOrder builds the ORDER BY list: explicit terms, then group-by
// fields that were not already ordered on.
func (c *SQLCompiler) compileOrder(q queryir.Select) (string, error) {
	var terms []string
	ordered := map[string]bool{}

	for _, o := range q.OrderBy {
		expr, err := c.compileExpr(o.Expr)
		if err != nil {
			return "", fmt.Errorf("compile order: %w", err)
		}
		ordered[expr] = true
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		if _, isRef := o.Expr.(queryir.ColumnRef); isRef {
			terms = append(terms, expr+" "+dir)
			continue
		}
		terms = append(terms, fmt.Sprintf("%s COLLATE BINARY %s", expr, dir))
	}

	for _, f := range q.GroupBy {
		expr := compileField(f)
		if ordered[expr] {
			continue
		}
		ordered[expr] = true
		terms = append(terms, expr+" COLLATE BINARY ASC")
	}

	return strings.Join(terms, ", "), nil
}

func compileSource(s queryir.Source) string {
	if s.Alias == "" || s.Alias == s.Table {
		return s.Table
	}
	return s.Table + " " + s.Alias
}

func compileField(f queryir.Field) string {
	return f.Source + "." + f.Name
}

func (c *SQLCompiler) compileExpr(e queryir.Expr) (string, error) {
	switch expr := e.(type) {
	case queryir.Field:
		return compileField(expr), nil
	case queryir.ColumnRef:
		return expr.Name, nil
	case queryir.Count:
		if expr.Arg == nil {
			return "COUNT(*)", nil
		}
		if expr.Distinct {
			return fmt.Sprintf("COUNT(DISTINCT %s)", compileField(*expr.Arg)), nil
		}
		return fmt.Sprintf("COUNT(%s)", compileField(*expr.Arg)), nil
	case queryir.Sum:
		if expr.OrZero {
			return fmt.Sprintf("COALESCE(SUM(%s), 0)", compileField(expr.Arg)), nil
		}
		return fmt.Sprintf("SUM(%s)", compileField(expr.Arg)), nil
	case queryir.Avg:
		return fmt.Sprintf("AVG(%s)", compileField(expr.Arg)), nil
	case queryir.Share:
		// NULLIF keeps a zero denominator from dividing; runners check for
		// an empty denominator before they get here.
		return fmt.Sprintf("ROUND(COUNT(*) * 100.0 / NULLIF((SELECT COUNT(*) FROM %s), 0), %d)",
			expr.Total, expr.Precision), nil
	default:
		return "", fmt.Errorf("unsupported expression type: %T", e)
	}
}

// compilePredicate compiles a predicate to a WHERE/ON fragment.
// CRITICAL: Values NEVER interpolated - always use ? placeholders.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	if p == nil {
		return "1 = 1", nil, nil
	}

	switch pred := p.(type) {
	case queryir.Equals:
		return compileField(pred.Field) + " = ?", []any{pred.Value}, nil
	case queryir.FieldEquals:
		return fmt.Sprintf("%s = %s", compileField(pred.Left), compileField(pred.Right)), nil, nil
	case queryir.Param:
		val, ok := c.Params[pred.Name]
		if !ok {
			return "", nil, fmt.Errorf("no value bound for parameter %q", pred.Name)
		}
		return compileField(pred.Field) + " = ?", []any{val}, nil
	case queryir.In:
		if len(pred.Values) == 0 {
			return "1 = 0", nil, nil
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(pred.Values)), ", ")
		args := make([]any, len(pred.Values))
		copy(args, pred.Values)
		return fmt.Sprintf("%s IN (%s)", compileField(pred.Field), marks), args, nil
	case queryir.And:
		return c.compileAnd(pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var args []any
	for _, pred := range and.Predicates {
		sql, predArgs, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		args = append(args, predArgs...)
	}
	return strings.Join(parts, " AND "), args, nil
}
