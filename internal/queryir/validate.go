package queryir

import "fmt"

// ValidationResult lists the problems found in a query. A query with no
// problems is safe to hand to a backend.
type ValidationResult struct {
	Problems []string
}

// OK reports whether the query passed validation.
func (r ValidationResult) OK() bool {
	return len(r.Problems) == 0
}

// Validate checks structural rules the backends rely on:
//  1. A FROM source is present and aliases are unique
//  2. Every join has an explicit kind and an ON predicate
//  3. Every column has a unique, non-empty result name
//  4. Fields only reference declared sources
//  5. ORDER BY column references name a declared result column
//  6. Equals literals are string, int64 or bool
//
// Validate is a pure function with no side effects.
func Validate(q Select) ValidationResult {
	v := &validator{sources: map[string]bool{}}
	v.validate(q)
	return ValidationResult{Problems: v.problems}
}

type validator struct {
	problems []string
	sources  map[string]bool
	columns  map[string]bool
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) declare(s Source) {
	if s.Table == "" {
		v.addProblem("source with empty table name")
		return
	}
	if v.sources[s.Ref()] {
		v.addProblem("duplicate source reference %q", s.Ref())
	}
	v.sources[s.Ref()] = true
}

func (v *validator) validate(q Select) {
	v.declare(q.From)
	for _, j := range q.Joins {
		v.declare(j.Source)
	}

	for _, j := range q.Joins {
		if j.Kind != JoinInner && j.Kind != JoinLeft {
			v.addProblem("join on %q has no explicit kind (inner or left)", j.Source.Ref())
		}
		if j.On == nil {
			v.addProblem("join on %q has no ON predicate", j.Source.Ref())
		} else {
			v.validatePredicate(j.On)
		}
	}

	if len(q.Columns) == 0 {
		v.addProblem("query selects no columns")
	}
	v.columns = map[string]bool{}
	for i, c := range q.Columns {
		if c.As == "" {
			v.addProblem("column %d has no result name", i)
		} else if v.columns[c.As] {
			v.addProblem("duplicate result column %q", c.As)
		}
		v.columns[c.As] = true
		v.validateExpr(c.Expr, false)
	}

	if q.Filter != nil {
		v.validatePredicate(q.Filter)
	}
	for _, f := range q.GroupBy {
		v.validateField(f)
	}
	for _, o := range q.OrderBy {
		v.validateExpr(o.Expr, true)
	}
	if q.Limit < 0 {
		v.addProblem("negative limit %d", q.Limit)
	}
}

func (v *validator) validateField(f Field) {
	if f.Name == "" {
		v.addProblem("field with empty name")
	}
	if !v.sources[f.Source] {
		v.addProblem("field %s.%s references undeclared source", f.Source, f.Name)
	}
}

func (v *validator) validateExpr(e Expr, inOrder bool) {
	switch expr := e.(type) {
	case Field:
		v.validateField(expr)
	case ColumnRef:
		if !inOrder {
			v.addProblem("column reference %q outside ORDER BY", expr.Name)
		} else if !v.columns[expr.Name] {
			v.addProblem("ORDER BY references unknown column %q", expr.Name)
		}
	case Count:
		if expr.Arg != nil {
			v.validateField(*expr.Arg)
		} else if expr.Distinct {
			v.addProblem("COUNT(DISTINCT *) is not valid")
		}
	case Sum:
		v.validateField(expr.Arg)
	case Avg:
		v.validateField(expr.Arg)
	case Share:
		if expr.Total == "" {
			v.addProblem("share without a denominator table")
		}
		if expr.Precision < 0 {
			v.addProblem("share with negative precision")
		}
	case nil:
		v.addProblem("nil expression")
	default:
		v.addProblem("unknown expression type %T", e)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateField(pred.Field)
		switch pred.Value.(type) {
		case string, int64, bool:
		default:
			v.addProblem("literal for %s.%s has unsupported type %T", pred.Field.Source, pred.Field.Name, pred.Value)
		}
	case FieldEquals:
		v.validateField(pred.Left)
		v.validateField(pred.Right)
	case Param:
		v.validateField(pred.Field)
		if pred.Name == "" {
			v.addProblem("parameter on %s.%s has no name", pred.Field.Source, pred.Field.Name)
		}
	case In:
		v.validateField(pred.Field)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case nil:
		v.addProblem("nil predicate")
	default:
		v.addProblem("unknown predicate type %T", p)
	}
}
