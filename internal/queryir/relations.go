package queryir

import "sort"

// Relations returns every table the query reads, sorted and de-duplicated.
// Runners check each one exists before executing the query.
func Relations(q Select) []string {
	seen := map[string]bool{q.From.Table: true}
	for _, j := range q.Joins {
		seen[j.Source.Table] = true
	}
	for _, t := range Denominators(q) {
		seen[t] = true
	}
	delete(seen, "")

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Denominators returns the tables whose row count divides a Share column.
func Denominators(q Select) []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range q.Columns {
		if s, ok := c.Expr.(Share); ok && !seen[s.Total] {
			seen[s.Total] = true
			out = append(out, s.Total)
		}
	}
	return out
}

// Params returns the parameter names referenced by the query's filter, in
// order of first appearance.
func Params(q Select) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(Predicate)
	walk = func(p Predicate) {
		switch pred := p.(type) {
		case Param:
			if !seen[pred.Name] {
				seen[pred.Name] = true
				out = append(out, pred.Name)
			}
		case And:
			for _, sub := range pred.Predicates {
				walk(sub)
			}
		}
	}
	walk(q.Filter)
	for _, j := range q.Joins {
		walk(j.On)
	}
	return out
}
