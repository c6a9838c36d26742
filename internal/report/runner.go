package report

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/queryir"
	"github.com/roach88/foodwaste/internal/querysql"
)

// Querier is the part of the store the runner needs.
// *store.Store satisfies it.
type Querier interface {
	HasRelation(ctx context.Context, name string) (bool, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Params holds caller-supplied report parameters keyed by name.
type Params map[string]string

// Runner executes catalog reports and views against a Querier.
// Every call re-reads current state; nothing is cached.
type Runner struct {
	q Querier
}

// NewRunner creates a runner over q.
func NewRunner(q Querier) *Runner {
	return &Runner{q: q}
}

// Run executes a catalog report.
//
// Errors:
//   - VALIDATION: invalid id, unknown parameter, missing required parameter
//   - MISSING_RELATION: a table the report reads does not exist
//   - STORE_UNAVAILABLE: the store cannot be read
func (r *Runner) Run(ctx context.Context, id ReportID, params Params) (Table, error) {
	def, ok := Lookup(id)
	if !ok {
		return Table{}, model.NewValidationError("run report", "report", fmt.Sprintf("unknown report id %d", int(id)))
	}

	bound, err := bindParams(def, params)
	if err != nil {
		return Table{}, err
	}
	return r.execute(ctx, id.String(), def.Query, bound)
}

// bindParams checks params against the definition's schema and returns the
// normalized values to bind. Every parameter the query references must be
// declared in the schema.
func bindParams(def Definition, params Params) (map[string]any, error) {
	const op = "run report"

	known := make(map[string]bool, len(def.Params))
	for _, p := range def.Params {
		known[p.Name] = true
	}
	for _, name := range queryir.Params(def.Query) {
		if !known[name] {
			return nil, fmt.Errorf("%s %q: query references undeclared parameter %q", op, def.ID, name)
		}
	}

	// Sorted so the error for several bad names is stable.
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !known[name] {
			return nil, model.NewValidationError(op, name,
				fmt.Sprintf("report %q takes no parameter %q", def.ID, name))
		}
	}

	bound := make(map[string]any, len(def.Params))
	for _, p := range def.Params {
		v := model.NormalizeText(params[p.Name])
		if v == "" {
			if p.Required {
				return nil, model.NewValidationError(op, p.Name,
					fmt.Sprintf("report %q requires parameter %q", def.ID, p.Name))
			}
			continue
		}
		bound[p.Name] = v
	}
	return bound, nil
}

// execute checks the query's relations and denominators, then runs it.
func (r *Runner) execute(ctx context.Context, title string, q queryir.Select, params map[string]any) (Table, error) {
	table := Table{Title: title, Columns: q.ColumnNames(), Rows: []Row{}}

	if err := r.requireRelations(ctx, title, queryir.Relations(q)); err != nil {
		return Table{}, err
	}

	for _, denom := range queryir.Denominators(q) {
		empty, err := r.isEmpty(ctx, denom)
		if err != nil {
			return Table{}, err
		}
		if empty {
			table.EmptyDataset = true
			return table, nil
		}
	}

	query, args, err := querysql.NewSQLCompiler(params).Compile(q)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", title, err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return Table{}, err
	}
	table.Rows, err = collectRows(rows, len(table.Columns))
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", title, err)
	}
	return table, nil
}

func (r *Runner) requireRelations(ctx context.Context, op string, tables []string) error {
	for _, t := range tables {
		ok, err := r.q.HasRelation(ctx, t)
		if err != nil {
			return err
		}
		if !ok {
			return model.NewMissingRelationError(op, t)
		}
	}
	return nil
}

func (r *Runner) isEmpty(ctx context.Context, table string) (bool, error) {
	// table comes from the static catalog, never from callers.
	rows, err := r.q.Query(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+")")
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var exists int64
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, fmt.Errorf("check %s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return exists == 0, nil
}
