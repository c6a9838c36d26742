package report

import (
	"database/sql"
	"fmt"
)

// Row is one result tuple, positionally aligned with Table.Columns.
// Values are int64, float64, string or nil.
type Row []any

// Table is the result of a report or view.
//
// EmptyDataset marks a report whose percentage denominator had no rows.
// Such a table has no rows and is distinct from a populated empty result.
type Table struct {
	Title        string   `json:"title"`
	Columns      []string `json:"columns"`
	Rows         []Row    `json:"rows"`
	EmptyDataset bool     `json:"empty_dataset,omitempty"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// collectRows reads every row. The driver returns TEXT as string or []byte
// depending on the column; both come back as string.
func collectRows(rows *sql.Rows, width int) ([]Row, error) {
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		values := make([]any, width)
		ptrs := make([]any, width)
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
