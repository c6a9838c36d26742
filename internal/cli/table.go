package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/report"
)

// textTable is the text form of a tabular result.
type textTable struct {
	Title   string
	Columns []string
	Rows    [][]string
	Empty   string // printed instead of the header when there are no rows
}

// WriteText writes the title, then the column-aligned header and rows.
func (t textTable) WriteText(w io.Writer) error {
	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}
	if len(t.Rows) == 0 && t.Empty != "" {
		_, err := fmt.Fprintln(w, t.Empty)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// tableResult renders a report.Table as text. Its JSON form is the
// embedded table's.
type tableResult struct {
	report.Table
}

func (r tableResult) WriteText(w io.Writer) error {
	t := textTable{
		Title:   r.Title,
		Columns: r.Columns,
		Rows:    make([][]string, len(r.Rows)),
		Empty:   "(no rows)",
	}
	if r.EmptyDataset {
		t.Empty = "No data available: the dataset is empty."
	}
	for i, row := range r.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatValue(v)
		}
		t.Rows[i] = cells
	}
	return t.WriteText(w)
}

// formatValue renders a cell. Floats use the shortest exact form.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// listingsResult renders listings as a table.
type listingsResult []model.FoodListing

func (l listingsResult) WriteText(w io.Writer) error {
	t := textTable{
		Title:   "Food listings",
		Columns: []string{"Food_ID", "Food_Name", "Quantity", "Expiry_Date", "Provider_ID", "Provider_Type", "Location", "Food_Type", "Meal_Type"},
		Empty:   "No food listings available.",
	}
	for _, x := range l {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(x.ID, 10),
			x.Name,
			strconv.FormatInt(x.Quantity, 10),
			x.ExpiryDate,
			strconv.FormatInt(x.ProviderID, 10),
			x.ProviderType,
			x.Location,
			x.FoodType,
			x.MealType,
		})
	}
	return t.WriteText(w)
}

// contactsResult renders contacts as a table.
type contactsResult []model.Contact

func (c contactsResult) WriteText(w io.Writer) error {
	t := textTable{
		Title:   "Contacts",
		Columns: []string{"Contact_ID", "Name", "Role", "Organization", "Email", "Phone", "City"},
		Empty:   "No contacts.",
	}
	for _, x := range c {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(x.ID, 10), x.Name, x.Role, x.Organization, x.Email, x.Phone, x.City,
		})
	}
	return t.WriteText(w)
}
