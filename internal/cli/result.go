package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/roach88/foodwaste/internal/model"
)

// messageResult prints a one-line message as text and data as JSON.
type messageResult struct {
	text string
	data any
}

func (m messageResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, m.text)
	return err
}

func (m messageResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.data)
}

// summaryResult renders the dashboard KPIs as aligned label/value lines.
type summaryResult struct {
	model.Summary
}

func (s summaryResult) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Total listings\t%d\n", s.TotalListings)
	fmt.Fprintf(tw, "Total quantity\t%d\n", s.TotalQuantity)
	fmt.Fprintf(tw, "Unique providers\t%d\n", s.UniqueProviders)
	fmt.Fprintf(tw, "Cities covered\t%d\n", s.CitiesCovered)
	return tw.Flush()
}
