package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/report"
	"github.com/roach88/foodwaste/internal/service"
)

// ReportRunOptions holds flags for report run.
type ReportRunOptions struct {
	*RootOptions
	City string
}

// NewReportCommand creates the report command group.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "List and run catalog reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the report catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)
			return out.Success(reportList(service.ReportCatalog()))
		},
	})
	cmd.AddCommand(newReportRunCommand(opts))

	return cmd
}

func newReportRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportRunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <report>",
		Short: "Run a report",
		Long: `Run a report from the catalog. The report may be given by its ID
(see "foodwaste report list"), its name, or its number.

Reports that read providers, receivers or claims fail with E204 until
that data has been seeded.

Examples:
  foodwaste report run providers-per-city
  foodwaste report run 4 --city Austin
  foodwaste report run "Claim status distribution" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				params := report.Params{}
				if cmd.Flags().Changed("city") {
					params[report.ParamCity] = opts.City
				}
				table, err := svc.RunReport(ctx, args[0], params)
				if err != nil {
					return err
				}
				return out.Success(tableResult{table})
			})
		},
	}

	cmd.Flags().StringVar(&opts.City, "city", "", "city parameter, for reports that take one")

	return cmd
}

// reportList renders the catalog.
type reportList []service.ReportInfo

func (l reportList) WriteText(w io.Writer) error {
	t := textTable{
		Title:   "Reports",
		Columns: []string{"#", "ID", "Name", "Params"},
	}
	for i, r := range l {
		params := make([]string, len(r.Params))
		for j, p := range r.Params {
			params[j] = p.Name
			if p.Required {
				params[j] += " (required)"
			}
		}
		ps := strings.Join(params, ", ")
		if ps == "" {
			ps = "-"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), r.ID, r.Name, ps})
	}
	return t.WriteText(w)
}
