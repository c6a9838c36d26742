package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/service"
)

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show listing KPIs",
		Long: `Show total listings, total quantity, unique providers and cities
covered over the current food listings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				sum, err := svc.Summary(ctx)
				if err != nil {
					return err
				}
				return out.Success(summaryResult{sum})
			})
		},
	}
}
