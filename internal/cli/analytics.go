package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/report"
	"github.com/roach88/foodwaste/internal/service"
)

// NewAnalyticsCommand creates the analytics command.
func NewAnalyticsCommand(opts *RootOptions) *cobra.Command {
	var dims []string
	for _, d := range report.Dimensions() {
		dims = append(dims, d.String())
	}

	return &cobra.Command{
		Use:   "analytics <food-type|expiry-date|provider-type>",
		Short: "Sum listing quantity by food type, expiry date or provider type",
		Example: `  foodwaste analytics food-type
  foodwaste analytics expiry-date --format json`,
		ValidArgs: dims,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				table, err := svc.Breakdown(ctx, args[0])
				if err != nil {
					return err
				}
				return out.Success(tableResult{table})
			})
		},
	}
}
