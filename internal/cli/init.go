package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/service"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the listing and contact tables",
		Long: `Create the food_listings and contacts tables if they do not exist.

Existing tables are never altered. Safe to run repeatedly.

Example:
  foodwaste --db ./food_waste.db init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				return out.Success(messageResult{
					text: fmt.Sprintf("Schema ready: %s", opts.Database),
					data: map[string]string{"database": opts.Database},
				})
			})
		},
	}
}
