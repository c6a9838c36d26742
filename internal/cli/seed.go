package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/service"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dataset.yaml>",
		Short: "Import providers, receivers, claims and listings from a YAML file",
		Long: `Import a reference dataset from a YAML file.

The file has optional top-level sections providers, receivers, claims,
listings and contacts. Rows keep their IDs; rows whose ID already exists
are skipped, so importing the same file twice is harmless.

Example:
  foodwaste seed ./dataset.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				res, err := svc.Seed(ctx, args[0])
				if err != nil {
					return err
				}
				return out.Success(messageResult{
					text: fmt.Sprintf("Imported %d providers, %d receivers, %d claims, %d listings, %d contacts from %s",
						res.Providers, res.Receivers, res.Claims, res.Listings, res.Contacts, args[0]),
					data: res,
				})
			})
		},
	}
}
