package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/report"
	"github.com/roach88/foodwaste/internal/service"
)

// DirectoryOptions holds flags for the directory subcommands.
type DirectoryOptions struct {
	*RootOptions
	City  string
	Party string
}

// NewDirectoryCommand creates the directory command group.
func NewDirectoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DirectoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Browse providers, receivers and their contacts",
	}

	providers := &cobra.Command{
		Use:   "providers",
		Short: "Listings and quantity per provider",
		Long: `Aggregate current listings per provider, optionally for one city.
Reads food_listings only, so it works before reference data is seeded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				table, err := svc.ProviderDirectory(ctx, opts.City)
				if err != nil {
					return err
				}
				return out.Success(tableResult{table})
			})
		},
	}
	providers.Flags().StringVar(&opts.City, "city", "", "only providers listing food in this city")

	receivers := &cobra.Command{
		Use:   "receivers",
		Short: "Claims per receiver",
		Long: `Count claims per receiver, optionally for one city. Receivers
without claims are listed with 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				table, err := svc.ReceiverDirectory(ctx, opts.City)
				if err != nil {
					return err
				}
				return out.Success(tableResult{table})
			})
		},
	}
	receivers.Flags().StringVar(&opts.City, "city", "", "only receivers in this city")

	contacts := &cobra.Command{
		Use:   "contacts",
		Short: "Name, city and contact of providers or receivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				table, err := svc.ContactDirectory(ctx, opts.Party)
				if err != nil {
					return err
				}
				return out.Success(tableResult{table})
			})
		},
	}
	contacts.Flags().StringVar(&opts.Party, "party", string(report.PartyProviders), "providers or receivers")

	cmd.AddCommand(providers, receivers, contacts)
	return cmd
}
