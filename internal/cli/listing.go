package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/service"
)

// ListingAddOptions holds flags for listing add.
type ListingAddOptions struct {
	*RootOptions
	model.NewListing
}

// ListingListOptions holds flags for listing list.
type ListingListOptions struct {
	*RootOptions
	model.ListingFilter
}

// ListingUpdateOptions holds flags for listing update.
type ListingUpdateOptions struct {
	*RootOptions
	Quantity int64
	City     string
}

// NewListingCommand creates the listing command group.
func NewListingCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Create, list, update and delete food listings",
	}

	cmd.AddCommand(newListingAddCommand(opts))
	cmd.AddCommand(newListingListCommand(opts))
	cmd.AddCommand(newListingUpdateCommand(opts))
	cmd.AddCommand(newListingDeleteCommand(opts))

	return cmd
}

func newListingAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListingAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food listing",
		Long: `Add a food listing. Quantity and provider ID must be positive.

Example:
  foodwaste listing add --name Rice --quantity 50 --expiry 2025-06-01 \
    --provider-id 1 --provider-type Restaurant --city Austin \
    --food-type Grain --meal-type Dinner`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				id, err := svc.CreateListing(ctx, opts.NewListing)
				if err != nil {
					return err
				}
				return out.Success(messageResult{
					text: fmt.Sprintf("Created listing %d", id),
					data: map[string]int64{"food_id": id},
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "food name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().Int64Var(&opts.Quantity, "quantity", 0, "quantity, at least 1 (required)")
	_ = cmd.MarkFlagRequired("quantity")
	cmd.Flags().StringVar(&opts.ExpiryDate, "expiry", time.Now().Format(model.DateLayout), "expiry date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&opts.ProviderID, "provider-id", 0, "provider ID, at least 1 (required)")
	_ = cmd.MarkFlagRequired("provider-id")
	cmd.Flags().StringVar(&opts.ProviderType, "provider-type", "", "provider type")
	cmd.Flags().StringVar(&opts.City, "city", "", "city the food is available in")
	cmd.Flags().StringVar(&opts.FoodType, "food-type", "", "food type")
	cmd.Flags().StringVar(&opts.MealType, "meal-type", "", "meal type")

	return cmd
}

func newListingListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListingListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List food listings",
		Long: `List food listings ordered by ID.

Each filter flag may be repeated; a listing matches when its field equals
any of the given values. Filters on different fields are combined.

Example:
  foodwaste listing list --city Austin --city Dallas --food-type Vegan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				listings, err := svc.FilterListings(ctx, opts.ListingFilter)
				if err != nil {
					return err
				}
				return out.Success(listingsResult(listings))
			})
		},
	}

	cmd.Flags().StringArrayVar(&opts.Cities, "city", nil, "filter by city (repeatable)")
	cmd.Flags().StringArrayVar(&opts.FoodTypes, "food-type", nil, "filter by food type (repeatable)")
	cmd.Flags().StringArrayVar(&opts.ProviderTypes, "provider-type", nil, "filter by provider type (repeatable)")

	return cmd
}

func newListingUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListingUpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a listing's quantity and optionally its city",
		Long: `Update a listing's quantity. With --city the location changes too;
without it the location is left as is.

Example:
  foodwaste listing update 7 --quantity 20 --city Dallas`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				id, err := parseID("update listing", args[0])
				if err != nil {
					return err
				}
				if err := svc.UpdateListing(ctx, id, opts.Quantity, opts.City); err != nil {
					return err
				}
				return out.Success(messageResult{
					text: fmt.Sprintf("Updated listing %d", id),
					data: map[string]int64{"food_id": id},
				})
			})
		},
	}

	cmd.Flags().Int64Var(&opts.Quantity, "quantity", 0, "new quantity, 0 or more (required)")
	_ = cmd.MarkFlagRequired("quantity")
	cmd.Flags().StringVar(&opts.City, "city", "", "new city (optional)")

	return cmd
}

func newListingDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a listing",
		Long: `Delete a listing. Claims that reference it are kept.

Example:
  foodwaste listing delete 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				id, err := parseID("delete listing", args[0])
				if err != nil {
					return err
				}
				if err := svc.DeleteListing(ctx, id); err != nil {
					return err
				}
				return out.Success(messageResult{
					text: fmt.Sprintf("Deleted listing %d", id),
					data: map[string]int64{"food_id": id},
				})
			})
		},
	}
}

// parseID parses a positive row ID argument.
func parseID(op, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, model.NewValidationError(op, "id", fmt.Sprintf("%q is not a positive integer id", arg))
	}
	return id, nil
}
