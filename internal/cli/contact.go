package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/service"
)

// ContactAddOptions holds flags for contact add.
type ContactAddOptions struct {
	*RootOptions
	model.Contact
}

// NewContactCommand creates the contact command group.
func NewContactCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage the contact directory",
	}

	cmd.AddCommand(newContactAddCommand(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				contacts, err := svc.ListContacts(ctx)
				if err != nil {
					return err
				}
				return out.Success(contactsResult(contacts))
			})
		},
	})

	return cmd
}

func newContactAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContactAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				id, err := svc.CreateContact(ctx, opts.Contact)
				if err != nil {
					return err
				}
				return out.Success(messageResult{
					text: fmt.Sprintf("Created contact %d", id),
					data: map[string]int64{"contact_id": id},
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "contact name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.Role, "role", "", "role")
	cmd.Flags().StringVar(&opts.Organization, "organization", "", "organization")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&opts.City, "city", "", "city")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")

	return cmd
}
