package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/foodwaste/internal/service"
)

// DefaultDatabase is the store file used when --db is not given.
const DefaultDatabase = "food_waste.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string

	// Traces produces the trace ID of each response. Nil uses UUIDv7.
	Traces TraceGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the foodwaste CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts.
// Registering the flags resets Verbose, Format and Database to their flag
// defaults; only Traces keeps the caller's value. Set flag-backed fields
// after this returns, or pass them as arguments.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foodwaste",
		Short: "Food donation inventory and reports",
		Long: `Manage food-donation listings and run the fixed catalog of reports
over providers, receivers, listings and claims stored in a SQLite file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Database == "" {
				return NewExitError(ExitCommandError, "--db must not be empty")
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", DefaultDatabase, "path to SQLite database")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewListingCommand(opts))
	cmd.AddCommand(NewContactCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewDashboardCommand(opts))
	cmd.AddCommand(NewAnalyticsCommand(opts))
	cmd.AddCommand(NewDirectoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatter returns the output formatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	traces := o.Traces
	if traces == nil {
		traces = UUIDv7Generator{}
	}
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		TraceID:   traces.Generate(),
	}
}

// logger logs to w: warnings by default, everything with --verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// withService opens the store, ensures the owned tables exist and runs fn.
// Any error from opening or from fn is written through the formatter.
func (o *RootOptions) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *service.Service, out *OutputFormatter) error) error {
	out := o.formatter(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out.VerboseLog("opening database %s", o.Database)
	svc, err := service.Open(o.Database, o.logger(out.GetErrWriter()))
	if err != nil {
		return out.Fail(err)
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			out.VerboseLog("error closing database: %v", closeErr)
		}
	}()

	if err := svc.EnsureSchema(ctx); err != nil {
		return out.Fail(err)
	}
	if err := fn(ctx, svc, out); err != nil {
		return out.Fail(err)
	}
	return nil
}
