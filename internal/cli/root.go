package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xelth-com/gluereport/internal/buildinfo"
	"github.com/xelth-com/gluereport/internal/config"
	"github.com/xelth-com/gluereport/internal/database"
	"github.com/xelth-com/gluereport/internal/report"
)

// Options carries the process boundary so tests can replace it
type Options struct {
	Stdout     io.Writer
	Stderr     io.Writer
	LoadConfig func() (*config.Config, error)
	Connect    func(ctx context.Context, cfg config.DatabaseConfig) (*database.DB, error)
}

// DefaultOptions wires the real environment and database
func DefaultOptions() Options {
	return Options{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LoadConfig: config.Load,
		Connect:    database.Connect,
	}
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	return Run(os.Args[1:], DefaultOptions())
}

// Run executes the root command with args and returns the exit code
func Run(args []string, opts Options) int {
	rootCmd := newRootCmd(opts)
	// cobra reads os.Args when given nil
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, config.ErrDatabaseURLMissing) {
			fmt.Fprintln(opts.Stderr, "DATABASE_URL is not set. Use .env.local for local dev.")
		} else {
			fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(opts Options) *cobra.Command {
	var (
		jsonOut bool
		timeout time.Duration
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:           "glue-report",
		Short:         "Print record approval counts",
		Long:          "Connects to DATABASE_URL and prints total, pending, approved and rejected record counts.",
		Version:       buildinfo.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Database.Verbose = verbose
			}

			ctx := cmd.Context()
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
			}

			row, err := fetch(ctx, opts, cfg.Database)
			if err != nil {
				return err
			}

			if jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), row)
			}
			return report.WriteText(cmd.OutOrStdout(), row)
		},
	}

	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the counts as JSON")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Bound connect and query time (0 disables)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log connection progress and SQL to stderr")

	return rootCmd
}

// fetch keeps the connection scoped to the query
func fetch(ctx context.Context, opts Options, cfg config.DatabaseConfig) (report.Row, error) {
	db, err := opts.Connect(ctx, cfg)
	if err != nil {
		return report.Row{}, err
	}
	defer db.Close()

	return report.Fetch(ctx, db.DB)
}
