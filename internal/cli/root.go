// Package cli implements the crmstat command, which runs the CRM pipeline
// over local export files and prints the result as JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/crmdash/internal/core"
	"github.com/JonMunkholm/crmdash/internal/logging"
)

// Version is set by main.
var Version = "dev"

// defaultMaxFileSize matches the server's default upload limit.
const defaultMaxFileSize = 20 << 20

type rootOptions struct {
	logLevel  string
	pretty    bool
	statsOnly bool
	top       int
}

// NewRootCmd builds the crmstat command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "crmstat",
		Short: "Analyze CRM contact and deal exports",
		Long: `crmstat runs the dashboard pipeline over CRM CSV exports.

Contacts are normalized, accounts are synthesized from company names, and
dashboard statistics are computed. The result is printed as JSON on stdout;
skipped rows are logged on stderr.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	root.PersistentFlags().BoolVar(&opts.statsOnly, "stats-only", false, "print only the aggregate statistics")
	root.PersistentFlags().IntVar(&opts.top, "top", core.DefaultTopTitles, "length of the job title ranking; negative for all")

	root.AddCommand(newAnalyzeCmd(opts), newDemoCmd(opts), newColumnsCmd(opts))
	return root
}

// Execute runs the root command with os.Args.
func Execute(version string) error {
	Version = version
	root := NewRootCmd()
	root.Version = version
	return root.Execute()
}

// FormatError renders a command error for the terminal. Errors with a known
// user message get the same code and action the HTTP API returns.
func FormatError(err error) string {
	if !core.IsUserFacing(err) {
		return err.Error()
	}
	return fmt.Sprintf("%v\n%s", err, core.FormatUserError(err))
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		contactsPath string
		dealsPath    string
		maxSize      int64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a contacts export and an optional deals export",
		Example: `  crmstat analyze --contacts contacts.csv
  crmstat analyze --contacts contacts.csv --deals deals.csv --top 5 --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.top == 0 {
				return fmt.Errorf("--top must be non-zero")
			}

			in, err := readInput(cmd.Context(), contactsPath, dealsPath, maxSize)
			if err != nil {
				return err
			}

			src := core.CSVSource{
				Contacts: in.Contacts,
				Deals:    in.Deals,
				Options:  core.Options{TopTitles: opts.top},
			}
			return run(cmd, opts, src)
		},
	}

	cmd.Flags().StringVarP(&contactsPath, "contacts", "c", "", "contacts CSV export (required)")
	cmd.Flags().StringVarP(&dealsPath, "deals", "d", "", "deals CSV export")
	cmd.Flags().Int64Var(&maxSize, "max-size", defaultMaxFileSize, "maximum size of each file in bytes")
	_ = cmd.MarkFlagRequired("contacts")

	return cmd
}

func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Analyze the built-in demo export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.top == 0 {
				return fmt.Errorf("--top must be non-zero")
			}
			return run(cmd, opts, core.DemoSource{Options: core.Options{TopTitles: opts.top}})
		},
	}
}

// columnsReport is printed by the columns command.
type columnsReport struct {
	Contacts *core.HeaderReport `json:"contacts"`
	Deals    *core.HeaderReport `json:"deals,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
}

func newColumnsCmd(opts *rootOptions) *cobra.Command {
	var (
		contactsPath string
		dealsPath    string
		maxSize      int64
	)

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show which export columns are recognized",
		Long: `columns reads the header row of each export and reports which columns
feed which record fields, which fields have no column, and which columns are
ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd.Context(), contactsPath, dealsPath, maxSize)
			if err != nil {
				return err
			}

			contacts, err := core.InspectExport(in.Contacts, core.ContactFieldSpecs)
			if err != nil {
				return fmt.Errorf("%s: %w", contactsPath, err)
			}
			out := columnsReport{
				Contacts: &contacts,
				Warnings: contacts.ContactWarnings(),
			}

			if dealsPath != "" {
				deals, err := core.InspectExport(in.Deals, core.DealFieldSpecs)
				if err != nil {
					return fmt.Errorf("%s: %w", dealsPath, err)
				}
				out.Deals = &deals
			}
			return writeJSON(cmd.OutOrStdout(), out, opts.pretty)
		},
	}

	cmd.Flags().StringVarP(&contactsPath, "contacts", "c", "", "contacts CSV export (required)")
	cmd.Flags().StringVarP(&dealsPath, "deals", "d", "", "deals CSV export")
	cmd.Flags().Int64Var(&maxSize, "max-size", defaultMaxFileSize, "maximum size of each file in bytes")
	_ = cmd.MarkFlagRequired("contacts")

	return cmd
}

// run loads src, logs the run on stderr and prints the result on stdout.
func run(cmd *cobra.Command, opts *rootOptions, src core.Source) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.New(cmd.ErrOrStderr(), opts.logLevel, "text")

	ds, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", src.Name(), err)
	}
	logging.LogDataset(logger, ds)

	var out any = ds
	if opts.statsOnly {
		out = ds.Stats
	}
	return writeJSON(cmd.OutOrStdout(), out, opts.pretty)
}

// readInput reads the contacts and deals files concurrently.
func readInput(ctx context.Context, contactsPath, dealsPath string, maxSize int64) (core.Input, error) {
	if ctx != nil && ctx.Err() != nil {
		return core.Input{}, ctx.Err()
	}

	var (
		in core.Input
		g  errgroup.Group
	)

	g.Go(func() error {
		data, err := readFile(contactsPath, maxSize)
		in.Contacts = data
		return err
	})
	if dealsPath != "" {
		g.Go(func() error {
			data, err := readFile(dealsPath, maxSize)
			in.Deals = data
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return core.Input{}, err
	}
	return in, nil
}

func readFile(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := core.ReadUpload(f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
