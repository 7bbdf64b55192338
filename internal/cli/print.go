package cli

import (
	"github.com/spf13/cobra"

	"github.com/tmarlow/kith/internal/config"
	"github.com/tmarlow/kith/internal/contact"
	"github.com/tmarlow/kith/internal/printer"
	"github.com/tmarlow/kith/internal/remind"
	"github.com/tmarlow/kith/internal/store"
)

// PrintOptions holds flags for the print command.
type PrintOptions struct {
	*RootOptions
	People  bool
	Places  bool
	Person  string
	All     string
	Missing bool

	NameFilter    string
	AddressFilter string

	// Clock allows overriding "now" for the time-since markers (for
	// testing). If nil, defaults to the system clock.
	Clock remind.Clock
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrintOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print and search contacts",
		Long: `Print contacts from the store in various views.

Views: --people (default, names by last name with time since last
contact), --places (grouped by address), --person/--all (one contact by
partial name), --missing (field status per contact).

Filters: --name and --address narrow any listing view to contacts whose
field contains the given text, case-insensitively, in store order.

Example:
  kith print --people
  kith print --places --address springfield
  kith print --person jane`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.People, "people", false, "list names with time since last contact")
	cmd.Flags().BoolVar(&opts.Places, "places", false, "group contacts by address")
	cmd.Flags().StringVar(&opts.Person, "person", "", "summary for the contact best matching a partial name")
	cmd.Flags().StringVar(&opts.All, "all", "", "everything stored for the contact best matching a partial name")
	cmd.Flags().BoolVar(&opts.Missing, "missing", false, "show field status per contact")
	cmd.Flags().StringVar(&opts.NameFilter, "name", "", "only contacts whose name contains this text")
	cmd.Flags().StringVar(&opts.AddressFilter, "address", "", "only contacts whose address contains this text")
	cmd.MarkFlagsMutuallyExclusive("people", "places", "person", "all", "missing")

	return cmd
}

func runPrint(opts *PrintOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   newTraceID(),
	}

	cfg, err := config.Load()
	if err != nil {
		return outputConfigError(formatter, err)
	}

	col, err := store.Load(cfg.StorePath)
	if err != nil {
		return outputStoreError(formatter, err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = remind.SystemClock{}
	}

	contacts := filtered(col, opts)

	// JSON output is the structured records; views are a text concern.
	if opts.Format == "json" {
		if opts.Person != "" || opts.All != "" {
			ct, err := bestMatch(col, opts)
			if err != nil {
				_ = formatter.Error("PRINT_NO_MATCH", err.Error(), nil)
				return WrapExitError(ExitCommandError, "no matching contact", err)
			}
			return formatter.Success(ct)
		}
		return formatter.Success(contacts)
	}

	p := printer.New(cmd.OutOrStdout(), printer.Options{
		Now:     clock.Now(),
		NoColor: cfg.NoColor,
	})

	switch {
	case opts.Places:
		p.Places(contacts)
	case opts.Missing:
		p.Missing(contacts)
	case opts.Person != "":
		ct, err := bestMatch(col, opts)
		if err != nil {
			_ = formatter.Error("PRINT_NO_MATCH", err.Error(), nil)
			return WrapExitError(ExitCommandError, "no matching contact", err)
		}
		p.Person(ct)
	case opts.All != "":
		ct, err := bestMatch(col, opts)
		if err != nil {
			_ = formatter.Error("PRINT_NO_MATCH", err.Error(), nil)
			return WrapExitError(ExitCommandError, "no matching contact", err)
		}
		p.All(ct)
	default:
		p.People(contacts)
	}
	return nil
}

func bestMatch(col *contact.Collection, opts *PrintOptions) (*contact.Contact, error) {
	partial := opts.Person
	if partial == "" {
		partial = opts.All
	}
	return contact.BestMatch(col, partial)
}

// filtered applies the --name and --address substring filters in store
// order.
func filtered(col *contact.Collection, opts *PrintOptions) []*contact.Contact {
	contacts := col.All()
	if opts.NameFilter != "" {
		contacts = filterSlice(contacts, opts.NameFilter, contact.FieldName)
	}
	if opts.AddressFilter != "" {
		contacts = filterSlice(contacts, opts.AddressFilter, contact.FieldAddress)
	}
	return contacts
}

func filterSlice(contacts []*contact.Contact, query string, field contact.Field) []*contact.Contact {
	sub := contact.NewCollection()
	for _, ct := range contacts {
		_ = sub.Add(ct)
	}
	return contact.Filter(sub, query, field)
}
