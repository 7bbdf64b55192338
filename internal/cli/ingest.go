package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tmarlow/kith/internal/config"
	"github.com/tmarlow/kith/internal/contact"
	"github.com/tmarlow/kith/internal/ingest"
	"github.com/tmarlow/kith/internal/remind"
	"github.com/tmarlow/kith/internal/store"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	Create bool
	Init   bool

	// Clock allows overriding "now" for default update timestamps (for
	// testing). If nil, defaults to the system clock.
	Clock remind.Clock
}

// IngestResult summarizes a successful ingestion.
type IngestResult struct {
	Contacts int      `json:"contacts"`
	Updates  int      `json:"updates"`
	Created  []string `json:"created,omitempty"`
}

func (r IngestResult) String() string {
	created := ""
	if len(r.Created) > 0 {
		created = fmt.Sprintf(", %d new", len(r.Created))
	}
	return fmt.Sprintf("Ingested %d update(s) across %d contact(s)%s", r.Updates, r.Contacts, created)
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a free-text update file into the contact store",
		Long: `Ingest a plain-text file of contact updates into the store.

The file holds blocks separated by blank lines. Each block starts with a
contact name, followed by "key: value" field lines (date, address,
frequency, tags, characteristics, urls) and free-text update lines.
Ingestion is all-or-nothing: any malformed block aborts before anything
is written.

Example:
  kith ingest ./updates.txt
  kith ingest --create=false ./updates.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Create, "create", true, "create contacts for unknown names")
	cmd.Flags().BoolVar(&opts.Init, "init", false, "start from an empty store if the file does not exist yet")

	return cmd
}

func runIngest(opts *IngestOptions, inputPath string, cmd *cobra.Command) error {
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

	clock := opts.Clock
	if clock == nil {
		clock = remind.SystemClock{}
	}

	col, err := loadStore(cfg.StorePath, opts.Init)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	slog.Debug("store loaded", "path", cfg.StorePath, "contacts", col.Len(), "trace_id", formatter.TraceID)

	f, err := os.Open(inputPath)
	if err != nil {
		_ = formatter.Error("INGEST_OPEN_FAILED", fmt.Sprintf("cannot open %s", inputPath), err.Error())
		return WrapExitError(ExitCommandError, "cannot open input file", err)
	}
	defer f.Close()

	records, err := ingest.Parse(f, inputPath)
	if err != nil {
		return outputParseError(formatter, err)
	}
	slog.Debug("input parsed", "blocks", len(records), "trace_id", formatter.TraceID)

	ingestOpts := ingest.Options{Now: clock.Now(), CreateMissing: opts.Create}
	if err := ingest.Validate(records, col, inputPath, ingestOpts); err != nil {
		return outputParseError(formatter, err)
	}

	existing := make(map[string]bool, col.Len())
	for _, name := range col.Names() {
		existing[name] = true
	}

	if err := ingest.Apply(col, records, ingestOpts); err != nil {
		_ = formatter.Error("INGEST_APPLY_FAILED", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to apply updates", err)
	}

	if err := store.Save(cfg.StorePath, col); err != nil {
		return outputStoreError(formatter, err)
	}
	slog.Debug("store saved", "path", cfg.StorePath, "contacts", col.Len(), "trace_id", formatter.TraceID)

	result := IngestResult{Updates: len(records)}
	touched := make(map[string]bool)
	for _, rec := range records {
		if ct, ok := col.Lookup(rec.Name); ok && !touched[ct.Name] {
			touched[ct.Name] = true
			result.Contacts++
			if !existing[ct.Name] {
				result.Created = append(result.Created, ct.Name)
			}
		}
	}
	return formatter.Success(result)
}

// loadStore loads the collection, treating a missing file as empty when
// init is set.
func loadStore(path string, init bool) (*contact.Collection, error) {
	col, err := store.Load(path)
	if err != nil {
		if init && store.IsNotFound(err) {
			return contact.NewCollection(), nil
		}
		return nil, err
	}
	return col, nil
}

// newTraceID mints a per-invocation correlation id. UUIDv7 keeps ids
// time-ordered in logs.
func newTraceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func outputConfigError(formatter *OutputFormatter, err error) error {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		_ = formatter.Error(string(cfgErr.Code), cfgErr.Message, nil)
	} else {
		_ = formatter.Error(string(config.ErrCodeInvalid), err.Error(), nil)
	}
	return WrapExitError(ExitCommandError, "configuration error", err)
}

func outputStoreError(formatter *OutputFormatter, err error) error {
	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		_ = formatter.Error(string(storeErr.Code), storeErr.Message, storeErr.Path)
	} else {
		_ = formatter.Error(string(store.ErrCodeReadFailed), err.Error(), nil)
	}
	return WrapExitError(ExitCommandError, "store error", err)
}

func outputParseError(formatter *OutputFormatter, err error) error {
	var parseErr *ingest.ParseError
	if errors.As(err, &parseErr) {
		_ = formatter.Error(string(parseErr.Code), parseErr.Message, map[string]interface{}{
			"file":  parseErr.File,
			"block": parseErr.Block,
			"line":  parseErr.Line,
		})
		return WrapExitError(ExitFailure, "ingestion rejected", err)
	}
	_ = formatter.Error("PARSE_FAILED", err.Error(), nil)
	return WrapExitError(ExitFailure, "ingestion rejected", err)
}
