package cli

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmarlow/kith/internal/config"
	"github.com/tmarlow/kith/internal/contact"
	"github.com/tmarlow/kith/internal/notify"
	"github.com/tmarlow/kith/internal/remind"
	"github.com/tmarlow/kith/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Pick   bool
	DryRun bool
	Seed   int64

	// Clock allows overriding "now" (for testing). If nil, defaults to
	// the system clock.
	Clock remind.Clock

	// Notifier allows overriding the desktop notifier (for testing).
	Notifier notify.Notifier
}

// CheckResult summarizes one reminder run.
type CheckResult struct {
	Overdue     []string `json:"overdue,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Pick        string   `json:"pick,omitempty"`
	Message     string   `json:"message,omitempty"`
}

func (r CheckResult) String() string {
	if r.Message == "" {
		return "Nothing due."
	}
	return r.Message
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compute reminders and notify",
		Long: `Compute which contacts are overdue for a check-in, plus random
suggestions, and surface them as a desktop notification.

Meant to run at login or from a periodic timer. Finding no reminders is
a successful run, not an error. Overlapping timer runs are not
coordinated here; serialize them in the trigger (e.g. a lock file) if
that matters on your machine.

Example:
  kith check
  kith check --dry-run --pick`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Pick, "pick", false, "also pick one contact uniformly at random")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the notification instead of sending it")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 = time-based)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
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
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	now := clock.Now()

	overdue := remind.Overdue(col, now)
	suggestions := remind.Suggestions(col, now, rng, cfg.SuggestFraction)

	var pick *contact.Contact
	if opts.Pick {
		if ct, ok := remind.Pick(col, rng); ok {
			pick = ct
		}
	}
	slog.Debug("reminders computed",
		"overdue", len(overdue),
		"suggestions", len(suggestions),
		"contacts", col.Len(),
		"trace_id", formatter.TraceID,
	)

	result := CheckResult{Message: notify.CheckMessage(overdue, suggestions, pick)}
	for _, e := range overdue {
		result.Overdue = append(result.Overdue, e.Contact.Name)
	}
	for _, s := range suggestions {
		result.Suggestions = append(result.Suggestions, s.Contact.Name)
	}
	if pick != nil {
		result.Pick = pick.Name
	}

	// Absence of reminders is not an error.
	if result.Message == "" {
		formatter.VerboseLog("nothing due across %d contact(s)", col.Len())
		return formatter.Success(result)
	}

	if opts.DryRun {
		return formatter.Success(result)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Desktop{}
	}
	if err := notifier.Notify(notify.Title, result.Message); err != nil {
		_ = formatter.Error("NOTIFY_FAILED", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to deliver notification", err)
	}
	formatter.VerboseLog("notification sent: %d overdue, %d suggestion(s)", len(overdue), len(suggestions))

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Notified: %d overdue, %d suggestion(s)\n", len(overdue), len(suggestions))
	return nil
}
