package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overdueFixture = `Old Pal:
  frequency: 30d
  updates:
    - date: "2020-01-01"
      body: long ago
Quiet Friend:
`

// fakeNotifier records deliveries instead of touching the desktop.
type fakeNotifier struct {
	title   string
	message string
	err     error
}

func (f *fakeNotifier) Notify(title, message string) error {
	f.title = title
	f.message = message
	return f.err
}

func TestCheck_DryRunReportsOverdue(t *testing.T) {
	setupStore(t, overdueFixture)
	t.Setenv("KITH_SUGGEST_FRACTION", "0")

	out, _, err := execute(t, "check", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "You are overdue:")
	assert.Contains(t, out, "Old Pal")
	assert.NotContains(t, out, "Quiet Friend", "no frequency means never overdue")
}

func TestCheck_NothingDue(t *testing.T) {
	setupStore(t, "Quiet Friend:\n")
	t.Setenv("KITH_SUGGEST_FRACTION", "0")

	out, _, err := execute(t, "check", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing due.")
}

func TestCheck_PickIsSeedDeterministic(t *testing.T) {
	setupStore(t, "Ann Lee:\nJane Smith:\nMia Chen:\n")
	t.Setenv("KITH_SUGGEST_FRACTION", "0")

	first, _, err := execute(t, "check", "--dry-run", "--pick", "--seed", "42")
	require.NoError(t, err)
	assert.Contains(t, first, "Random pick:")

	second, _, err := execute(t, "check", "--dry-run", "--pick", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCheck_NotifierReceivesMessage(t *testing.T) {
	setupStore(t, overdueFixture)
	t.Setenv("KITH_SUGGEST_FRACTION", "0")

	fake := &fakeNotifier{}
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	opts := &CheckOptions{RootOptions: &RootOptions{Format: "text"}, Notifier: fake}
	require.NoError(t, runCheck(opts, cmd))

	assert.Equal(t, "Contact Reminders", fake.title)
	assert.Contains(t, fake.message, "Old Pal")
	assert.Contains(t, out.String(), "Notified: 1 overdue, 0 suggestion(s)")
}

func TestCheck_NotifierFailureIsCommandError(t *testing.T) {
	setupStore(t, overdueFixture)
	t.Setenv("KITH_SUGGEST_FRACTION", "0")

	fake := &fakeNotifier{err: errors.New("no notification daemon")}
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	opts := &CheckOptions{RootOptions: &RootOptions{Format: "text"}, Notifier: fake}
	err := runCheck(opts, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out.String(), "NOTIFY_FAILED")
}

func TestCheck_MissingStoreIsCommandError(t *testing.T) {
	t.Setenv("CONTACTS", "/nonexistent/contacts.yaml")

	out, _, err := execute(t, "check", "--dry-run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "STORE_NOT_FOUND")
}
