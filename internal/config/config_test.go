package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONTACTS", "/tmp/contacts.yaml")
	t.Setenv("KITH_SUGGEST_FRACTION", "")
	t.Setenv("KITH_NO_COLOR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/contacts.yaml", cfg.StorePath)
	assert.Equal(t, 0.01, cfg.SuggestFraction)
	assert.False(t, cfg.NoColor)
}

func TestLoad_MissingStorePath(t *testing.T) {
	t.Setenv("CONTACTS", "")

	_, err := Load()
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeMissingPath, ce.Code)
	assert.Contains(t, ce.Error(), "CONTACTS")
}

func TestLoad_ExplicitValues(t *testing.T) {
	t.Setenv("CONTACTS", "/tmp/contacts.yaml")
	t.Setenv("KITH_SUGGEST_FRACTION", "0.25")
	t.Setenv("KITH_NO_COLOR", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.SuggestFraction)
	assert.True(t, cfg.NoColor)
}

func TestLoad_FractionOutOfRange(t *testing.T) {
	for _, bad := range []string{"-0.1", "1.5"} {
		t.Setenv("CONTACTS", "/tmp/contacts.yaml")
		t.Setenv("KITH_SUGGEST_FRACTION", bad)

		_, err := Load()
		require.Error(t, err, "fraction %s", bad)
		var ce *Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrCodeInvalid, ce.Code)
	}
}

func TestLoad_FractionNotANumber(t *testing.T) {
	t.Setenv("CONTACTS", "/tmp/contacts.yaml")
	t.Setenv("KITH_SUGGEST_FRACTION", "lots")

	_, err := Load()
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalid, ce.Code)
}
