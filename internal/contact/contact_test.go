package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseStamp_Date(t *testing.T) {
	ts, err := ParseStamp("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ts)
}

func TestParseStamp_DateTime(t *testing.T) {
	ts, err := ParseStamp("2024-01-05 14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC), ts)
}

func TestParseStamp_Invalid(t *testing.T) {
	_, err := ParseStamp("2024/01/05")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024/01/05")
}

func TestFormatStamp_RoundTrip(t *testing.T) {
	for _, stamp := range []string{"2024-01-05", "2024-01-05 14:30"} {
		ts, err := ParseStamp(stamp)
		require.NoError(t, err)
		assert.Equal(t, stamp, FormatStamp(ts))
	}
}

func TestAppendUpdate_KeepsTimestampOrder(t *testing.T) {
	ct := New("Jane Smith")
	ct.AppendUpdate(Update{Time: mustStamp(t, "2024-03-01"), Body: "later"})
	ct.AppendUpdate(Update{Time: mustStamp(t, "2024-01-01"), Body: "earlier"})
	ct.AppendUpdate(Update{Time: mustStamp(t, "2024-02-01"), Body: "middle"})

	require.Len(t, ct.Updates, 3)
	assert.Equal(t, "earlier", ct.Updates[0].Body)
	assert.Equal(t, "middle", ct.Updates[1].Body)
	assert.Equal(t, "later", ct.Updates[2].Body)
}

func TestAppendUpdate_StableForEqualTimestamps(t *testing.T) {
	ct := New("Jane Smith")
	day := mustStamp(t, "2024-01-01")
	ct.AppendUpdate(Update{Time: day, Body: "first"})
	ct.AppendUpdate(Update{Time: day, Body: "second"})

	assert.Equal(t, "first", ct.Updates[0].Body)
	assert.Equal(t, "second", ct.Updates[1].Body)
}

func TestLastContact(t *testing.T) {
	ct := New("Jane Smith")

	_, ok := ct.LastContact()
	assert.False(t, ok, "untouched contact has no last contact")

	ct.AppendUpdate(Update{Time: mustStamp(t, "2024-01-01")})
	ct.AppendUpdate(Update{Time: mustStamp(t, "2024-02-01")})

	last, ok := ct.LastContact()
	require.True(t, ok)
	assert.Equal(t, mustStamp(t, "2024-02-01"), last)
}

func TestMerge_IsSetUnion(t *testing.T) {
	ct := New("Jane Smith")
	ct.MergeTags("college", "work")
	ct.MergeTags("work", "book club")
	assert.Equal(t, []string{"college", "work", "book club"}, ct.Tags)

	ct.MergeCharacteristics("direct")
	ct.MergeCharacteristics("direct", "generous")
	assert.Equal(t, []string{"direct", "generous"}, ct.Characteristics)

	ct.AddURLs("https://a.example", "https://b.example")
	ct.AddURLs("https://a.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, ct.URLs)
}

func TestMerge_SkipsBlankValues(t *testing.T) {
	ct := New("Jane Smith")
	ct.MergeTags("", "  ", "real")
	assert.Equal(t, []string{"real"}, ct.Tags)
}

func TestFrequency_Parse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"5d", 5 * 24 * time.Hour},
		{"7w", 7 * 7 * 24 * time.Hour},
		{"2m", 60 * 24 * time.Hour},
		{"1y", 365 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFrequency(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Duration())
			assert.Equal(t, tt.in, f.String())
			assert.False(t, f.IsZero())
		})
	}
}

func TestFrequency_ParseInvalid(t *testing.T) {
	for _, in := range []string{"", "d", "30", "30x", "-5d", "0d", "weekly"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseFrequency(in)
			require.Error(t, err)
			var fe *FrequencyError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, in, fe.Input)
		})
	}
}

func TestContact_YAMLRoundTrip(t *testing.T) {
	ct := New("Jane Smith")
	ct.Address = "456 Oak Ave, Springfield"
	ct.Frequency = mustFrequency(t, "30d")
	ct.MergeTags("college")
	ct.AppendUpdate(Update{Time: mustStamp(t, "2024-01-05"), Body: "Had coffee, discussed new job"})

	data, err := yaml.Marshal(ct)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frequency: 30d")
	assert.Contains(t, string(data), "date: \"2024-01-05\"")

	got := New("Jane Smith")
	require.NoError(t, yaml.Unmarshal(data, got))
	assert.Equal(t, ct.Address, got.Address)
	assert.Equal(t, ct.Frequency, got.Frequency)
	assert.Equal(t, ct.Tags, got.Tags)
	require.Len(t, got.Updates, 1)
	assert.Equal(t, ct.Updates[0], got.Updates[0])
}

func TestContact_YAMLOmitsEmptyFields(t *testing.T) {
	data, err := yaml.Marshal(New("Jane Smith"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "frequency")
	assert.NotContains(t, string(data), "address")
	assert.NotContains(t, string(data), "updates")
}

func TestCollection_PreservesOrder(t *testing.T) {
	col := NewCollection()
	for _, name := range []string{"Zo Park", "Ann Lee", "Mia Chen"} {
		require.NoError(t, col.Add(New(name)))
	}
	assert.Equal(t, []string{"Zo Park", "Ann Lee", "Mia Chen"}, col.Names())
}

func TestCollection_RejectsDuplicate(t *testing.T) {
	col := NewCollection()
	require.NoError(t, col.Add(New("Jane Smith")))
	err := col.Add(New("Jane Smith"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Jane Smith")
}

func TestCollection_LookupIsCaseInsensitive(t *testing.T) {
	col := NewCollection()
	require.NoError(t, col.Add(New("Jane Smith")))

	ct, ok := col.Lookup("  jane smith ")
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", ct.Name)

	_, ok = col.Lookup("John Smith")
	assert.False(t, ok)
}

func mustStamp(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseStamp(s)
	require.NoError(t, err)
	return ts
}

func mustFrequency(t *testing.T, s string) Frequency {
	t.Helper()
	f, err := ParseFrequency(s)
	require.NoError(t, err)
	return f
}
