package votes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "votes.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func candidates(records []Record) []Candidate {
	out := make([]Candidate, len(records))
	for i, r := range records {
		out[i] = r.Candidate
	}
	return out
}

func TestLoadSortsByTimestamp(t *testing.T) {
	path := writeFile(t, `[
		{"candidate": "A", "timestamp": "2025-01-01T00:00:01"},
		{"candidate": "B", "timestamp": "2025-01-01T00:00:00"}
	]`)

	records, err := Load(path, Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []Candidate{"B", "A"}, candidates(records))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), records[0].Timestamp)
}

func TestLoadKeepsFileOrderForEqualTimestamps(t *testing.T) {
	path := writeFile(t, `[
		{"candidate": 3, "timestamp": "2025-01-01 10:00:00"},
		{"candidate": 1, "timestamp": "2025-01-01 09:00:00"},
		{"candidate": 2, "timestamp": "2025-01-01 10:00:00"},
		{"candidate": 4, "timestamp": "2025-01-01T10:00:00+00:00"}
	]`)

	records, err := Load(path, Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []Candidate{"1", "3", "2", "4"}, candidates(records))

	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Timestamp.Before(records[i-1].Timestamp), "record %d out of order", i)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDataFile))
}

func TestLoadEmptyArray(t *testing.T) {
	records, err := Load(writeFile(t, `[]`), Options{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseAcceptsComments(t *testing.T) {
	records, err := Parse([]byte(`[
		// first ballot of the evening
		{"candidate": "01", "timestamp": "2025-03-01T19:00:00Z"},
		/* late */ {"candidate": "02", "timestamp": "2025-03-01T19:05:00Z",},
	]`), Options{})
	require.NoError(t, err)
	assert.Equal(t, []Candidate{"01", "02"}, candidates(records))
}

func TestParseRejectsMalformedRecords(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "missing candidate", body: `[{"timestamp": "2025-01-01T00:00:00"}]`},
		{name: "missing timestamp", body: `[{"candidate": "A"}]`},
		{name: "bad timestamp", body: `[{"candidate": "A", "timestamp": "yesterday-ish"}]`},
		{name: "boolean candidate", body: `[{"candidate": true, "timestamp": "2025-01-01T00:00:00"}]`},
		{name: "not an array", body: `{"candidate": "A"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body), Options{Location: time.UTC})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestParseReportsEveryBadRecord(t *testing.T) {
	_, err := Parse([]byte(`[
		{"candidate": "A"},
		{"candidate": "B", "timestamp": "2025-01-01T00:00:00"},
		{"timestamp": "2025-01-01T00:00:00"}
	]`), Options{Location: time.UTC})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")
	assert.Contains(t, err.Error(), "record 2")
	assert.NotContains(t, err.Error(), "record 1")
}

func TestParseTimestamp(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	cases := []struct {
		in   string
		want time.Time
	}{
		{in: "2025-01-01T00:00:01", want: time.Date(2025, 1, 1, 0, 0, 1, 0, jakarta)},
		{in: "2025-01-01 08:30:00", want: time.Date(2025, 1, 1, 8, 30, 0, 0, jakarta)},
		{in: "2025-01-01T08:30:00.250", want: time.Date(2025, 1, 1, 8, 30, 0, 250_000_000, jakarta)},
		{in: "2025-01-01", want: time.Date(2025, 1, 1, 0, 0, 0, 0, jakarta)},
		{in: "2025-01-01T01:00:00Z", want: time.Date(2025, 1, 1, 8, 0, 0, 0, jakarta)},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in, jakarta)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v, want %v", got, tc.want)
		})
	}

	for _, in := range []string{"  ", "12:30", "10:00:05", "15"} {
		_, err := ParseTimestamp(in, jakarta)
		assert.Error(t, err, "%q has no date and must be rejected", in)
	}
}

func TestParseTimestampFallbackIsDateIndependent(t *testing.T) {
	got, err := ParseTimestamp("2025/03/01 19:05:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 19, 5, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("3/1/2025", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseRejectsTimeOnlyRecord(t *testing.T) {
	_, err := Parse([]byte(`[
		{"candidate": "A", "timestamp": "2025-01-01T09:00:00"},
		{"candidate": "B", "timestamp": "10:00"}
	]`), Options{Location: time.UTC})
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "record 1")
}

func TestCandidateKeepsSurroundingSpace(t *testing.T) {
	records, err := Parse([]byte(`[
		{"candidate": " A ", "timestamp": "2025-01-01T00:00:00"},
		{"candidate": "A", "timestamp": "2025-01-01T00:00:01"}
	]`), Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []Candidate{" A ", "A"}, candidates(records))
	assert.Len(t, Tally(records), 2)
}

func TestCacheLoadsOnce(t *testing.T) {
	path := writeFile(t, `[{"candidate": "A", "timestamp": "2025-01-01T00:00:00"}]`)
	cache := NewCache(path, Options{Location: time.UTC})

	first, err := cache.Get()
	require.NoError(t, err)

	// A rewrite after the first load is not picked up.
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	second, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, second, 1)
}

func TestCacheRetriesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.json")
	cache := NewCache(path, Options{Location: time.UTC})

	_, err := cache.Get()
	require.ErrorIs(t, err, ErrMissingDataFile)

	require.NoError(t, os.WriteFile(path, []byte(`[{"candidate": "A", "timestamp": "2025-01-01T00:00:00"}]`), 0o644))

	records, err := cache.Get()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
