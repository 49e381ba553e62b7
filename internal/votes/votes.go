// Package votes loads the recorded vote sequence that a presentation
// session walks through.
package votes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/tidwall/jsonc"
	"go.uber.org/multierr"
)

var ErrMissingDataFile = errors.New("vote data file not found")
var ErrMalformedRecord = errors.New("malformed vote record")

// Candidate is the identifier a vote was cast for. The data file may
// carry it as a JSON string or a JSON number.
type Candidate string

func (c *Candidate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("candidate is null")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Candidate(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("candidate must be a string or number: %s", data)
	}
	*c = Candidate(n.String())
	return nil
}

type Record struct {
	Candidate Candidate
	Timestamp time.Time
}

type rawRecord struct {
	Candidate *Candidate `json:"candidate"`
	Timestamp *string    `json:"timestamp"`
}

type Options struct {
	// Location applies to timestamps written without a zone offset.
	Location *time.Location
}

// Load reads the vote file at path and returns its records sorted by
// timestamp. Records sharing a timestamp keep their file order.
func Load(path string, opts Options) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDataFile, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, opts)
}

// Parse decodes a JSON (or JSONC) array of vote objects. Any malformed
// record rejects the whole input; the returned error lists every bad
// record.
func Parse(data []byte, opts Options) ([]Record, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	var raws []rawRecord
	if err := json.Unmarshal(jsonc.ToJSON(data), &raws); err != nil {
		return nil, fmt.Errorf("%w: decoding vote file: %v", ErrMalformedRecord, err)
	}

	records := make([]Record, 0, len(raws))
	var errs error
	for i, raw := range raws {
		rec, err := raw.toRecord(loc)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		records = append(records, rec)
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, errs)
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return records, nil
}

func (r rawRecord) toRecord(loc *time.Location) (Record, error) {
	if r.Candidate == nil {
		return Record{}, errors.New("missing candidate")
	}
	if *r.Candidate == "" {
		return Record{}, errors.New("empty candidate")
	}
	if r.Timestamp == nil {
		return Record{}, errors.New("missing timestamp")
	}

	ts, err := ParseTimestamp(*r.Timestamp, loc)
	if err != nil {
		return Record{}, err
	}
	return Record{Candidate: *r.Candidate, Timestamp: ts}, nil
}
