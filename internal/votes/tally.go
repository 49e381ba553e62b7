package votes

import (
	"cmp"
	"slices"
)

type TallyEntry struct {
	Candidate Candidate
	Count     int
}

// Tally counts records per candidate, highest count first. Candidates with
// equal counts stay in the order they first appear in records.
func Tally(records []Record) []TallyEntry {
	pos := make(map[Candidate]int)
	var entries []TallyEntry
	for _, r := range records {
		i, ok := pos[r.Candidate]
		if !ok {
			i = len(entries)
			pos[r.Candidate] = i
			entries = append(entries, TallyEntry{Candidate: r.Candidate})
		}
		entries[i].Count++
	}

	slices.SortStableFunc(entries, func(a, b TallyEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return entries
}
