package game

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// TrameEntry is one line of the game's long-term narrative history.
type TrameEntry struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

var trameLineRE = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}):\s*(.+)$`)

// ParseTrame decodes a persisted trame. Two historic encodings are
// tolerated: a JSON list of entries, and freeform "YYYY-MM-DD: summary"
// lines. Anything unparsable yields an empty history rather than an error;
// losing old flavor text must never fail a turn.
func ParseTrame(raw string) []TrameEntry {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var entries []TrameEntry
	if err := json.Unmarshal([]byte(raw), &entries); err == nil {
		return entries
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := trameLineRE.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			entries = append(entries, TrameEntry{Date: m[1], Summary: m[2]})
		}
	}
	return entries
}

// MergeTrame interleaves a new batch into existing history, sorted stably
// ascending by the date string. Prior entries are preserved; equal dates
// keep their relative order (existing before batch).
func MergeTrame(existing, batch []TrameEntry) []TrameEntry {
	merged := make([]TrameEntry, 0, len(existing)+len(batch))
	merged = append(merged, existing...)
	merged = append(merged, batch...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged
}

// EncodeTrame re-serializes history as the structured JSON list, healing
// any legacy line encoding on the next write.
func EncodeTrame(entries []TrameEntry) string {
	if entries == nil {
		entries = []TrameEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(b)
}
