package game

import "strings"

// NationRef is the roster view of a nation used by pure matching and
// resolution logic.
type NationRef struct {
	ID        string
	Name      string
	SvgID     string
	Sovereign bool
}

// maxRawNames caps how many counterpart names one event may supply before
// the whole chat creation is rejected.
const maxRawNames = 4

// MatchNations resolves model-supplied nation names against a roster.
// Both sides are normalized (trim, case-fold); an exact name match wins
// before the symmetric substring fallback ("Kingdom" matches "United
// Kingdom", "Republic of France" matches "France"). Results are
// deduplicated preserving input order. Names whose substring probe hits
// several roster entries are additionally reported as ambiguous so the
// caller can log them; the first hit is kept.
//
// The fallback is a literal substring check, no initialism expansion: "UK"
// never hits "United Kingdom", but it does sit inside "Ukraine" and lands
// there when no exact roster entry exists. See the package tests for the
// documented boundary.
func MatchNations(names []string, roster []NationRef) (matches []NationRef, ambiguous []string) {
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}

		var hit *NationRef
		for i := range roster {
			if strings.ToLower(strings.TrimSpace(roster[i].Name)) == name {
				hit = &roster[i]
				break
			}
		}
		if hit == nil {
			var hits []*NationRef
			for i := range roster {
				rosterName := strings.ToLower(strings.TrimSpace(roster[i].Name))
				if strings.Contains(rosterName, name) || strings.Contains(name, rosterName) {
					hits = append(hits, &roster[i])
				}
			}
			if len(hits) > 1 {
				ambiguous = append(ambiguous, raw)
			}
			if len(hits) > 0 {
				hit = hits[0]
			}
		}

		if hit == nil || seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true
		matches = append(matches, *hit)
	}
	return matches, ambiguous
}

// FindBySvgID resolves a nation by its stable external identifier.
func FindBySvgID(roster []NationRef, svgID string) (NationRef, bool) {
	for _, n := range roster {
		if n.SvgID == svgID {
			return n, true
		}
	}
	return NationRef{}, false
}
