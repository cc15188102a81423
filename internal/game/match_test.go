package game

import "testing"

func testRoster() []NationRef {
	return []NationRef{
		{ID: "n-fr", Name: "France", SvgID: "fr", Sovereign: true},
		{ID: "n-uk", Name: "United Kingdom", SvgID: "uk", Sovereign: true},
		{ID: "n-ua", Name: "Ukraine", SvgID: "ua", Sovereign: true},
		{ID: "n-de", Name: "Germany", SvgID: "de", Sovereign: true},
	}
}

func TestMatchNationsExact(t *testing.T) {
	matches, ambiguous := MatchNations([]string{" france ", "GERMANY"}, testRoster())
	if len(ambiguous) != 0 {
		t.Fatalf("ambiguous = %v", ambiguous)
	}
	if len(matches) != 2 || matches[0].ID != "n-fr" || matches[1].ID != "n-de" {
		t.Fatalf("matches = %+v", matches)
	}
}

func TestMatchNationsSubstringBothDirections(t *testing.T) {
	roster := []NationRef{
		{ID: "n-uk", Name: "United Kingdom", SvgID: "uk", Sovereign: true},
		{ID: "n-fr", Name: "France", SvgID: "fr", Sovereign: true},
	}

	// Short alias contained in the roster name.
	matches, _ := MatchNations([]string{"Kingdom"}, roster)
	if len(matches) != 1 || matches[0].ID != "n-uk" {
		t.Fatalf("matches = %+v", matches)
	}

	// Roster name contained in a longer supplied name.
	matches, _ = MatchNations([]string{"Republic of France"}, roster)
	if len(matches) != 1 || matches[0].ID != "n-fr" {
		t.Fatalf("matches = %+v", matches)
	}
}

func TestMatchNationsAmbiguity(t *testing.T) {
	roster := []NationRef{
		{ID: "n-kp", Name: "North Korea", SvgID: "kp", Sovereign: true},
		{ID: "n-kr", Name: "South Korea", SvgID: "kr", Sovereign: true},
	}

	// "korea" is a substring of both roster names; the first hit is kept and
	// the name is reported.
	matches, ambiguous := MatchNations([]string{"Korea"}, roster)
	if len(matches) != 1 || matches[0].ID != "n-kp" {
		t.Fatalf("matches = %+v", matches)
	}
	if len(ambiguous) != 1 || ambiguous[0] != "Korea" {
		t.Fatalf("ambiguous = %v", ambiguous)
	}
}

func TestMatchNationsLiteralSubstringBoundary(t *testing.T) {
	// The fallback is a literal substring check, not an initialism match.
	// "uk" appears inside "ukraine" but not inside "united kingdom", so the
	// alias lands on the wrong nation and nothing is ambiguous about it.
	matches, ambiguous := MatchNations([]string{"UK"}, testRoster())
	if len(ambiguous) != 0 {
		t.Fatalf("ambiguous = %v", ambiguous)
	}
	if len(matches) != 1 || matches[0].ID != "n-ua" {
		t.Fatalf("matches = %+v", matches)
	}
}

func TestMatchNationsExactBeatsSubstring(t *testing.T) {
	roster := append(testRoster(), NationRef{ID: "n-uk2", Name: "UK", SvgID: "uk2", Sovereign: true})
	matches, ambiguous := MatchNations([]string{"uk"}, roster)
	if len(ambiguous) != 0 {
		t.Fatalf("ambiguous = %v", ambiguous)
	}
	if len(matches) != 1 || matches[0].ID != "n-uk2" {
		t.Fatalf("matches = %+v", matches)
	}
}

func TestMatchNationsDedupAndBlanks(t *testing.T) {
	matches, _ := MatchNations([]string{"France", "  ", "france", "Unknownland"}, testRoster())
	if len(matches) != 1 || matches[0].ID != "n-fr" {
		t.Fatalf("matches = %+v", matches)
	}
}

func TestFindBySvgID(t *testing.T) {
	n, ok := FindBySvgID(testRoster(), "ua")
	if !ok || n.Name != "Ukraine" {
		t.Fatalf("n = %+v ok = %v", n, ok)
	}
	if _, ok := FindBySvgID(testRoster(), "xx"); ok {
		t.Fatal("unexpected match for unknown svg id")
	}
}
