package game

import "testing"

func TestParseTrameJSON(t *testing.T) {
	entries := ParseTrame(`[{"date":"2021-01-01","summary":"a"},{"date":"2021-01-03","summary":"b"}]`)
	if len(entries) != 2 || entries[0].Summary != "a" || entries[1].Date != "2021-01-03" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestParseTrameLines(t *testing.T) {
	raw := "2021-01-01: the year opens\nnot a trame line\n2021-02-15: talks resume"
	entries := ParseTrame(raw)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Date != "2021-01-01" || entries[0].Summary != "the year opens" {
		t.Fatalf("entries[0] = %+v", entries[0])
	}
	if entries[1].Date != "2021-02-15" || entries[1].Summary != "talks resume" {
		t.Fatalf("entries[1] = %+v", entries[1])
	}
}

func TestParseTrameGarbage(t *testing.T) {
	if got := ParseTrame("no dates here at all"); len(got) != 0 {
		t.Fatalf("got = %+v", got)
	}
	if got := ParseTrame("   "); got != nil {
		t.Fatalf("got = %+v", got)
	}
}

func TestMergeTrameInterleaves(t *testing.T) {
	existing := []TrameEntry{
		{Date: "2021-01-01", Summary: "first"},
		{Date: "2021-01-03", Summary: "third"},
	}
	batch := []TrameEntry{{Date: "2021-01-02", Summary: "second"}}

	merged := MergeTrame(existing, batch)
	if len(merged) != 3 {
		t.Fatalf("merged = %+v", merged)
	}
	for i, want := range []string{"first", "second", "third"} {
		if merged[i].Summary != want {
			t.Fatalf("merged[%d] = %+v, want summary %q", i, merged[i], want)
		}
	}
}

func TestMergeTrameStableOnEqualDates(t *testing.T) {
	existing := []TrameEntry{{Date: "2021-01-01", Summary: "old"}}
	batch := []TrameEntry{{Date: "2021-01-01", Summary: "new"}}
	merged := MergeTrame(existing, batch)
	if merged[0].Summary != "old" || merged[1].Summary != "new" {
		t.Fatalf("merged = %+v", merged)
	}
}

func TestEncodeTrameRoundTrip(t *testing.T) {
	entries := []TrameEntry{{Date: "2021-01-01", Summary: "a"}}
	got := ParseTrame(EncodeTrame(entries))
	if len(got) != 1 || got[0] != entries[0] {
		t.Fatalf("got = %+v", got)
	}
	if EncodeTrame(nil) != "[]" {
		t.Fatalf("EncodeTrame(nil) = %q", EncodeTrame(nil))
	}
}
