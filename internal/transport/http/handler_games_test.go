package httptransport

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestParseTurnParam(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/api/games/g1/reactions", -1},
		{"/api/games/g1/reactions?turn=0", 0},
		{"/api/games/g1/reactions?turn=7", 7},
		{"/api/games/g1/reactions?turn=-2", -1},
		{"/api/games/g1/reactions?turn=abc", -1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := ParseTurnParam(r); got != tt.want {
			t.Fatalf("ParseTurnParam(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestActorID(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/games", nil)
	if got := ActorID(r); got != "" {
		t.Fatalf("blank header actor = %q, want empty", got)
	}
	r.Header.Set("X-User-ID", "user-1")
	if got := ActorID(r); got != "user-1" {
		t.Fatalf("actor = %q, want user-1", got)
	}
}

func TestWriteHTTPError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteHTTPError(rec, 404, "game_not_found")
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "game_not_found" {
		t.Fatalf("error code = %q", body["error"])
	}
}
