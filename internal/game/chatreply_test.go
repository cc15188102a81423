package game

import (
	"strings"
	"testing"
)

func TestParseChatReply(t *testing.T) {
	r, err := ParseChatReply("```json\n{\"message\":\"We accept.\",\"leaveAfterTalking\":false,\"leaveDate\":null}\n```")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Message != "We accept." || r.LeaveAfterTalking || r.LeaveDate != nil {
		t.Fatalf("reply = %+v", r)
	}
}

func TestParseChatReplyEmbeddedInProse(t *testing.T) {
	raw := `Here is my answer: {"message":"Enough.","leaveAfterTalking":true,"leaveDate":"2021-03-01"} Hope that helps.`
	r, err := ParseChatReply(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !r.LeaveAfterTalking || r.LeaveDate == nil || *r.LeaveDate != "2021-03-01" {
		t.Fatalf("reply = %+v", r)
	}
}

func TestParseChatReplyRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose only", "I would rather not answer in JSON."},
		{"missing message", `{"leaveAfterTalking":false}`},
		{"empty message", `{"message":"","leaveAfterTalking":false}`},
		{"missing leave flag", `{"message":"hi"}`},
		{"non-bool leave flag", `{"message":"hi","leaveAfterTalking":"yes"}`},
		{"non-string leave date", `{"message":"hi","leaveAfterTalking":true,"leaveDate":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseChatReply(tt.raw); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseChatReplyTruncatesMessage(t *testing.T) {
	long := strings.Repeat("x", maxMessageLen+500)
	r, err := ParseChatReply(`{"message":"` + long + `","leaveAfterTalking":false}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(r.Message) != maxMessageLen {
		t.Fatalf("len = %d, want %d", len(r.Message), maxMessageLen)
	}
}

func TestLeaveMarker(t *testing.T) {
	if got := LeaveMarker("2021-03-01"); got != "[LEFT:2021-03-01]" {
		t.Fatalf("got %q", got)
	}
	if got := LeaveMarker(""); got != "[LEFT:N/A]" {
		t.Fatalf("got %q", got)
	}
	if !MemberLeft(AppendLeaveMarker("we argued for weeks", "2021-03-01")) {
		t.Fatal("marker not detected")
	}
	if MemberLeft("still at the table") {
		t.Fatal("false positive")
	}
}

func TestTruncateRuneSafe(t *testing.T) {
	s := strings.Repeat("é", 10)
	got := Truncate(s, 4)
	if got != strings.Repeat("é", 4) {
		t.Fatalf("got %q", got)
	}
	if Truncate("short", 100) != "short" {
		t.Fatal("short string altered")
	}
}
