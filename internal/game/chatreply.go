package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChatReply is the required output shape of one diplomatic chat response.
type ChatReply struct {
	Message           string
	LeaveAfterTalking bool
	LeaveDate         *string
}

// maxMessageLen bounds any single chat message, player or nation.
const maxMessageLen = 2000

// ParseChatReply extracts and validates a chat reply from raw completion
// text. Besides a fenced block, a bare JSON object embedded in prose is
// recovered by brace scanning; chat models drift into commentary more often
// than the world engine does.
func ParseChatReply(raw string) (*ChatReply, error) {
	body := stripCodeFence(strings.TrimSpace(raw))
	if !strings.HasPrefix(strings.TrimSpace(body), "{") {
		if obj, ok := scanJSONObject(body); ok {
			body = obj
		}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		return nil, fmt.Errorf("invalid AI response: not a JSON object: %w", err)
	}

	var msg string
	if raw, ok := top["message"]; !ok || json.Unmarshal(raw, &msg) != nil || msg == "" {
		return nil, fmt.Errorf("invalid AI response: message is required and must be a string")
	}
	var leave bool
	if raw, ok := top["leaveAfterTalking"]; !ok || json.Unmarshal(raw, &leave) != nil {
		return nil, fmt.Errorf("invalid AI response: leaveAfterTalking must be a boolean")
	}
	var leaveDate *string
	if raw, ok := top["leaveDate"]; ok && !isExplicitNull(raw) {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return nil, fmt.Errorf("invalid AI response: leaveDate must be null or a string")
		}
		leaveDate = &s
	}

	return &ChatReply{
		Message:           Truncate(strings.TrimSpace(msg), maxMessageLen),
		LeaveAfterTalking: leave,
		LeaveDate:         leaveDate,
	}, nil
}

// scanJSONObject finds the first balanced {...} region in free text.
func scanJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

const leaveMarkerPrefix = "[LEFT:"

// LeaveMarker renders the terminal "left the conversation" marker embedded
// in a member's rolling summary.
func LeaveMarker(date string) string {
	if date == "" {
		date = "N/A"
	}
	return leaveMarkerPrefix + date + "]"
}

// MemberLeft reports whether a member's rolling summary carries a leave
// marker; left members are excluded from future auto-response rounds but
// their history stays readable.
func MemberLeft(summary string) bool {
	return strings.Contains(summary, leaveMarkerPrefix)
}

// AppendLeaveMarker attaches the marker to an existing rolling summary.
func AppendLeaveMarker(summary, date string) string {
	marker := LeaveMarker(date)
	if summary == "" {
		return marker
	}
	return summary + " " + marker
}

// Truncate bounds a string to max runes without splitting one.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
