package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Reaction shapes are era-dependent: modern eras produce micro-blog posts
// with engagement counters, earlier eras plain tavern remarks.
const (
	ReactionTypeMicroblog = "microblog"
	ReactionTypeTavern    = "tavern"
)

// modernEraYear is the first starting year considered "modern".
const modernEraYear = 2010

const (
	maxReactionUsername = 100
	maxReactionContent  = 2000
)

type ReactionUpdate struct {
	Username string `json:"username"`
	Content  string `json:"content"`
	Likes    int    `json:"likes"`
	Retweets int    `json:"retweets"`
	Quotes   int    `json:"quotes"`
}

type reactionsPayload struct {
	Reactions []ReactionUpdate `json:"reactions"`
}

// ParseReactions extracts the reactions array from raw completion text.
func ParseReactions(raw string) ([]ReactionUpdate, error) {
	body := stripCodeFence(strings.TrimSpace(raw))
	var payload reactionsPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("invalid reactions response: %w", err)
	}
	if payload.Reactions == nil {
		return nil, fmt.Errorf("invalid reactions response: reactions array is missing")
	}
	out := make([]ReactionUpdate, 0, len(payload.Reactions))
	for _, r := range payload.Reactions {
		r.Username = Truncate(r.Username, maxReactionUsername)
		r.Content = Truncate(r.Content, maxReactionContent)
		out = append(out, r)
	}
	return out, nil
}

// ReactionTypeFor picks the reaction shape from a free-format starting date
// token; an unparsable year falls back to the tavern shape.
func ReactionTypeFor(startingDate string) string {
	if len(startingDate) >= 4 {
		if year, err := strconv.Atoi(startingDate[:4]); err == nil && year >= modernEraYear {
			return ReactionTypeMicroblog
		}
	}
	return ReactionTypeTavern
}
