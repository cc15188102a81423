// Package game holds the pure rules of the simulation: the world-update
// schema the model must satisfy, the diplomatic consistency checks, trame
// handling, nation matching, and the derivation of a turn's write set. No
// package here performs I/O.
package game

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Gauges are the three scalar indicators of the player's standing. Values
// are carried verbatim from the validated model output; the 0-100 range is
// advisory and not clamped here.
type Gauges struct {
	Economy    int `json:"economy"`
	Power      int `json:"power"`
	Popularity int `json:"popularity"`
}

// EventUpdate is one narrated happening in a world update. ChatContent and
// CountryInvolved stay raw so validation can tell an explicit null from an
// absent key.
type EventUpdate struct {
	Date            string          `json:"date"`
	Summary         string          `json:"summary"`
	Description     string          `json:"description"`
	ChatInitiated   *bool           `json:"chatInitiated"`
	ChatContent     json.RawMessage `json:"chatContent"`
	CountryInvolved json.RawMessage `json:"countryInvolved"`
}

// ChatInitiatedTrue reports whether the event declares a diplomatic contact.
func (e *EventUpdate) ChatInitiatedTrue() bool {
	return e.ChatInitiated != nil && *e.ChatInitiated
}

// ChatContentString decodes chatContent when it is a string.
func (e *EventUpdate) ChatContentString() (string, bool) {
	var s string
	if err := json.Unmarshal(e.ChatContent, &s); err != nil {
		return "", false
	}
	return s, true
}

// CountriesInvolved decodes countryInvolved when it is a string array.
func (e *EventUpdate) CountriesInvolved() ([]string, bool) {
	var names []string
	if err := json.Unmarshal(e.CountryInvolved, &names); err != nil {
		return nil, false
	}
	return names, true
}

type GaugeUpdate struct {
	Economy    *float64 `json:"economy"`
	Power      *float64 `json:"power"`
	Popularity *float64 `json:"popularity"`
}

// Values converts a complete gauge update to integral gauges. Call only
// after validation has established all three keys are present.
func (g *GaugeUpdate) Values() Gauges {
	return Gauges{
		Economy:    int(*g.Economy),
		Power:      int(*g.Power),
		Popularity: int(*g.Popularity),
	}
}

type MemoryItem struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type AdvisorSummary struct {
	Date    string       `json:"date"`
	Summary string       `json:"summary"`
	Memory  []MemoryItem `json:"memory,omitempty"`
}

type ChatSummaryUpdate struct {
	Country string `json:"country"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
}

type BorderChange struct {
	From        string  `json:"from"`
	To          *string `json:"to"`
	Description string  `json:"description,omitempty"`
}

// WorldUpdate is the structured object the model must return to describe a
// turn's consequences. Pointer fields distinguish "present" from "absent"
// for the required-key check.
type WorldUpdate struct {
	Events              []EventUpdate       `json:"events"`
	UpdatedGauges       *GaugeUpdate        `json:"updatedGauges"`
	AdvisorSummary      *AdvisorSummary     `json:"advisorSummary"`
	CountryChatsSummary []ChatSummaryUpdate `json:"countryChatsSummary"`
	BorderChanges       []BorderChange      `json:"borderChanges"`
	GameOver            bool                `json:"gameOver"`
}

var allowedWorldUpdateKeys = map[string]bool{
	"events":              true,
	"updatedGauges":       true,
	"advisorSummary":      true,
	"countryChatsSummary": true,
	"borderChanges":       true,
	"gameOver":            true,
}

// ParseWorldUpdate strips at most one fenced code block from the raw
// completion text and decodes it, rejecting unknown top-level keys.
func ParseWorldUpdate(raw string) (*WorldUpdate, error) {
	body := stripCodeFence(strings.TrimSpace(raw))

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	for key := range top {
		if !allowedWorldUpdateKeys[key] {
			return nil, fmt.Errorf("unexpected top-level key %q", key)
		}
	}

	var u WorldUpdate
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		return nil, fmt.Errorf("response does not match the world update schema: %w", err)
	}
	return &u, nil
}

var fenceRE = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// stripCodeFence unwraps a single markdown code fence if one is present.
func stripCodeFence(s string) string {
	if m := fenceRE.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
