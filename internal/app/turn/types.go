package turn

import "geopolis/internal/game"

// AdvanceResponse is the committed result of one turn advance.
type AdvanceResponse struct {
	Turn          int            `json:"turn"`
	Date          string         `json:"date"`
	Events        []EventResult  `json:"events"`
	UpdatedGauges game.Gauges    `json:"updated_gauges"`
	BorderChanges []BorderResult `json:"border_changes"`
	GameOver      bool           `json:"game_over"`
}

// EventResult is one committed event with its diplomatic chat linkage.
type EventResult struct {
	EventID         string   `json:"event_id"`
	Date            string   `json:"date"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	ChatInitiated   bool     `json:"chat_initiated"`
	ChatContent     string   `json:"chat_content,omitempty"`
	ChatID          string   `json:"chat_id,omitempty"`
	CountryInvolved []string `json:"country_involved,omitempty"`
}

type BorderResult struct {
	NationID  string  `json:"nation_id"`
	Owner     *string `json:"owner"`
	Sovereign bool    `json:"sovereign"`
}

// worldInput is the JSON context payload handed to the world engine.
type worldInput struct {
	Turn               int                     `json:"turn"`
	CurrentDate        string                  `json:"currentDate"`
	StartingDate       string                  `json:"startingDate"`
	PlayerCountry      string                  `json:"playerCountry"`
	Gauges             game.Gauges             `json:"gauges"`
	Trame              []game.TrameEntry       `json:"trame"`
	PlayerActions      []game.ActionInput      `json:"playerActions"`
	CountryChats       []game.ChatContextEntry `json:"countryChats"`
	AdvisorSummary     string                  `json:"advisorSummary"`
	AvailableCountries []string                `json:"availableCountries"`
}
