package games

import "geopolis/internal/store"

type CreateRequest struct {
	PresetID   string `json:"preset_id"`
	NationSvg  string `json:"nation_svg_id"`
	Difficulty string `json:"difficulty"`
}

// IndicatorsResponse is the gauge snapshot of a game.
type IndicatorsResponse struct {
	Turn       int    `json:"turn"`
	Date       string `json:"date"`
	Economy    int    `json:"economy"`
	Power      int    `json:"power"`
	Popularity int    `json:"popularity"`
	GameOver   bool   `json:"game_over"`
}

// ChatOverview flattens a game's conversations for one read.
type ChatOverview struct {
	Advisor      *AdvisorOverview  `json:"advisor,omitempty"`
	CountryChats []CountryChatView `json:"country_chats"`
}

type AdvisorOverview struct {
	ChatID   string                 `json:"chat_id"`
	Messages []store.AdvisorMessage `json:"messages"`
}

type CountryChatView struct {
	Chat     store.Chat          `json:"chat"`
	Members  []ChatMemberView    `json:"members"`
	Messages []store.ChatMessage `json:"messages"`
}

type ChatMemberView struct {
	MemberID   string `json:"member_id"`
	NationID   string `json:"nation_id"`
	NationName string `json:"nation_name"`
	Summary    string `json:"summary"`
	Left       bool   `json:"left"`
}
