package store

import "time"

// Game is the root aggregate: one playthrough from one owner's point of
// view. Trame and AdvisorTrame are opaque text blobs interpreted by the
// game package.
type Game struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	PresetID        string    `json:"preset_id"`
	SelectedCountry string    `json:"selected_country"` // svgId of the player's nation
	Difficulty      string    `json:"difficulty"`
	Turn            int       `json:"turn"`
	Date            string    `json:"date"`
	StartingDate    string    `json:"starting_date"`
	Economy         int       `json:"economy"`
	Power           int       `json:"power"`
	Popularity      int       `json:"popularity"`
	Trame           string    `json:"-"`
	AdvisorTrame    string    `json:"-"`
	GameOver        bool      `json:"game_over"`
	TokensSpent     int64     `json:"tokens_spent"`
	LastPlayedAt    time.Time `json:"last_played_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Nation is one country cloned into a game from its preset. Owner is set
// (and Sovereign cleared) when another nation annexes it. Summary is the
// rolling diplomatic memory the world engine maintains about this nation.
type Nation struct {
	ID         string  `json:"id"`
	GameID     string  `json:"game_id"`
	SvgID      string  `json:"svg_id"`
	Name       string  `json:"name"`
	Sovereign  bool    `json:"sovereign"`
	Owner      *string `json:"owner,omitempty"`
	IsPlayer   bool    `json:"is_player"`
	Economy    int     `json:"economy"`
	Power      int     `json:"power"`
	Popularity int     `json:"popularity"`
	Summary    string  `json:"-"`
}

type Event struct {
	ID            string    `json:"id"`
	GameID        string    `json:"game_id"`
	Turn          int       `json:"turn"`
	Date          string    `json:"date"`
	Summary       string    `json:"summary"`
	Description   string    `json:"description"`
	ChatInitiated bool      `json:"chat_initiated"`
	ChatContent   string    `json:"chat_content,omitempty"`
	ChatID        *string   `json:"chat_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Action is one player directive pending for the current turn.
type Action struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	OwnerID     string    `json:"owner_id"`
	Turn        int       `json:"turn"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Chat struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMember links a nation into a diplomatic chat. Summary is the member's
// rolling per-chat memory; a leave marker inside it retires the member from
// future auto-response rounds.
type ChatMember struct {
	ID       string `json:"id"`
	ChatID   string `json:"chat_id"`
	NationID string `json:"nation_id"`
	Summary  string `json:"summary"`
}

// ChatMessage is one line of a chat transcript. Sender is "USER" for the
// player or "COUNTRY" for a nation, in which case NationID is set.
type ChatMessage struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Sender    string    `json:"sender"`
	NationID  *string   `json:"nation_id,omitempty"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	Tokens    int       `json:"tokens"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	SenderUser    = "USER"
	SenderCountry = "COUNTRY"
	SenderAdvisor = "ADVISOR"
)

// AdvisorChat is the per-game free-form advisor conversation, one per game.
type AdvisorChat struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Context   string    `json:"context"` // bounded rolling current-turn context
	CreatedAt time.Time `json:"created_at"`
}

type AdvisorMessage struct {
	ID            string    `json:"id"`
	AdvisorChatID string    `json:"advisor_chat_id"`
	Sender        string    `json:"sender"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

type Reaction struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Turn      int       `json:"turn"`
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Retweets  int       `json:"retweets"`
	Quotes    int       `json:"quotes"`
	CreatedAt time.Time `json:"created_at"`
}

// Preset is a scenario template games are created from.
type Preset struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Lore          string    `json:"lore"`
	EventPrompt   string    `json:"-"`
	AdvisorPrompt string    `json:"-"`
	StartingDate  string    `json:"starting_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type PresetNation struct {
	ID         string `json:"id"`
	PresetID   string `json:"preset_id"`
	SvgID      string `json:"svg_id"`
	Name       string `json:"name"`
	Sovereign  bool   `json:"sovereign"`
	Economy    int    `json:"economy"`
	Power      int    `json:"power"`
	Popularity int    `json:"popularity"`
}
