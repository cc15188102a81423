package chat

import (
	"geopolis/internal/game"
	"geopolis/internal/store"
)

// SendResponse carries the stored player message and the replies generated
// in the same round, in member order.
type SendResponse struct {
	StoredMessage    store.ChatMessage   `json:"stored_message"`
	GeneratedReplies []store.ChatMessage `json:"generated_replies"`
}

// nationProfile is the view of a nation embedded in the persona payload.
type nationProfile struct {
	Name       string  `json:"name"`
	Sovereign  bool    `json:"sovereign"`
	Owner      *string `json:"owner"`
	SvgID      string  `json:"svgId"`
	Economy    int     `json:"economy,omitempty"`
	Power      int     `json:"power,omitempty"`
	Popularity int     `json:"popularity,omitempty"`
}

// replyInput is the JSON context for one member's reply completion.
type replyInput struct {
	ChatContext  string                   `json:"chatContext"`
	Date         string                   `json:"date"`
	Trame        []game.TrameEntry        `json:"trame"`
	Transcript   []game.TranscriptMessage `json:"transcript"`
	ActingNation nationProfile            `json:"actingNation"`
	Targets      []nationProfile          `json:"targetNations"`
}
