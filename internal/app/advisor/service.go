// Package advisor runs the free-form conversation with the player's
// in-house advisor.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"geopolis/internal/assets"
	"geopolis/internal/game"
	"geopolis/internal/llm"
	"geopolis/internal/store"
)

const (
	maxMessageLen = 2000
	maxContextLen = 5000
)

// defaultAdvisorPrompt backs presets that ship no advisor instruction.
const defaultAdvisorPrompt = `You are the player's trusted political advisor in a geopolitical simulation. Answer in character, briefly and concretely, grounded in the CONTEXT below. Plain text only.`

// AdvisorStore is the slice of the store the advisor needs.
type AdvisorStore interface {
	GetGame(ctx context.Context, id string) (*store.Game, error)
	GetPreset(ctx context.Context, id string) (*store.Preset, error)
	ListActions(ctx context.Context, gameID string, turn int) ([]store.Action, error)
	GetOrCreateAdvisorChat(ctx context.Context, gameID string) (*store.AdvisorChat, error)
	ListAdvisorMessages(ctx context.Context, advisorChatID string) ([]store.AdvisorMessage, error)
	InsertAdvisorMessage(ctx context.Context, m *store.AdvisorMessage) error
	UpdateAdvisorContext(ctx context.Context, advisorChatID, rolling string) error
	AddTokensSpent(ctx context.Context, gameID string, tokens int64) error
}

type Completer interface {
	Complete(ctx context.Context, system string, msgs []llm.Message) (llm.Completion, error)
}

type Service struct {
	store  AdvisorStore
	llm    Completer
	assets *assets.Library
}

func NewService(st AdvisorStore, completer Completer, lib *assets.Library) *Service {
	return &Service{store: st, llm: completer, assets: lib}
}

// Response carries both persisted sides of one advisor exchange.
type Response struct {
	PlayerMessage  store.AdvisorMessage `json:"player_message"`
	AdvisorMessage store.AdvisorMessage `json:"advisor_message"`
}

type advisorContext struct {
	Date      string             `json:"date"`
	Turn      int                `json:"turn"`
	Country   string             `json:"country"`
	Gauges    game.Gauges        `json:"gauges"`
	Trame     []game.TrameEntry  `json:"trame"`
	Diplomacy string             `json:"recentDiplomacy"`
	Actions   []game.ActionInput `json:"pendingActions"`
	Rolling   string             `json:"currentTurnContext"`
}

// Chat sends one player message to the advisor, persists both sides of the
// exchange, and extends the chat's bounded rolling context.
func (s *Service) Chat(ctx context.Context, gameID, actorID, text string) (*Response, error) {
	g, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if g.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	text = game.Truncate(text, maxMessageLen)

	preset, err := s.store.GetPreset(ctx, g.PresetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}

	chat, err := s.store.GetOrCreateAdvisorChat(ctx, gameID)
	if err != nil {
		return nil, err
	}
	history, err := s.store.ListAdvisorMessages(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	actions, err := s.store.ListActions(ctx, gameID, g.Turn)
	if err != nil {
		return nil, err
	}

	system, err := s.buildSystemPrompt(g, preset, chat, actions)
	if err != nil {
		return nil, err
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Sender == store.SenderAdvisor {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})

	completion, err := s.llm.Complete(ctx, system, msgs)
	if err != nil {
		return nil, fmt.Errorf("advisor completion: %w", err)
	}
	if completion.Usage.Total > 0 {
		if terr := s.store.AddTokensSpent(ctx, gameID, int64(completion.Usage.Total)); terr != nil {
			log.Warn().Err(terr).Str("game_id", gameID).Msg("token accounting failed")
		}
	}
	answer := game.Truncate(strings.TrimSpace(completion.Text), maxMessageLen)
	if answer == "" {
		return nil, fmt.Errorf("advisor returned an empty answer")
	}

	playerMsg := store.AdvisorMessage{AdvisorChatID: chat.ID, Sender: store.SenderUser, Content: text}
	if err := s.store.InsertAdvisorMessage(ctx, &playerMsg); err != nil {
		return nil, err
	}
	advisorMsg := store.AdvisorMessage{AdvisorChatID: chat.ID, Sender: store.SenderAdvisor, Content: answer}
	if err := s.store.InsertAdvisorMessage(ctx, &advisorMsg); err != nil {
		return nil, err
	}

	rolling := chat.Context
	entry := fmt.Sprintf("%s: player asked %q, advisor answered %q", g.Date, text, answer)
	if rolling != "" {
		rolling += "\n"
	}
	rolling = game.Truncate(rolling+entry, maxContextLen)
	if err := s.store.UpdateAdvisorContext(ctx, chat.ID, rolling); err != nil {
		log.Warn().Err(err).Str("game_id", gameID).Msg("advisor context not stored")
	}

	return &Response{PlayerMessage: playerMsg, AdvisorMessage: advisorMsg}, nil
}

func (s *Service) buildSystemPrompt(g *store.Game, preset *store.Preset, chat *store.AdvisorChat, actions []store.Action) (string, error) {
	actionInputs := make([]game.ActionInput, 0, len(actions))
	for _, a := range actions {
		actionInputs = append(actionInputs, game.ActionInput{ActionID: a.ID, Description: a.Description})
	}
	cc := advisorContext{
		Date:      g.Date,
		Turn:      g.Turn,
		Country:   g.SelectedCountry,
		Gauges:    game.Gauges{Economy: g.Economy, Power: g.Power, Popularity: g.Popularity},
		Trame:     game.ParseTrame(g.Trame),
		Diplomacy: g.AdvisorTrame,
		Actions:   actionInputs,
		Rolling:   chat.Context,
	}
	payload, err := json.Marshal(cc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if preset.Lore != "" {
		b.WriteString(preset.Lore)
		b.WriteString("\n\n")
	}
	if preset.AdvisorPrompt != "" {
		b.WriteString(preset.AdvisorPrompt)
	} else {
		b.WriteString(defaultAdvisorPrompt)
	}
	if text := s.assets.DifficultyPrompt(g.Difficulty); text != "" {
		b.WriteString("\n\n")
		b.WriteString(text)
	}
	b.WriteString("\n\nCONTEXT:\n")
	b.Write(payload)
	return b.String(), nil
}
