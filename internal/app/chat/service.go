// Package chat drives diplomatic conversations: player-created chats and
// the sequential member-reply rounds after each player message.
package chat

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
	maxMembers    = 5
	maxReplyTries = 3
	maxMessageLen = 2000
)

// defaultPersonaPrompt is used when no prompts/chat.txt asset is shipped.
const defaultPersonaPrompt = `You speak as the acting nation in a diplomatic conversation of a geopolitical simulation. Stay in character, answer the latest message in the transcript, and keep replies short.

Respond with a single JSON object and nothing else: {"message": string, "leaveAfterTalking": boolean, "leaveDate": string or null}. Set "leaveAfterTalking" to true only if your nation is done with this conversation for good; "leaveDate" is the in-world date of departure, null otherwise.`

// ChatStore is the slice of the store the chat engine needs.
type ChatStore interface {
	GetGame(ctx context.Context, id string) (*store.Game, error)
	GetChat(ctx context.Context, id string) (*store.Chat, error)
	CreateChat(ctx context.Context, gameID, chatContext string, nationIDs []string) (*store.Chat, error)
	ListNations(ctx context.Context, gameID string) ([]store.Nation, error)
	ListChatMembers(ctx context.Context, chatID string) ([]store.ChatMember, error)
	ListChatMessages(ctx context.Context, chatID string) ([]store.ChatMessage, error)
	InsertChatMessage(ctx context.Context, m *store.ChatMessage) error
	UpdateChatMemberSummary(ctx context.Context, memberID, summary string) error
	AddTokensSpent(ctx context.Context, gameID string, tokens int64) error
}

type Completer interface {
	Complete(ctx context.Context, system string, msgs []llm.Message) (llm.Completion, error)
}

type Service struct {
	store  ChatStore
	llm    Completer
	assets *assets.Library
}

func NewService(st ChatStore, completer Completer, lib *assets.Library) *Service {
	return &Service{store: st, llm: completer, assets: lib}
}

// Create opens a player-initiated chat with 1 to 5 distinct non-player
// nations of the game.
func (s *Service) Create(ctx context.Context, gameID, actorID string, nationIDs []string) (*store.Chat, error) {
	g, err := s.guardGame(ctx, gameID, actorID)
	if err != nil {
		return nil, err
	}
	if len(nationIDs) < 1 || len(nationIDs) > maxMembers {
		return nil, ErrInvalidMembers
	}

	nations, err := s.store.ListNations(ctx, gameID)
	if err != nil {
		return nil, err
	}
	byID := nationsByID(nations)
	seen := make(map[string]bool, len(nationIDs))
	for _, id := range nationIDs {
		n, ok := byID[id]
		if !ok || n.IsPlayer || seen[id] {
			return nil, ErrInvalidMembers
		}
		seen[id] = true
	}

	chatContext := fmt.Sprintf("Chat opened by the player on %s", g.Date)
	return s.store.CreateChat(ctx, gameID, chatContext, nationIDs)
}

// SendMessage stores the player's message and then drives one sequential
// reply round: each active non-player member answers once, re-reading the
// transcript (including replies generated earlier in the same round) before
// its call. Per-member failures are logged and the round continues.
func (s *Service) SendMessage(ctx context.Context, gameID, chatID, actorID, text string) (*SendResponse, error) {
	g, err := s.guardGame(ctx, gameID, actorID)
	if err != nil {
		return nil, err
	}
	c, err := s.store.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if c.GameID != gameID {
		return nil, ErrChatNotFound
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	stored := store.ChatMessage{
		ChatID:  chatID,
		Sender:  store.SenderUser,
		Content: game.Truncate(text, maxMessageLen),
		Date:    g.Date,
	}
	if err := s.store.InsertChatMessage(ctx, &stored); err != nil {
		return nil, err
	}

	members, err := s.store.ListChatMembers(ctx, chatID)
	if err != nil {
		return nil, err
	}
	nations, err := s.store.ListNations(ctx, gameID)
	if err != nil {
		return nil, err
	}
	byID := nationsByID(nations)

	resp := &SendResponse{StoredMessage: stored}
	var tokens int64
	for _, m := range members {
		nation, ok := byID[m.NationID]
		if !ok || nation.IsPlayer || game.MemberLeft(m.Summary) {
			continue
		}
		reply, used, err := s.generateMemberReply(ctx, g, c, m, nation, byID, members)
		tokens += used
		if err != nil {
			log.Warn().Err(err).Str("chat_id", chatID).Str("nation", nation.Name).Msg("member reply failed")
			continue
		}

		msg := store.ChatMessage{
			ChatID:   chatID,
			Sender:   store.SenderCountry,
			NationID: &nation.ID,
			Content:  reply.Message,
			Date:     g.Date,
			Tokens:   int(used),
		}
		if err := s.store.InsertChatMessage(ctx, &msg); err != nil {
			return nil, err
		}
		resp.GeneratedReplies = append(resp.GeneratedReplies, msg)

		if reply.LeaveAfterTalking {
			date := g.Date
			if reply.LeaveDate != nil && *reply.LeaveDate != "" {
				date = *reply.LeaveDate
			}
			if err := s.store.UpdateChatMemberSummary(ctx, m.ID, game.AppendLeaveMarker(m.Summary, date)); err != nil {
				log.Warn().Err(err).Str("chat_id", chatID).Str("nation", nation.Name).Msg("leave marker not stored")
			}
		}
	}

	if tokens > 0 {
		if err := s.store.AddTokensSpent(ctx, gameID, tokens); err != nil {
			log.Warn().Err(err).Str("game_id", gameID).Msg("token accounting failed")
		}
	}
	return resp, nil
}

// generateMemberReply re-reads the transcript and drives the model for one
// member, with bounded retries and no corrective augmentation between
// attempts.
func (s *Service) generateMemberReply(ctx context.Context, g *store.Game, c *store.Chat, member store.ChatMember, nation *store.Nation, byID map[string]*store.Nation, members []store.ChatMember) (*game.ChatReply, int64, error) {
	msgs, err := s.store.ListChatMessages(ctx, c.ID)
	if err != nil {
		return nil, 0, err
	}
	transcript := make([]game.TranscriptMessage, 0, len(msgs))
	for _, m := range msgs {
		tm := game.TranscriptMessage{Speaker: m.Sender, Message: m.Content, Date: m.Date}
		if m.NationID != nil {
			if n, ok := byID[*m.NationID]; ok {
				tm.Country = n.Name
			}
		}
		transcript = append(transcript, tm)
	}

	var targets []nationProfile
	for _, other := range members {
		n, ok := byID[other.NationID]
		if !ok || n.ID == nation.ID {
			continue
		}
		targets = append(targets, nationProfile{
			Name: n.Name, Sovereign: n.Sovereign, Owner: n.Owner, SvgID: n.SvgID,
			Economy: n.Economy, Power: n.Power, Popularity: n.Popularity,
		})
	}
	in := replyInput{
		ChatContext: c.Context,
		Date:        g.Date,
		Trame:       game.ParseTrame(g.Trame),
		Transcript:  transcript,
		ActingNation: nationProfile{
			Name: nation.Name, Sovereign: nation.Sovereign, Owner: nation.Owner, SvgID: nation.SvgID,
		},
		Targets: targets,
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, 0, err
	}

	system := s.personaPrompt(g.Difficulty)
	var tokens int64
	var lastErr error
	for attempt := 1; attempt <= maxReplyTries; attempt++ {
		completion, err := s.llm.Complete(ctx, system, []llm.Message{{Role: llm.RoleUser, Content: "INPUT:\n" + string(payload)}})
		if err != nil {
			return nil, tokens, err
		}
		tokens += int64(completion.Usage.Total)

		reply, err := game.ParseChatReply(completion.Text)
		if err == nil {
			return reply, tokens, nil
		}
		lastErr = err
	}
	return nil, tokens, fmt.Errorf("reply rejected after %d attempts: %w", maxReplyTries, lastErr)
}

func (s *Service) personaPrompt(difficulty string) string {
	persona := s.assets.ChatPrompt()
	if persona == "" {
		persona = defaultPersonaPrompt
	}
	if text := s.assets.DifficultyPrompt(difficulty); text != "" {
		return text + "\n\n" + persona
	}
	return persona
}

func (s *Service) guardGame(ctx context.Context, gameID, actorID string) (*store.Game, error) {
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
	return g, nil
}

func nationsByID(nations []store.Nation) map[string]*store.Nation {
	byID := make(map[string]*store.Nation, len(nations))
	for i := range nations {
		byID[nations[i].ID] = &nations[i]
	}
	return byID
}
