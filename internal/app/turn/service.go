// Package turn orchestrates turn advancement: context assembly, the
// world-engine completion with bounded corrective retries, the atomic
// commit, and the best-effort reactions pass.
package turn

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"geopolis/internal/assets"
	"geopolis/internal/game"
	"geopolis/internal/llm"
	"geopolis/internal/store"
)

// maxAttempts bounds the world-engine completion loop.
const maxAttempts = 3

// TurnStore is the slice of the store the orchestrator reads and writes.
type TurnStore interface {
	GetGame(ctx context.Context, id string) (*store.Game, error)
	GetPreset(ctx context.Context, id string) (*store.Preset, error)
	ListNations(ctx context.Context, gameID string) ([]store.Nation, error)
	ListActions(ctx context.Context, gameID string, turn int) ([]store.Action, error)
	ListChats(ctx context.Context, gameID string) ([]store.Chat, error)
	ListChatMembers(ctx context.Context, chatID string) ([]store.ChatMember, error)
	ListChatMessages(ctx context.Context, chatID string) ([]store.ChatMessage, error)
	ApplyTurn(ctx context.Context, gameID string, commit *game.TurnCommit) (*store.TurnResult, error)
	InsertReactions(ctx context.Context, gameID string, turn int, reactionType string, batch []game.ReactionUpdate) error
	AddTokensSpent(ctx context.Context, gameID string, tokens int64) error
}

// Completer is the completion boundary; see internal/llm.
type Completer interface {
	Complete(ctx context.Context, system string, msgs []llm.Message) (llm.Completion, error)
}

type Service struct {
	store  TurnStore
	llm    Completer
	assets *assets.Library
}

func NewService(st TurnStore, completer Completer, lib *assets.Library) *Service {
	return &Service{store: st, llm: completer, assets: lib}
}

// Advance runs one full turn advance for the game. The model round-trips
// happen strictly before the atomic commit; the reactions pass strictly
// after, and its failure never unwinds the committed result.
func (s *Service) Advance(ctx context.Context, gameID, actorID string) (*AdvanceResponse, error) {
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
	if g.GameOver {
		return nil, ErrGameOver
	}
	preset, err := s.store.GetPreset(ctx, g.PresetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}

	tc, err := s.assembleContext(ctx, g, preset)
	if err != nil {
		return nil, err
	}
	input, err := buildWorldInput(tc)
	if err != nil {
		return nil, err
	}

	update, tokens, err := s.completeWorldUpdate(ctx, tc, input)
	if tokens > 0 {
		if terr := s.store.AddTokensSpent(ctx, gameID, tokens); terr != nil {
			log.Warn().Err(terr).Str("game_id", gameID).Msg("token accounting failed")
		}
	}
	if err != nil {
		return nil, err
	}

	commit, warnings := game.BuildTurnCommit(tc, update)
	for _, w := range warnings {
		log.Warn().Str("game_id", gameID).Int("turn", tc.Turn).Msg(w)
	}

	result, err := s.store.ApplyTurn(ctx, gameID, commit)
	if err != nil {
		return nil, fmt.Errorf("apply turn: %w", err)
	}
	log.Info().Str("game_id", gameID).Int("turn", commit.NextTurn).
		Int("events", len(commit.Events)).Bool("game_over", commit.GameOver).
		Msg("turn committed")

	resp := buildAdvanceResponse(commit, result)

	// Secondary pass, after the commit. Errors are absorbed.
	if err := s.generateReactions(ctx, gameID, tc, commit); err != nil {
		log.Warn().Err(err).Str("game_id", gameID).Msg("reactions pass failed")
	}

	return resp, nil
}

// completeWorldUpdate drives the model until it produces a valid world
// update, feeding each rejection back as a corrective directive. The
// returned token count covers all attempts, failed ones included.
func (s *Service) completeWorldUpdate(ctx context.Context, tc *game.TurnContext, input string) (*game.WorldUpdate, int64, error) {
	var tokens int64
	corrective := ""
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		system := buildSystemPrompt(tc, corrective)
		completion, err := s.llm.Complete(ctx, system, []llm.Message{{Role: llm.RoleUser, Content: input}})
		if err != nil {
			return nil, tokens, fmt.Errorf("world engine completion: %w", err)
		}
		tokens += int64(completion.Usage.Total)

		update, err := game.ParseWorldUpdate(completion.Text)
		if err == nil {
			err = game.ValidateWorldUpdate(update)
		}
		if err == nil {
			return update, tokens, nil
		}
		lastErr = err
		corrective = err.Error()
		log.Warn().Int("attempt", attempt).Err(err).Msg("world update rejected")
	}
	return nil, tokens, fmt.Errorf("%w after %d attempts: %v", ErrModelRejected, maxAttempts, lastErr)
}

func buildAdvanceResponse(commit *game.TurnCommit, result *store.TurnResult) *AdvanceResponse {
	resp := &AdvanceResponse{
		Turn:          commit.NextTurn,
		Date:          commit.NextDate,
		UpdatedGauges: commit.Gauges,
		GameOver:      commit.GameOver,
	}
	for i, ec := range commit.Events {
		er := EventResult{
			Date:          ec.Date,
			Summary:       ec.Summary,
			Description:   ec.Description,
			ChatInitiated: ec.ChatInitiated,
			ChatContent:   ec.ChatContent,
		}
		if i < len(result.Events) {
			er.EventID = result.Events[i].EventID
			er.ChatID = result.Events[i].ChatID
		}
		if ec.NewChat != nil {
			er.CountryInvolved = ec.NewChat.NationNames
		}
		resp.Events = append(resp.Events, er)
	}
	for _, bc := range commit.BorderChanges {
		resp.BorderChanges = append(resp.BorderChanges, BorderResult{
			NationID:  bc.NationID,
			Owner:     bc.Owner,
			Sovereign: bc.Sovereign,
		})
	}
	return resp
}
