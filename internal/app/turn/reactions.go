package turn

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"geopolis/internal/game"
	"geopolis/internal/llm"
)

type reactionsInput struct {
	ReactionType string             `json:"reactionType"`
	Date         string             `json:"date"`
	Country      string             `json:"country"`
	Difficulty   string             `json:"difficulty"`
	Events       []reactionEvent    `json:"events"`
	Actions      []game.ActionInput `json:"playerActions"`
	Trame        []game.TrameEntry  `json:"trame"`
}

type reactionEvent struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

// generateReactions runs the secondary flavor pass for the freshly
// committed turn. Best effort: a missing prompt asset skips the pass, any
// other failure is returned for logging only.
func (s *Service) generateReactions(ctx context.Context, gameID string, tc *game.TurnContext, commit *game.TurnCommit) error {
	prompt := s.assets.ReactionsPrompt()
	if prompt == "" {
		log.Debug().Str("game_id", gameID).Msg("no reactions prompt asset, skipping pass")
		return nil
	}

	reactionType := game.ReactionTypeFor(tc.StartingDate)
	in := reactionsInput{
		ReactionType: reactionType,
		Date:         commit.NextDate,
		Country:      tc.SelectedCountry,
		Difficulty:   tc.Difficulty,
		Actions:      tc.Actions,
		Trame:        tc.Trame,
	}
	for _, ec := range commit.Events {
		in.Events = append(in.Events, reactionEvent{Date: ec.Date, Summary: ec.Summary})
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	completion, err := s.llm.Complete(ctx, prompt, []llm.Message{{Role: llm.RoleUser, Content: "INPUT:\n" + string(payload)}})
	if err != nil {
		return fmt.Errorf("reactions completion: %w", err)
	}
	if completion.Usage.Total > 0 {
		if terr := s.store.AddTokensSpent(ctx, gameID, int64(completion.Usage.Total)); terr != nil {
			log.Warn().Err(terr).Str("game_id", gameID).Msg("token accounting failed")
		}
	}

	batch, err := game.ParseReactions(completion.Text)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}
	if err := s.store.InsertReactions(ctx, gameID, commit.Turn, reactionType, batch); err != nil {
		return fmt.Errorf("persist reactions: %w", err)
	}
	log.Debug().Str("game_id", gameID).Int("turn", commit.Turn).Int("count", len(batch)).
		Str("type", reactionType).Msg("reactions stored")
	return nil
}
