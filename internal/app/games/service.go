// Package games covers the game lifecycle around the turn engine: creation
// from a preset, read surfaces, and pending-action management.
package games

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"geopolis/internal/game"
	"geopolis/internal/store"
)

const (
	maxActionsPerTurn = 10
	maxActionLen      = 2000
	initialPopularity = 50
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Presets lists the scenarios a game can be started from.
func (s *Service) Presets(ctx context.Context) ([]store.Preset, error) {
	return s.store.ListPresets(ctx)
}

// Create starts a playthrough: clones the preset's nation roster into the
// game and seeds the gauges from the selected nation's baseline, except
// popularity which always starts at the midpoint.
func (s *Service) Create(ctx context.Context, actorID string, req CreateRequest) (*store.Game, error) {
	preset, err := s.store.GetPreset(ctx, req.PresetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}
	presetNations, err := s.store.ListPresetNations(ctx, preset.ID)
	if err != nil {
		return nil, err
	}

	var selected *store.PresetNation
	for i := range presetNations {
		if presetNations[i].SvgID == req.NationSvg {
			selected = &presetNations[i]
			break
		}
	}
	if selected == nil {
		return nil, ErrNationNotFound
	}

	difficulty := strings.TrimSpace(req.Difficulty)
	if difficulty == "" {
		difficulty = "normal"
	}

	g := &store.Game{
		ID:              store.NewID(),
		OwnerID:         actorID,
		PresetID:        preset.ID,
		SelectedCountry: selected.SvgID,
		Difficulty:      difficulty,
		Turn:            0,
		Date:            preset.StartingDate,
		StartingDate:    preset.StartingDate,
		Economy:         selected.Economy,
		Power:           selected.Power,
		Popularity:      initialPopularity,
		Trame:           "[]",
	}
	nations := make([]store.Nation, 0, len(presetNations))
	for _, pn := range presetNations {
		nations = append(nations, store.Nation{
			ID:         store.NewID(),
			GameID:     g.ID,
			SvgID:      pn.SvgID,
			Name:       pn.Name,
			Sovereign:  pn.Sovereign,
			IsPlayer:   pn.SvgID == selected.SvgID,
			Economy:    pn.Economy,
			Power:      pn.Power,
			Popularity: pn.Popularity,
		})
	}
	if err := s.store.CreateGame(ctx, g, nations); err != nil {
		return nil, err
	}
	log.Info().Str("game_id", g.ID).Str("preset", preset.Name).Str("country", g.SelectedCountry).Msg("game created")
	return g, nil
}

func (s *Service) List(ctx context.Context, actorID string) ([]store.Game, error) {
	return s.store.ListGames(ctx, actorID)
}

func (s *Service) Get(ctx context.Context, gameID, actorID string) (*store.Game, error) {
	return s.guardGame(ctx, gameID, actorID)
}

func (s *Service) Nations(ctx context.Context, gameID, actorID string) ([]store.Nation, error) {
	if _, err := s.guardGame(ctx, gameID, actorID); err != nil {
		return nil, err
	}
	return s.store.ListNations(ctx, gameID)
}

func (s *Service) Events(ctx context.Context, gameID, actorID string) ([]store.Event, error) {
	if _, err := s.guardGame(ctx, gameID, actorID); err != nil {
		return nil, err
	}
	return s.store.ListEvents(ctx, gameID)
}

func (s *Service) Indicators(ctx context.Context, gameID, actorID string) (*IndicatorsResponse, error) {
	g, err := s.guardGame(ctx, gameID, actorID)
	if err != nil {
		return nil, err
	}
	return &IndicatorsResponse{
		Turn:       g.Turn,
		Date:       g.Date,
		Economy:    g.Economy,
		Power:      g.Power,
		Popularity: g.Popularity,
		GameOver:   g.GameOver,
	}, nil
}

// Reactions returns one turn's flavor batch; turn < 0 means the last
// resolved turn.
func (s *Service) Reactions(ctx context.Context, gameID, actorID string, turn int) ([]store.Reaction, error) {
	g, err := s.guardGame(ctx, gameID, actorID)
	if err != nil {
		return nil, err
	}
	if turn < 0 {
		turn = g.Turn - 1
	}
	return s.store.ListReactions(ctx, gameID, turn)
}

// Overview flattens the advisor conversation and every country chat with
// its transcript.
func (s *Service) Overview(ctx context.Context, gameID, actorID string) (*ChatOverview, error) {
	if _, err := s.guardGame(ctx, gameID, actorID); err != nil {
		return nil, err
	}

	out := &ChatOverview{CountryChats: []CountryChatView{}}
	advisorChat, err := s.store.GetOrCreateAdvisorChat(ctx, gameID)
	if err != nil {
		return nil, err
	}
	advisorMsgs, err := s.store.ListAdvisorMessages(ctx, advisorChat.ID)
	if err != nil {
		return nil, err
	}
	out.Advisor = &AdvisorOverview{ChatID: advisorChat.ID, Messages: advisorMsgs}

	nations, err := s.store.ListNations(ctx, gameID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(nations))
	for _, n := range nations {
		names[n.ID] = n.Name
	}

	chats, err := s.store.ListChats(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for _, c := range chats {
		members, err := s.store.ListChatMembers(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		msgs, err := s.store.ListChatMessages(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		view := CountryChatView{Chat: c, Messages: msgs}
		for _, m := range members {
			view.Members = append(view.Members, ChatMemberView{
				MemberID:   m.ID,
				NationID:   m.NationID,
				NationName: names[m.NationID],
				Summary:    m.Summary,
				Left:       game.MemberLeft(m.Summary),
			})
		}
		out.CountryChats = append(out.CountryChats, view)
	}
	return out, nil
}

// SubmitActions records up to 10 non-empty directives for the current turn.
func (s *Service) SubmitActions(ctx context.Context, gameID, actorID string, descriptions []string) ([]store.Action, error) {
	g, err := s.guardGame(ctx, gameID, actorID)
	if err != nil {
		return nil, err
	}
	if g.GameOver {
		return nil, ErrGameOver
	}

	cleaned := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		d = strings.TrimSpace(d)
		if d == "" {
			return nil, ErrInvalidActions
		}
		cleaned = append(cleaned, game.Truncate(d, maxActionLen))
	}
	if len(cleaned) == 0 || len(cleaned) > maxActionsPerTurn {
		return nil, ErrInvalidActions
	}
	return s.store.InsertActions(ctx, gameID, actorID, g.Turn, cleaned)
}

// DeleteAction removes one of the caller's own directives, only while its
// turn is still unresolved.
func (s *Service) DeleteAction(ctx context.Context, gameID, actorID, actionID string) error {
	g, err := s.guardGame(ctx, gameID, actorID)
	if err != nil {
		return err
	}
	a, err := s.store.GetAction(ctx, actionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrActionNotFound
		}
		return err
	}
	if a.GameID != gameID || a.OwnerID != actorID {
		return ErrActionNotFound
	}
	if a.Turn != g.Turn {
		return ErrActionLocked
	}
	return s.store.DeleteAction(ctx, actionID)
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
