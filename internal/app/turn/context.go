package turn

import (
	"context"
	"fmt"

	"geopolis/internal/game"
	"geopolis/internal/store"
)

// assembleContext gathers everything one turn advance needs from persisted
// state. Read-only; the returned record feeds both the world-engine prompt
// and the commit derivation.
func (s *Service) assembleContext(ctx context.Context, g *store.Game, preset *store.Preset) (*game.TurnContext, error) {
	nations, err := s.store.ListNations(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("list nations: %w", err)
	}
	roster := make([]game.NationRef, 0, len(nations))
	byID := make(map[string]*store.Nation, len(nations))
	for i := range nations {
		n := &nations[i]
		byID[n.ID] = n
		roster = append(roster, game.NationRef{ID: n.ID, Name: n.Name, SvgID: n.SvgID, Sovereign: n.Sovereign})
	}

	actions, err := s.store.ListActions(ctx, g.ID, g.Turn)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	actionInputs := make([]game.ActionInput, 0, len(actions))
	for _, a := range actions {
		actionInputs = append(actionInputs, game.ActionInput{ActionID: a.ID, Description: a.Description})
	}

	chats, err := s.store.ListChats(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	var chatEntries []game.ChatContextEntry
	for _, c := range chats {
		members, err := s.store.ListChatMembers(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list chat members: %w", err)
		}
		msgs, err := s.store.ListChatMessages(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list chat messages: %w", err)
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
		for _, m := range members {
			n, ok := byID[m.NationID]
			if !ok {
				continue
			}
			chatEntries = append(chatEntries, game.ChatContextEntry{
				Country:  n.SvgID,
				Summary:  n.Summary,
				Messages: transcript,
			})
		}
	}

	return &game.TurnContext{
		Turn:            g.Turn,
		Date:            g.Date,
		StartingDate:    g.StartingDate,
		SelectedCountry: g.SelectedCountry,
		Difficulty:      g.Difficulty,
		DifficultyText:  s.assets.DifficultyPrompt(g.Difficulty),
		Lore:            preset.Lore,
		EventPrompt:     preset.EventPrompt,
		Gauges:          game.Gauges{Economy: g.Economy, Power: g.Power, Popularity: g.Popularity},
		Trame:           game.ParseTrame(g.Trame),
		TrameRaw:        g.Trame,
		Actions:         actionInputs,
		CountryChats:    chatEntries,
		AdvisorSummary:  g.AdvisorTrame,
		AdvisorTrame:    g.AdvisorTrame,
		Nations:         roster,
	}, nil
}
