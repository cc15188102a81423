package store_test

import (
	"context"
	"errors"
	"testing"

	"geopolis/internal/game"
	"geopolis/internal/store"
	"geopolis/internal/testutil"
)

func seedPreset(t *testing.T, st *store.Store, ctx context.Context) string {
	t.Helper()
	presetID := store.NewID()
	_, err := st.Pool.Exec(ctx, `INSERT INTO presets (id, name, lore, event_prompt, advisor_prompt, starting_date)
		VALUES ($1,'Modern Europe','lore','events prompt','advisor prompt','2021-01-01')`, presetID)
	if err != nil {
		t.Fatalf("seed preset: %v", err)
	}
	return presetID
}

func seedGame(t *testing.T, st *store.Store, ctx context.Context) (*store.Game, []store.Nation) {
	t.Helper()
	presetID := seedPreset(t, st, ctx)
	g := &store.Game{
		ID: store.NewID(), OwnerID: "user-1", PresetID: presetID, SelectedCountry: "fr",
		Difficulty: "normal", Turn: 5, Date: "2021-01-01", StartingDate: "2021-01-01",
		Economy: 50, Power: 50, Popularity: 50, Trame: "[]",
	}
	nations := []store.Nation{
		{ID: store.NewID(), GameID: g.ID, SvgID: "fr", Name: "France", Sovereign: true, IsPlayer: true, Economy: 50, Power: 50, Popularity: 50},
		{ID: store.NewID(), GameID: g.ID, SvgID: "de", Name: "Germany", Sovereign: true, Economy: 55, Power: 60, Popularity: 45},
		{ID: store.NewID(), GameID: g.ID, SvgID: "ua", Name: "Ukraine", Sovereign: true, Economy: 40, Power: 35, Popularity: 55},
	}
	if err := st.CreateGame(ctx, g, nations); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g, nations
}

func TestCreateAndGetGame(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, _ := seedGame(t, st, ctx)
	got, err := st.GetGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Turn != 5 || got.SelectedCountry != "fr" || got.OwnerID != "user-1" {
		t.Fatalf("got = %+v", got)
	}

	nations, err := st.ListNations(ctx, g.ID)
	if err != nil {
		t.Fatalf("list nations: %v", err)
	}
	if len(nations) != 3 {
		t.Fatalf("nations = %+v", nations)
	}

	if _, err := st.GetGame(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestApplyTurn(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, nations := seedGame(t, st, ctx)
	germany := nations[1]
	ukraine := nations[2]

	owner := "Germany"
	commit := &game.TurnCommit{
		Turn: 5, NextTurn: 6, NextDate: "2021-01-12",
		Gauges: game.Gauges{Economy: 58, Power: 42, Popularity: 50},
		Trame:  `[{"date":"2021-01-10","summary":"a"}]`,
		Events: []game.EventCommit{
			{Date: "2021-01-10", Summary: "a", Description: "x"},
			{
				Date: "2021-01-12", Summary: "talks", Description: "y",
				ChatInitiated: true, ChatContent: "we should talk",
				NewChat: &game.ChatCreate{
					Context:        "Chat opened automatically after the event of 2021-01-12",
					NationIDs:      []string{germany.ID},
					NationNames:    []string{germany.Name},
					OpeningNation:  germany.Name,
					OpeningMessage: "we should talk",
					Date:           "2021-01-12",
				},
			},
		},
		MemberSummaries: []game.MemberSummaryUpsert{{NationID: germany.ID, Summary: "tense"}},
		AdvisorTrame:    "quiet turn",
		BorderChanges:   []game.BorderResolution{{NationID: ukraine.ID, Owner: &owner, Sovereign: false}},
	}

	result, err := st.ApplyTurn(ctx, g.ID, commit)
	if err != nil {
		t.Fatalf("apply turn: %v", err)
	}
	if len(result.Events) != 2 || result.Events[0].ChatID != "" || result.Events[1].ChatID == "" {
		t.Fatalf("result = %+v", result)
	}

	got, err := st.GetGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Turn != 6 || got.Date != "2021-01-12" || got.Economy != 58 || got.AdvisorTrame != "quiet turn" {
		t.Fatalf("game = %+v", got)
	}

	events, err := st.ListEvents(ctx, g.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 || events[1].ChatID == nil {
		t.Fatalf("events = %+v", events)
	}

	msgs, err := st.ListChatMessages(ctx, *events[1].ChatID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Sender != store.SenderCountry || msgs[0].Content != "we should talk" {
		t.Fatalf("msgs = %+v", msgs)
	}

	gotGermany, err := st.GetNation(ctx, germany.ID)
	if err != nil {
		t.Fatalf("get nation: %v", err)
	}
	if gotGermany.Summary != "tense" {
		t.Fatalf("germany = %+v", gotGermany)
	}
	gotUkraine, err := st.GetNation(ctx, ukraine.ID)
	if err != nil {
		t.Fatalf("get nation: %v", err)
	}
	if gotUkraine.Sovereign || gotUkraine.Owner == nil || *gotUkraine.Owner != "Germany" {
		t.Fatalf("ukraine = %+v", gotUkraine)
	}
}

func TestApplyTurnConflict(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, _ := seedGame(t, st, ctx)
	commit := &game.TurnCommit{Turn: 9, NextTurn: 10, NextDate: "2021-01-02"}
	if _, err := st.ApplyTurn(ctx, g.ID, commit); !errors.Is(err, store.ErrTurnConflict) {
		t.Fatalf("err = %v", err)
	}
}

func TestApplyTurnRollsBackOnFailure(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, _ := seedGame(t, st, ctx)
	commit := &game.TurnCommit{
		Turn: 5, NextTurn: 6, NextDate: "2021-01-10",
		Trame: "[]",
		Events: []game.EventCommit{
			{Date: "2021-01-10", Summary: "a", Description: "x"},
			{
				Date: "2021-01-11", Summary: "b", Description: "y",
				ChatInitiated: true, ChatContent: "c",
				// Unknown nation id violates the member foreign key; the
				// whole turn must roll back, events included.
				NewChat: &game.ChatCreate{NationIDs: []string{"no-such-nation"}, OpeningMessage: "c", Date: "2021-01-11"},
			},
		},
	}

	if _, err := st.ApplyTurn(ctx, g.ID, commit); err == nil {
		t.Fatal("expected failure")
	}

	events, err := st.ListEvents(ctx, g.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events = %+v", events)
	}
	got, err := st.GetGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Turn != 5 {
		t.Fatalf("turn = %d", got.Turn)
	}
}

func TestActionsLifecycle(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, _ := seedGame(t, st, ctx)
	inserted, err := st.InsertActions(ctx, g.ID, g.OwnerID, g.Turn, []string{"raise tariffs", "open talks"})
	if err != nil {
		t.Fatalf("insert actions: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("inserted = %+v", inserted)
	}

	actions, err := st.ListActions(ctx, g.ID, g.Turn)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(actions) != 2 || actions[0].Description != "raise tariffs" {
		t.Fatalf("actions = %+v", actions)
	}

	if err := st.DeleteAction(ctx, actions[0].ID); err != nil {
		t.Fatalf("delete action: %v", err)
	}
	if err := st.DeleteAction(ctx, actions[0].ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestChatLifecycle(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, nations := seedGame(t, st, ctx)
	chat, err := st.CreateChat(ctx, g.ID, "manual chat", []string{nations[1].ID, nations[2].ID})
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	members, err := st.ListChatMembers(ctx, chat.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("members = %+v", members)
	}

	if err := st.UpdateChatMemberSummary(ctx, members[0].ID, "left early [LEFT:2021-02-01]"); err != nil {
		t.Fatalf("update member: %v", err)
	}
	members, _ = st.ListChatMembers(ctx, chat.ID)
	found := false
	for _, m := range members {
		if game.MemberLeft(m.Summary) {
			found = true
		}
	}
	if !found {
		t.Fatalf("members = %+v", members)
	}

	msg := &store.ChatMessage{ChatID: chat.ID, Sender: store.SenderUser, Content: "hello", Date: "2021-02-01"}
	if err := st.InsertChatMessage(ctx, msg); err != nil {
		t.Fatalf("insert message: %v", err)
	}
	msgs, err := st.ListChatMessages(ctx, chat.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Sender != store.SenderUser {
		t.Fatalf("msgs = %+v", msgs)
	}
}

func TestAdvisorChatLifecycle(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, _ := seedGame(t, st, ctx)
	c1, err := st.GetOrCreateAdvisorChat(ctx, g.ID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	c2, err := st.GetOrCreateAdvisorChat(ctx, g.ID)
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if c1.ID != c2.ID {
		t.Fatalf("chats differ: %q %q", c1.ID, c2.ID)
	}

	if err := st.InsertAdvisorMessage(ctx, &store.AdvisorMessage{AdvisorChatID: c1.ID, Sender: store.SenderUser, Content: "advice?"}); err != nil {
		t.Fatalf("insert message: %v", err)
	}
	if err := st.InsertAdvisorMessage(ctx, &store.AdvisorMessage{AdvisorChatID: c1.ID, Sender: store.SenderAdvisor, Content: "stay calm"}); err != nil {
		t.Fatalf("insert message: %v", err)
	}
	msgs, err := st.ListAdvisorMessages(ctx, c1.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 2 || msgs[1].Sender != store.SenderAdvisor {
		t.Fatalf("msgs = %+v", msgs)
	}

	if err := st.UpdateAdvisorContext(ctx, c1.ID, "turn 5 context"); err != nil {
		t.Fatalf("update context: %v", err)
	}
	c3, _ := st.GetOrCreateAdvisorChat(ctx, g.ID)
	if c3.Context != "turn 5 context" {
		t.Fatalf("context = %q", c3.Context)
	}
}

func TestReactions(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, _ := seedGame(t, st, ctx)
	batch := []game.ReactionUpdate{
		{Username: "citizen_42", Content: "Unbelievable.", Likes: 12, Retweets: 3, Quotes: 1},
		{Username: "le_patriote", Content: "Enfin!", Likes: 4},
	}
	if err := st.InsertReactions(ctx, g.ID, g.Turn, game.ReactionTypeMicroblog, batch); err != nil {
		t.Fatalf("insert reactions: %v", err)
	}
	got, err := st.ListReactions(ctx, g.ID, g.Turn)
	if err != nil {
		t.Fatalf("list reactions: %v", err)
	}
	if len(got) != 2 || got[0].Type != game.ReactionTypeMicroblog || got[0].Likes != 12 {
		t.Fatalf("got = %+v", got)
	}
	empty, err := st.ListReactions(ctx, g.ID, g.Turn+1)
	if err != nil {
		t.Fatalf("list reactions: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty = %+v", empty)
	}
}

func TestTokensSpent(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	g, _ := seedGame(t, st, ctx)
	if err := st.AddTokensSpent(ctx, g.ID, 1200); err != nil {
		t.Fatalf("add tokens: %v", err)
	}
	if err := st.AddTokensSpent(ctx, g.ID, 300); err != nil {
		t.Fatalf("add tokens: %v", err)
	}
	got, _ := st.GetGame(ctx, g.ID)
	if got.TokensSpent != 1500 {
		t.Fatalf("tokens = %d", got.TokensSpent)
	}
}
