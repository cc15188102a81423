package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"geopolis/internal/assets"
	"geopolis/internal/llm"
	"geopolis/internal/store"
)

type fakeStore struct {
	game    *store.Game
	preset  *store.Preset
	actions []store.Action

	chat     *store.AdvisorChat
	messages []store.AdvisorMessage
	tokens   int64
}

func (f *fakeStore) GetGame(ctx context.Context, id string) (*store.Game, error) {
	if f.game == nil || f.game.ID != id {
		return nil, store.ErrNotFound
	}
	g := *f.game
	return &g, nil
}

func (f *fakeStore) GetPreset(ctx context.Context, id string) (*store.Preset, error) {
	if f.preset == nil || f.preset.ID != id {
		return nil, store.ErrNotFound
	}
	p := *f.preset
	return &p, nil
}

func (f *fakeStore) ListActions(ctx context.Context, gameID string, turn int) ([]store.Action, error) {
	return f.actions, nil
}

func (f *fakeStore) GetOrCreateAdvisorChat(ctx context.Context, gameID string) (*store.AdvisorChat, error) {
	if f.chat == nil {
		f.chat = &store.AdvisorChat{ID: "ac1", GameID: gameID}
	}
	c := *f.chat
	return &c, nil
}

func (f *fakeStore) ListAdvisorMessages(ctx context.Context, advisorChatID string) ([]store.AdvisorMessage, error) {
	return append([]store.AdvisorMessage(nil), f.messages...), nil
}

func (f *fakeStore) InsertAdvisorMessage(ctx context.Context, m *store.AdvisorMessage) error {
	if m.ID == "" {
		m.ID = store.NewID()
	}
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeStore) UpdateAdvisorContext(ctx context.Context, advisorChatID, rolling string) error {
	f.chat.Context = rolling
	return nil
}

func (f *fakeStore) AddTokensSpent(ctx context.Context, gameID string, tokens int64) error {
	f.tokens += tokens
	return nil
}

type fakeCompleter struct {
	answer  string
	system  string
	history []llm.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, system string, msgs []llm.Message) (llm.Completion, error) {
	f.system = system
	f.history = msgs
	return llm.Completion{Text: f.answer, Usage: llm.TokenUsage{Total: 9}}, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		game: &store.Game{
			ID: "g1", OwnerID: "user-1", PresetID: "p1", SelectedCountry: "fr",
			Difficulty: "normal", Turn: 3, Date: "2021-03-01",
			Economy: 61, Power: 47, Popularity: 52,
			Trame:        `[{"date":"2021-02-01","summary":"treaty signed"}]`,
			AdvisorTrame: "2021-02-01: talks with Germany went well",
		},
		preset:  &store.Preset{ID: "p1", Name: "Modern Europe", Lore: "the lore", AdvisorPrompt: "be a stern advisor"},
		actions: []store.Action{{ID: "a1", GameID: "g1", Turn: 3, Description: "raise tariffs"}},
	}
}

func TestChatExchange(t *testing.T) {
	st := newFakeStore()
	completer := &fakeCompleter{answer: "Hold the line on tariffs."}
	svc := NewService(st, completer, assets.NewLibrary(t.TempDir()))

	resp, err := svc.Chat(context.Background(), "g1", "user-1", "should we push harder?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.PlayerMessage.Sender != store.SenderUser || resp.AdvisorMessage.Sender != store.SenderAdvisor {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.AdvisorMessage.Content != "Hold the line on tariffs." {
		t.Fatalf("answer = %q", resp.AdvisorMessage.Content)
	}
	if len(st.messages) != 2 {
		t.Fatalf("messages = %+v", st.messages)
	}

	// The system prompt carries lore, advisor instruction and context.
	for _, want := range []string{"the lore", "be a stern advisor", "treaty signed", "raise tariffs", "talks with Germany"} {
		if !strings.Contains(completer.system, want) {
			t.Fatalf("system lacks %q: %s", want, completer.system)
		}
	}
	if st.tokens != 9 {
		t.Fatalf("tokens = %d", st.tokens)
	}
	if !strings.Contains(st.chat.Context, "should we push harder?") {
		t.Fatalf("rolling context = %q", st.chat.Context)
	}
}

func TestChatCarriesHistory(t *testing.T) {
	st := newFakeStore()
	st.chat = &store.AdvisorChat{ID: "ac1", GameID: "g1"}
	st.messages = []store.AdvisorMessage{
		{ID: "1", AdvisorChatID: "ac1", Sender: store.SenderUser, Content: "first question"},
		{ID: "2", AdvisorChatID: "ac1", Sender: store.SenderAdvisor, Content: "first answer"},
	}
	completer := &fakeCompleter{answer: "second answer"}
	svc := NewService(st, completer, assets.NewLibrary(t.TempDir()))

	if _, err := svc.Chat(context.Background(), "g1", "user-1", "second question"); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(completer.history) != 3 {
		t.Fatalf("history = %+v", completer.history)
	}
	if completer.history[0].Role != llm.RoleUser || completer.history[1].Role != llm.RoleAssistant {
		t.Fatalf("roles = %+v", completer.history)
	}
	if completer.history[2].Content != "second question" {
		t.Fatalf("last = %+v", completer.history[2])
	}
}

func TestChatGuards(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st, &fakeCompleter{answer: "x"}, assets.NewLibrary(t.TempDir()))
	ctx := context.Background()

	if _, err := svc.Chat(ctx, "g9", "user-1", "hi"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.Chat(ctx, "g1", "intruder", "hi"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.Chat(ctx, "g1", "user-1", " "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v", err)
	}
	st.preset = nil
	if _, err := svc.Chat(ctx, "g1", "user-1", "hi"); !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("err = %v", err)
	}
	if len(st.messages) != 0 {
		t.Fatalf("messages = %+v", st.messages)
	}
}
