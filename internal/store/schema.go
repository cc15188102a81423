package store

import "context"

// EnsureSchema applies the DDL. Safe to run on every boot.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, Schema())
	return err
}

// Schema returns the DDL for a fresh database. Statements are idempotent so
// testutil can lay down a throwaway schema without migrations.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS presets (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	lore TEXT NOT NULL DEFAULT '',
	event_prompt TEXT NOT NULL DEFAULT '',
	advisor_prompt TEXT NOT NULL DEFAULT '',
	starting_date TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS preset_nations (
	id TEXT PRIMARY KEY,
	preset_id TEXT NOT NULL REFERENCES presets(id),
	svg_id TEXT NOT NULL,
	name TEXT NOT NULL,
	sovereign BOOLEAN NOT NULL DEFAULT TRUE,
	economy INT NOT NULL DEFAULT 50,
	power INT NOT NULL DEFAULT 50,
	popularity INT NOT NULL DEFAULT 50,
	UNIQUE (preset_id, svg_id)
);

CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	preset_id TEXT NOT NULL REFERENCES presets(id),
	selected_country TEXT NOT NULL,
	difficulty TEXT NOT NULL DEFAULT 'normal',
	turn INT NOT NULL DEFAULT 0,
	date TEXT NOT NULL,
	starting_date TEXT NOT NULL,
	economy INT NOT NULL DEFAULT 50,
	power INT NOT NULL DEFAULT 50,
	popularity INT NOT NULL DEFAULT 50,
	trame TEXT NOT NULL DEFAULT '[]',
	advisor_trame TEXT NOT NULL DEFAULT '',
	game_over BOOLEAN NOT NULL DEFAULT FALSE,
	tokens_spent BIGINT NOT NULL DEFAULT 0,
	last_played_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS games_owner_idx ON games(owner_id);

CREATE TABLE IF NOT EXISTS nations (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL REFERENCES games(id),
	svg_id TEXT NOT NULL,
	name TEXT NOT NULL,
	sovereign BOOLEAN NOT NULL DEFAULT TRUE,
	owner TEXT,
	is_player BOOLEAN NOT NULL DEFAULT FALSE,
	economy INT NOT NULL DEFAULT 50,
	power INT NOT NULL DEFAULT 50,
	popularity INT NOT NULL DEFAULT 50,
	summary TEXT NOT NULL DEFAULT '',
	UNIQUE (game_id, svg_id)
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL REFERENCES games(id),
	turn INT NOT NULL,
	date TEXT NOT NULL,
	summary TEXT NOT NULL,
	description TEXT NOT NULL,
	chat_initiated BOOLEAN NOT NULL DEFAULT FALSE,
	chat_content TEXT NOT NULL DEFAULT '',
	chat_id TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_game_turn_idx ON events(game_id, turn);

CREATE TABLE IF NOT EXISTS actions (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL REFERENCES games(id),
	owner_id TEXT NOT NULL,
	turn INT NOT NULL,
	description TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS actions_game_turn_idx ON actions(game_id, turn);

CREATE TABLE IF NOT EXISTS chats (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL REFERENCES games(id),
	context TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS chat_members (
	id TEXT PRIMARY KEY,
	chat_id TEXT NOT NULL REFERENCES chats(id),
	nation_id TEXT NOT NULL REFERENCES nations(id),
	summary TEXT NOT NULL DEFAULT '',
	UNIQUE (chat_id, nation_id)
);

CREATE TABLE IF NOT EXISTS chat_messages (
	id TEXT PRIMARY KEY,
	chat_id TEXT NOT NULL REFERENCES chats(id),
	sender TEXT NOT NULL,
	nation_id TEXT REFERENCES nations(id),
	content TEXT NOT NULL,
	date TEXT NOT NULL DEFAULT '',
	tokens INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS chat_messages_chat_idx ON chat_messages(chat_id, created_at);

CREATE TABLE IF NOT EXISTS advisor_chats (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL UNIQUE REFERENCES games(id),
	context TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS advisor_messages (
	id TEXT PRIMARY KEY,
	advisor_chat_id TEXT NOT NULL REFERENCES advisor_chats(id),
	sender TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reactions (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL REFERENCES games(id),
	turn INT NOT NULL,
	type TEXT NOT NULL,
	username TEXT NOT NULL,
	content TEXT NOT NULL,
	likes INT NOT NULL DEFAULT 0,
	retweets INT NOT NULL DEFAULT 0,
	quotes INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS reactions_game_turn_idx ON reactions(game_id, turn);
`
}
