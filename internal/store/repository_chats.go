package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetChat(ctx context.Context, id string) (*Chat, error) {
	var c Chat
	err := s.Pool.QueryRow(ctx, `SELECT id, game_id, context, created_at FROM chats WHERE id = $1`, id).
		Scan(&c.ID, &c.GameID, &c.Context, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListChats(ctx context.Context, gameID string) ([]Chat, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, game_id, context, created_at FROM chats WHERE game_id = $1 ORDER BY created_at, id`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.GameID, &c.Context, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateChat inserts a chat with its member rows in one transaction.
func (s *Store) CreateChat(ctx context.Context, gameID, chatContext string, nationIDs []string) (*Chat, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	c := &Chat{ID: NewID(), GameID: gameID, Context: chatContext}
	if _, err := tx.Exec(ctx, `INSERT INTO chats (id, game_id, context) VALUES ($1,$2,$3)`, c.ID, c.GameID, c.Context); err != nil {
		return nil, err
	}
	for _, nationID := range nationIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO chat_members (id, chat_id, nation_id) VALUES ($1,$2,$3)`, NewID(), c.ID, nationID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) ListChatMembers(ctx context.Context, chatID string) ([]ChatMember, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, chat_id, nation_id, summary FROM chat_members WHERE chat_id = $1 ORDER BY id`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatMember
	for rows.Next() {
		var m ChatMember
		if err := rows.Scan(&m.ID, &m.ChatID, &m.NationID, &m.Summary); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) UpdateChatMemberSummary(ctx context.Context, memberID, summary string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE chat_members SET summary = $1 WHERE id = $2`, summary, memberID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListChatMessages(ctx context.Context, chatID string) ([]ChatMessage, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, chat_id, sender, nation_id, content, date, tokens, created_at
		FROM chat_messages WHERE chat_id = $1 ORDER BY created_at, id`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Sender, &m.NationID, &m.Content, &m.Date, &m.Tokens, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) InsertChatMessage(ctx context.Context, m *ChatMessage) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	_, err := s.Pool.Exec(ctx, `INSERT INTO chat_messages (id, chat_id, sender, nation_id, content, date, tokens)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.ChatID, m.Sender, m.NationID, m.Content, m.Date, m.Tokens)
	return err
}
