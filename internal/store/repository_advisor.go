package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// GetOrCreateAdvisorChat returns the game's advisor conversation, creating
// it on first use.
func (s *Store) GetOrCreateAdvisorChat(ctx context.Context, gameID string) (*AdvisorChat, error) {
	var c AdvisorChat
	err := s.Pool.QueryRow(ctx, `SELECT id, game_id, context, created_at FROM advisor_chats WHERE game_id = $1`, gameID).
		Scan(&c.ID, &c.GameID, &c.Context, &c.CreatedAt)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	c = AdvisorChat{ID: NewID(), GameID: gameID}
	_, err = s.Pool.Exec(ctx, `INSERT INTO advisor_chats (id, game_id) VALUES ($1,$2)
		ON CONFLICT (game_id) DO NOTHING`, c.ID, c.GameID)
	if err != nil {
		return nil, err
	}
	// Re-read to win races with a concurrent creator.
	err = s.Pool.QueryRow(ctx, `SELECT id, game_id, context, created_at FROM advisor_chats WHERE game_id = $1`, gameID).
		Scan(&c.ID, &c.GameID, &c.Context, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateAdvisorContext(ctx context.Context, advisorChatID, rolling string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE advisor_chats SET context = $1 WHERE id = $2`, rolling, advisorChatID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListAdvisorMessages(ctx context.Context, advisorChatID string) ([]AdvisorMessage, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, advisor_chat_id, sender, content, created_at
		FROM advisor_messages WHERE advisor_chat_id = $1 ORDER BY created_at, id`, advisorChatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AdvisorMessage
	for rows.Next() {
		var m AdvisorMessage
		if err := rows.Scan(&m.ID, &m.AdvisorChatID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) InsertAdvisorMessage(ctx context.Context, m *AdvisorMessage) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	_, err := s.Pool.Exec(ctx, `INSERT INTO advisor_messages (id, advisor_chat_id, sender, content)
		VALUES ($1,$2,$3,$4)`, m.ID, m.AdvisorChatID, m.Sender, m.Content)
	return err
}
