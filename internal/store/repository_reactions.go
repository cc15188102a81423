package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"geopolis/internal/game"
)

// InsertReactions persists one parsed reactions batch for a turn.
func (s *Store) InsertReactions(ctx context.Context, gameID string, turn int, reactionType string, batch []game.ReactionUpdate) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range batch {
		_, err := tx.Exec(ctx, `INSERT INTO reactions (id, game_id, turn, type, username, content, likes, retweets, quotes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			NewID(), gameID, turn, reactionType, r.Username, r.Content, r.Likes, r.Retweets, r.Quotes)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) ListReactions(ctx context.Context, gameID string, turn int) ([]Reaction, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, game_id, turn, type, username, content, likes, retweets, quotes, created_at
		FROM reactions WHERE game_id = $1 AND turn = $2 ORDER BY created_at, id`, gameID, turn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reaction
	for rows.Next() {
		var r Reaction
		if err := rows.Scan(&r.ID, &r.GameID, &r.Turn, &r.Type, &r.Username, &r.Content, &r.Likes, &r.Retweets, &r.Quotes, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
