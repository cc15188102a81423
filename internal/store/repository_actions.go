package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const actionColumns = `id, game_id, owner_id, turn, description, created_at`

// InsertActions records a batch of player directives for one turn.
func (s *Store) InsertActions(ctx context.Context, gameID, ownerID string, turn int, descriptions []string) ([]Action, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out := make([]Action, 0, len(descriptions))
	for _, d := range descriptions {
		a := Action{ID: NewID(), GameID: gameID, OwnerID: ownerID, Turn: turn, Description: d}
		if _, err := tx.Exec(ctx, `INSERT INTO actions (id, game_id, owner_id, turn, description) VALUES ($1,$2,$3,$4,$5)`,
			a.ID, a.GameID, a.OwnerID, a.Turn, a.Description); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListActions(ctx context.Context, gameID string, turn int) ([]Action, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+actionColumns+` FROM actions WHERE game_id = $1 AND turn = $2 ORDER BY created_at, id`, gameID, turn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Action
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.GameID, &a.OwnerID, &a.Turn, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetAction(ctx context.Context, id string) (*Action, error) {
	var a Action
	err := s.Pool.QueryRow(ctx, `SELECT `+actionColumns+` FROM actions WHERE id = $1`, id).
		Scan(&a.ID, &a.GameID, &a.OwnerID, &a.Turn, &a.Description, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) DeleteAction(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM actions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
