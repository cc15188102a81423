package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const nationColumns = `id, game_id, svg_id, name, sovereign, owner, is_player, economy, power, popularity, summary`

func scanNation(row pgx.Row) (*Nation, error) {
	var n Nation
	err := row.Scan(&n.ID, &n.GameID, &n.SvgID, &n.Name, &n.Sovereign, &n.Owner, &n.IsPlayer,
		&n.Economy, &n.Power, &n.Popularity, &n.Summary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *Store) GetNation(ctx context.Context, id string) (*Nation, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+nationColumns+` FROM nations WHERE id = $1`, id)
	return scanNation(row)
}

func (s *Store) GetNationBySvgID(ctx context.Context, gameID, svgID string) (*Nation, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+nationColumns+` FROM nations WHERE game_id = $1 AND svg_id = $2`, gameID, svgID)
	return scanNation(row)
}

func (s *Store) ListNations(ctx context.Context, gameID string) ([]Nation, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+nationColumns+` FROM nations WHERE game_id = $1 ORDER BY name`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Nation
	for rows.Next() {
		n, err := scanNation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}
