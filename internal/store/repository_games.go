package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const gameColumns = `id, owner_id, preset_id, selected_country, difficulty, turn, date, starting_date,
	economy, power, popularity, trame, advisor_trame, game_over, tokens_spent, last_played_at, created_at`

func scanGame(row pgx.Row) (*Game, error) {
	var g Game
	err := row.Scan(&g.ID, &g.OwnerID, &g.PresetID, &g.SelectedCountry, &g.Difficulty, &g.Turn,
		&g.Date, &g.StartingDate, &g.Economy, &g.Power, &g.Popularity, &g.Trame, &g.AdvisorTrame,
		&g.GameOver, &g.TokensSpent, &g.LastPlayedAt, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *Store) GetGame(ctx context.Context, id string) (*Game, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (s *Store) ListGames(ctx context.Context, ownerID string) ([]Game, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+gameColumns+` FROM games WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// CreateGame inserts a new game together with its cloned nation roster in
// one transaction.
func (s *Store) CreateGame(ctx context.Context, g *Game, nations []Nation) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `INSERT INTO games (id, owner_id, preset_id, selected_country, difficulty, turn, date, starting_date, economy, power, popularity, trame, advisor_trame, game_over, tokens_spent)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		g.ID, g.OwnerID, g.PresetID, g.SelectedCountry, g.Difficulty, g.Turn, g.Date, g.StartingDate,
		g.Economy, g.Power, g.Popularity, g.Trame, g.AdvisorTrame, g.GameOver, g.TokensSpent)
	if err != nil {
		return err
	}
	for _, n := range nations {
		_, err = tx.Exec(ctx, `INSERT INTO nations (id, game_id, svg_id, name, sovereign, owner, is_player, economy, power, popularity, summary)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			n.ID, n.GameID, n.SvgID, n.Name, n.Sovereign, n.Owner, n.IsPlayer, n.Economy, n.Power, n.Popularity, n.Summary)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// AddTokensSpent accumulates completion usage on the game row. Called
// outside the turn transaction; usage accounting is best effort.
func (s *Store) AddTokensSpent(ctx context.Context, gameID string, tokens int64) error {
	_, err := s.Pool.Exec(ctx, `UPDATE games SET tokens_spent = tokens_spent + $1 WHERE id = $2`, tokens, gameID)
	return err
}
