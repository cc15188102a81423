package store

import "context"

const eventColumns = `id, game_id, turn, date, summary, description, chat_initiated, chat_content, chat_id, created_at`

func (s *Store) ListEvents(ctx context.Context, gameID string) ([]Event, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE game_id = $1 ORDER BY turn, created_at, id`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.GameID, &e.Turn, &e.Date, &e.Summary, &e.Description,
			&e.ChatInitiated, &e.ChatContent, &e.ChatID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
