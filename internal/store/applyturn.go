package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"geopolis/internal/game"
)

// TurnEvent links one committed event to the chat it spawned, for the
// advance response.
type TurnEvent struct {
	EventID string
	ChatID  string
}

// TurnResult reports what ApplyTurn wrote.
type TurnResult struct {
	Events []TurnEvent
}

// ApplyTurn applies one fully-derived turn write set in a single
// transaction. The commit carries no unresolved names; everything here is
// plain inserts and updates, so a failure anywhere rolls back the whole
// turn and the game row is untouched. The game row is locked and its turn
// counter checked against the commit to reject stale write sets.
func (s *Store) ApplyTurn(ctx context.Context, gameID string, commit *game.TurnCommit) (*TurnResult, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var currentTurn int
	err = tx.QueryRow(ctx, `SELECT turn FROM games WHERE id = $1 FOR UPDATE`, gameID).Scan(&currentTurn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if currentTurn != commit.Turn {
		return nil, fmt.Errorf("%w: game at turn %d, commit for turn %d", ErrTurnConflict, currentTurn, commit.Turn)
	}

	_, err = tx.Exec(ctx, `UPDATE games SET turn = $1, date = $2, economy = $3, power = $4, popularity = $5,
		trame = $6, advisor_trame = $7, game_over = $8, last_played_at = now() WHERE id = $9`,
		commit.NextTurn, commit.NextDate, commit.Gauges.Economy, commit.Gauges.Power, commit.Gauges.Popularity,
		commit.Trame, commit.AdvisorTrame, commit.GameOver, gameID)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{}
	for _, ec := range commit.Events {
		var chatID *string
		if ec.NewChat != nil {
			id, err := insertChatTx(ctx, tx, gameID, ec.NewChat)
			if err != nil {
				return nil, err
			}
			chatID = &id
		}
		eventID := NewID()
		_, err = tx.Exec(ctx, `INSERT INTO events (id, game_id, turn, date, summary, description, chat_initiated, chat_content, chat_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			eventID, gameID, commit.Turn, ec.Date, ec.Summary, ec.Description, ec.ChatInitiated, ec.ChatContent, chatID)
		if err != nil {
			return nil, err
		}
		te := TurnEvent{EventID: eventID}
		if chatID != nil {
			te.ChatID = *chatID
		}
		result.Events = append(result.Events, te)
	}

	// Rolling summaries from the world engine are keyed by nation, so they
	// live on nations.summary and one write covers every chat the nation
	// sits in. chat_members.summary carries only per-chat state such as the
	// [LEFT:] departure marker; the two columns never share a writer.
	for _, ms := range commit.MemberSummaries {
		if _, err := tx.Exec(ctx, `UPDATE nations SET summary = $1 WHERE id = $2`, ms.Summary, ms.NationID); err != nil {
			return nil, err
		}
	}

	for _, bc := range commit.BorderChanges {
		if _, err := tx.Exec(ctx, `UPDATE nations SET owner = $1, sovereign = $2 WHERE id = $3`, bc.Owner, bc.Sovereign, bc.NationID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// insertChatTx creates one event-spawned chat, its member rows, and the
// opening message attributed to the first matched nation.
func insertChatTx(ctx context.Context, tx pgx.Tx, gameID string, c *game.ChatCreate) (string, error) {
	chatID := NewID()
	if _, err := tx.Exec(ctx, `INSERT INTO chats (id, game_id, context) VALUES ($1,$2,$3)`, chatID, gameID, c.Context); err != nil {
		return "", err
	}
	for _, nationID := range c.NationIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO chat_members (id, chat_id, nation_id) VALUES ($1,$2,$3)`, NewID(), chatID, nationID); err != nil {
			return "", err
		}
	}
	if c.OpeningMessage != "" && len(c.NationIDs) > 0 {
		openerID := c.NationIDs[0]
		_, err := tx.Exec(ctx, `INSERT INTO chat_messages (id, chat_id, sender, nation_id, content, date) VALUES ($1,$2,$3,$4,$5,$6)`,
			NewID(), chatID, SenderCountry, openerID, c.OpeningMessage, c.Date)
		if err != nil {
			return "", err
		}
	}
	return chatID, nil
}
