package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetPreset(ctx context.Context, id string) (*Preset, error) {
	var p Preset
	err := s.Pool.QueryRow(ctx, `SELECT id, name, lore, event_prompt, advisor_prompt, starting_date, created_at FROM presets WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Lore, &p.EventPrompt, &p.AdvisorPrompt, &p.StartingDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListPresets(ctx context.Context) ([]Preset, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name, lore, event_prompt, advisor_prompt, starting_date, created_at FROM presets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.ID, &p.Name, &p.Lore, &p.EventPrompt, &p.AdvisorPrompt, &p.StartingDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListPresetNations(ctx context.Context, presetID string) ([]PresetNation, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, preset_id, svg_id, name, sovereign, economy, power, popularity
		FROM preset_nations WHERE preset_id = $1 ORDER BY name`, presetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PresetNation
	for rows.Next() {
		var n PresetNation
		if err := rows.Scan(&n.ID, &n.PresetID, &n.SvgID, &n.Name, &n.Sovereign, &n.Economy, &n.Power, &n.Popularity); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
