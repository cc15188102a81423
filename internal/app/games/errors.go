package games

import "errors"

var (
	ErrGameNotFound   = errors.New("game_not_found")
	ErrPresetNotFound = errors.New("preset_not_found")
	ErrNationNotFound = errors.New("nation_not_found")
	ErrNotOwner       = errors.New("not_owner")
	ErrGameOver       = errors.New("game_over")
	ErrInvalidActions = errors.New("invalid_actions")
	ErrActionLocked   = errors.New("action_locked")
	ErrActionNotFound = errors.New("action_not_found")
)
