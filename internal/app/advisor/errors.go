package advisor

import "errors"

var (
	ErrGameNotFound   = errors.New("game_not_found")
	ErrPresetNotFound = errors.New("preset_not_found")
	ErrNotOwner       = errors.New("not_owner")
	ErrEmptyMessage   = errors.New("empty_message")
)
