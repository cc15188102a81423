package turn

import "errors"

var (
	ErrGameNotFound   = errors.New("game_not_found")
	ErrPresetNotFound = errors.New("preset_not_found")
	ErrNotOwner       = errors.New("not_owner")
	ErrGameOver       = errors.New("game_over")
	ErrModelRejected  = errors.New("model_output_rejected")
)
