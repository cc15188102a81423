package chat

import "errors"

var (
	ErrGameNotFound   = errors.New("game_not_found")
	ErrChatNotFound   = errors.New("chat_not_found")
	ErrNotOwner       = errors.New("not_owner")
	ErrInvalidMembers = errors.New("invalid_members")
	ErrEmptyMessage   = errors.New("empty_message")
)
