package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appchat "geopolis/internal/app/chat"
	"geopolis/internal/llm"

	"github.com/go-chi/chi/v5"
)

type ChatHandlers struct {
	svc *appchat.Service
}

func NewChatHandlers(svc *appchat.Service) *ChatHandlers {
	return &ChatHandlers{svc: svc}
}

func (h *ChatHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			NationIDs []string `json:"nation_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		c, err := h.svc.Create(r.Context(), chi.URLParam(r, "game_id"), ActorID(r), req.NationIDs)
		if err != nil {
			writeChatError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(c)
	}
}

func (h *ChatHandlers) SendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.SendMessage(r.Context(), chi.URLParam(r, "game_id"), chi.URLParam(r, "chat_id"), ActorID(r), req.Content)
		if err != nil {
			writeChatError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appchat.ErrGameNotFound):
		WriteHTTPError(w, http.StatusNotFound, "game_not_found")
	case errors.Is(err, appchat.ErrChatNotFound):
		WriteHTTPError(w, http.StatusNotFound, "chat_not_found")
	case errors.Is(err, appchat.ErrNotOwner):
		WriteHTTPError(w, http.StatusForbidden, "not_owner")
	case errors.Is(err, appchat.ErrInvalidMembers):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_members")
	case errors.Is(err, appchat.ErrEmptyMessage):
		WriteHTTPError(w, http.StatusBadRequest, "empty_message")
	case errors.Is(err, llm.ErrNotConfigured):
		WriteHTTPError(w, http.StatusBadGateway, "llm_not_configured")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
