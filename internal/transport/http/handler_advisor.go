package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appadvisor "geopolis/internal/app/advisor"
	"geopolis/internal/llm"

	"github.com/go-chi/chi/v5"
)

type AdvisorHandlers struct {
	svc *appadvisor.Service
}

func NewAdvisorHandlers(svc *appadvisor.Service) *AdvisorHandlers {
	return &AdvisorHandlers{svc: svc}
}

func (h *AdvisorHandlers) SendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Chat(r.Context(), chi.URLParam(r, "game_id"), ActorID(r), req.Content)
		if err != nil {
			switch {
			case errors.Is(err, appadvisor.ErrGameNotFound):
				WriteHTTPError(w, http.StatusNotFound, "game_not_found")
			case errors.Is(err, appadvisor.ErrPresetNotFound):
				WriteHTTPError(w, http.StatusNotFound, "preset_not_found")
			case errors.Is(err, appadvisor.ErrNotOwner):
				WriteHTTPError(w, http.StatusForbidden, "not_owner")
			case errors.Is(err, appadvisor.ErrEmptyMessage):
				WriteHTTPError(w, http.StatusBadRequest, "empty_message")
			case errors.Is(err, llm.ErrNotConfigured):
				WriteHTTPError(w, http.StatusBadGateway, "llm_not_configured")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
