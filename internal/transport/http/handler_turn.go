package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appturn "geopolis/internal/app/turn"
	"geopolis/internal/llm"
	"geopolis/internal/store"

	"github.com/go-chi/chi/v5"
)

type TurnHandlers struct {
	svc *appturn.Service
}

func NewTurnHandlers(svc *appturn.Service) *TurnHandlers {
	return &TurnHandlers{svc: svc}
}

func (h *TurnHandlers) Advance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Advance(r.Context(), chi.URLParam(r, "game_id"), ActorID(r))
		if err != nil {
			switch {
			case errors.Is(err, appturn.ErrGameNotFound):
				WriteHTTPError(w, http.StatusNotFound, "game_not_found")
			case errors.Is(err, appturn.ErrPresetNotFound):
				WriteHTTPError(w, http.StatusNotFound, "preset_not_found")
			case errors.Is(err, appturn.ErrNotOwner):
				WriteHTTPError(w, http.StatusForbidden, "not_owner")
			case errors.Is(err, appturn.ErrGameOver):
				WriteHTTPError(w, http.StatusBadRequest, "game_over")
			case errors.Is(err, appturn.ErrModelRejected):
				WriteHTTPError(w, http.StatusBadGateway, "model_output_rejected")
			case errors.Is(err, llm.ErrNotConfigured):
				WriteHTTPError(w, http.StatusBadGateway, "llm_not_configured")
			case errors.Is(err, store.ErrTurnConflict):
				WriteHTTPError(w, http.StatusConflict, "turn_conflict")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
