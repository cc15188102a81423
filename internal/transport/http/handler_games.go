package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	appgames "geopolis/internal/app/games"

	"github.com/go-chi/chi/v5"
)

type GamesHandlers struct {
	svc *appgames.Service
}

func NewGamesHandlers(svc *appgames.Service) *GamesHandlers {
	return &GamesHandlers{svc: svc}
}

func (h *GamesHandlers) Presets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presets, err := h.svc.Presets(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(presets)
	}
}

func (h *GamesHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appgames.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		g, err := h.svc.Create(r.Context(), ActorID(r), req)
		if err != nil {
			switch {
			case errors.Is(err, appgames.ErrPresetNotFound):
				WriteHTTPError(w, http.StatusNotFound, "preset_not_found")
			case errors.Is(err, appgames.ErrNationNotFound):
				WriteHTTPError(w, http.StatusNotFound, "nation_not_found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(g)
	}
}

func (h *GamesHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := h.svc.List(r.Context(), ActorID(r))
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(games)
	}
}

func (h *GamesHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := h.svc.Get(r.Context(), chi.URLParam(r, "game_id"), ActorID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(g)
	}
}

func (h *GamesHandlers) Countries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nations, err := h.svc.Nations(r.Context(), chi.URLParam(r, "game_id"), ActorID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(nations)
	}
}

func (h *GamesHandlers) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := h.svc.Events(r.Context(), chi.URLParam(r, "game_id"), ActorID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(events)
	}
}

func (h *GamesHandlers) Indicators() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Indicators(r.Context(), chi.URLParam(r, "game_id"), ActorID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *GamesHandlers) Reactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		turn := ParseTurnParam(r)
		reactions, err := h.svc.Reactions(r.Context(), chi.URLParam(r, "game_id"), ActorID(r), turn)
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(reactions)
	}
}

func (h *GamesHandlers) ChatOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Overview(r.Context(), chi.URLParam(r, "game_id"), ActorID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *GamesHandlers) SubmitActions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Actions []string `json:"actions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		actions, err := h.svc.SubmitActions(r.Context(), chi.URLParam(r, "game_id"), ActorID(r), req.Actions)
		if err != nil {
			switch {
			case errors.Is(err, appgames.ErrInvalidActions):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_actions")
			case errors.Is(err, appgames.ErrGameOver):
				WriteHTTPError(w, http.StatusBadRequest, "game_over")
			default:
				writeGameError(w, err)
			}
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(actions)
	}
}

func (h *GamesHandlers) DeleteAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.svc.DeleteAction(r.Context(), chi.URLParam(r, "game_id"), ActorID(r), chi.URLParam(r, "action_id"))
		if err != nil {
			switch {
			case errors.Is(err, appgames.ErrActionNotFound):
				WriteHTTPError(w, http.StatusNotFound, "action_not_found")
			case errors.Is(err, appgames.ErrActionLocked):
				WriteHTTPError(w, http.StatusConflict, "action_locked")
			default:
				writeGameError(w, err)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appgames.ErrGameNotFound):
		WriteHTTPError(w, http.StatusNotFound, "game_not_found")
	case errors.Is(err, appgames.ErrNotOwner):
		WriteHTTPError(w, http.StatusForbidden, "not_owner")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

// ParseTurnParam reads the optional turn query parameter; absent or
// malformed values resolve to -1, which selects the last resolved turn.
func ParseTurnParam(r *http.Request) int {
	v := r.URL.Query().Get("turn")
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
