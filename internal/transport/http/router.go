package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	appadvisor "geopolis/internal/app/advisor"
	appchat "geopolis/internal/app/chat"
	appgames "geopolis/internal/app/games"
	appturn "geopolis/internal/app/turn"
	"geopolis/internal/assets"
	"geopolis/internal/config"
	"geopolis/internal/llm"
	"geopolis/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, llmClient *llm.Client, cfg config.ServerConfig) *chi.Mux {
	lib := assets.NewLibrary(cfg.AssetsDir)

	gamesSvc := appgames.NewService(st)
	turnSvc := appturn.NewService(st, llmClient, lib)
	chatSvc := appchat.NewService(st, llmClient, lib)
	advisorSvc := appadvisor.NewService(st, llmClient, lib)

	gamesHandlers := NewGamesHandlers(gamesSvc)
	turnHandlers := NewTurnHandlers(turnSvc)
	chatHandlers := NewChatHandlers(chatSvc)
	advisorHandlers := NewAdvisorHandlers(advisorSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", HealthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Get("/presets", gamesHandlers.Presets())

		r.Post("/games", gamesHandlers.Create())
		r.Get("/games", gamesHandlers.List())

		r.Route("/games/{game_id}", func(r chi.Router) {
			r.Get("/", gamesHandlers.Get())
			r.Get("/countries", gamesHandlers.Countries())
			r.Get("/events", gamesHandlers.Events())
			r.Get("/indicators", gamesHandlers.Indicators())
			r.Get("/reactions", gamesHandlers.Reactions())
			r.Get("/chat", gamesHandlers.ChatOverview())

			r.Post("/actions", gamesHandlers.SubmitActions())
			r.Delete("/actions/{action_id}", gamesHandlers.DeleteAction())

			r.Post("/advance", turnHandlers.Advance())

			r.Post("/chats", chatHandlers.Create())
			r.Post("/chats/{chat_id}/messages", chatHandlers.SendMessage())

			r.Post("/advisor/messages", advisorHandlers.SendMessage())
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 64)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
