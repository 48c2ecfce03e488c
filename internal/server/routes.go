package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/arcade/internal/catalog"
	"github.com/playperu/arcade/internal/config"
	"github.com/playperu/arcade/internal/handler/health"
	"github.com/playperu/arcade/internal/negotiation"
)

// Deps is everything the HTTP layer needs. Leaderboard may be nil, in which
// case rankings come from Results.
type Deps struct {
	Logger      *slog.Logger
	Sessions    *Sessions
	Broker      *Broker
	Results     ResultStore
	Leaderboard Leaderboard
	Catalog     *catalog.Catalog
	Negotiation negotiation.Params
	Admin       config.Admin
	Checks      map[string]health.Checker
	SPADir      string
}

func addRoutes(r chi.Router, d Deps) {
	if d.Broker == nil {
		d.Broker = NewBroker()
	}
	if d.Leaderboard == nil {
		d.Leaderboard = storeLeaderboard{d.Results}
	}
	rec := recorder{logger: d.Logger, results: d.Results, board: d.Leaderboard}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Arcade API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(d.Logger, d.Checks).Routes())
	r.Get("/ws/sessions/{id}", handleSessionSocket(d.Logger, d.Sessions, d.Broker))

	r.Route("/api/quiz", func(r chi.Router) {
		r.Post("/", handleQuizCreate(d.Logger, d.Sessions, d.Catalog))
		r.Route("/{id}", func(r chi.Router) {
			r.Use(sessionMiddleware(d.Sessions))
			r.Get("/", handleQuizState())
			r.Post("/answer", handleQuizAnswer(d.Broker))
			r.Post("/advance", handleQuizAdvance(d.Broker, rec))
		})
	})

	r.Route("/api/negotiation", func(r chi.Router) {
		r.Post("/", handleNegotiationCreate(d.Logger, d.Sessions, d.Negotiation))
		r.Route("/{id}", func(r chi.Router) {
			r.Use(sessionMiddleware(d.Sessions))
			r.Get("/", handleNegotiationState())
			r.Post("/offer", handleOffer(d.Broker, rec))
			r.Post("/accept", handleAccept(d.Broker, rec))
			r.Post("/walk-away", handleWalkAway(d.Broker, rec))
		})
	})

	r.Get("/api/sessions/{id}/events", handleEvents(d.Sessions, d.Broker))
	r.Get("/api/results", handleResults(d.Results))
	r.Get("/api/leaderboard/{kind}", handleLeaderboard(d.Leaderboard))

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminAuthMiddleware(d.Admin))
		r.Get("/rounds", handleAdminGetRounds(d.Catalog))
		r.Put("/rounds", handleAdminPutRounds(d.Logger, d.Catalog, d.Results))
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			d.Logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
