package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DoyleJ11/vote-reveal/internal/presenter"
	"github.com/DoyleJ11/vote-reveal/internal/ws"
)

func SetupRoutes(p *presenter.Presenter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(p.Log))

	// Display
	r.Get("/", Index(p))
	r.Post("/actions/{action}", Action(p))
	r.Get("/api/screen", Screen(p))
	r.Get("/api/history", History(p))
	r.Get("/ws", ws.Handler(p))

	r.Get("/healthz", Healthz(p))
	return r
}
