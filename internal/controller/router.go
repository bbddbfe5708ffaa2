package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

func (c *controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIdMw)
	r.Use(c.requestLoggingMw)
	r.Use(cors.AllowAll().Handler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		r.Get("/status", c.status)
		r.Get("/ws", c.serveWS)
	})

	return r
}

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New(c.logger)

	mux.Handle(domain.MessageTypeJoin, c.handleJoin)
	mux.Handle(domain.MessageTypeChat, c.handleChat)
	mux.Handle(domain.MessageTypeVideo, c.handleVideo)
	mux.Handle(domain.MessageTypePlaylist, c.handlePlaylist)
	mux.Handle(domain.MessageTypeVoteSkip, c.handleVoteSkip)

	return mux
}
