package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/registry"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/server/handlers"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/services"
	"github.com/IlyaPlyusnin57/social-media-socket/pkg/middleware"
)

type Server struct {
	mux       *http.ServeMux
	log       *slog.Logger
	name      string
	port      string
	wsHandler *handlers.WSHandler
}

func NewServer(
	log *slog.Logger,
	name string,
	port string,
	directory *services.PresenceDirectory,
	router *services.EventRouter,
	hub *registry.Registry,
) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		log:       log,
		name:      name,
		port:      port,
		wsHandler: handlers.NewWSHandler(hub, directory, router),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	logging := middleware.RequestLogger(s.log)
	tracing := middleware.TracerMiddleware(s.name)

	s.mux.Handle("/ws", logging(tracing(http.HandlerFunc(s.wsHandler.Handler))))
}

func (s *Server) Start() error {
	server := &http.Server{
		Addr:         ":" + s.port,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.log.Info("server starting", "port", s.port)
	return server.ListenAndServe()
}
