package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/moimlab/moim/server/auth"
	"github.com/moimlab/moim/server/database"
	"github.com/moimlab/moim/server/service"
)

func New(cfg Config, routes func(*Server) http.Handler) (*Server, error) {
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	now := time.Now

	s := &Server{
		Cfg:     cfg,
		DB:      db,
		Auth:    service.NewAuthService(db, time.Duration(cfg.Auth.SessionTTL), auth.NewToken, now),
		Users:   service.NewUserService(db, now),
		Clubs:   service.NewClubService(db, now),
		Events:  service.NewEventService(db, now),
		Catalog: service.NewCatalogService(db),
		Now:     now,
	}
	s.server = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: routes(s),
	}

	return s, nil
}

type Server struct {
	Cfg     Config
	DB      *database.Database
	Auth    *service.AuthService
	Users   *service.UserService
	Clubs   *service.ClubService
	Events  *service.EventService
	Catalog *service.CatalogService
	Now     func() time.Time

	server *http.Server
}

func (s *Server) Start() {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", slog.Any("error", err))
	}

	if err := s.DB.Close(); err != nil {
		slog.Error("failed to close database", slog.Any("error", err))
	}
}
