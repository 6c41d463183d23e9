package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kwbrand/internal/handlers"
	"kwbrand/internal/handlers/api"
	"kwbrand/internal/metrics"
	"kwbrand/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	metrics.Init(s.Store)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg.AuthEnabled())
	workspaceMiddleware := middleware.NewWorkspaceMiddleware(s.Store)

	// Initialize handlers
	rankingHandler := handlers.NewRankingHandler(s.Cfg, s.Settings)
	brandHandler := handlers.NewBrandHandler(s.Cfg, s.Settings)
	matchHandler := handlers.NewMatchHandler(s.Cfg, s.Settings)
	dedupHandler := handlers.NewDedupHandler(s.Cfg)
	mergeHandler := handlers.NewMergeHandler(s.Cfg, s.Settings)
	probeHandler := handlers.NewProbeHandler(s.Store)

	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - only when OIDC is configured
	if s.Cfg.AuthEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, workspaceMiddleware.Discard)
		if err != nil {
			return err
		}
		s.App.Get("/login", authMiddleware.OptionalAuth, handlers.LoginPage(s.Cfg))
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
	}

	// Browser UI - one workspace per session
	auth, attach := authMiddleware.RequireAuth, workspaceMiddleware.Attach

	s.App.Get("/", auth, attach, rankingHandler.Index)
	s.App.Post("/keywords", auth, attach, rankingHandler.Upload)

	s.App.Get("/brands", auth, attach, brandHandler.Show)
	s.App.Post("/brands", auth, attach, brandHandler.Upload)
	s.App.Post("/rules", auth, attach, brandHandler.AddRule)
	s.App.Post("/rules/clear", auth, attach, brandHandler.ClearRules)

	s.App.Get("/match", auth, attach, matchHandler.Show)
	s.App.Post("/match", auth, attach, matchHandler.Run)
	s.App.Get("/match/download", auth, attach, matchHandler.Download)

	s.App.Get("/dedup", auth, attach, dedupHandler.Show)
	s.App.Post("/dedup", auth, attach, dedupHandler.Run)

	s.App.Get("/merge", auth, attach, mergeHandler.Show)
	s.App.Post("/merge/files", auth, attach, mergeHandler.Files)
	s.App.Post("/merge/archives", auth, attach, mergeHandler.Archives)
	s.App.Get("/merge/download", auth, attach, mergeHandler.Download)

	// JSON API - stateless
	apiRankHandler := api.NewRankHandler(s.Cfg, s.Settings)
	apiMatchHandler := api.NewMatchHandler(s.Cfg, s.Settings)
	apiDedupHandler := api.NewDedupHandler()
	apiMergeHandler := api.NewMergeHandler(s.Cfg, s.Settings)

	apiGroup := s.App.Group("/api", auth)
	apiGroup.Post("/rank", apiRankHandler.Rank)
	apiGroup.Post("/match", apiMatchHandler.Match)
	apiGroup.Post("/dedup", apiDedupHandler.Dedup)
	apiGroup.Post("/merge/files", apiMergeHandler.Files)
	apiGroup.Post("/merge/archives", apiMergeHandler.Archives)

	return nil
}
