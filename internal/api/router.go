package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/leozw/domain-scout/internal/api/handlers"
	"github.com/leozw/domain-scout/internal/api/middleware"
	"github.com/leozw/domain-scout/internal/config"
	"github.com/leozw/domain-scout/internal/manager"
	"github.com/leozw/domain-scout/internal/monitor"
	"github.com/leozw/domain-scout/internal/portfolio"
	"github.com/leozw/domain-scout/internal/registrar"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
}

func NewServer(cfg *config.Config, mgr *manager.Manager, client *registrar.Client, store portfolio.Store, mon *monitor.Monitor, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Instrument(mon))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	server := &Server{
		Config: cfg,
		Router: router,
	}

	h := handlers.NewHandler(mgr, client, store, mon, logger)
	server.setupRoutes(h, mon)
	return server
}

func (s *Server) setupRoutes(h *handlers.Handler, mon *monitor.Monitor) {
	// Health and metrics
	s.Router.GET("/health", h.Health)
	s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(mon.Registry(), promhttp.HandlerOpts{})))

	api := s.Router.Group("/api/v1")

	// Bot control
	{
		api.POST("/bots/start", h.StartBots)
		api.POST("/bots/stop", h.StopBots)
		api.GET("/bots/stats", h.BotStats)
	}

	// Portfolio and checks
	{
		api.GET("/domains", h.ListDomains)
		api.GET("/domains/export", h.ExportDomains)
		api.GET("/check/:domain", h.CheckDomain)
		api.POST("/variations", h.GenerateVariations)
		api.GET("/whois/:domain", h.Whois)
		api.GET("/dns/:domain", h.DNSLookup)
	}
}
