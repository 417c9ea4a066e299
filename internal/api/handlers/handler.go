package handlers

import (
	"go.uber.org/zap"

	"github.com/leozw/domain-scout/internal/manager"
	"github.com/leozw/domain-scout/internal/monitor"
	"github.com/leozw/domain-scout/internal/portfolio"
	"github.com/leozw/domain-scout/internal/registrar"
)

type Handler struct {
	manager   *manager.Manager
	registrar *registrar.Client
	store     portfolio.Store
	monitor   *monitor.Monitor
	logger    *zap.Logger
}

func NewHandler(mgr *manager.Manager, client *registrar.Client, store portfolio.Store, mon *monitor.Monitor, logger *zap.Logger) *Handler {
	return &Handler{
		manager:   mgr,
		registrar: client,
		store:     store,
		monitor:   mon,
		logger:    logger,
	}
}
