// Package app provides router configuration.
package app

import (
	"github.com/palletform/binpack3d/config"
	"github.com/palletform/binpack3d/internal/http"
	"github.com/palletform/binpack3d/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(packer service.Packing, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(packer)
	healthHandler := http.NewHealthHandler()

	routerCfg := http.RouterConfig{
		RateLimit:   cfg.Server.RateLimit,
		RateWindow:  cfg.Server.RateWindow,
		CORSOrigins: cfg.Server.CORSOrigins,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
