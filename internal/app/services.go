// Package app provides service initialization.
package app

import (
	"github.com/palletform/binpack3d/config"
	"github.com/palletform/binpack3d/internal/logger"
	"github.com/palletform/binpack3d/internal/metrics"
	"github.com/palletform/binpack3d/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Packer service.Packing
}

// InitializeServices initializes business logic services.
func InitializeServices(cfg config.Config) *ServiceComponents {
	sink := metrics.NewPackingSink(logger.NewZerologSink())
	opts := []service.Option{service.WithLogSink(sink)}

	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}

	packer := service.NewPackingService(cfg.Catalog.Boxes, opts...)

	return &ServiceComponents{
		Packer: packer,
	}
}
