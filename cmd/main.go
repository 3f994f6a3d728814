// Package main is the entry point for the binpack3d service.
package main

import (
	"github.com/palletform/binpack3d/config"
	"github.com/palletform/binpack3d/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
