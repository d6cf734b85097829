package main

import (
	"context"
	"os"

	"github.com/lams-capstone/lams-admin/internal/pkg/logger"
	"github.com/lams-capstone/lams-admin/internal/server"
)

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// details are logged by the bootstrap step that failed
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
