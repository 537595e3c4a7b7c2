package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/youruser/wrapart/internal/api"
	"github.com/youruser/wrapart/internal/logging"
)

func main() {
	logging.Setup(os.Stderr, os.Getenv("LOG_LEVEL"), true)

	r := gin.Default()
	api.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Msg("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
