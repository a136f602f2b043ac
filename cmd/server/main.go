// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/rodrigovaamonde/uno-server/internal/auth"
	"github.com/rodrigovaamonde/uno-server/internal/cache"
	"github.com/rodrigovaamonde/uno-server/internal/database"
	"github.com/rodrigovaamonde/uno-server/internal/handlers"
	"github.com/rodrigovaamonde/uno-server/internal/middleware"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Postgres and Redis are optional; the server is fully functional in
	// memory without them.
	if os.Getenv("PG_HOST") != "" {
		if err := database.ConnectDB(); err != nil {
			logger.Fatalf("failed to connect to database: %v", err)
		}
		if err := database.EnsureSchema(context.Background()); err != nil {
			logger.Fatalf("failed to ensure database schema: %v", err)
		}
		logger.Info("game history persistence enabled")
	}
	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			logger.Fatalf("failed to connect to Redis: %v", err)
		}
		logger.Info("action history queue enabled")
	}

	srv := handlers.NewGameServer(logger)

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	mux.Handle("/game/create", logged(handlers.CreateGameHandler(srv)))
	mux.Handle("/game/join", logged(handlers.JoinGameHandler(srv)))
	mux.Handle("/game/state/", logged(handlers.GameStateHandler(srv)))
	mux.Handle("/game/ws/", logged(handlers.GameWSHandler(logger, srv)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
