// @title           ClearList API
// @version         1.0
// @description     Minimal todo list with file attachments.
// @host            localhost:5000
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/M-Bohram/pydevops-workshop2-demo/internal/app"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/config"

	_ "github.com/M-Bohram/pydevops-workshop2-demo/docs"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// accept upper-case level names like INFO
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		log.Fatal().Str("level", cfg.Log.Level).Msg("unknown LOG_LEVEL")
	}
	log = log.Level(level)
	log.Info().Msg("config loaded, connecting to DB")

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("app init")
	}
	log.Info().Msg("database ready, starting HTTP server")

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown")
	}

	if err := application.Close(ctx); err != nil {
		log.Fatal().Err(err).Msg("close")
	}
}
