package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/config"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/events"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/handler"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/hub"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/registry"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/service"
	pkglog "github.com/viru0909-dev/nyay-setu-working-sub001/pkg/log"
	"github.com/viru0909-dev/nyay-setu-working-sub001/pkg/pubsub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	pkglog.Init(pkglog.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, ServiceName: "signaling-server"})
	logger := pkglog.L()

	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting signaling server")

	// Room lifecycle events for the case-management backend are optional;
	// the relay works without them.
	var publisher events.Publisher
	if cfg.Events.Enabled {
		ps, err := pubsub.NewPublisher(cfg.Events.PubSub)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize event publisher, room events disabled")
		} else {
			publisher = events.NewPublisher(ps)
			defer publisher.Close()
			logger.Info().Str("driver", cfg.Events.PubSub.Driver).Msg("room event publisher ready")
		}
	}

	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	relaySvc := service.NewRelayService(registry.New(), wsHub, publisher)

	origins := handler.NewOriginChecker(cfg.CORS.AllowedOrigins)
	wsHandler := handler.NewWSHandler(wsHub, relaySvc, origins)

	mux := http.NewServeMux()
	wsHandler.RegisterRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      pkglog.HTTPMiddleware(logger)(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("signaling server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down signaling server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("signaling server stopped")
}
