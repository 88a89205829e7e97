package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskswift/internal/config"
	"github.com/adanyl0v/taskswift/internal/delivery/http/v1"
	"github.com/adanyl0v/taskswift/internal/services"
)

func newRouter(cfg *config.Config, tasks services.TaskService) *gin.Engine {
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	v1.RegisterRoutes(router, v1.New(
		globalLogger,
		tasks,
		cfg.JWT.Issuer,
		cfg.JWT.SigningKey,
	))
	return router
}

// MustListenAndServeHTTP serves the task API until ctx is done or the
// process receives SIGINT or SIGTERM, then drains open requests for at most
// the configured shutdown timeout.
func MustListenAndServeHTTP(ctx context.Context, tasks services.TaskService) {
	cfg := config.Global()
	httpCfg := cfg.HTTP

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: newRouter(cfg, tasks),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		globalLogger.Info().
			Str("addr", server.Addr).
			Bool("auth", cfg.JWT.SigningKey != "").
			Str("storage_backend", cfg.Storage.Backend).
			Msg("serving task api")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Str("addr", server.Addr).
				Msg("failed to listen and serve http")
			panic(err)
		}
		return
	case <-ctx.Done():
	}

	globalLogger.Info().
		Dur("timeout", httpCfg.ShutdownTimeout).
		Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}
