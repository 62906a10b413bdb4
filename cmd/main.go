package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"authgate/internal/config"
	"authgate/internal/handlers"
	"authgate/internal/logger"
	"authgate/internal/repository"
	"authgate/internal/repository/db"
	"authgate/internal/server"
	"authgate/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// load configs/config.yml (optional) and AUTHGATE_* env
	cfg, err := config.Load(config.DefaultDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// create and seed the store before anything listens
	created, err := db.Bootstrap(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to bootstrap sqlite", "path", cfg.DB.Path, "err", err)
	}
	if created {
		log.Infow("created credential store with seed account", "path", cfg.DB.Path, "username", db.SeedUsername)
	}

	conn, err := db.Open(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to open sqlite", "path", cfg.DB.Path, "err", err)
	}

	store, err := handlers.NewSessionStore([]byte(cfg.Session.AuthKey), []byte(cfg.Session.EncryptionKey))
	if err != nil {
		closeDB(conn, log)
		log.Fatalw("failed to init session store", "err", err)
	}
	if cfg.Session.RandomKeys() {
		log.Warnw("session keys not configured; using random keys, sessions end on restart",
			"auth_key_set", cfg.Session.AuthKey != "", "encryption_key_set", cfg.Session.EncryptionKey != "")
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos)
	apiHandler := handlers.NewHandler(services, log, store, cfg.Session.Name)

	srv := &server.Server{}
	errCh := runHTTPServer(srv, cfg.Server, apiHandler, log)

	waitForShutdown(srv, cfg.Server, errCh, log)
	closeDB(conn, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config.Server, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "port", cfg.Port)
		errCh <- srv.Run(cfg.Port, handler.InitRoutes(), server.Options{
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		})
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a listener failure,
// then drains in-flight requests.
func waitForShutdown(srv *server.Server, cfg config.Server, errCh <-chan error, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}
