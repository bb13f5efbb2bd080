package main

import (
	"fmt"
	"log/slog"
	"os"

	"minderd/internal/config"
	"minderd/internal/push"
	"minderd/internal/server"
	"minderd/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.RelayConfigFromEnv(config.DefaultRelayConfig())

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "minderd-relay failed: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.RelayConfig, logger *slog.Logger) error {
	store, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	transport := push.NewWebPushTransport(push.VAPIDConfig{
		Subject:    cfg.VAPIDSubject,
		PublicKey:  cfg.VAPIDPublicKey,
		PrivateKey: cfg.VAPIDPrivateKey,
	})
	dispatcher := push.NewDispatcher(store, transport, push.WithLogger(logger))
	handler := server.NewHandler(store, dispatcher, transport, logger)
	router := server.NewRouter(handler, cfg.CronSecret, logger)

	logger.Info("relay listening", "addr", cfg.ListenAddr, "db", cfg.DatabasePath)
	return router.Run(cfg.ListenAddr)
}
