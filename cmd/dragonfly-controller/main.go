// Dragonfly is a bare-metal provisioning controller.
// Copyright (C) 2025  Matthew Burns
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dragonfly/internal/assignment"
	"dragonfly/internal/auth"
	"dragonfly/internal/config"
	"dragonfly/internal/estimator"
	"dragonfly/internal/eventbus"
	"dragonfly/internal/httpapi"
	"dragonfly/internal/ipxe"
	"dragonfly/internal/metrics"
	"dragonfly/internal/poller"
	"dragonfly/internal/progress"
	"dragonfly/internal/registration"
	"dragonfly/internal/store"
	"dragonfly/internal/tinkerbell"
)

func main() {
	configureLogging()

	ctx := context.Background()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("opening store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = st.Close() }()

	if cfg.SetupMode {
		if err := ensureDefaultAdmin(ctx, st); err != nil {
			slog.Error("setup mode: creating default admin", "error", err)
			os.Exit(1)
		}
	}

	gw, err := tinkerbell.NewGateway(cfg.BaseURL)
	if err != nil {
		slog.Error("constructing tinkerbell gateway", "error", err)
		os.Exit(1)
	}

	est := estimator.New(st)
	if err := est.Load(ctx); err != nil {
		slog.Warn("loading historical deployment durations", "error", err)
	}

	bus := eventbus.New()

	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	p := poller.New(st, gw, est, bus, poller.Config{})
	go p.Run(pollerCtx)

	gate := auth.New(st)

	artifacts, err := ipxe.New(ipxe.Config{
		BaseURL:                 cfg.BaseURL,
		ArtifactDir:             cfg.IPXEArtifactDir,
		TinkerbellGRPCAuthority: cfg.TinkerbellGRPCAuthority,
		TinkerbellSyslogHost:    cfg.TinkerbellSyslogHost,
		TinkerbellTLS:           cfg.TinkerbellTLS,
	}, st)
	if err != nil {
		slog.Error("constructing artifact service", "error", err)
		os.Exit(1)
	}

	assigner := assignment.New(st, gw, bus)
	registrar := registration.New(st, gw, assigner, bus)
	progressSvc := progress.New(st, bus)

	router := httpapi.NewRouter(httpapi.Deps{
		Store:     st,
		Registrar: registrar,
		Assigner:  assigner,
		Progress:  progressSvc,
		Gateway:   gw,
		Artifacts: artifacts,
		Admin:     gate,
		Bus:       bus,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", router)

	addr := envOr("DRAGONFLY_ADDR", ":8080")
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting dragonfly-controller", "addr", addr, "service", cfg.Service)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("exited")
}

// openStore opens the persistence store, encrypting BMC passwords at rest
// if an encryption key was configured.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	if cfg.BMCEncryptionKey == "" {
		slog.Warn("no DRAGONFLY_BMC_ENCRYPTION_KEY set, BMC passwords will be stored in plaintext")
		return store.Open(ctx, cfg.DBPath)
	}
	return store.OpenWithEncryption(ctx, cfg.DBPath, cfg.BMCEncryptionKey)
}

// configureLogging sets the default slog logger's level from
// DRAGONFLY_LOG_LEVEL (debug, info, warn, error; default info).
func configureLogging() {
	level := slog.LevelInfo
	switch envOr("DRAGONFLY_LOG_LEVEL", "info") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// ensureDefaultAdmin creates the singleton admin account with a generated
// or environment-provided password if setup hasn't run yet, mirroring the
// first-run bootstrap the admin-auth layer otherwise expects an operator
// to complete interactively.
func ensureDefaultAdmin(ctx context.Context, st *store.Store) error {
	if _, err := st.GetAdminCredentials(ctx); err == nil {
		return nil
	} else if err != store.ErrNotFound {
		return err
	}

	password := os.Getenv("DRAGONFLY_ADMIN_PASSWORD")
	generated := password == ""
	if generated {
		var err error
		password, err = randomPassword()
		if err != nil {
			return err
		}
	}

	gate := auth.New(st)
	if err := gate.SetPassword(ctx, "admin", password); err != nil {
		return err
	}
	if err := st.MarkSetupCompleted(ctx); err != nil {
		return err
	}

	slog.Info("created default admin account", "username", "admin")
	if generated {
		slog.Warn("no DRAGONFLY_ADMIN_PASSWORD set, generated a random admin password for this run only", "password", password)
	}
	return nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
