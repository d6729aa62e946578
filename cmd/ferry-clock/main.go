// ferry-clock polls the WSDOT Ferries API for one route, reconciles
// the feed into a stable two-slot display state, and serves it over
// HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abw750/ferry-clock/internal/config"
	"github.com/abw750/ferry-clock/internal/engine"
	"github.com/abw750/ferry-clock/internal/server"
	"github.com/abw750/ferry-clock/internal/store"
	"github.com/abw750/ferry-clock/internal/wsdot"
)

func main() {
	addr := flag.String("addr", "", "Listen address (overrides LISTEN_ADDR)")
	dbPath := flag.String("db", "", "Path to the state database (overrides DB_PATH)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration failed", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Error("opening state database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	eng := engine.New(engine.Options{
		Route:        cfg.Route,
		Location:     cfg.Location,
		PollInterval: cfg.PollInterval,
		Client:       wsdot.NewHTTPClient(cfg.APIKey),
		Store:        st,
		Logger:       log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("engine stopped", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(eng, wsdot.NewHTTPClient(cfg.APIKey), cfg.Route, log).Handler(),
	}

	go func() {
		log.Info("listening", "addr", cfg.ListenAddr, "route", cfg.Route.Description)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
