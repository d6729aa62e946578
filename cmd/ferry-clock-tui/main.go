// ferry-clock-tui renders the reconciled ferry state as a terminal
// clock face, polling the WSDOT Ferries API in the background.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abw750/ferry-clock/internal/config"
	"github.com/abw750/ferry-clock/internal/engine"
	"github.com/abw750/ferry-clock/internal/store"
	"github.com/abw750/ferry-clock/internal/ui"
	"github.com/abw750/ferry-clock/internal/wsdot"
)

func main() {
	// The alternate screen owns the terminal; logs would tear it up.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", cfg.DBPath, err)
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = eng.Run(ctx) }()

	p := tea.NewProgram(ui.NewModel(eng, cfg.Route), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
