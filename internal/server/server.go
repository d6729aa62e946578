// Package server exposes the reconciled state over HTTP. Every
// endpoint serves the engine's current snapshot; nothing here blocks on
// the upstream API except the route listing, which falls back to the
// configured route when the upstream is down.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/abw750/ferry-clock/internal/engine"
	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/wsdot"
)

const routesTimeout = 12 * time.Second

// Server wires the HTTP API around a running engine.
type Server struct {
	eng    *engine.Engine
	client wsdot.Client
	route  models.RouteSelection
	log    *slog.Logger
}

// New builds a server. The client is only used for the route listing.
func New(eng *engine.Engine, client wsdot.Client, route models.RouteSelection, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{eng: eng, client: client, route: route, log: log}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(noStore)

	r.HandleFunc("/api/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", s.handleSummary).Methods(http.MethodGet)
	r.HandleFunc("/api/routes", s.handleRoutes).Methods(http.MethodGet)
	r.HandleFunc("/api/peek", s.handlePeek).Methods(http.MethodGet)
	r.HandleFunc("/api/refresh", s.handleRefresh).Methods(http.MethodPost)

	return r
}

// noStore keeps intermediaries from caching state that changes every
// poll cycle.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := s.eng.State()
	if st == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "no current state available",
		})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.eng.Status())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, summaryRows(s.eng.Summary()))
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), routesTimeout)
	defer cancel()

	routes, err := s.client.Routes(ctx)
	if err != nil || len(routes) == 0 {
		if err != nil {
			s.log.Warn("route listing failed, serving configured route", "error", err)
		}
		writeJSON(w, http.StatusOK, []routeEntry{configuredRoute(s.route)})
		return
	}

	out := make([]routeEntry, 0, len(routes))
	for _, rt := range routes {
		e := routeEntry{RouteID: rt.RouteID, RouteName: rt.RouteName}
		for _, t := range rt.Terminals {
			e.Terminals = append(e.Terminals, terminalEntry{
				TerminalID:   t.TerminalID,
				TerminalName: t.TerminalName,
			})
		}
		out = append(out, e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePeek(w http.ResponseWriter, r *http.Request) {
	live := s.eng.LivePositions()
	out := make([]peekEntry, 0, len(live))
	for _, pos := range live {
		out = append(out, peekEntry{
			VesselName:          pos.Vessel,
			DepartingTerminalID: pos.DepartingTerminalID,
			ArrivingTerminalID:  pos.ArrivingTerminalID,
			LeftDock:            pos.LeftDock,
			Eta:                 pos.ETA,
			AtDock:              pos.AtDock,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.eng.ForcePoll()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh requested"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
