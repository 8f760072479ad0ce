// Package api provides the HTTP surface over a running farm plot.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token and route exclusively through the
// plot's care entry points — the only legal mutation surface.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/plot"
)

// Server serves farm plot state over HTTP.
type Server struct {
	Plot     *plot.FarmPlot
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	careLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/cells", s.handleCells)
	mux.HandleFunc("/api/v1/cell", s.handleCell)
	mux.HandleFunc("/api/v1/soil", s.handleSoil)
	mux.HandleFunc("/api/v1/harvests", s.handleHarvests)
	mux.HandleFunc("/api/v1/harvests/stats", s.handleHarvestStats)
	mux.HandleFunc("/api/v1/species", s.handleSpecies)

	// Care endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/plant", s.adminOnly(RateLimitMiddleware(careLimiter, s.handlePlant)))
	mux.HandleFunc("/api/v1/harvest", s.adminOnly(RateLimitMiddleware(careLimiter, s.handleHarvest)))
	mux.HandleFunc("/api/v1/water", s.adminOnly(RateLimitMiddleware(careLimiter, s.handleWater)))
	mux.HandleFunc("/api/v1/fertilize", s.adminOnly(RateLimitMiddleware(careLimiter, s.handleFertilize)))
	mux.HandleFunc("/api/v1/till", s.adminOnly(RateLimitMiddleware(careLimiter, s.handleTill)))
	mux.HandleFunc("/api/v1/treat", s.adminOnly(RateLimitMiddleware(careLimiter, s.handleTreat)))
	mux.HandleFunc("/api/v1/advance", s.adminOnly(RateLimitMiddleware(careLimiter, s.handleAdvance)))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly gates a handler behind the bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "care endpoints disabled", http.StatusForbidden)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("encode response", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Plot.Stats())
}

func (s *Server) handleCells(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Plot.AllCellStatus())
}

func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	y, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil {
		http.Error(w, "x and y query parameters required", http.StatusBadRequest)
		return
	}
	st, ok := s.Plot.CellStatusAt(x, y)
	if !ok {
		http.Error(w, "cell out of range", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSoil(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Plot.Soil())
}

func (s *Server) handleHarvests(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, s.Plot.HarvestHistory(limit))
}

func (s *Server) handleHarvestStats(w http.ResponseWriter, r *http.Request) {
	speciesID := r.URL.Query().Get("species")
	if speciesID == "" {
		http.Error(w, "species query parameter required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.Plot.HarvestStatsFor(speciesID))
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	type speciesView struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Yield    int     `json:"base_yield"`
		Value    float64 `json:"market_value"`
	}
	all := catalog.All()
	out := make([]speciesView, 0, len(all))
	for _, sp := range all {
		out = append(out, speciesView{
			ID:       sp.ID,
			Name:     sp.Name,
			Category: catalog.CategoryName(sp.Category),
			Yield:    sp.BaseYield,
			Value:    sp.MarketValue,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type plantRequest struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Species string `json:"species"`
}

func (s *Server) handlePlant(w http.ResponseWriter, r *http.Request) {
	var req plantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	// Accept display names with typos as well as exact ids.
	speciesID := req.Species
	if _, ok := catalog.Find(speciesID); !ok {
		if sp, ok := catalog.FindByName(req.Species); ok {
			speciesID = sp.ID
		}
	}
	ok := s.Plot.Plant(req.X, req.Y, speciesID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

type harvestRequest struct {
	X   int  `json:"x"`
	Y   int  `json:"y"`
	All bool `json:"all"`
}

func (s *Server) handleHarvest(w http.ResponseWriter, r *http.Request) {
	var req harvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.All {
		writeJSON(w, http.StatusOK, s.Plot.HarvestAll())
		return
	}
	writeJSON(w, http.StatusOK, s.Plot.Harvest(req.X, req.Y))
}

type amountRequest struct {
	Amount     float64 `json:"amount"`
	Fertilizer string  `json:"fertilizer,omitempty"`
}

func (s *Server) handleWater(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ok := s.Plot.WaterPlot(req.Amount)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

func (s *Server) handleFertilize(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	kind := fertilizerKindFromName(req.Fertilizer)
	ok := s.Plot.FertilizePlot(req.Amount, kind)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

func (s *Server) handleTill(w http.ResponseWriter, r *http.Request) {
	s.Plot.TillPlot()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type treatRequest struct {
	Pesticide float64 `json:"pesticide"`
	Fungicide float64 `json:"fungicide"`
}

func (s *Server) handleTreat(w http.ResponseWriter, r *http.Request) {
	var req treatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ok := s.Plot.TreatPlot(req.Pesticide, req.Fungicide)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

type advanceRequest struct {
	Dt          float64 `json:"dt"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Light       float64 `json:"light"`
}

// handleAdvance lets an external host drive ticks manually, for headless
// integrations that do not run the real-time engine loop.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Dt <= 0 {
		http.Error(w, "dt must be positive", http.StatusBadRequest)
		return
	}
	s.Plot.Advance(req.Dt, req.Temperature, req.Humidity, req.Light)
	writeJSON(w, http.StatusOK, s.Plot.Stats())
}

func fertilizerKindFromName(name string) catalog.FertilizerKind {
	switch name {
	case "premium":
		return catalog.FertilizerPremium
	case "organic":
		return catalog.FertilizerOrganic
	case "synthetic":
		return catalog.FertilizerSynthetic
	case "specialized":
		return catalog.FertilizerSpecialized
	default:
		return catalog.FertilizerBasic
	}
}
