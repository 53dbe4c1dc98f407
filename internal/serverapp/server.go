// Package serverapp wires the backend HTTP surface: player persistence,
// partial-update ingestion, leaderboard, keep-alive, and the websocket
// push channel.
package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/GENOxGAME/GENO/internal/config"
	"github.com/GENOxGAME/GENO/internal/httpmw"
	"github.com/GENOxGAME/GENO/internal/leaderboard"
	"github.com/GENOxGAME/GENO/internal/player"
	"github.com/GENOxGAME/GENO/internal/telemetry"
)

type Options struct {
	Config  *config.Config
	Players player.Repository
	Board   leaderboard.Repository
	Events  telemetry.Repository
	Logger  *log.Logger
}

type server struct {
	players player.Repository
	board   leaderboard.Repository
	events  telemetry.Repository
	hub     *Hub
	logger  *log.Logger
	limit   int
}

// NewHandler builds the full route tree with middleware applied. Repos left
// nil in opts are created on disk under the configured data directory.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	if opts.Players == nil {
		repo, err := player.NewFileRepo(opts.Config.Server.DataDir)
		if err != nil {
			return nil, err
		}
		opts.Players = repo
	}
	if opts.Board == nil {
		repo, err := leaderboard.NewFileRepo(opts.Config.Server.DataDir)
		if err != nil {
			return nil, err
		}
		opts.Board = repo
	}
	if opts.Events == nil {
		opts.Events = telemetry.NewMemoryRepository()
	}

	s := &server{
		players: opts.Players,
		board:   opts.Board,
		events:  opts.Events,
		hub:     NewHub(opts.Logger, opts.Config.Server.HeartbeatInterval),
		logger:  opts.Logger,
		limit:   opts.Config.Server.LeaderboardLimit,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "geno",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /api/player-data/{id}", s.handlePlayerData)
	mux.HandleFunc("POST /api/update-player/{id}", s.handleUpdatePlayer)
	mux.HandleFunc("POST /api/ping", s.handlePing)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("POST /api/leaderboard/submit", s.handleSubmitScore)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/ws/{id}", s.handleSubscribe)

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithRateLimit(rate.Limit(opts.Config.Server.RatePerSecond), opts.Config.Server.RateBurst),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func cleanID(raw string) string {
	return strings.TrimSpace(raw)
}
