package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dotgrid/dotsboxes-go/internal/api/request"
	"github.com/dotgrid/dotsboxes-go/internal/api/response"
	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/services/bot"
	"github.com/dotgrid/dotsboxes-go/internal/services/match"
	"github.com/dotgrid/dotsboxes-go/internal/storage"
)

// sseKeepaliveInterval is how often a comment line is sent to keep the
// event stream connection open through proxies
const sseKeepaliveInterval = 15 * time.Second

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	orchestrator *match.Orchestrator
	bots         *bot.Service
	storage      storage.Storage
	logger       *slog.Logger
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(
	orchestrator *match.Orchestrator,
	bots *bot.Service,
	store storage.Storage,
	logger *slog.Logger,
) *MatchHandler {
	return &MatchHandler{
		orchestrator: orchestrator,
		bots:         bots,
		storage:      store,
		logger:       logger,
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	settings := model.Settings{
		GridSize:     req.GridSize,
		Public:       true,
		AutoStart:    req.AutoStart,
		TurnDuration: time.Duration(req.TurnDurationSeconds) * time.Second,
	}
	if req.Public != nil {
		settings.Public = *req.Public
	}

	m, err := h.orchestrator.CreateMatch(r.Context(), model.PlayerID(req.PlayerID), req.PlayerName, settings)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.orchestrator.ListOpenMatches(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.MatchList{Matches: make([]response.Match, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, response.MatchFromModel(m))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.orchestrator.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.MatchFromModel(m)
	resp.Insights = response.InsightsFromModel(h.orchestrator.MatchInsights(m))
	response.JSON(w, http.StatusOK, resp)
}

// Join handles POST /api/v1/matches/{id}/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.JoinMatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	m, err := h.orchestrator.JoinMatch(r.Context(), id, model.PlayerID(req.PlayerID), req.PlayerName)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.playBotTurns(r.Context(), id)

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// AddBot handles POST /api/v1/matches/{id}/bot
func (h *MatchHandler) AddBot(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.orchestrator.AddBot(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Start handles POST /api/v1/matches/{id}/start
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.StartMatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	m, err := h.orchestrator.StartMatch(r.Context(), id, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.playBotTurns(r.Context(), id)

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Cancel handles POST /api/v1/matches/{id}/cancel
func (h *MatchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.CancelMatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.orchestrator.CancelMatch(r.Context(), id, model.PlayerID(req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Move handles POST /api/v1/matches/{id}/moves
func (h *MatchHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.PlayMove
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	start := model.Dot{Row: req.StartDot.Row, Col: req.StartDot.Col}
	end := model.Dot{Row: req.EndDot.Row, Col: req.EndDot.Col}

	result, err := h.orchestrator.ApplyMove(r.Context(), id, model.PlayerID(req.PlayerID), start, end)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.playBotTurns(r.Context(), id)

	response.JSON(w, http.StatusOK, response.MoveResult{
		Success:        true,
		SquaresClaimed: result.CellsClaimed,
		GameCompleted:  result.GameCompleted,
		Winner:         string(result.Winner),
	})
}

// Rematch handles POST /api/v1/matches/{id}/rematch
func (h *MatchHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.Rematch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	m, err := h.orchestrator.Rematch(r.Context(), id, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// Events handles GET /api/v1/matches/{id}/events as a server-sent event
// stream. The current state is sent immediately, then every change until
// the client disconnects.
func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, NewInternalError())
		return
	}

	m, err := h.orchestrator.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	updates, stop, err := h.storage.SubscribeMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeMatchEvent(w, m); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(sseKeepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case updated, open := <-updates:
			if !open {
				return
			}
			if err := writeMatchEvent(w, updated); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeMatchEvent writes a single match_update SSE event
func writeMatchEvent(w http.ResponseWriter, m *model.Match) error {
	data, err := json.Marshal(response.MatchFromModel(m))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: match_update\ndata: %s\n\n", data)
	return err
}

// playBotTurns plays any pending bot turns after a state change. Bot
// failures are logged, never surfaced to the triggering player.
func (h *MatchHandler) playBotTurns(ctx context.Context, id model.MatchID) {
	if h.bots == nil {
		return
	}

	m, err := h.orchestrator.GetMatch(ctx, id)
	if err != nil {
		return
	}
	if m.Status != model.StatusActive || m.GameOver {
		return
	}

	current := m.ParticipantInSlot(m.CurrentTurn)
	if current == nil || !current.IsBot {
		return
	}

	if err := h.bots.PlayTurn(ctx, id, current.ID); err != nil {
		h.logger.Error("bot turn failed",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
}
