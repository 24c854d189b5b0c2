package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/apierr"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/request"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/response"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/sse"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/game"
)

// GameHandler handles the gameplay endpoints
type GameHandler struct {
	controller *game.Controller
	cfg        model.GameConfig
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	controller *game.Controller,
	cfg model.GameConfig,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		controller: controller,
		cfg:        cfg,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Play handles POST /api/v1/game/play
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.PlayRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
			return
		}
	}

	player, round, err := h.controller.RequestPlay(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.PlayResponse{
		Player: response.PlayerFromModel(player),
		Round:  response.RoundFromModel(round),
	}
	response.JSON(w, http.StatusCreated, resp)
}

// Guess handles POST /api/v1/game/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, apierr.NewInvalidRequestError("player_id is required"))
		return
	}

	guess, err := model.NumberFromFloat(req.Guess)
	if err != nil {
		WriteError(w, apierr.NewInvalidNumberError(
			fmt.Sprintf("Guess must be a multiple of %s", h.cfg.Step)))
		return
	}
	if !h.cfg.ValidGuess(guess) {
		WriteError(w, apierr.NewInvalidNumberError(
			fmt.Sprintf("Guess must be between %s and %s in steps of %s",
				h.cfg.Step, h.cfg.MaxGuess(), h.cfg.Step)))
		return
	}

	round, err := h.controller.RequestGuess(r.Context(), model.PlayerID(req.PlayerID), guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResponse{
		Round: response.RoundFromModel(round),
	})
}

// GetPlayer handles GET /api/v1/players/{id}
func (h *GameHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.controller.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// GetRound handles GET /api/v1/rounds/{id}
func (h *GameHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	round, err := h.controller.GetRound(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(round))
}

// GetArchive handles GET /api/v1/archive/{id}
func (h *GameHandler) GetArchive(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	archive, err := h.controller.GetArchive(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ArchiveFromModel(archive))
}

// Events handles GET /api/v1/rounds/{id}/events
// Streams round lifecycle events over SSE until the round finishes or
// the client disconnects.
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	// The hub is claimed before the state check: a finish landing in
	// between is either visible to the check, or the broadcaster's
	// teardown finds this hub and closes it. Checking first would let
	// a freshly finished round leave an orphan hub behind.
	hub := h.hubManager.GetOrCreateHub(id)

	round, err := h.controller.GetRound(r.Context(), id)
	if errors.Is(err, model.ErrRoundNotFound) {
		h.hubManager.RemoveHub(id)
		// An archived round is finished; it serves no further events
		if _, aerr := h.controller.GetArchive(r.Context(), id); aerr == nil {
			WriteError(w, apierr.NewInvalidRequestError("Round has already finished"))
			return
		}
		WriteError(w, model.ErrRoundNotFound)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	if round.State == model.RoundStateFinished {
		h.hubManager.RemoveHub(id)
		WriteError(w, apierr.NewInvalidRequestError("Round has already finished"))
		return
	}

	if err := sse.ServeSSE(w, r, hub); err != nil {
		h.logger.Warn("sse stream ended with error",
			slog.String("round_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
}
