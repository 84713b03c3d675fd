package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/justzen0/random-walker/internal/api/dto"
	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/services"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// WalkSuggester is the part of services.WalkService the handlers use.
type WalkSuggester interface {
	Suggest(ctx context.Context, req services.WalkRequest) (services.SuggestResult, error)
	ListWalks(ctx context.Context, limit int) ([]*domain.Walk, error)
	GetWalk(ctx context.Context, id int64) (*domain.Walk, error)
}

type WalkHandler struct {
	Service WalkSuggester
}

// Create suggests a new walk. 201 with the walk, 422 when no loop fits
// the requested distance.
func (h *WalkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.WalkRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	// an empty body asks for a walk with all defaults
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.WalkRequest{
		TargetKm:    req.TargetKm,
		Tolerance:   req.Tolerance,
		MaxAttempts: req.MaxAttempts,
		Seed:        req.Seed,
	}
	if req.Start != nil {
		svcReq.Start = &domain.GeoPoint{Lat: req.Start.Lat, Lon: req.Start.Lon}
	}
	if req.MaxAttempts < 0 || req.MaxAttempts > 1000 {
		writeError(w, r, http.StatusBadRequest, "max_attempts must be between 1 and 1000")
		return
	}

	res, err := h.Service.Suggest(r.Context(), svcReq)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, domain.ErrStartTooFar):
		writeError(w, r, http.StatusUnprocessableEntity,
			"start point is outside the loaded map area; pick a start inside it")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "suggest walk failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !res.Found() {
		rejections := make(map[string]int, len(res.Search.Rejections))
		for reason, n := range res.Search.Rejections {
			rejections[reason.String()] = n
		}
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.NoWalkResponse{
			Error: fmt.Sprintf("could not find a suitable path after %d attempts; try increasing the distance or tolerance",
				res.Search.Attempts),
			Attempts:   res.Search.Attempts,
			Rejections: rejections,
			Seed:       res.Seed,
		})
		return
	}

	body := toWalkResponse(res.Walk, true)
	body.Seed = &res.Seed
	w.Header().Set("Location", fmt.Sprintf("/walks/%d", res.Walk.ID))
	writeJSON(w, r, http.StatusCreated, body)
}

// List returns recent walks, newest first, without their full paths.
func (h *WalkHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = n
	}

	walks, err := h.Service.ListWalks(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "list walks failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListWalkResponse{Walks: make([]dto.WalkResponse, 0, len(walks))}
	for _, walk := range walks {
		res.Walks = append(res.Walks, toWalkResponse(walk, false))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one walk with its full path.
func (h *WalkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	walk, err := h.Service.GetWalk(r.Context(), id)
	if errors.Is(err, domain.ErrWalkNotFound) {
		writeError(w, r, http.StatusNotFound, "walk not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "get walk failed", "id", id, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toWalkResponse(walk, true))
}

func toWalkResponse(walk *domain.Walk, withPath bool) dto.WalkResponse {
	res := dto.WalkResponse{
		ID:        walk.ID,
		CreatedAt: walk.CreatedAt,
		Start:     toPoint(walk.Start),
		TargetKm:  walk.TargetKm,
		Tolerance: walk.Tolerance,
		LengthM:   walk.LengthMeters,
		LengthKm:  walk.LengthKm(),
		Attempts:  walk.Attempts,
		MapsURL:   walk.MapsURL,
		Waypoints: toPoints(walk.Waypoints),
	}
	if withPath {
		res.Path = toPoints(walk.Path)
	}
	return res
}

func toPoint(p domain.GeoPoint) dto.Point { return dto.Point{Lat: p.Lat, Lon: p.Lon} }

func toPoints(ps []domain.GeoPoint) []dto.Point {
	out := make([]dto.Point, len(ps))
	for i, p := range ps {
		out[i] = toPoint(p)
	}
	return out
}
