package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/riverlane-tools/riverlane/pkg/errors"
	"github.com/riverlane-tools/riverlane/pkg/layout"
	"github.com/riverlane-tools/riverlane/pkg/model"
)

// LayoutRequest is the POST /v1/layout body.
type LayoutRequest struct {
	Document model.Document `json:"document"`

	// Options overrides per-request layout parameters. Engine weights and
	// schedule come from server configuration, not the request.
	Options struct {
		Width       float64 `json:"width"`
		Stretch     float64 `json:"stretch"`
		CurrentYear int     `json:"current_year"`
		YearRange   [2]int  `json:"year_range"`
		Seed        int64   `json:"seed"`
	} `json:"options"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    string(errors.ErrCodeInvalidDocument),
			Message: "malformed request body: " + err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	opts := layout.Options{
		Width:       req.Options.Width,
		Stretch:     req.Options.Stretch,
		CurrentYear: req.Options.CurrentYear,
		YearRange:   req.Options.YearRange,
		Seed:        req.Options.Seed,
		Config:      s.cfg.Engine,
		Precomp:     s.cfg.Precomp,
		Logger:      s.logger,
	}

	res, err := layout.Compute(ctx, &req.Document, opts)
	if err != nil {
		status := http.StatusInternalServerError
		switch errors.GetCode(err) {
		case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidSchedule,
			errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidInput:
			status = http.StatusBadRequest
		}
		s.logger.Error("layout failed",
			"err", err, "request_id", requestIDFrom(r.Context()))
		writeJSON(w, status, errorResponse{
			Code:    string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
