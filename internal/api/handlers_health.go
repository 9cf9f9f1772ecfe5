// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/suggestrank/internal/models"
	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/profile"
)

// readinessTimeout bounds each dependency check.
const readinessTimeout = 2 * time.Second

// HealthLive handles GET /api/v1/health/live. It answers 200 while the
// process is running, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.HealthResponse{
			Status:    "alive",
			Version:   h.version,
			Uptime:    time.Since(h.startTime).Seconds(),
			Timestamp: h.now().UTC(),
		},
		Metadata: models.Metadata{Timestamp: h.now().UTC()},
	})
}

// HealthReady handles GET /api/v1/health/ready. It answers 503 when the
// engine is missing or any registered dependency check fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.checks)+1)
	ready := true

	if h.engine == nil {
		checks["engine"] = "not initialized"
		ready = false
	} else {
		checks["engine"] = "ok"
	}

	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := c.check(ctx)
		cancel()
		if err != nil {
			checks[c.name] = err.Error()
			ready = false
			continue
		}
		checks[c.name] = "ok"
	}

	resp := models.HealthResponse{
		Status:    "ready",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Checks:    checks,
		Timestamp: h.now().UTC(),
	}
	if !ready {
		resp.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     resp,
			Metadata: models.Metadata{Timestamp: h.now().UTC()},
			Error:    &models.APIError{Code: CodeNotReady, Message: "Service is not ready"},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     resp,
		Metadata: models.Metadata{Timestamp: h.now().UTC()},
	})
}

// RankingConfig handles GET /api/v1/ranking/config.
func (h *Handler) RankingConfig(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, h.engine.Config(), time.Now(), nil)
}

// RankingStatsResponse is the payload of GET /api/v1/ranking/stats.
type RankingStatsResponse struct {
	Engine   ranking.EngineStats `json:"engine"`
	Profiles *profile.StoreStats `json:"profiles,omitempty"`
}

// RankingStats handles GET /api/v1/ranking/stats.
func (h *Handler) RankingStats(w http.ResponseWriter, _ *http.Request) {
	resp := RankingStatsResponse{Engine: h.engine.Stats()}
	if h.profiles != nil {
		s := h.profiles.Stats()
		resp.Profiles = &s
	}
	respondSuccess(w, http.StatusOK, resp, time.Now(), nil)
}
