// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/platewise/internal/metrics"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status        string  `json:"status"`
	DatasetLoaded bool    `json:"dataset_loaded"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Fingerprint   string  `json:"fingerprint,omitempty"`
}

func (h *Handler) healthStatus() HealthStatus {
	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)

	st := h.engine.Stats()
	status := "healthy"
	if !st.Loaded {
		status = "loading"
	}
	return HealthStatus{
		Status:        status,
		DatasetLoaded: st.Loaded,
		UptimeSeconds: uptime,
		Fingerprint:   st.Fingerprint,
	}
}

// HealthLive handles GET /api/v1/health/live. The process is alive as long
// as it can answer.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus())
}

// HealthReady handles GET /api/v1/health/ready. It fails until a dataset has
// been loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	hs := h.healthStatus()
	rw := NewResponseWriter(w, r)
	if !hs.DatasetLoaded {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeNotLoaded, "dataset not loaded", hs)
		return
	}
	rw.Success(hs)
}
