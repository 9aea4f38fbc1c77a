// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/recommend"
	"github.com/tomtom215/platewise/internal/recommend/engine"
)

// errorStatus maps an engine or model error to an HTTP status and code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrNotLoaded):
		return http.StatusServiceUnavailable, ErrCodeNotLoaded
	case errors.Is(err, engine.ErrUnknownUser):
		return http.StatusNotFound, ErrCodeUnknownUser
	case errors.Is(err, recommend.ErrNoHistory):
		return http.StatusNotFound, ErrCodeNoHistory
	case errors.Is(err, recommend.ErrDegenerateModel):
		return http.StatusUnprocessableEntity, ErrCodeDegenerateModel
	case errors.Is(err, recommend.ErrUnknownCategory):
		return http.StatusBadRequest, ErrCodeUnknownCategory
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// respondEngineError writes err using errorStatus. Internal errors are logged
// and their message is not exposed.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	rw := NewResponseWriter(w, r)

	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		rw.InternalError("internal error")
		return
	}

	var details interface{}
	if kind := recommend.ErrorKind(err); kind != "internal" {
		details = map[string]string{"kind": kind}
	}
	rw.ErrorWithDetails(status, code, err.Error(), details)
}
