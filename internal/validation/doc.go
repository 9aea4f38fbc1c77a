// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton with Platewise-specific tags and readable error messages.
//
// Custom tags:
//   - memsize: a DuckDB memory limit ("2GB", "512MiB", "75%")
//   - label: a non-blank category label without control characters
//
// Usage:
//
//	type categoryParams struct {
//	    Label string `validate:"label,max=128"`
//	    Limit int    `validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
//	    return
//	}
//
// Field names in errors are namespaced ("Config.Server.Port") so nested
// configuration failures point at the exact setting.
package validation
