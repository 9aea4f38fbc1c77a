// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package logging provides the zerolog-based logger shared by every Platewise
// component.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("server starting")
//	logging.Err(err).Str("user_id", id).Msg("fit failed")
//
//	logger := logging.Component("database")
//	logger.Debug().Str("table", "reviews").Msg("import complete")
//
// # Request Context
//
// HTTP middleware stores a request ID in the context; Ctx attaches it to
// every entry:
//
//	ctx = logging.ContextWithNewRequestID(ctx)
//	logging.Ctx(ctx).Info().Msg("recommendations served")
//
// # Adapters
//
// SlogHandler routes log/slog records (sutureslog) and BadgerLogger routes
// badger's printf-style logs into the same zerolog output.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
