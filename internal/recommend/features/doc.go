// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package features turns free-form restaurant categories into a one-hot
// feature space.
//
// # Vocabulary
//
// Build scans the full catalog once, trims surrounding whitespace from every
// label and assigns slots in first-seen order:
//
//	catalog: [{"Sushi", " Japanese"}, {"Pizza", "Sushi"}]
//	vocab:   Sushi=0 Japanese=1 Pizza=2
//
// The mapping never changes after Build returns. Rebuilding from the same
// catalog yields the same labels in the same slots.
//
// # Encoding
//
// Encode produces a vector of length Size() with 1 in every slot whose label
// the restaurant carries. Labels outside the vocabulary are rejected with a
// *recommend.ConfigurationError instead of being dropped, so data-integrity
// problems surface at the encoder.
//
// # Space
//
// Space bundles a vocabulary with the encoded catalog. It is read-only after
// NewSpace returns and may be shared by any number of concurrent sessions.
package features
