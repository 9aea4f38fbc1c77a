// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Endpoints

	GET  /api/v1/health/live                         liveness
	GET  /api/v1/health/ready                        503 until a dataset is loaded
	GET  /api/v1/recommendations/{userID}?k=&exclude_visited=
	GET  /api/v1/users?limit=&offset=
	GET  /api/v1/users/{userID}
	GET  /api/v1/users/{userID}/profile              non-zero preference weights
	GET  /api/v1/categories?prefix=&limit=           vocabulary or prefix completions
	GET  /api/v1/categories/pairs?k=                 most frequent label pairs
	GET  /api/v1/categories/{label}/associations?k=
	GET  /api/v1/stats
	POST /api/v1/admin/reload                        reread the dataset
	GET  /metrics                                    Prometheus, when enabled

# Responses

Every body uses the APIResponse envelope. Errors carry a machine-readable
code:

	NO_HISTORY          404  user has no reviews of catalog restaurants
	UNKNOWN_USER        404
	DEGENERATE_MODEL    422  preference weights sum to zero
	UNKNOWN_CATEGORY    400
	VALIDATION_ERROR    400
	DATASET_NOT_LOADED  503
	TOO_MANY_REQUESTS   429  go-chi/httprate limit

Query parameters are validated with go-playground/validator before the
engine is called.
*/
package api
