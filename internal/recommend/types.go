// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

// Restaurant is a catalog entry.
type Restaurant struct {
	// ID is the unique business identifier.
	ID string `json:"business_id"`

	// Name is the display name.
	Name string `json:"name"`

	// Rating is the aggregate star rating. It is not used for scoring and is
	// passed through to the output unchanged.
	Rating float64 `json:"stars"`

	// Categories are free-text, case-sensitive labels with no intrinsic order.
	// Surrounding whitespace is trimmed when the vocabulary is built.
	Categories []string `json:"categories"`
}

// User is a reviewer.
type User struct {
	// ID is the unique user identifier.
	ID string `json:"user_id"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// ReviewCount is the number of reviews the dataset reports for the user.
	ReviewCount int `json:"review_count,omitempty"`
}

// Review links a user to a restaurant with a star rating.
type Review struct {
	// UserID is the reviewing user.
	UserID string `json:"user_id"`

	// BusinessID is the reviewed restaurant.
	BusinessID string `json:"business_id"`

	// Stars is the rating, typically 1.0-5.0.
	Stars float64 `json:"stars"`
}

// Dataset bundles the three input tables.
type Dataset struct {
	Restaurants []Restaurant `json:"restaurants"`
	Users       []User       `json:"users"`
	Reviews     []Review     `json:"reviews"`
}

// ReviewsByUser returns the reviews written by userID in dataset order.
func (d *Dataset) ReviewsByUser(userID string) []Review {
	var out []Review
	for _, r := range d.Reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Recommendation is the display record produced for a ranked restaurant.
type Recommendation struct {
	// ID is the restaurant's business identifier.
	ID string `json:"business_id"`

	// Name is the restaurant's display name.
	Name string `json:"name"`

	// Rating is the restaurant's aggregate star rating.
	Rating float64 `json:"stars"`

	// Categories are the restaurant's category labels as supplied.
	Categories []string `json:"categories"`

	// Score is the normalized preference score used for ranking.
	Score float64 `json:"score"`
}

// NewRecommendation projects a restaurant to its display record.
//
//nolint:gocritic // Restaurant passed by value for immutability
func NewRecommendation(r Restaurant, score float64) Recommendation {
	return Recommendation{
		ID:         r.ID,
		Name:       r.Name,
		Rating:     r.Rating,
		Categories: r.Categories,
		Score:      score,
	}
}
