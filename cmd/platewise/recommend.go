// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/recommend/engine"
)

type recommendOptions struct {
	k              int
	excludeVisited bool
	explain        bool
}

// recommendOutput is the --json shape of the recommend command.
type recommendOutput struct {
	*engine.Response
	Profile *engine.Profile `json:"profile,omitempty"`
}

func newRecommendCmd(a *app) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend <user_id>",
		Short: "Rank restaurants for a user",
		Long: `Fit the user's category preferences from their reviews and rank the
catalog by normalized preference score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, a, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.k, "k", "k", 0, "number of recommendations (default: recommend.default_k)")
	f.BoolVar(&opts.excludeVisited, "exclude-visited", false, "drop restaurants the user already reviewed")
	f.BoolVar(&opts.explain, "explain", false, "also print the user's category weights")
	return cmd
}

func runRecommend(cmd *cobra.Command, a *app, opts *recommendOptions, userID string) error {
	ctx := cmd.Context()

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	eng, err := a.loadEngine(ctx, db)
	if err != nil {
		return err
	}

	req := engine.Request{UserID: userID, K: opts.k}
	if cmd.Flags().Changed("exclude-visited") {
		req.ExcludeVisited = &opts.excludeVisited
	}

	resp, err := eng.Recommend(ctx, req)
	if err != nil {
		return err
	}

	var profile *engine.Profile
	if opts.explain {
		if profile, err = eng.Profile(ctx, userID); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if a.jsonOutput {
		return writeJSON(out, recommendOutput{Response: resp, Profile: profile})
	}

	t := newTable(out, "RANK", "SCORE", "STARS", "BUSINESS", "NAME", "CATEGORIES")
	for i, item := range resp.Items {
		t.row(
			strconv.Itoa(i+1),
			strconv.FormatFloat(item.Score, 'f', 4, 64),
			strconv.FormatFloat(item.Rating, 'f', 1, 64),
			item.ID,
			item.Name,
			strings.Join(item.Categories, ", "),
		)
	}
	if err := t.flush(); err != nil {
		return err
	}

	if profile != nil {
		fmt.Fprintf(out, "\npreference weights for %s (total %g, %d visited)\n",
			profile.UserID, profile.Total, len(profile.Visited))
		pt := newTable(out, "LABEL", "WEIGHT")
		for _, w := range profile.Weights {
			pt.row(w.Label, strconv.FormatFloat(w.Weight, 'g', -1, 64))
		}
		return pt.flush()
	}
	return nil
}
