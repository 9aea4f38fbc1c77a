// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/recommend/features"
)

type vocabOptions struct {
	prefix       string
	associations string
	limit        int
}

func newVocabCmd(a *app) *cobra.Command {
	opts := &vocabOptions{}

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the category vocabulary",
		Long: `List category labels with the number of restaurants carrying each.

--prefix lists labels starting with a case-insensitive prefix.
--associations lists the labels that most often share a restaurant with
the given label.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVocab(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.prefix, "prefix", "", "only labels starting with this prefix")
	f.StringVar(&opts.associations, "associations", "", "list labels co-occurring with this label")
	f.IntVar(&opts.limit, "limit", 0, "maximum rows (0 for all)")
	cmd.MarkFlagsMutuallyExclusive("prefix", "associations")
	return cmd
}

func runVocab(cmd *cobra.Command, a *app, opts *vocabOptions) error {
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

	out := cmd.OutOrStdout()

	if opts.associations != "" {
		k := opts.limit
		if k <= 0 {
			k = 10
		}
		assoc, err := eng.Associations(opts.associations, k)
		if err != nil {
			return err
		}
		if assoc == nil {
			assoc = []features.Association{}
		}
		if a.jsonOutput {
			return writeJSON(out, assoc)
		}
		t := newTable(out, "LABEL", "CO-OCCURS WITH", "RESTAURANTS")
		for _, as := range assoc {
			t.row(as.First, as.Second, strconv.Itoa(as.Count))
		}
		return t.flush()
	}

	var labels []features.LabelCount
	if opts.prefix != "" {
		labels, err = eng.Suggest(opts.prefix, opts.limit)
	} else {
		labels, err = eng.Categories()
		if err == nil && opts.limit > 0 && len(labels) > opts.limit {
			labels = labels[:opts.limit]
		}
	}
	if err != nil {
		return err
	}
	if labels == nil {
		labels = []features.LabelCount{}
	}

	if a.jsonOutput {
		return writeJSON(out, labels)
	}
	t := newTable(out, "LABEL", "RESTAURANTS")
	for _, l := range labels {
		t.row(l.Label, strconv.Itoa(l.Count))
	}
	return t.flush()
}
