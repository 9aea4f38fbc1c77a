// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/database"
	"github.com/tomtom215/platewise/internal/logging"
)

type importOptions struct {
	fromParquet   bool
	exportParquet bool
	parquetDir    string
	businessFile  string
	userFile      string
	reviewFile    string
}

func newImportCmd(a *app) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the dataset into DuckDB",
		Long: `Load restaurants, users and reviews into DuckDB.

By default the Yelp JSON-lines files from the data section of the config are
read. With --from-parquet the pre-processed Parquet files in the parquet
directory are read instead. --export-parquet writes the imported tables back
out as Parquet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.fromParquet, "from-parquet", false, "read Parquet files instead of JSON lines")
	f.BoolVar(&opts.exportParquet, "export-parquet", false, "write the imported tables as Parquet")
	f.StringVar(&opts.parquetDir, "parquet-dir", "", "Parquet directory (overrides data.parquet_dir)")
	f.StringVar(&opts.businessFile, "businesses", "", "business JSON-lines file (overrides data.business_file)")
	f.StringVar(&opts.userFile, "users", "", "user JSON-lines file (overrides data.user_file)")
	f.StringVar(&opts.reviewFile, "reviews", "", "review JSON-lines file (overrides data.review_file)")
	cmd.MarkFlagsMutuallyExclusive("from-parquet", "export-parquet")
	return cmd
}

func runImport(cmd *cobra.Command, a *app, opts *importOptions) error {
	ctx := cmd.Context()
	data := a.cfg.Data

	parquetDir := firstNonEmpty(opts.parquetDir, data.ParquetDir)

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	var stats *database.ImportStats
	if opts.fromParquet {
		stats, err = db.ImportParquet(ctx, parquetDir)
	} else {
		stats, err = db.ImportJSON(ctx, database.JSONSources{
			Businesses: firstNonEmpty(opts.businessFile, data.BusinessFile),
			Users:      firstNonEmpty(opts.userFile, data.UserFile),
			Reviews:    firstNonEmpty(opts.reviewFile, data.ReviewFile),
		}, data.BatchSize)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Checkpoint after import failed")
	}

	if opts.exportParquet {
		if err := db.ExportParquet(ctx, parquetDir); err != nil {
			return fmt.Errorf("export parquet: %w", err)
		}
		logging.Info().Str("dir", parquetDir).Msg("Parquet export complete")
	}

	if a.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), stats)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"imported %d restaurants, %d users, %d reviews in %s\n",
		stats.Restaurants, stats.Users, stats.Reviews, stats.Took.Round(time.Millisecond))
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
