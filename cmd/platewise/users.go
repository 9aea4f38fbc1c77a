// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/recommend"
)

func newUsersCmd(a *app) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users in the imported dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			users, err := db.Users(cmd.Context())
			if err != nil {
				return err
			}

			offset = min(max(offset, 0), len(users))
			users = users[offset:]
			if limit > 0 && limit < len(users) {
				users = users[:limit]
			}

			if a.jsonOutput {
				if users == nil {
					users = []recommend.User{}
				}
				return writeJSON(cmd.OutOrStdout(), users)
			}
			t := newTable(cmd.OutOrStdout(), "USER", "NAME", "REVIEWS")
			for _, u := range users {
				t.row(u.ID, u.Name, strconv.Itoa(u.ReviewCount))
			}
			return t.flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum users to list (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "users to skip")
	return cmd
}
