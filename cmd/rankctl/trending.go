// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"github.com/spf13/cobra"
)

func newTrendingCmd(root *rootOptions) *cobra.Command {
	var (
		suggestions string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List the open suggestions gaining activity fastest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := readSuggestions(suggestions, cmd.InOrStdin())
			if err != nil {
				return err
			}
			engine, err := root.engine()
			if err != nil {
				return err
			}
			return root.write(engine.TrendingSuggestions(cmd.Context(), items, limit))
		},
	}

	cmd.Flags().StringVarP(&suggestions, "suggestions", "s", "", "JSON file with candidate suggestions (- for stdin)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results; 0 uses the configured default")
	_ = cmd.MarkFlagRequired("suggestions")

	return cmd
}
