// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"github.com/spf13/cobra"
)

func newContextCmd(root *rootOptions) *cobra.Command {
	var (
		suggestions string
		name        string
	)

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Rank suggestions against a page context dictionary",
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
			return root.write(engine.ContextualSuggestions(cmd.Context(), items, name))
		},
	}

	cmd.Flags().StringVarP(&suggestions, "suggestions", "s", "", "JSON file with candidate suggestions (- for stdin)")
	cmd.Flags().StringVar(&name, "name", "dashboard", "page context name")
	_ = cmd.MarkFlagRequired("suggestions")

	return cmd
}
