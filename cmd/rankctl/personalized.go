// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/suggestrank/internal/models"
	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/validation"
)

func newPersonalizedCmd(root *rootOptions) *cobra.Command {
	var (
		userID      int64
		role        string
		suggestions string
		behavior    string
		explain     bool
	)

	cmd := &cobra.Command{
		Use:   "personalized",
		Short: "Rank suggestions for one user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := models.UserInput{ID: userID, Role: ranking.Role(role)}
			if verr := validation.ValidateStruct(&user); verr != nil {
				return verr
			}

			items, err := readSuggestions(suggestions, cmd.InOrStdin())
			if err != nil {
				return err
			}
			history, err := readBehavior(behavior, cmd.InOrStdin())
			if err != nil {
				return err
			}

			engine, err := root.engine()
			if err != nil {
				return err
			}

			var opts []ranking.RankOption
			if explain {
				opts = append(opts, ranking.WithExplain())
			}
			u := ranking.User{ID: user.ID, Role: user.Role}
			return root.write(engine.GeneratePersonalizedSuggestions(cmd.Context(), &u, items, history, opts...))
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&userID, "user-id", 0, "ID of the user to rank for")
	flags.StringVar(&role, "role", string(ranking.RoleUser), "user role: ADMIN, USER, PREMIUM; other roles seed the default categories")
	flags.StringVarP(&suggestions, "suggestions", "s", "", "JSON file with candidate suggestions (- for stdin)")
	flags.StringVarP(&behavior, "behavior", "b", "", "JSON file with the user's interaction history")
	flags.BoolVar(&explain, "explain", false, "include the per-term score breakdown")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("suggestions")

	return cmd
}
