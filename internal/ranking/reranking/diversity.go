// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package reranking implements post-processing of scored suggestion lists.
package reranking

import (
	"context"
	"sort"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

// CategoryDiversity orders suggestions by score and then limits category
// repetition: the first guaranteed slots are filled purely by score, after
// which an item is only accepted if its category has not been used yet.
//
// Uncategorized suggestions count as the "General" category.
type CategoryDiversity struct {
	guaranteedSlots int
	maxResults      int
}

// NewCategoryDiversity creates the reranker from diversity configuration.
func NewCategoryDiversity(cfg ranking.DiversityConfig) *CategoryDiversity {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = ranking.DefaultConfig().Diversity.MaxResults
	}
	slots := cfg.GuaranteedSlots
	if slots < 0 {
		slots = 0
	}
	return &CategoryDiversity{guaranteedSlots: slots, maxResults: maxResults}
}

// Name returns the reranker identifier.
func (d *CategoryDiversity) Name() string {
	return "category_diversity"
}

// Rerank sorts items by descending score (stable, so ties keep input order)
// and applies the category diversity rule. The input slice is not modified.
//
//nolint:gocritic // rangeValCopy: ScoredSuggestion copied in range, acceptable for clarity
func (d *CategoryDiversity) Rerank(ctx context.Context, items []ranking.ScoredSuggestion) []ranking.ScoredSuggestion {
	if len(items) == 0 {
		return []ranking.ScoredSuggestion{}
	}

	sorted := make([]ranking.ScoredSuggestion, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PersonalizedScore > sorted[j].PersonalizedScore
	})

	capacity := d.maxResults
	if capacity > len(sorted) {
		capacity = len(sorted)
	}
	out := make([]ranking.ScoredSuggestion, 0, capacity)
	used := make(map[string]struct{})

	for _, item := range sorted {
		if len(out) >= d.maxResults {
			break
		}
		if ctx.Err() != nil {
			break
		}

		category := item.CategoryOrDefault()
		if _, seen := used[category]; !seen || len(out) < d.guaranteedSlots {
			out = append(out, item)
			used[category] = struct{}{}
		}
	}

	return out
}

var _ ranking.Reranker = (*CategoryDiversity)(nil)
