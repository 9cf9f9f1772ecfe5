// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

type appliedEvent struct {
	userID int64
	event  *ranking.InteractionEvent
}

// recordingUpdater records applied interactions. Users in unknown are
// reported as not cached.
type recordingUpdater struct {
	mu      sync.Mutex
	applied []appliedEvent
	unknown map[int64]bool
}

func (u *recordingUpdater) UpdateProfile(_ context.Context, userID int64, event *ranking.InteractionEvent) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.unknown[userID] {
		return false
	}
	u.applied = append(u.applied, appliedEvent{userID: userID, event: event})
	return true
}

func (u *recordingUpdater) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.applied)
}

func (u *recordingUpdater) snapshot() []appliedEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]appliedEvent(nil), u.applied...)
}

func voteEvent(id int64, vote ranking.VoteType) *ranking.InteractionEvent {
	return &ranking.InteractionEvent{
		Type:       ranking.InteractionVote,
		VoteType:   vote,
		Suggestion: &ranking.Suggestion{ID: id, Title: "Dark mode", Category: "UI", Status: ranking.StatusPending},
		OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func commentEvent(id int64, content string) *ranking.InteractionEvent {
	return &ranking.InteractionEvent{
		Type:       ranking.InteractionComment,
		Content:    content,
		Suggestion: &ranking.Suggestion{ID: id, Title: "Export to CSV", Category: "Reporting", Status: ranking.StatusApproved},
	}
}
