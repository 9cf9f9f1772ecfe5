// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package profile

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestBuilder() *Builder {
	return NewBuilder(ranking.DefaultConfig().Profile)
}

func votes(n int) []ranking.VoteEvent {
	out := make([]ranking.VoteEvent, n)
	for i := range out {
		out[i] = ranking.VoteEvent{VoteType: ranking.VoteUp}
	}
	return out
}

func TestBuilder_RoleSeeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role ranking.Role
		want []string
	}{
		{ranking.RoleAdmin, []string{"Analytics", "Dashboard", "Features", "Performance"}},
		{ranking.RoleUser, []string{"Features", "Interface", "UX"}},
		{ranking.RolePremium, []string{"Advanced Features", "Analytics", "Customization"}},
		{"GUEST", []string{"General"}},
		{"", []string{"General"}},
	}

	b := newTestBuilder()
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			p := b.Build(ranking.User{ID: 1, Role: tt.role}, nil, testNow)
			if got := p.PreferredCategories.Sorted(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("categories = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilder_EmptyHistory(t *testing.T) {
	t.Parallel()

	p := newTestBuilder().Build(ranking.User{ID: 7, Role: ranking.RoleUser}, &ranking.Behavior{}, testNow)

	if p.EngagementLevel != ranking.EngagementLow {
		t.Errorf("engagement = %q, want low", p.EngagementLevel)
	}
	if len(p.Keywords) != 0 {
		t.Errorf("keywords = %v, want none", p.Keywords.Sorted())
	}
	if !p.LastUpdated.Equal(testNow) || !p.BuiltAt.Equal(testNow) {
		t.Errorf("timestamps = %v/%v, want %v", p.BuiltAt, p.LastUpdated, testNow)
	}
}

func TestBuilder_EngagementBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		votes    int
		comments int
		want     ranking.EngagementLevel
	}{
		{"zero", 0, 0, ranking.EngagementLow},
		{"twenty is low", 20, 0, ranking.EngagementLow},
		{"twenty one is medium", 20, 1, ranking.EngagementMedium},
		{"fifty is medium", 25, 25, ranking.EngagementMedium},
		{"fifty one is high", 51, 0, ranking.EngagementHigh},
	}

	b := newTestBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &ranking.Behavior{
				Votes:    votes(tt.votes),
				Comments: make([]ranking.CommentEvent, tt.comments),
			}
			p := b.Build(ranking.User{ID: 1, Role: ranking.RoleUser}, h, testNow)
			if p.EngagementLevel != tt.want {
				t.Errorf("engagement = %q, want %q", p.EngagementLevel, tt.want)
			}
		})
	}
}

func TestBuilder_HistoryContributions(t *testing.T) {
	t.Parallel()

	voted := &ranking.Suggestion{Title: "Export reports", Description: "as PDF files", Category: "Reporting"}
	commented := &ranking.Suggestion{Title: "Ignored title", Description: "ignored words", Category: "Mobile"}

	h := &ranking.Behavior{
		Votes: []ranking.VoteEvent{
			{Suggestion: voted, VoteType: ranking.VoteUp},
			{Suggestion: nil, VoteType: ranking.VoteDown},
		},
		Comments: []ranking.CommentEvent{
			{Suggestion: commented, Content: "Offline sync please"},
			{Suggestion: nil, Content: "orphaned comment text"},
		},
		Views:     []ranking.ViewEvent{{SuggestionID: 3}},
		TimeSpent: 120,
	}

	p := newTestBuilder().Build(ranking.User{ID: 2, Role: "GUEST"}, h, testNow)

	wantCats := []string{"General", "Mobile", "Reporting"}
	if got := p.PreferredCategories.Sorted(); !reflect.DeepEqual(got, wantCats) {
		t.Errorf("categories = %v, want %v", got, wantCats)
	}

	wantKeywords := []string{"export", "files", "offline", "please", "reports", "sync"}
	if got := p.Keywords.Sorted(); !reflect.DeepEqual(got, wantKeywords) {
		t.Errorf("keywords = %v, want %v", got, wantKeywords)
	}

	if len(p.Behavior.Votes) != 2 || len(p.Behavior.Comments) != 2 {
		t.Errorf("behavior = %d votes, %d comments; want 2, 2", len(p.Behavior.Votes), len(p.Behavior.Comments))
	}
	if len(p.Behavior.Views) != 1 || p.Behavior.TimeSpent != 120 {
		t.Errorf("views = %d, timeSpent = %d; want 1, 120", len(p.Behavior.Views), p.Behavior.TimeSpent)
	}
}

func TestBuilder_UncategorizedSuggestionAddsNoCategory(t *testing.T) {
	t.Parallel()

	s := &ranking.Suggestion{ID: 3, Title: "Keyboard shortcuts"}
	history := &ranking.Behavior{
		Votes:    []ranking.VoteEvent{{Suggestion: s, VoteType: ranking.VoteUp}},
		Comments: []ranking.CommentEvent{{Suggestion: s, Content: "please"}},
	}

	p := newTestBuilder().Build(ranking.User{ID: 1, Role: ranking.RoleAdmin}, history, testNow)

	want := []string{"Analytics", "Dashboard", "Features", "Performance"}
	if got := p.PreferredCategories.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
	if !p.Keywords.Contains("keyboard") {
		t.Errorf("keywords = %v, want keyboard", p.Keywords.Sorted())
	}
}

func TestBuilder_TimeSpentIgnoredWithoutViews(t *testing.T) {
	t.Parallel()

	p := newTestBuilder().Build(ranking.User{ID: 1}, &ranking.Behavior{TimeSpent: 90}, testNow)
	if p.Behavior.TimeSpent != 0 {
		t.Errorf("TimeSpent = %d, want 0", p.Behavior.TimeSpent)
	}
}

func TestBuilder_HistoryBoundedButEngagementFromFullHistory(t *testing.T) {
	t.Parallel()

	cfg := ranking.DefaultConfig().Profile
	cfg.MaxHistory = 10
	b := NewBuilder(cfg)

	h := &ranking.Behavior{Votes: votes(60)}
	h.Votes[59].VoteType = ranking.VoteDown

	p := b.Build(ranking.User{ID: 1}, h, testNow)
	if len(p.Behavior.Votes) != 10 {
		t.Fatalf("retained votes = %d, want 10", len(p.Behavior.Votes))
	}
	if p.Behavior.Votes[9].VoteType != ranking.VoteDown {
		t.Error("most recent vote should be retained last")
	}
	if p.EngagementLevel != ranking.EngagementHigh {
		t.Errorf("engagement = %q, want high", p.EngagementLevel)
	}

	// The caller's slice must not be aliased.
	h.Votes[59].VoteType = ranking.VoteUp
	if p.Behavior.Votes[9].VoteType != ranking.VoteDown {
		t.Error("profile history aliases the input slice")
	}
}

func TestBuilder_Apply(t *testing.T) {
	t.Parallel()

	b := newTestBuilder()
	base := b.Build(ranking.User{ID: 3, Role: ranking.RoleUser}, nil, testNow)
	later := testNow.Add(time.Hour)

	s := &ranking.Suggestion{ID: 9, Title: "Keyboard shortcuts", Description: "for power users", Category: "Productivity"}

	tests := []struct {
		name         string
		event        ranking.InteractionEvent
		wantVotes    int
		wantComments int
		wantViews    int
	}{
		{"vote", ranking.InteractionEvent{Type: ranking.InteractionVote, Suggestion: s, VoteType: ranking.VoteUp}, 1, 0, 0},
		{"comment", ranking.InteractionEvent{Type: ranking.InteractionComment, Suggestion: s, Content: "yes"}, 0, 1, 0},
		{"view", ranking.InteractionEvent{Type: ranking.InteractionView, Suggestion: s}, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next := b.Apply(base, &tt.event, later)

			if len(next.Behavior.Votes) != tt.wantVotes ||
				len(next.Behavior.Comments) != tt.wantComments ||
				len(next.Behavior.Views) != tt.wantViews {
				t.Errorf("behavior = %d/%d/%d, want %d/%d/%d",
					len(next.Behavior.Votes), len(next.Behavior.Comments), len(next.Behavior.Views),
					tt.wantVotes, tt.wantComments, tt.wantViews)
			}

			// Keywords always come from the suggestion text.
			for _, kw := range []string{"keyboard", "shortcuts", "power", "users"} {
				if !next.Keywords.Contains(kw) {
					t.Errorf("missing keyword %q", kw)
				}
			}
			if !next.HasCategory("Productivity") {
				t.Error("missing category Productivity")
			}
			if !next.LastUpdated.Equal(later) {
				t.Errorf("LastUpdated = %v, want %v", next.LastUpdated, later)
			}
			if next.EngagementLevel != base.EngagementLevel {
				t.Error("Apply must not recompute engagement")
			}

			// The original is untouched.
			if base.HasCategory("Productivity") || len(base.Keywords) != 0 || len(base.Behavior.Votes) != 0 {
				t.Error("Apply mutated the source profile")
			}
		})
	}
}

func TestBuilder_Reengage(t *testing.T) {
	t.Parallel()

	b := newTestBuilder()
	p := b.Build(ranking.User{ID: 1}, &ranking.Behavior{Votes: votes(5)}, testNow)
	if b.Reengage(p) != nil {
		t.Error("Reengage should return nil when level is unchanged")
	}

	for i := 0; i < 30; i++ {
		p = b.Apply(p, &ranking.InteractionEvent{Type: ranking.InteractionVote, VoteType: ranking.VoteUp}, testNow)
	}
	if p.EngagementLevel != ranking.EngagementLow {
		t.Fatalf("engagement drifted to %q before refresh", p.EngagementLevel)
	}

	next := b.Reengage(p)
	if next == nil || next.EngagementLevel != ranking.EngagementMedium {
		t.Errorf("Reengage() = %v, want medium", next)
	}
}
