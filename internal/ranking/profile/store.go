// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package profile

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/suggestrank/internal/cache"
	"github.com/tomtom215/suggestrank/internal/ranking"
)

// lockStripes is the number of per-user mutex stripes.
const lockStripes = 64

// Observer receives store events, typically to export metrics.
type Observer interface {
	ProfileLookup(hit bool)
	ProfileBuilt(duration time.Duration)
	ProfileUpdated(applied bool)
	ProfileEvicted(reason string)
}

type nopObserver struct{}

func (nopObserver) ProfileLookup(bool)         {}
func (nopObserver) ProfileBuilt(time.Duration) {}
func (nopObserver) ProfileUpdated(bool)        {}
func (nopObserver) ProfileEvicted(string)      {}

// Store caches one immutable profile per user. Builds and updates for the
// same user are serialized; readers always see a complete snapshot.
// Store implements ranking.ProfileStore.
type Store struct {
	builder  *Builder
	profiles *cache.LRU[int64, *ranking.Profile]
	locks    [lockStripes]sync.Mutex
	inflight singleflight.Group

	now      func() time.Time
	logger   zerolog.Logger
	observer Observer

	builds         atomic.Int64
	updates        atomic.Int64
	unknownUpdates atomic.Int64
	refreshes      atomic.Int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for profile timestamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver registers an observer for store events.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewStore creates a store bounded by cfg.Capacity entries, each expiring
// cfg.TTL after its last build or update.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(cfg ranking.ProfileConfig, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		builder:  NewBuilder(cfg),
		now:      time.Now,
		logger:   logger.With().Str("component", "profile_store").Logger(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.profiles = cache.NewLRU[int64, *ranking.Profile](cfg.Capacity, cfg.TTL,
		cache.WithClock[int64, *ranking.Profile](func() time.Time { return s.now() }),
		cache.WithEvictCallback(s.onEvict),
	)
	return s
}

func (s *Store) onEvict(userID int64, _ *ranking.Profile, reason cache.EvictReason) {
	s.observer.ProfileEvicted(string(reason))
	s.logger.Debug().
		Int64("user_id", userID).
		Str("reason", string(reason)).
		Msg("profile evicted")
}

func (s *Store) lockFor(userID int64) *sync.Mutex {
	return &s.locks[uint64(userID)%lockStripes] //nolint:gosec // negative IDs wrap, any stripe is fine
}

// Get returns the cached profile for userID.
func (s *Store) Get(userID int64) (*ranking.Profile, bool) {
	return s.profiles.Peek(userID)
}

// BuildOrGet returns the cached profile, building it from history on a miss.
// Concurrent misses for the same user share a single build; history from
// callers that lose the race is ignored, as it is for any caller once the
// profile exists.
func (s *Store) BuildOrGet(user ranking.User, history *ranking.Behavior) *ranking.Profile {
	if p, ok := s.profiles.Get(user.ID); ok {
		s.observer.ProfileLookup(true)
		return p
	}
	s.observer.ProfileLookup(false)

	v, _, _ := s.inflight.Do(strconv.FormatInt(user.ID, 10), func() (any, error) {
		mu := s.lockFor(user.ID)
		mu.Lock()
		defer mu.Unlock()

		if p, ok := s.profiles.Peek(user.ID); ok {
			return p, nil
		}

		start := time.Now()
		p := s.builder.Build(user, history, s.now()).Seal()
		s.profiles.Add(user.ID, p)
		s.builds.Add(1)
		s.observer.ProfileBuilt(time.Since(start))

		s.logger.Debug().
			Int64("user_id", user.ID).
			Str("role", string(user.Role)).
			Str("engagement", string(p.EngagementLevel)).
			Int("categories", len(p.PreferredCategories)).
			Int("keywords", len(p.Keywords)).
			Msg("profile built")
		return p, nil
	})
	return v.(*ranking.Profile)
}

// Update folds event into the user's cached profile. It reports false, and
// changes nothing, when no profile is cached.
func (s *Store) Update(userID int64, event *ranking.InteractionEvent) bool {
	if event == nil {
		return false
	}

	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	current, ok := s.profiles.Peek(userID)
	if !ok {
		s.unknownUpdates.Add(1)
		s.observer.ProfileUpdated(false)
		return false
	}

	next := s.builder.Apply(current, event, s.now()).Seal()
	s.profiles.Add(userID, next)
	s.updates.Add(1)
	s.observer.ProfileUpdated(true)
	return true
}

// Invalidate drops the user's profile so the next request rebuilds it.
func (s *Store) Invalidate(userID int64) bool {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	return s.profiles.Remove(userID)
}

// CleanupExpired sweeps expired profiles.
func (s *Store) CleanupExpired() int {
	return s.profiles.CleanupExpired()
}

// RefreshEngagement recomputes the engagement level of every cached profile
// from its retained history. Expiry is not extended.
func (s *Store) RefreshEngagement() int {
	changed := 0
	for _, userID := range s.profiles.Keys() {
		if s.refreshOne(userID) {
			changed++
		}
	}
	s.refreshes.Add(1)
	return changed
}

func (s *Store) refreshOne(userID int64) bool {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	current, ok := s.profiles.Peek(userID)
	if !ok {
		return false
	}
	next := s.builder.Reengage(current)
	if next == nil {
		return false
	}
	return s.profiles.Replace(userID, next.Seal())
}

// Len returns the number of cached profiles.
func (s *Store) Len() int {
	return s.profiles.Len()
}

// StoreStats is a snapshot of store counters.
type StoreStats struct {
	Cache          cache.Stats `json:"cache"`
	Builds         int64       `json:"builds"`
	Updates        int64       `json:"updates"`
	UnknownUpdates int64       `json:"unknown_updates"`
	Refreshes      int64       `json:"refreshes"`
}

// Stats returns the current counters.
func (s *Store) Stats() StoreStats {
	return StoreStats{
		Cache:          s.profiles.Stats(),
		Builds:         s.builds.Load(),
		Updates:        s.updates.Load(),
		UnknownUpdates: s.unknownUpdates.Load(),
		Refreshes:      s.refreshes.Load(),
	}
}

var _ ranking.ProfileStore = (*Store)(nil)
