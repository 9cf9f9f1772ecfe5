// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package metrics

import "time"

// RankingObserver exports engine measurements. It satisfies
// ranking.Observer.
type RankingObserver struct{}

// ObserveRanking implements ranking.Observer.
func (RankingObserver) ObserveRanking(operation string, duration time.Duration, returned int) {
	RecordRanking(operation, duration, returned)
}

// ObserveUpdate implements ranking.Observer.
func (RankingObserver) ObserveUpdate(eventType string, applied bool) {
	result := "applied"
	if !applied {
		result = "unknown_profile"
	}
	ProfileUpdates.WithLabelValues(eventType, result).Inc()
}

// ProfileObserver exports profile store events. It satisfies
// profile.Observer.
type ProfileObserver struct{}

// ProfileLookup implements profile.Observer.
func (ProfileObserver) ProfileLookup(hit bool) {
	if hit {
		ProfileLookups.WithLabelValues("hit").Inc()
		return
	}
	ProfileLookups.WithLabelValues("miss").Inc()
}

// ProfileBuilt implements profile.Observer.
func (ProfileObserver) ProfileBuilt(duration time.Duration) {
	ProfileBuilds.Inc()
	ProfileBuildDuration.Observe(duration.Seconds())
}

// ProfileUpdated implements profile.Observer. Outcomes are counted per event
// type by RankingObserver.
func (ProfileObserver) ProfileUpdated(bool) {}

// ProfileEvicted implements profile.Observer.
func (ProfileObserver) ProfileEvicted(reason string) {
	ProfileEvictions.WithLabelValues(reason).Inc()
}
