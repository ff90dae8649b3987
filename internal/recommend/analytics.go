// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package recommend

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/features"
)

// Analytics windows.
const (
	recentWindow            = 7 * 24 * time.Hour
	recentPredictionsWindow = 24 * time.Hour
	dailyBuckets            = 7
	recentPredictionsLimit  = 10
	recentInteractionsLimit = 20
)

// unknownCategory groups interactions recorded without a category.
const unknownCategory = "unknown"

// UserAnalytics aggregates one user's interaction history.
type UserAnalytics struct {
	UserID                    string             `json:"user_id"`
	TotalInteractions         int                `json:"total_interactions"`
	TotalSessions             int                `json:"total_sessions"`
	AvgInteractionsPerSession float64            `json:"avg_interactions_per_session"`
	CategoryCounts            map[string]int     `json:"category_counts"`
	EventTypeCounts           map[string]int     `json:"event_type_counts"`
	LatestPrediction          *models.Prediction `json:"latest_prediction"`
}

// Count is one bucket of a distribution, ordered by the producer.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ConfidenceStat is the mean confidence of predictions for one interest.
type ConfidenceStat struct {
	Interest      string  `json:"interest"`
	AvgConfidence float64 `json:"avg_confidence"`
	Count         int     `json:"count"`
}

// HourCount is the number of interactions recorded in one UTC hour of day.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// SystemOverview summarizes users, interactions and predictions.
type SystemOverview struct {
	TotalUsers           int     `json:"total_users"`
	TotalInteractions    int     `json:"total_interactions"`
	TotalPredictions     int     `json:"total_predictions"`
	RecentUsers          int     `json:"recent_users"`
	RecentInteractions   int     `json:"recent_interactions"`
	InterestDistribution []Count `json:"interest_distribution"`
	DailyInteractions    []Count `json:"daily_interactions"`
}

// InterestAnalytics summarizes stored predictions.
type InterestAnalytics struct {
	InterestDistribution []Count              `json:"interest_distribution"`
	ConfidenceByInterest []ConfidenceStat     `json:"confidence_by_interest"`
	RecentPredictions    []*models.Prediction `json:"recent_predictions"`
}

// InteractionAnalytics summarizes stored interaction events.
type InteractionAnalytics struct {
	EventDistribution    []Count                   `json:"event_distribution"`
	CategoryDistribution []Count                   `json:"category_distribution"`
	HourlyPattern        []HourCount               `json:"hourly_pattern"`
	RecentInteractions   []models.InteractionEvent `json:"recent_interactions"`
}

// analyticsCategory is the grouping key for an event category. Recognized
// categories collapse to their canonical name.
func analyticsCategory(raw string) string {
	c, _ := features.Canonicalize(raw)
	if c == "" {
		return unknownCategory
	}
	return c
}

// GetUserAnalytics aggregates the user's recent interactions. It fails with
// not_found only when the user record is missing; a user without history
// gets empty aggregates.
func (s *Service) GetUserAnalytics(ctx context.Context, userID string) Result[*UserAnalytics] {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return Fail[*UserAnalytics](persistenceError("user analytics", err))
	}

	events, err := s.store.ListInteractions(ctx, userID, s.config.AnalyticsHistoryLimit)
	if err != nil {
		return Fail[*UserAnalytics](persistenceError("user analytics", err))
	}

	out := &UserAnalytics{
		UserID:            userID,
		TotalInteractions: len(events),
		CategoryCounts:    make(map[string]int),
		EventTypeCounts:   make(map[string]int),
	}
	sessions := make(map[string]struct{})
	for i := range events {
		ev := &events[i]
		if ev.SessionID != "" {
			sessions[ev.SessionID] = struct{}{}
		}
		out.CategoryCounts[analyticsCategory(ev.ContentCategory)]++
		out.EventTypeCounts[string(ev.EventType)]++
	}
	out.TotalSessions = len(sessions)
	if out.TotalSessions > 0 {
		out.AvgInteractionsPerSession = float64(out.TotalInteractions) / float64(out.TotalSessions)
	}

	p, err := s.store.GetPrediction(ctx, userID)
	switch {
	case err == nil:
		out.LatestPrediction = p
	case !errors.Is(err, models.ErrNotFound):
		return Fail[*UserAnalytics](persistenceError("user analytics", err))
	}

	msg := "Analytics retrieved successfully"
	if len(events) == 0 {
		msg = "No interaction data available"
	}
	return Ok(out, msg)
}

// SystemOverview returns system-wide totals, 7-day activity, the predicted
// interest distribution and per-day interaction counts for the most recent
// days with activity.
func (s *Service) SystemOverview(ctx context.Context) Result[*SystemOverview] {
	now := s.now()
	weekAgo := now.Add(-recentWindow)
	out := &SystemOverview{}

	var interests, daily map[string]int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.TotalUsers, err = s.store.CountUsers(gctx, time.Time{})
		return err
	})
	g.Go(func() error {
		var err error
		out.RecentUsers, err = s.store.CountUsers(gctx, weekAgo)
		return err
	})
	g.Go(func() error {
		var err error
		out.TotalInteractions, err = s.store.CountInteractions(gctx, time.Time{})
		return err
	})
	g.Go(func() error {
		var err error
		out.RecentInteractions, err = s.store.CountInteractions(gctx, weekAgo)
		return err
	})
	g.Go(func() error {
		interests = make(map[string]int)
		return s.store.ScanPredictions(gctx, func(p *models.Prediction) error {
			out.TotalPredictions++
			interests[p.PrimaryInterest]++
			return nil
		})
	})
	g.Go(func() error {
		daily = make(map[string]int)
		return s.store.ScanInteractions(gctx, func(ev *models.InteractionEvent) error {
			daily[ev.Timestamp.UTC().Format(time.DateOnly)]++
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return Fail[*SystemOverview](persistenceError("system overview", err))
	}

	out.InterestDistribution = sortedCounts(interests)

	days := make([]Count, 0, len(daily))
	for day, n := range daily {
		days = append(days, Count{Key: day, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Key > days[j].Key })
	if len(days) > dailyBuckets {
		days = days[:dailyBuckets]
	}
	out.DailyInteractions = days

	return Ok(out, "")
}

// InterestAnalytics returns the prediction distribution, average confidence
// per interest and the newest predictions of the last 24 hours.
func (s *Service) InterestAnalytics(ctx context.Context) Result[*InterestAnalytics] {
	dayAgo := s.now().Add(-recentPredictionsWindow)

	counts := make(map[string]int)
	confidence := make(map[string]float64)
	var recent []*models.Prediction

	err := s.store.ScanPredictions(ctx, func(p *models.Prediction) error {
		counts[p.PrimaryInterest]++
		confidence[p.PrimaryInterest] += p.Confidence
		if !p.Timestamp.Before(dayAgo) {
			recent = append(recent, p.Clone())
		}
		return nil
	})
	if err != nil {
		return Fail[*InterestAnalytics](persistenceError("interest analytics", err))
	}

	stats := make([]ConfidenceStat, 0, len(counts))
	for interest, n := range counts {
		stats = append(stats, ConfidenceStat{
			Interest:      interest,
			AvgConfidence: confidence[interest] / float64(n),
			Count:         n,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgConfidence != stats[j].AvgConfidence {
			return stats[i].AvgConfidence > stats[j].AvgConfidence
		}
		return stats[i].Interest < stats[j].Interest
	})

	sort.Slice(recent, func(i, j int) bool { return recent[i].Timestamp.After(recent[j].Timestamp) })
	if len(recent) > recentPredictionsLimit {
		recent = recent[:recentPredictionsLimit]
	}
	if recent == nil {
		recent = []*models.Prediction{}
	}

	return Ok(&InterestAnalytics{
		InterestDistribution: sortedCounts(counts),
		ConfidenceByInterest: stats,
		RecentPredictions:    recent,
	}, "")
}

// InteractionAnalytics returns event and category distributions, the UTC
// hourly activity pattern and the most recent interactions.
func (s *Service) InteractionAnalytics(ctx context.Context) Result[*InteractionAnalytics] {
	eventCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	var hours [24]int
	recent := make([]models.InteractionEvent, 0, recentInteractionsLimit+1)

	err := s.store.ScanInteractions(ctx, func(ev *models.InteractionEvent) error {
		eventCounts[string(ev.EventType)]++
		categoryCounts[analyticsCategory(ev.ContentCategory)]++
		hours[ev.Timestamp.UTC().Hour()]++

		recent = insertRecent(recent, *ev, recentInteractionsLimit)
		return nil
	})
	if err != nil {
		return Fail[*InteractionAnalytics](persistenceError("interaction analytics", err))
	}

	hourly := make([]HourCount, 0, 24)
	for h, n := range hours {
		if n > 0 {
			hourly = append(hourly, HourCount{Hour: h, Count: n})
		}
	}

	return Ok(&InteractionAnalytics{
		EventDistribution:    sortedCounts(eventCounts),
		CategoryDistribution: sortedCounts(categoryCounts),
		HourlyPattern:        hourly,
		RecentInteractions:   recent,
	}, "")
}

// sortedCounts orders a histogram by count descending, then key ascending.
func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// insertRecent keeps the limit newest events in recent, newest first.
func insertRecent(recent []models.InteractionEvent, ev models.InteractionEvent, limit int) []models.InteractionEvent {
	i := sort.Search(len(recent), func(i int) bool { return recent[i].Timestamp.Before(ev.Timestamp) })
	if i >= limit {
		return recent
	}
	recent = append(recent, models.InteractionEvent{})
	copy(recent[i+1:], recent[i:])
	recent[i] = ev
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
