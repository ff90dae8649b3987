// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package models

import "time"

// EventType identifies a tracked user action.
type EventType string

// Tracked event types. EventClick is the engagement click counted by the
// feature builder.
const (
	EventPageView  EventType = "page_view"
	EventClick     EventType = "click"
	EventScroll    EventType = "scroll"
	EventTimeSpent EventType = "time_spent"
	EventLike      EventType = "like"
	EventShare     EventType = "share"
	EventComment   EventType = "comment"
)

// EventTypes lists every tracked event type in declaration order.
var EventTypes = []EventType{
	EventPageView,
	EventClick,
	EventScroll,
	EventTimeSpent,
	EventLike,
	EventShare,
	EventComment,
}

// Valid reports whether t is one of the tracked event types.
func (t EventType) Valid() bool {
	for _, et := range EventTypes {
		if et == t {
			return true
		}
	}
	return false
}

// InteractionEvent is a single behavioral event recorded for a user.
// Events are append-only and ordered by Timestamp.
type InteractionEvent struct {
	// ID uniquely identifies the event (UUID assigned on write).
	ID string `json:"id"`

	// UserID is the owner of the event.
	UserID string `json:"user_id"`

	// SessionID groups events into browsing sessions.
	SessionID string `json:"session_id"`

	// EventType is the tracked action.
	EventType EventType `json:"event_type"`

	// ContentCategory is the canonical interest category of the content,
	// or the lowercased raw value when it is not a recognized category.
	ContentCategory string `json:"content_category"`

	// ContentID identifies the content item (optional).
	ContentID string `json:"content_id,omitempty"`

	// Duration is the time spent in seconds. Never negative.
	Duration float64 `json:"duration"`

	// Timestamp is when the event was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Metadata carries free-form client attributes.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
