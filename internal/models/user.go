// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package models

import "time"

// DefaultUserName is assigned when a user is created without a name.
const DefaultUserName = "Demo User"

// User is a demo user account that interactions are tracked against.
type User struct {
	UserID      string                 `json:"user_id"`
	Email       string                 `json:"email"`
	Name        string                 `json:"name"`
	CreatedAt   time.Time              `json:"created_at"`
	LastActive  time.Time              `json:"last_active"`
	Preferences map[string]interface{} `json:"preferences"`
	IsDemoUser  bool                   `json:"is_demo_user"`
}
