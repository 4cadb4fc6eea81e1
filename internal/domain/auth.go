package domain

import "time"

// Operator is the authenticated user allowed to triage complaints.
type Operator struct {
	Username     string
	PasswordHash string
}

// Session describes an issued operator session token.
type Session struct {
	ID        string
	Operator  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Remaining returns how long the session stays valid after now.
func (s Session) Remaining(now time.Time) time.Duration {
	if now.After(s.ExpiresAt) {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
