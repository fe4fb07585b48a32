package domain

import "time"

// Response is one responder's complete submission against a poll. The
// responder key (authenticated username or guest-supplied name) is the
// de-duplication identity; the database enforces at most one response per
// key per poll.
type Response struct {
	ID           int64     `json:"id"`
	PollID       int64     `json:"pollID"`
	ResponderKey string    `json:"responderKey"`
	IsGuest      bool      `json:"isGuest"`
	Notes        string    `json:"notes"`
	DayVotes     []DayVote `json:"dayVotes"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
