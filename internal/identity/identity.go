// Package identity resolves who a poll responder is before any vote is
// cast. Resolution is a pure function of its inputs so the identity step
// of the response flow can be tested without a session store.
package identity

import (
	"slices"
	"strings"
)

type Kind string

const (
	KindAuthenticated Kind = "authenticated"
	KindGuest         Kind = "guest"
	KindRejected      Kind = "rejected"
)

type RejectReason string

const (
	ReasonGuestsDisallowed RejectReason = "guests are not allowed for this poll"
	ReasonMissingGuestName RejectReason = "a guest name is required"
	ReasonMissingCode      RejectReason = "a verification code is required"
)

// Input carries the current actor and the poll's participation policy.
// The caller injects the authenticated identity explicitly instead of the
// component reaching into ambient session state.
type Input struct {
	IsAuthenticated bool
	Username        string

	AllowGuests bool
	RequireCode bool

	GuestName        string
	VerificationCode string
}

type Resolution struct {
	Kind Kind

	// ResponderKey is the de-duplication key: the username for
	// authenticated responders, the supplied name for guests.
	ResponderKey string

	// VerificationCode as entered; correctness is checked server-side.
	VerificationCode string

	Reason RejectReason
}

// Resolve decides between the authenticated and guest paths. An
// authenticated caller always resolves to their username; the "log out
// and participate as guest" escape hatch is modelled by the caller
// clearing IsAuthenticated (after invalidating the session) and
// re-running Resolve.
func Resolve(in Input) Resolution {
	if in.IsAuthenticated {
		return Resolution{Kind: KindAuthenticated, ResponderKey: in.Username}
	}

	if !in.AllowGuests {
		return Resolution{Kind: KindRejected, Reason: ReasonGuestsDisallowed}
	}

	name := strings.TrimSpace(in.GuestName)
	if name == "" {
		return Resolution{Kind: KindRejected, Reason: ReasonMissingGuestName}
	}

	if in.RequireCode && strings.TrimSpace(in.VerificationCode) == "" {
		return Resolution{Kind: KindRejected, Reason: ReasonMissingCode}
	}

	return Resolution{
		Kind:             KindGuest,
		ResponderKey:     name,
		VerificationCode: in.VerificationCode,
	}
}

// AlreadyResponded reports whether key appears in the poll's known
// responder list. The flow uses it to route straight to the thank-you
// view; true at-most-once enforcement lives in the database.
func AlreadyResponded(key string, responders []string) bool {
	return slices.Contains(responders, key)
}
