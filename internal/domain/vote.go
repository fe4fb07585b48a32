package domain

import "sort"

type VoteStatus string

const (
	// VoteUnset is never persisted. It is the state of a day without a
	// DayVote, which is distinct from all three explicit states.
	VoteUnset       VoteStatus = ""
	VoteAvailable   VoteStatus = "AVAILABLE"
	VoteMaybe       VoteStatus = "MAYBE"
	VoteUnavailable VoteStatus = "UNAVAILABLE"
)

// Advance is the per-day tap cycle: unset -> AVAILABLE -> MAYBE ->
// UNAVAILABLE -> unset. Total over all four states, four taps return to
// the starting state.
func Advance(s VoteStatus) VoteStatus {
	switch s {
	case VoteUnset:
		return VoteAvailable
	case VoteAvailable:
		return VoteMaybe
	case VoteMaybe:
		return VoteUnavailable
	case VoteUnavailable:
		return VoteUnset
	default:
		return VoteAvailable
	}
}

type DayVote struct {
	Date   string     `json:"date"`
	Status VoteStatus `json:"status"`
	Notes  string     `json:"notes"`
}

// VoteSheet accumulates one responder's day votes while they tap through
// the calendar. Days without an entry carry no opinion.
type VoteSheet struct {
	votes map[string]DayVote
}

func NewVoteSheet() *VoteSheet {
	return &VoteSheet{votes: make(map[string]DayVote)}
}

// Tap advances the vote for date by one step. Cycling into unset removes
// the entry entirely rather than storing an unset vote. Cycling out of
// MAYBE drops the maybe note, since the justification no longer applies.
// The returned flag tells the caller to prompt for a note (the "why only
// maybe" reason) because the day just entered MAYBE.
func (vs *VoteSheet) Tap(date string) (needsNote bool) {
	current := vs.votes[date]
	next := Advance(current.Status)

	switch next {
	case VoteUnset:
		delete(vs.votes, date)
		return false
	case VoteMaybe:
		vs.votes[date] = DayVote{Date: date, Status: next, Notes: current.Notes}
		return true
	default:
		vs.votes[date] = DayVote{Date: date, Status: next}
		return false
	}
}

// SetNote attaches the maybe justification. If the prompt was cancelled
// the caller simply never calls SetNote and any previously entered note
// survives. A no-op for dates that are not currently MAYBE.
func (vs *VoteSheet) SetNote(date string, notes string) {
	v, ok := vs.votes[date]
	if !ok || v.Status != VoteMaybe {
		return
	}
	v.Notes = notes
	vs.votes[date] = v
}

func (vs *VoteSheet) Get(date string) (DayVote, bool) {
	v, ok := vs.votes[date]
	return v, ok
}

// Votes returns the accumulated votes ordered by date.
func (vs *VoteSheet) Votes() []DayVote {
	dates := make([]string, 0, len(vs.votes))
	for d := range vs.votes {
		dates = append(dates, d)
	}
	// ISO dates sort chronologically as strings
	sort.Strings(dates)
	votes := make([]DayVote, 0, len(dates))
	for _, d := range dates {
		votes = append(votes, vs.votes[d])
	}
	return votes
}
