package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
	"github.com/technikcrew-dev/crew-manager/backend/internal/identity"
)

func testPoll() *domain.Poll {
	return &domain.Poll{
		ID:    1,
		UUID:  "a9c1f9e2-47e1-4b63-9b0a-0f4f0f6d2a10",
		Title: "Stage build week",
		Type:  domain.PollTypeAvailability,
		Options: domain.PollOptions{
			AllowGuests:   true,
			AvailableDays: []string{"2025-03-01", "2025-03-02"},
		},
	}
}

func TestHappyPathGuest(t *testing.T) {
	c := NewCollector(testPoll(), nil)
	require.Equal(t, StepIdentity, c.Step())

	res := c.ResolveIdentity(identity.Input{AllowGuests: true, GuestName: "Sam"})
	require.Equal(t, identity.KindGuest, res.Kind)
	require.Equal(t, StepDaySelection, c.Step())

	// one tap: AVAILABLE, second tap: MAYBE with a note
	needsNote := c.Tap("2025-03-01")
	assert.False(t, needsNote)
	needsNote = c.Tap("2025-03-01")
	require.True(t, needsNote)
	c.SetDayNote("2025-03-01", "busy after 6pm")

	c.ContinueToNotes()
	require.Equal(t, StepNotes, c.Step())
	c.SetNotes("thanks for organizing")

	sub := c.Submission()
	assert.Equal(t, "Sam", sub.ResponderKey)
	assert.True(t, sub.IsGuest)
	assert.Equal(t, "thanks for organizing", sub.Notes)
	require.Len(t, sub.DayVotes, 1)
	assert.Equal(t, domain.DayVote{Date: "2025-03-01", Status: domain.VoteMaybe, Notes: "busy after 6pm"}, sub.DayVotes[0])

	c.Finish()
	assert.Equal(t, StepThankYou, c.Step())
}

func TestRejectedIdentityStaysOnIdentityStep(t *testing.T) {
	poll := testPoll()
	poll.Options.RequireVerificationCode = true

	c := NewCollector(poll, nil)
	res := c.ResolveIdentity(identity.Input{AllowGuests: true, RequireCode: true, GuestName: "Sam"})

	assert.Equal(t, identity.KindRejected, res.Kind)
	assert.Equal(t, identity.ReasonMissingCode, res.Reason)
	assert.Equal(t, StepIdentity, c.Step())
}

// A responder already on the poll's responder list is routed straight to
// the thank-you view; day selection is never shown.
func TestDuplicateResponderSkipsToThankYou(t *testing.T) {
	c := NewCollector(testPoll(), []string{"Sam", "jonas"})

	res := c.ResolveIdentity(identity.Input{AllowGuests: true, GuestName: "Sam"})
	require.Equal(t, identity.KindGuest, res.Kind)
	assert.Equal(t, StepThankYou, c.Step())

	// the terminal view ignores further input
	c.Tap("2025-03-01")
	c.Back()
	assert.Equal(t, StepThankYou, c.Step())
	assert.Empty(t, c.Submission().DayVotes)
}

// Cells outside the admin-selected days are disabled; tapping them does
// nothing.
func TestTapOnExcludedDateIsNoOp(t *testing.T) {
	c := NewCollector(testPoll(), nil)
	c.ResolveIdentity(identity.Input{AllowGuests: true, GuestName: "Sam"})

	needsNote := c.Tap("2025-03-07")
	assert.False(t, needsNote)
	assert.Empty(t, c.Submission().DayVotes)
}

func TestBackwardNavigationPreservesVotes(t *testing.T) {
	c := NewCollector(testPoll(), nil)
	c.ResolveIdentity(identity.Input{AllowGuests: true, GuestName: "Sam"})

	c.Tap("2025-03-02")
	c.ContinueToNotes()
	require.Equal(t, StepNotes, c.Step())

	c.Back()
	assert.Equal(t, StepDaySelection, c.Step())
	c.Back()
	assert.Equal(t, StepIdentity, c.Step())

	// votes entered before navigating back are still there
	require.Len(t, c.Submission().DayVotes, 1)
	assert.Equal(t, "2025-03-02", c.Submission().DayVotes[0].Date)
}

// A failed submission keeps the flow on the notes step with everything
// entered still in place, so retrying needs no re-entry.
func TestFailedSubmissionKeepsState(t *testing.T) {
	c := NewCollector(testPoll(), nil)
	c.ResolveIdentity(identity.Input{AllowGuests: true, GuestName: "Sam"})
	c.Tap("2025-03-01")
	c.ContinueToNotes()
	c.SetNotes("see you there")

	first := c.Submission()
	// the server rejected it; Finish is not called
	assert.Equal(t, StepNotes, c.Step())

	second := c.Submission()
	assert.Equal(t, first, second)
}
