// Package flow models the guided response collection: identity, then day
// selection, then notes, then the terminal thank-you view. The mobile and
// web clients drive the same steps; keeping the machine here makes the
// step rules (backward navigation, duplicate short-circuit, disabled
// days) testable on their own.
package flow

import (
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
	"github.com/technikcrew-dev/crew-manager/backend/internal/identity"
)

type Step int

const (
	StepIdentity Step = iota
	StepDaySelection
	StepNotes
	StepThankYou
)

type Collector struct {
	poll       *domain.Poll
	responders []string

	step       Step
	resolution identity.Resolution
	sheet      *domain.VoteSheet
	notes      string
}

func NewCollector(poll *domain.Poll, responders []string) *Collector {
	return &Collector{
		poll:       poll,
		responders: responders,
		step:       StepIdentity,
		sheet:      domain.NewVoteSheet(),
	}
}

func (c *Collector) Step() Step { return c.step }

// ResolveIdentity runs the identity step. A rejected resolution keeps the
// flow on the identity step (the continue control stays disabled). A
// responder key that already appears in the poll's responder list jumps
// straight to the thank-you view without entering day selection.
func (c *Collector) ResolveIdentity(in identity.Input) identity.Resolution {
	if c.step != StepIdentity {
		return c.resolution
	}

	res := identity.Resolve(in)
	if res.Kind == identity.KindRejected {
		return res
	}

	c.resolution = res
	if identity.AlreadyResponded(res.ResponderKey, c.responders) {
		c.step = StepThankYou
		return res
	}

	c.step = StepDaySelection
	return res
}

// Tap advances the vote cycle for date. Dates the admin did not mark
// selectable are disabled cells: tapping them is a no-op. Returns whether
// the day just entered MAYBE and a note should be prompted for.
func (c *Collector) Tap(date string) (needsNote bool) {
	if c.step != StepDaySelection || !c.poll.HasAvailableDay(date) {
		return false
	}
	return c.sheet.Tap(date)
}

// SetDayNote attaches the maybe justification collected by the prompt.
func (c *Collector) SetDayNote(date, notes string) {
	if c.step != StepDaySelection {
		return
	}
	c.sheet.SetNote(date, notes)
}

// ContinueToNotes moves from day selection to the response-wide notes
// step.
func (c *Collector) ContinueToNotes() {
	if c.step == StepDaySelection {
		c.step = StepNotes
	}
}

func (c *Collector) SetNotes(notes string) {
	if c.step == StepNotes {
		c.notes = notes
	}
}

// Back navigates one step backwards. The thank-you view is terminal.
func (c *Collector) Back() {
	switch c.step {
	case StepDaySelection:
		c.step = StepIdentity
	case StepNotes:
		c.step = StepDaySelection
	}
}

// Submission assembles the response body for the respond endpoint. Votes
// and notes survive a failed submission, so a retry needs no re-entry;
// the caller invokes Finish only once the server accepted the response.
func (c *Collector) Submission() domain.Response {
	return domain.Response{
		PollID:       c.poll.ID,
		ResponderKey: c.resolution.ResponderKey,
		IsGuest:      c.resolution.Kind == identity.KindGuest,
		Notes:        c.notes,
		DayVotes:     c.sheet.Votes(),
	}
}

// VerificationCode returns the code entered during the identity step.
func (c *Collector) VerificationCode() string {
	return c.resolution.VerificationCode
}

func (c *Collector) Finish() {
	if c.step == StepNotes {
		c.step = StepThankYou
	}
}
