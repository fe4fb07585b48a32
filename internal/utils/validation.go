package utils

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
)

const ISODate = "2006-01-02"

// CorrectPollRange repairs an inverted date range while the admin is
// authoring: the bound that was just moved wins and the other one is
// shifted to keep a non-empty, non-inverted range of at least one day.
func CorrectPollRange(start, end time.Time, movedStart bool) (time.Time, time.Time) {
	if !end.Before(start) {
		return start, end
	}
	if movedStart {
		return start, start.Add(24 * time.Hour)
	}
	return end.Add(-24 * time.Hour), end
}

// ValidatePollDefinition checks an authored poll before it is persisted.
// The submitted range is corrected rather than rejected (the start bound
// wins, matching the builder), selectable slots must be a non-empty set
// inside the range, and a verification code must accompany the
// require-code option. Availability polls select whole days; scheduling
// polls may additionally carry time-of-day slots so the timeline view
// can be finer than the daily summary.
func ValidatePollDefinition(poll *domain.Poll) error {
	if poll.Type != domain.PollTypeAvailability && poll.Type != domain.PollTypeScheduling {
		return fmt.Errorf("unknown poll type %q", poll.Type)
	}

	poll.StartTime, poll.EndTime = CorrectPollRange(poll.StartTime, poll.EndTime, true)

	if len(poll.Options.AvailableDays) == 0 {
		return errors.New("at least one selectable day is required")
	}

	seen := make(map[string]bool)
	for _, day := range poll.Options.AvailableDays {
		slot, err := ParseSlot(poll.Type, day)
		if err != nil {
			return err
		}
		if seen[day] {
			return fmt.Errorf("selectable slot %q appears twice", day)
		}
		seen[day] = true

		rangeEnd := truncateToDay(poll.EndTime).Add(24 * time.Hour)
		if slot.Before(truncateToDay(poll.StartTime)) || !slot.Before(rangeEnd) {
			return fmt.Errorf("selectable slot %q is outside the poll's date range", day)
		}
	}

	// keep the serialized set sorted; both formats are zero-padded so
	// lexicographic order is chronological order
	sort.Strings(poll.Options.AvailableDays)

	if poll.Options.RequireVerificationCode && poll.VerificationCode == "" {
		return errors.New("a verification code is required when the code option is enabled")
	}
	if !poll.Options.RequireVerificationCode {
		poll.VerificationCode = ""
	}

	return nil
}

// ParseSlot parses a selectable slot string. A whole day ("2006-01-02")
// is valid for either poll type; an RFC3339 timestamp is accepted for
// scheduling polls only.
func ParseSlot(pollType domain.PollType, slot string) (time.Time, error) {
	if t, err := time.Parse(ISODate, slot); err == nil {
		return t, nil
	}
	if pollType == domain.PollTypeScheduling {
		if t, err := time.Parse(time.RFC3339, slot); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("selectable slot %q is not a valid date or timestamp", slot)
	}
	return time.Time{}, fmt.Errorf("selectable day %q is not a valid date", slot)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateResponseAgainstPoll checks a submitted response against the
// poll's policy: the verification code must match when required, and a
// day vote may only exist for a date the admin marked selectable. The
// maybe-note convention is not enforced.
func ValidateResponseAgainstPoll(poll *domain.Poll, response *domain.Response, verificationCode string) error {
	if response.IsGuest {
		if !poll.Options.AllowGuests {
			return errors.New("this poll does not allow guest responses")
		}
		if poll.Options.RequireVerificationCode && verificationCode != poll.VerificationCode {
			return errors.New("the verification code is incorrect")
		}
	}

	if response.ResponderKey == "" {
		return errors.New("a responder name is required")
	}

	seen := make(map[string]bool)
	for _, vote := range response.DayVotes {
		switch vote.Status {
		case domain.VoteAvailable, domain.VoteMaybe, domain.VoteUnavailable:
		default:
			return fmt.Errorf("vote for %s has invalid status %q", vote.Date, vote.Status)
		}

		if !poll.HasAvailableDay(vote.Date) {
			return fmt.Errorf("date %s is not selectable in this poll", vote.Date)
		}
		if seen[vote.Date] {
			return fmt.Errorf("date %s is voted on twice", vote.Date)
		}
		seen[vote.Date] = true
	}

	return nil
}
