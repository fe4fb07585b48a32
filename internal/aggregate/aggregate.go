// Package aggregate turns the raw response set of a poll into the two
// read-side presentations the admin sees: a per-day summary for
// availability polls and a time-slot timeline for scheduling polls. The
// engine runs server-side; clients consume the pre-aggregated JSON.
package aggregate

import (
	"sort"

	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
)

type MaybeEntry struct {
	Responder string `json:"responder"`
	Notes     string `json:"notes"`
}

// DayBuckets partitions the votes cast for one selectable date. MAYBE is
// tallied as its own bucket and never collapsed into either neighbour.
// Responders without a vote for the date appear in no bucket.
type DayBuckets struct {
	Date        string       `json:"date"`
	Available   []string     `json:"available"`
	Maybe       []MaybeEntry `json:"maybe"`
	Unavailable []string     `json:"unavailable"`
}

type DailySummary struct {
	// HasResponses distinguishes "no responses yet" from a poll whose
	// responders simply skipped every day.
	HasResponses    bool         `json:"hasResponses"`
	TotalResponders int          `json:"totalResponders"`
	Days            []DayBuckets `json:"days"`
}

// Summarize builds the daily summary over the poll's selectable days, in
// the order the admin defined them. Votes for dates outside the
// selectable set are ignored; they cannot be produced by the clients and
// are rejected at submission, so silently skipping is enough here.
func Summarize(poll *domain.Poll, responses []*domain.Response) *DailySummary {
	summary := &DailySummary{
		HasResponses:    len(responses) > 0,
		TotalResponders: len(responses),
		Days:            make([]DayBuckets, 0, len(poll.Options.AvailableDays)),
	}

	for _, date := range poll.Options.AvailableDays {
		buckets := DayBuckets{
			Date:        date,
			Available:   make([]string, 0),
			Maybe:       make([]MaybeEntry, 0),
			Unavailable: make([]string, 0),
		}

		for _, resp := range responses {
			for _, vote := range resp.DayVotes {
				if vote.Date != date {
					continue
				}
				switch vote.Status {
				case domain.VoteAvailable:
					buckets.Available = append(buckets.Available, resp.ResponderKey)
				case domain.VoteMaybe:
					buckets.Maybe = append(buckets.Maybe, MaybeEntry{
						Responder: resp.ResponderKey,
						Notes:     vote.Notes,
					})
				case domain.VoteUnavailable:
					buckets.Unavailable = append(buckets.Unavailable, resp.ResponderKey)
				}
			}
		}

		summary.Days = append(summary.Days, buckets)
	}

	return summary
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityNominal  Severity = "nominal"
)

// severityFor bands a slot by headcount. The banding drives visual
// emphasis only.
func severityFor(participants int) Severity {
	switch {
	case participants <= 1:
		return SeverityCritical
	case participants <= 2:
		return SeverityWarning
	default:
		return SeverityNominal
	}
}

type TimelineSlot struct {
	Slot         string   `json:"slot"`
	Participants []string `json:"participants"`
	Severity     Severity `json:"severity"`
}

type Timeline struct {
	HasResponses bool           `json:"hasResponses"`
	Slots        []TimelineSlot `json:"slots"`
}

// BuildTimeline collects, for each distinct slot appearing across the
// responses, the responders marked available at that slot, sorted
// chronologically by slot start. Scheduling polls encode slot starts as
// ISO timestamps, which order correctly as strings.
func BuildTimeline(responses []*domain.Response) *Timeline {
	bySlot := make(map[string][]string)

	for _, resp := range responses {
		for _, vote := range resp.DayVotes {
			if vote.Status != domain.VoteAvailable {
				continue
			}
			bySlot[vote.Date] = append(bySlot[vote.Date], resp.ResponderKey)
		}
	}

	slots := make([]string, 0, len(bySlot))
	for slot := range bySlot {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	timeline := &Timeline{
		HasResponses: len(responses) > 0,
		Slots:        make([]TimelineSlot, 0, len(slots)),
	}
	for _, slot := range slots {
		participants := bySlot[slot]
		timeline.Slots = append(timeline.Slots, TimelineSlot{
			Slot:         slot,
			Participants: participants,
			Severity:     severityFor(len(participants)),
		})
	}

	return timeline
}
