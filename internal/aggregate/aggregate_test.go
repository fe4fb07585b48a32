package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
)

func availabilityPoll(days ...string) *domain.Poll {
	return &domain.Poll{
		ID:    1,
		Title: "Stage build week",
		Type:  domain.PollTypeAvailability,
		Options: domain.PollOptions{
			AvailableDays: days,
		},
	}
}

func TestSummarizeBuckets(t *testing.T) {
	poll := availabilityPoll("2025-03-01", "2025-03-02")

	responses := []*domain.Response{
		{
			ResponderKey: "jonas",
			DayVotes: []domain.DayVote{
				{Date: "2025-03-01", Status: domain.VoteMaybe, Notes: "busy after 6pm"},
				// no vote at all for 2025-03-02
			},
		},
		{
			ResponderKey: "Lena Weber",
			DayVotes: []domain.DayVote{
				{Date: "2025-03-01", Status: domain.VoteAvailable},
				{Date: "2025-03-02", Status: domain.VoteUnavailable},
			},
		},
	}

	summary := Summarize(poll, responses)
	require.True(t, summary.HasResponses)
	require.Equal(t, 2, summary.TotalResponders)
	require.Len(t, summary.Days, 2)

	day1 := summary.Days[0]
	assert.Equal(t, "2025-03-01", day1.Date)
	assert.Equal(t, []string{"Lena Weber"}, day1.Available)
	require.Len(t, day1.Maybe, 1)
	assert.Equal(t, MaybeEntry{Responder: "jonas", Notes: "busy after 6pm"}, day1.Maybe[0])
	assert.Empty(t, day1.Unavailable)

	// jonas skipped day 2 and must appear in none of its buckets
	day2 := summary.Days[1]
	assert.Empty(t, day2.Available)
	assert.Empty(t, day2.Maybe)
	assert.Equal(t, []string{"Lena Weber"}, day2.Unavailable)
}

// MAYBE is its own bucket; it never leaks into AVAILABLE or UNAVAILABLE.
func TestSummarizeKeepsMaybeDistinct(t *testing.T) {
	poll := availabilityPoll("2025-03-01")
	responses := []*domain.Response{
		{ResponderKey: "a", DayVotes: []domain.DayVote{{Date: "2025-03-01", Status: domain.VoteMaybe}}},
	}

	day := Summarize(poll, responses).Days[0]
	assert.Empty(t, day.Available)
	assert.Empty(t, day.Unavailable)
	assert.Len(t, day.Maybe, 1)
}

func TestSummarizeBucketSumBoundedByResponders(t *testing.T) {
	poll := availabilityPoll("2025-03-01", "2025-03-02", "2025-03-03")
	responses := []*domain.Response{
		{ResponderKey: "a", DayVotes: []domain.DayVote{
			{Date: "2025-03-01", Status: domain.VoteAvailable},
			{Date: "2025-03-02", Status: domain.VoteUnavailable},
		}},
		{ResponderKey: "b", DayVotes: []domain.DayVote{
			{Date: "2025-03-01", Status: domain.VoteMaybe},
		}},
		{ResponderKey: "c"},
	}

	summary := Summarize(poll, responses)
	for _, day := range summary.Days {
		total := len(day.Available) + len(day.Maybe) + len(day.Unavailable)
		assert.LessOrEqual(t, total, summary.TotalResponders, "day %s", day.Date)
	}

	// equality iff every responder voted on that date: nobody reaches 3
	assert.Equal(t, 2, len(summary.Days[0].Available)+len(summary.Days[0].Maybe)+len(summary.Days[0].Unavailable))
}

// Zero responses is a valid, distinctly rendered state, not an error or
// an empty table.
func TestSummarizeNoResponsesYet(t *testing.T) {
	poll := availabilityPoll("2025-03-01", "2025-03-02")

	summary := Summarize(poll, nil)
	assert.False(t, summary.HasResponses)
	assert.Zero(t, summary.TotalResponders)
	require.Len(t, summary.Days, 2)
	for _, day := range summary.Days {
		assert.Empty(t, day.Available)
		assert.Empty(t, day.Maybe)
		assert.Empty(t, day.Unavailable)
	}
}

func TestBuildTimeline(t *testing.T) {
	responses := []*domain.Response{
		{ResponderKey: "a", DayVotes: []domain.DayVote{
			{Date: "2025-03-02", Status: domain.VoteAvailable},
			{Date: "2025-03-01", Status: domain.VoteAvailable},
			{Date: "2025-03-03", Status: domain.VoteUnavailable},
		}},
		{ResponderKey: "b", DayVotes: []domain.DayVote{
			{Date: "2025-03-01", Status: domain.VoteAvailable},
		}},
		{ResponderKey: "c", DayVotes: []domain.DayVote{
			{Date: "2025-03-01", Status: domain.VoteAvailable},
			{Date: "2025-03-02", Status: domain.VoteMaybe},
		}},
	}

	timeline := BuildTimeline(responses)
	require.True(t, timeline.HasResponses)
	// only AVAILABLE votes form slots, sorted chronologically
	require.Len(t, timeline.Slots, 2)

	assert.Equal(t, "2025-03-01", timeline.Slots[0].Slot)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, timeline.Slots[0].Participants)
	assert.Equal(t, SeverityNominal, timeline.Slots[0].Severity)

	assert.Equal(t, "2025-03-02", timeline.Slots[1].Slot)
	assert.Equal(t, []string{"a"}, timeline.Slots[1].Participants)
	assert.Equal(t, SeverityCritical, timeline.Slots[1].Severity)
}

func TestBuildTimelineSubDaySlots(t *testing.T) {
	responses := []*domain.Response{
		{ResponderKey: "a", DayVotes: []domain.DayVote{
			{Date: "2025-03-01T22:00:00Z", Status: domain.VoteAvailable},
			{Date: "2025-03-01T18:00:00Z", Status: domain.VoteAvailable},
		}},
		{ResponderKey: "b", DayVotes: []domain.DayVote{
			{Date: "2025-03-01T18:00:00Z", Status: domain.VoteAvailable},
		}},
	}

	timeline := BuildTimeline(responses)
	require.Len(t, timeline.Slots, 2)

	// two shifts on the same day stay distinct and ordered by start
	assert.Equal(t, "2025-03-01T18:00:00Z", timeline.Slots[0].Slot)
	assert.ElementsMatch(t, []string{"a", "b"}, timeline.Slots[0].Participants)
	assert.Equal(t, "2025-03-01T22:00:00Z", timeline.Slots[1].Slot)
	assert.Equal(t, []string{"a"}, timeline.Slots[1].Participants)
}

func TestSeverityBanding(t *testing.T) {
	assert.Equal(t, SeverityCritical, severityFor(0))
	assert.Equal(t, SeverityCritical, severityFor(1))
	assert.Equal(t, SeverityWarning, severityFor(2))
	assert.Equal(t, SeverityNominal, severityFor(3))
}

func TestBuildTimelineNoResponses(t *testing.T) {
	timeline := BuildTimeline(nil)
	assert.False(t, timeline.HasResponses)
	assert.Empty(t, timeline.Slots)
}
