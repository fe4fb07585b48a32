package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceCyclesBackToStart(t *testing.T) {
	states := []VoteStatus{VoteUnset, VoteAvailable, VoteMaybe, VoteUnavailable}

	for _, s := range states {
		got := Advance(Advance(Advance(Advance(s))))
		assert.Equal(t, s, got, "four taps starting from %q must return to %q", s, s)
	}
}

func TestAdvanceOrder(t *testing.T) {
	assert.Equal(t, VoteAvailable, Advance(VoteUnset))
	assert.Equal(t, VoteMaybe, Advance(VoteAvailable))
	assert.Equal(t, VoteUnavailable, Advance(VoteMaybe))
	assert.Equal(t, VoteUnset, Advance(VoteUnavailable))
}

func TestVoteSheetTap(t *testing.T) {
	sheet := NewVoteSheet()

	needsNote := sheet.Tap("2025-03-01")
	assert.False(t, needsNote)
	vote, ok := sheet.Get("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, VoteAvailable, vote.Status)

	// second tap enters MAYBE and asks for a justification
	needsNote = sheet.Tap("2025-03-01")
	assert.True(t, needsNote)
	sheet.SetNote("2025-03-01", "busy after 6pm")

	vote, ok = sheet.Get("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, VoteMaybe, vote.Status)
	assert.Equal(t, "busy after 6pm", vote.Notes)

	// leaving MAYBE drops the note, the justification no longer applies
	needsNote = sheet.Tap("2025-03-01")
	assert.False(t, needsNote)
	vote, ok = sheet.Get("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, VoteUnavailable, vote.Status)
	assert.Empty(t, vote.Notes)

	// fourth tap removes the vote entirely, not a vote with unset status
	sheet.Tap("2025-03-01")
	_, ok = sheet.Get("2025-03-01")
	assert.False(t, ok)
	assert.Empty(t, sheet.Votes())
}

func TestVoteSheetReenteredMaybeStartsWithoutNote(t *testing.T) {
	sheet := NewVoteSheet()

	sheet.Tap("2025-03-01")
	sheet.Tap("2025-03-01")
	sheet.SetNote("2025-03-01", "first reason")

	// cycle all the way around back into MAYBE; the prompt is cancelled
	// so SetNote is never called again
	sheet.Tap("2025-03-01")
	sheet.Tap("2025-03-01")
	sheet.Tap("2025-03-01")
	needsNote := sheet.Tap("2025-03-01")
	require.True(t, needsNote)

	vote, ok := sheet.Get("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, VoteMaybe, vote.Status)
	assert.Empty(t, vote.Notes, "the note was dropped when MAYBE was left")
}

func TestVoteSheetSetNoteIgnoredOutsideMaybe(t *testing.T) {
	sheet := NewVoteSheet()

	sheet.Tap("2025-03-01") // AVAILABLE
	sheet.SetNote("2025-03-01", "should not stick")

	vote, _ := sheet.Get("2025-03-01")
	assert.Empty(t, vote.Notes)

	sheet.SetNote("2025-03-02", "no vote at all")
	_, ok := sheet.Get("2025-03-02")
	assert.False(t, ok)
}

func TestVoteSheetVotesSortedByDate(t *testing.T) {
	sheet := NewVoteSheet()
	sheet.Tap("2025-03-03")
	sheet.Tap("2025-03-01")
	sheet.Tap("2025-03-02")

	votes := sheet.Votes()
	require.Len(t, votes, 3)
	assert.Equal(t, "2025-03-01", votes[0].Date)
	assert.Equal(t, "2025-03-02", votes[1].Date)
	assert.Equal(t, "2025-03-03", votes[2].Date)
}
