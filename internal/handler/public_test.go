package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technikcrew-dev/crew-manager/backend/internal/config"
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
	"github.com/technikcrew-dev/crew-manager/backend/internal/identity"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(&config.Config{}, nil, nil, nil)
	require.NoError(t, err)
	return h
}

func closedPoll() *domain.Poll {
	return &domain.Poll{
		ID:    1,
		UUID:  "5e6f6d1c-0000-0000-0000-000000000000",
		Title: "Stage build week",
		Type:  domain.PollTypeAvailability,
		Options: domain.PollOptions{
			AllowGuests:             false,
			RequireVerificationCode: true,
			AvailableDays:           []string{"2025-03-01"},
		},
		VerificationCode: "4711",
	}
}

func submitTo(t *testing.T, h *Handler, poll *domain.Poll, sessionUser *domain.User, body string) Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/public/polls/"+poll.UUID+"/respond", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), PublicPollCtx, poll)
	if sessionUser != nil {
		ctx = context.WithValue(ctx, SessionUserCtx, sessionUser)
	}

	rr := httptest.NewRecorder()
	h.SubmitResponse(rr, req.WithContext(ctx))

	var envelope Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

// A caller without a session must not reach the member path by claiming
// a username in the body: on a guests-disallowed poll the submission is
// rejected even when it names a member and carries the right code.
func TestSubmitResponseIgnoresUsernameClaimFromBody(t *testing.T) {
	h := newTestHandler(t)

	envelope := submitTo(t, h, closedPoll(), nil,
		`{"username":"mallory","verificationCode":"4711","dayVotes":[{"date":"2025-03-01","status":"AVAILABLE"}]}`)
	assert.False(t, envelope.Success)
	assert.Equal(t, string(identity.ReasonGuestsDisallowed), envelope.Message)
}

func TestSubmitResponseGuestPolicy(t *testing.T) {
	h := newTestHandler(t)

	t.Run("guests disallowed", func(t *testing.T) {
		envelope := submitTo(t, h, closedPoll(), nil, `{"guestName":"Sam","dayVotes":[]}`)
		assert.False(t, envelope.Success)
		assert.Equal(t, string(identity.ReasonGuestsDisallowed), envelope.Message)
	})

	t.Run("guest without a name", func(t *testing.T) {
		poll := closedPoll()
		poll.Options.AllowGuests = true
		envelope := submitTo(t, h, poll, nil, `{"dayVotes":[]}`)
		assert.False(t, envelope.Success)
		assert.Equal(t, string(identity.ReasonMissingGuestName), envelope.Message)
	})

	t.Run("guest without the required code", func(t *testing.T) {
		poll := closedPoll()
		poll.Options.AllowGuests = true
		envelope := submitTo(t, h, poll, nil, `{"guestName":"Sam","dayVotes":[]}`)
		assert.False(t, envelope.Success)
		assert.Equal(t, string(identity.ReasonMissingCode), envelope.Message)
	})
}

// An empty vote list is a valid no-opinion submission; per-element rules
// still apply once votes are present.
func TestSubmitResponseRequestValidation(t *testing.T) {
	h := newTestHandler(t)

	assert.NoError(t, h.validate.Struct(submitResponseRequest{}))
	assert.NoError(t, h.validate.Struct(submitResponseRequest{DayVotes: []submitDayVote{}}))
	assert.Error(t, h.validate.Struct(submitResponseRequest{DayVotes: []submitDayVote{
		{Date: "2025-03-01", Status: "PERHAPS"},
	}}))
	assert.Error(t, h.validate.Struct(submitResponseRequest{DayVotes: []submitDayVote{
		{Status: "AVAILABLE"},
	}}))
}
