package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
	"github.com/technikcrew-dev/crew-manager/backend/internal/identity"
	"github.com/technikcrew-dev/crew-manager/backend/internal/utils"
)

// publicPollView strips the verification code from the poll before it
// leaves through the public surface; the code is compared server-side on
// submission only.
type publicPollView struct {
	UUID        string             `json:"uuid"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        domain.PollType    `json:"type"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Options     domain.PollOptions `json:"options"`
}

func (h *Handler) GetPublicPoll(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PublicPollCtx).(*domain.Poll)

	responders, err := h.repository.GetResponderKeysByPollID(poll.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched poll", map[string]any{
		"poll": publicPollView{
			UUID:        poll.UUID,
			Title:       poll.Title,
			Description: poll.Description,
			Type:        poll.Type,
			StartTime:   poll.StartTime.Format(utils.ISODate),
			EndTime:     poll.EndTime.Format(utils.ISODate),
			Options:     poll.Options,
		},
		"responders": responders,
	})
}

type submitDayVote struct {
	Date   string `json:"date" validate:"required"`
	Status string `json:"status" validate:"required,oneof=AVAILABLE MAYBE UNAVAILABLE"`
	Notes  string `json:"notes"`
}

// submitResponseRequest carries no trusted identity: guestName is a
// claim subject to the poll's guest policy, and an authenticated
// responder is recognized from the session cookie only. An empty
// dayVotes list is a valid no-opinion submission.
type submitResponseRequest struct {
	GuestName        *string         `json:"guestName"`
	VerificationCode *string         `json:"verificationCode"`
	Notes            string          `json:"notes"`
	DayVotes         []submitDayVote `json:"dayVotes" validate:"omitempty,dive"`
}

func (h *Handler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PublicPollCtx).(*domain.Poll)

	var req submitResponseRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	verificationCode := ""
	if req.VerificationCode != nil {
		verificationCode = *req.VerificationCode
	}

	in := identity.Input{
		AllowGuests:      poll.Options.AllowGuests,
		RequireCode:      poll.Options.RequireVerificationCode,
		VerificationCode: verificationCode,
	}
	if sessionUser, ok := r.Context().Value(SessionUserCtx).(*domain.User); ok {
		in.IsAuthenticated = true
		in.Username = sessionUser.Username
	}
	if req.GuestName != nil {
		in.GuestName = *req.GuestName
	}

	resolution := identity.Resolve(in)
	if resolution.Kind == identity.KindRejected {
		h.errorResponse(w, r, string(resolution.Reason))
		return
	}

	response := &domain.Response{
		PollID:       poll.ID,
		ResponderKey: resolution.ResponderKey,
		IsGuest:      resolution.Kind == identity.KindGuest,
		Notes:        req.Notes,
		DayVotes:     make([]domain.DayVote, len(req.DayVotes)),
	}

	for i, vote := range req.DayVotes {
		response.DayVotes[i] = domain.DayVote{
			Date:   vote.Date,
			Status: domain.VoteStatus(vote.Status),
			Notes:  vote.Notes,
		}
	}

	if err := utils.ValidateResponseAgainstPoll(poll, response, verificationCode); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.InsertResponse(response); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "responses_poll_id_responder_key_key":
				// the client-side responder-list check is advisory
				// only; this constraint is the real guard
				h.errorResponse(w, r, "you have already responded to this poll")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePollResults(poll.ID)

	// notify the poll creator; failure must not fail the submission
	if creator, err := h.repository.GetUserByID(poll.CreatedBy); err == nil {
		mailMessage := domain.MailMessage{
			Type: "poll_response",
			To:   creator.Email,
			Data: domain.PollResponseMailData{
				FullName:     creator.FullName,
				PollTitle:    poll.Title,
				ResponderKey: response.ResponderKey,
			},
		}
		if err := h.publishMail(mailMessage); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "response recorded", response)
}
