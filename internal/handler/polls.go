package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/technikcrew-dev/crew-manager/backend/internal/aggregate"
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
	"github.com/technikcrew-dev/crew-manager/backend/internal/utils"
)

func (h *Handler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Title       string    `json:"title" validate:"required"`
		Description string    `json:"description"`
		Type        string    `json:"type" validate:"required,oneof=AVAILABILITY SCHEDULING"`
		StartTime   time.Time `json:"startTime" validate:"required"`
		EndTime     time.Time `json:"endTime" validate:"required"`
		Options     struct {
			AllowGuests             bool     `json:"allowGuests"`
			RequireVerificationCode bool     `json:"requireVerificationCode"`
			AvailableDays           []string `json:"availableDays" validate:"required,min=1"`
		} `json:"options" validate:"required"`
		VerificationCode *string `json:"verificationCode"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	poll := &domain.Poll{
		UUID:        uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.PollType(req.Type),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Options: domain.PollOptions{
			AllowGuests:             req.Options.AllowGuests,
			RequireVerificationCode: req.Options.RequireVerificationCode,
			AvailableDays:           req.Options.AvailableDays,
		},
		CreatedBy: myInfo.ID,
	}
	if req.VerificationCode != nil {
		poll.VerificationCode = *req.VerificationCode
	}

	// corrects an inverted date range and checks the selectable days
	if err := utils.ValidatePollDefinition(poll); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreatePoll(poll); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "polls_uuid_key":
				h.errorResponse(w, r, "please retry")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// mail the share link to the creator so it can be forwarded to the
	// crew; a failed mail must not fail the creation
	mailMessage := domain.MailMessage{
		Type: "poll_share",
		To:   myInfo.Email,
		Data: domain.PollShareMailData{
			FullName:  myInfo.FullName,
			PollTitle: poll.Title,
			ShareLink: poll.ShareLink(h.config.Poll.PublicBaseURL),
		},
	}
	if err := h.publishMail(mailMessage); err != nil {
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "poll created", map[string]any{
		"poll":      poll,
		"shareLink": poll.ShareLink(h.config.Poll.PublicBaseURL),
	})
}

func (h *Handler) GetAllPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.repository.GetAllPolls()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched all polls", polls)
}

func (h *Handler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(AdminPollCtx).(*domain.Poll)

	h.successResponse(w, r, "fetched poll", poll)
}

func (h *Handler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(AdminPollCtx).(*domain.Poll)

	if err := h.repository.DeletePoll(poll.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidatePollResults(poll.ID)

	h.successResponse(w, r, "poll deleted", nil)
}

// PollResults is the pre-aggregated read model the admin views. The
// timeline is only built for scheduling polls.
type PollResults struct {
	Summary  *aggregate.DailySummary `json:"summary"`
	Timeline *aggregate.Timeline     `json:"timeline,omitempty"`
}

func (h *Handler) GetPollResults(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(AdminPollCtx).(*domain.Poll)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	cacheKey := pollResultsKey(poll.ID)
	if cached, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var results PollResults
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			h.successResponse(w, r, "fetched poll results", &results)
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		// a broken cache should not take the results page down
		h.logInternalServerError(r, err)
	}

	responses, err := h.repository.GetResponsesByPollID(poll.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	results := &PollResults{
		Summary: aggregate.Summarize(poll, responses),
	}
	if poll.Type == domain.PollTypeScheduling {
		results.Timeline = aggregate.BuildTimeline(responses)
	}

	if encoded, err := json.Marshal(results); err == nil {
		if err := h.redisClient.Set(ctx, cacheKey, encoded, time.Duration(h.config.Poll.ResultCacheTTL)*time.Second).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "fetched poll results", results)
}

func pollResultsKey(pollID int64) string {
	return fmt.Sprintf("poll_results_%d", pollID)
}

func (h *Handler) invalidatePollResults(pollID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	_ = h.redisClient.Del(ctx, pollResultsKey(pollID)).Err()
}
