// Package seed fills a development database with plausible crew data: a
// handful of members, one poll of each type and a spread of responses so
// the summary and timeline views render something worth looking at.
package seed

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/technikcrew-dev/crew-manager/backend/internal/config"
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
	"github.com/technikcrew-dev/crew-manager/backend/internal/repository"
	"github.com/technikcrew-dev/crew-manager/backend/internal/utils"
)

var guestNames = []string{
	"Chris (Lighting)", "Sam from catering", "Alex R.", "Visiting tech",
}

// SeedResponses inserts up to n random responses for poll, mixing member
// and guest responders. Returns how many were actually inserted.
func SeedResponses(r *repository.Repository, poll *domain.Poll, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		responderKey := utils.GenerateRandomFullName()
		isGuest := false
		if poll.Options.AllowGuests && i%3 == 0 {
			responderKey = guestNames[i%len(guestNames)]
			isGuest = true
		}

		response := utils.GenerateRandomResponse(poll, responderKey, isGuest)
		if err := r.InsertResponse(response); err != nil {
			slog.Error("cannot insert response", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}

// SeedDemoData creates a small, deterministic-ish demo set: crew members,
// an availability poll for the next stage build and a scheduling poll for
// a show weekend, each with responses.
func SeedDemoData(cfg *config.Config, r *repository.Repository) {
	admin, err := r.GetUserByUsername(cfg.InitialAdmin.Username)
	if err != nil {
		slog.Error("cannot load initial admin", slog.String("error", err.Error()))
		return
	}

	for i := 0; i < 8; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password)
		if err != nil {
			slog.Error("cannot generate random user", slog.String("error", err.Error()))
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("cannot insert user", slog.String("error", err.Error()))
		}
	}

	start := time.Now().Add(7 * 24 * time.Hour)
	end := start.Add(6 * 24 * time.Hour)
	days := make([]string, 0, 7)
	for d := start; !d.After(end); d = d.Add(24 * time.Hour) {
		days = append(days, d.Format(utils.ISODate))
	}

	availability := &domain.Poll{
		UUID:        uuid.NewString(),
		Title:       "Stage build week",
		Description: "We need hands every evening. Mark the days you can help.",
		Type:        domain.PollTypeAvailability,
		StartTime:   start,
		EndTime:     end,
		Options: domain.PollOptions{
			AllowGuests:   true,
			AvailableDays: days,
		},
		CreatedBy: admin.ID,
	}
	if err := r.CreatePoll(availability); err != nil {
		slog.Error("cannot insert availability poll", slog.String("error", err.Error()))
		return
	}

	// shift slots carry a time of day so the timeline is finer than the
	// daily summary
	shiftSlots := make([]string, 0, 6)
	for i := 0; i < 3; i++ {
		d := start.Add(time.Duration(i) * 24 * time.Hour)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		shiftSlots = append(shiftSlots,
			day.Add(18*time.Hour).Format(time.RFC3339),
			day.Add(22*time.Hour).Format(time.RFC3339),
		)
	}

	scheduling := &domain.Poll{
		UUID:        uuid.NewString(),
		Title:       "Show weekend shifts",
		Description: "Pick the shifts you can run.",
		Type:        domain.PollTypeScheduling,
		StartTime:   start,
		EndTime:     end,
		Options: domain.PollOptions{
			AllowGuests:             true,
			RequireVerificationCode: true,
			AvailableDays:           shiftSlots,
		},
		VerificationCode: utils.GenerateRandomVerificationCode(),
		CreatedBy:        admin.ID,
	}
	if err := r.CreatePoll(scheduling); err != nil {
		slog.Error("cannot insert scheduling poll", slog.String("error", err.Error()))
		return
	}

	SeedResponses(r, availability, 6)
	SeedResponses(r, scheduling, 4)

	slog.Info("demo data inserted",
		slog.String("availability_poll", availability.UUID),
		slog.String("scheduling_poll", scheduling.UUID),
	)
}
