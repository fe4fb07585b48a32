package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Jonas", "Lena", "Felix", "Marie", "Lukas", "Anna", "Tim", "Laura",
	"Max", "Sophie", "Paul", "Clara", "David", "Mia", "Jan", "Emma",
}
var commonLastNames = []string{
	"Mueller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer",
	"Wagner", "Becker", "Hoffmann", "Schulz", "Koch", "Bauer",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var roles = []domain.Role{
	domain.RoleMember,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

func GenerateRandomUser(password string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	if password == "" {
		password = GenerateRandomPassword(16)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@example.org",
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

// GenerateRandomPassword is the fallback for seeded accounts when no
// seed password is configured, so no account ends up with an empty one.
func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

func GenerateRandomVerificationCode() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

var pollTypes = []domain.PollType{
	domain.PollTypeAvailability,
	domain.PollTypeScheduling,
}

// GenerateRandomPoll produces a poll over the next one to three weeks
// with a random subset of its days marked selectable.
func GenerateRandomPoll(createdBy int64) *domain.Poll {
	start := truncateToDay(time.Now()).Add(time.Duration(rand.Intn(14)) * 24 * time.Hour)
	spanDays := rand.Intn(14) + 7
	end := start.Add(time.Duration(spanDays) * 24 * time.Hour)

	days := make([]string, 0, spanDays)
	for d := start; !d.After(end); d = d.Add(24 * time.Hour) {
		if rand.Intn(3) > 0 {
			days = append(days, d.Format(ISODate))
		}
	}
	if len(days) == 0 {
		days = append(days, start.Format(ISODate))
	}

	poll := &domain.Poll{
		UUID:        uuid.NewString(),
		Title:       "Crew availability " + start.Format(ISODate),
		Description: "Tell us when you can make it.",
		Type:        pollTypes[rand.Intn(len(pollTypes))],
		StartTime:   start,
		EndTime:     end,
		Options: domain.PollOptions{
			AllowGuests:             rand.Intn(2) == 0,
			RequireVerificationCode: false,
			AvailableDays:           days,
		},
		CreatedBy: createdBy,
	}

	if poll.Options.AllowGuests && rand.Intn(2) == 0 {
		poll.Options.RequireVerificationCode = true
		poll.VerificationCode = GenerateRandomVerificationCode()
	}

	return poll
}

var maybeNotes = []string{
	"only after 18:00",
	"depends on work",
	"might be travelling",
	"can do the morning only",
}

var voteStatuses = []domain.VoteStatus{
	domain.VoteAvailable,
	domain.VoteMaybe,
	domain.VoteUnavailable,
}

// GenerateRandomResponse votes on a random subset of the poll's
// selectable days; skipped days carry no opinion.
func GenerateRandomResponse(poll *domain.Poll, responderKey string, isGuest bool) *domain.Response {
	response := &domain.Response{
		PollID:       poll.ID,
		ResponderKey: responderKey,
		IsGuest:      isGuest,
		DayVotes:     make([]domain.DayVote, 0, len(poll.Options.AvailableDays)),
	}

	for _, day := range poll.Options.AvailableDays {
		if rand.Intn(4) == 0 {
			continue
		}
		vote := domain.DayVote{
			Date:   day,
			Status: voteStatuses[rand.Intn(len(voteStatuses))],
		}
		if vote.Status == domain.VoteMaybe {
			vote.Notes = maybeNotes[rand.Intn(len(maybeNotes))]
		}
		response.DayVotes = append(response.DayVotes, vote)
	}

	return response
}
