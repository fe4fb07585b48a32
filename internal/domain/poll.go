package domain

import "time"

type PollType string

const (
	PollTypeAvailability PollType = "AVAILABILITY"
	PollTypeScheduling   PollType = "SCHEDULING"
)

// PollOptions is stored as a jsonb column and travels as a nested object
// on the wire. AvailableDays is kept sorted and holds ISO dates (2006-01-02).
type PollOptions struct {
	AllowGuests             bool     `json:"allowGuests"`
	RequireVerificationCode bool     `json:"requireVerificationCode"`
	AvailableDays           []string `json:"availableDays"`
}

type Poll struct {
	ID               int64       `json:"id"`
	UUID             string      `json:"uuid"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Type             PollType    `json:"type"`
	StartTime        time.Time   `json:"startTime"`
	EndTime          time.Time   `json:"endTime"`
	Options          PollOptions `json:"options"`
	VerificationCode string      `json:"-"`
	CreatedBy        int64       `json:"createdBy"`
	CreatedAt        time.Time   `json:"createdAt"`
	Version          int32       `json:"-"`
}

// HasAvailableDay reports whether date (ISO day) was marked selectable by
// the admin. Votes must never exist for other dates.
func (p *Poll) HasAvailableDay(date string) bool {
	for _, d := range p.Options.AvailableDays {
		if d == date {
			return true
		}
	}
	return false
}

// ShareLink is the public link shape consumed by the clients.
func (p *Poll) ShareLink(origin string) string {
	return origin + "/poll/" + p.UUID
}
