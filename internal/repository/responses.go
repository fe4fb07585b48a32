package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
)

// InsertResponse stores a response and its day votes in one transaction.
// The unique constraint on (poll_id, responder_key) makes the submission
// at-most-once per responder; a duplicate surfaces as a pgconn error with
// the responses_poll_id_responder_key_key constraint name.
func (r *Repository) InsertResponse(response *domain.Response) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO responses (poll_id, responder_key, is_guest, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`
	args := []any{response.PollID, response.ResponderKey, response.IsGuest, response.Notes}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&response.ID, &response.CreatedAt, &response.Version); err != nil {
		return err
	}

	for _, vote := range response.DayVotes {
		query := `
			INSERT INTO response_day_votes (response_id, date, status, notes)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, response.ID, vote.Date, vote.Status, vote.Notes); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetResponderKeysByPollID returns the keys of everyone who already
// responded, in submission order. The public poll payload carries this
// list so clients can short-circuit a repeat visit.
func (r *Repository) GetResponderKeysByPollID(pollID int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT responder_key FROM responses
		WHERE poll_id = $1
		ORDER BY created_at
	`

	rows, err := r.dbpool.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// GetResponsesByPollID loads every response with its day votes in a
// single joined query.
func (r *Repository) GetResponsesByPollID(pollID int64) ([]*domain.Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			resp.id,
			resp.responder_key,
			resp.is_guest,
			resp.notes,
			rdv.date,
			rdv.status,
			rdv.notes,
			resp.created_at,
			resp.version
		FROM responses resp
		LEFT JOIN response_day_votes rdv ON resp.id = rdv.response_id
		WHERE resp.poll_id = $1
		ORDER BY resp.created_at, rdv.date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responsesMap := make(map[int64]*domain.Response)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			responseID   int64
			responderKey string
			isGuest      bool
			notes        string
			voteDate     sql.NullString
			voteStatus   sql.NullString
			voteNotes    sql.NullString
			createdAt    time.Time
			version      int32
		}

		dst := []any{
			&row.responseID,
			&row.responderKey,
			&row.isGuest,
			&row.notes,
			&row.voteDate,
			&row.voteStatus,
			&row.voteNotes,
			&row.createdAt,
			&row.version,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := responsesMap[row.responseID]; !exists {
			responsesMap[row.responseID] = &domain.Response{
				ID:           row.responseID,
				PollID:       pollID,
				ResponderKey: row.responderKey,
				IsGuest:      row.isGuest,
				Notes:        row.notes,
				DayVotes:     make([]domain.DayVote, 0),
				CreatedAt:    row.createdAt,
				Version:      row.version,
			}
			order = append(order, row.responseID)
		}

		if !row.voteDate.Valid {
			// a response with no day votes at all is a valid "no
			// opinion on any day" submission
			continue
		}

		responsesMap[row.responseID].DayVotes = append(responsesMap[row.responseID].DayVotes, domain.DayVote{
			Date:   row.voteDate.String,
			Status: domain.VoteStatus(row.voteStatus.String),
			Notes:  row.voteNotes.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	responses := make([]*domain.Response, 0, len(order))
	for _, id := range order {
		responses = append(responses, responsesMap[id])
	}

	return responses, nil
}
