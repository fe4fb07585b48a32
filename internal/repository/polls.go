package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/technikcrew-dev/crew-manager/backend/internal/domain"
)

func (r *Repository) CreatePoll(poll *domain.Poll) error {
	query := `
		INSERT INTO polls (uuid, title, description, type, start_time, end_time, options, verification_code, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	options, err := json.Marshal(poll.Options)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{
		poll.UUID,
		poll.Title,
		poll.Description,
		poll.Type,
		poll.StartTime,
		poll.EndTime,
		options,
		poll.VerificationCode,
		poll.CreatedBy,
	}
	dst := []any{&poll.ID, &poll.CreatedAt, &poll.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllPolls() ([]*domain.Poll, error) {
	query := `
		SELECT id, uuid, title, description, type, start_time, end_time, options, verification_code, created_by, created_at, version
		FROM polls
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	polls := []*domain.Poll{}
	for rows.Next() {
		var poll domain.Poll
		var options []byte
		dst := []any{
			&poll.ID,
			&poll.UUID,
			&poll.Title,
			&poll.Description,
			&poll.Type,
			&poll.StartTime,
			&poll.EndTime,
			&options,
			&poll.VerificationCode,
			&poll.CreatedBy,
			&poll.CreatedAt,
			&poll.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(options, &poll.Options); err != nil {
			return nil, err
		}
		polls = append(polls, &poll)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return polls, nil
}

func (r *Repository) getPoll(where string, arg any) (*domain.Poll, error) {
	query := `
		SELECT id, uuid, title, description, type, start_time, end_time, options, verification_code, created_by, created_at, version
		FROM polls
		WHERE ` + where

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	poll := &domain.Poll{}
	var options []byte

	dst := []any{
		&poll.ID,
		&poll.UUID,
		&poll.Title,
		&poll.Description,
		&poll.Type,
		&poll.StartTime,
		&poll.EndTime,
		&options,
		&poll.VerificationCode,
		&poll.CreatedBy,
		&poll.CreatedAt,
		&poll.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, arg).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &poll.Options); err != nil {
		return nil, err
	}

	return poll, nil
}

func (r *Repository) GetPollByID(id int64) (*domain.Poll, error) {
	return r.getPoll("id = $1", id)
}

func (r *Repository) GetPollByUUID(uuid string) (*domain.Poll, error) {
	return r.getPoll("uuid = $1", uuid)
}

// DeletePoll removes the poll; responses and their day votes cascade via
// foreign keys.
func (r *Repository) DeletePoll(id int64) error {
	query := `
		DELETE FROM polls WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
