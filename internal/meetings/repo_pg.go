package meetings

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements MeetingsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const meetingColumns = `id, title, organizer, source, transcript_key, transcript_format, chat_key, started_at, ended_at, created_at, updated_at`

// Create inserts a new meeting.
func (r *PGRepo) Create(ctx context.Context, m Meeting) error {
	const query = `
INSERT INTO meetings (
    id,
    title,
    organizer,
    source,
    transcript_key,
    transcript_format,
    chat_key,
    started_at,
    ended_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	source := m.Source
	if source == "" {
		source = SourceUpload
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		m.ID,
		m.Title,
		m.Organizer,
		source,
		m.TranscriptKey,
		m.TranscriptFormat,
		m.ChatKey,
		nullTime(m.StartedAt),
		nullTime(m.EndedAt),
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

// GetByID fetches a meeting by ID.
func (r *PGRepo) GetByID(ctx context.Context, meetingID string) (Meeting, error) {
	const query = `
SELECT ` + meetingColumns + `
FROM meetings
WHERE id = $1
LIMIT 1`

	m, err := scanMeeting(r.DB.QueryRowContext(ctx, query, meetingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Meeting{}, ErrNotFound
		}
		return Meeting{}, err
	}
	return m, nil
}

// List returns meetings ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Meeting, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + meetingColumns + `
FROM meetings
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetChat records the chat storage key for a meeting.
func (r *PGRepo) SetChat(ctx context.Context, meetingID, chatKey string) error {
	const query = `
UPDATE meetings
SET chat_key = $1, updated_at = $2
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, chatKey, time.Now().UTC(), meetingID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (Meeting, error) {
	var m Meeting
	var startedAt, endedAt sql.NullTime
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Organizer,
		&m.Source,
		&m.TranscriptKey,
		&m.TranscriptFormat,
		&m.ChatKey,
		&startedAt,
		&endedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return Meeting{}, err
	}
	if startedAt.Valid {
		t := startedAt.Time
		m.StartedAt = &t
	}
	if endedAt.Valid {
		t := endedAt.Time
		m.EndedAt = &t
	}
	return m, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ MeetingsRepo = (*PGRepo)(nil)
