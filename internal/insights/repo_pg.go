package insights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pulse-backend/internal/analyzer"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const insightColumns = `id, meeting_id, request_id, status, satisfaction_score, satisfaction_label, risk_score, risk_label, urgency_level, sentiment, concerns, concern_categories, key_phrases, transcript_length, has_chat, analyzed_at, error, created_at, completed_at`

// Create inserts a new insight row.
func (r *PGRepo) Create(ctx context.Context, ins Insight) error {
	const query = `
INSERT INTO insights (
    id,
    meeting_id,
    request_id,
    status,
    created_at
) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		ins.ID,
		ins.MeetingID,
		ins.RequestID,
		ins.Status,
		ins.CreatedAt,
	)
	return err
}

// GetByID fetches an insight by ID.
func (r *PGRepo) GetByID(ctx context.Context, insightID string) (Insight, error) {
	const query = `
SELECT ` + insightColumns + `
FROM insights
WHERE id = $1
LIMIT 1`

	ins, err := scanInsight(r.DB.QueryRowContext(ctx, query, insightID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Insight{}, ErrNotFound
		}
		return Insight{}, err
	}
	return ins, nil
}

// ListByMeeting lists insights for a meeting, newest first.
func (r *PGRepo) ListByMeeting(ctx context.Context, meetingID string, limit, offset int) ([]Insight, error) {
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
SELECT ` + insightColumns + `
FROM insights
WHERE meeting_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, meetingID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Insight
	for rows.Next() {
		ins, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// MarkProcessing transitions a queued insight to processing.
func (r *PGRepo) MarkProcessing(ctx context.Context, insightID string) error {
	const query = `
UPDATE insights
SET status = $1
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, StatusProcessing, insightID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete stores the analysis result and marks the insight completed.
func (r *PGRepo) Complete(ctx context.Context, insightID string, result analyzer.Result, satisfactionLabel, riskLabel string, completedAt time.Time) error {
	sentiment, err := json.Marshal(result.Sentiment)
	if err != nil {
		return fmt.Errorf("marshal sentiment: %w", err)
	}
	concerns, err := json.Marshal(result.Concerns)
	if err != nil {
		return fmt.Errorf("marshal concerns: %w", err)
	}
	categories, err := json.Marshal(result.ConcernCategories)
	if err != nil {
		return fmt.Errorf("marshal concern categories: %w", err)
	}
	phrases, err := json.Marshal(result.KeyPhrases)
	if err != nil {
		return fmt.Errorf("marshal key phrases: %w", err)
	}

	const query = `
UPDATE insights
SET status = $1,
    satisfaction_score = $2,
    satisfaction_label = $3,
    risk_score = $4,
    risk_label = $5,
    urgency_level = $6,
    sentiment = $7,
    concerns = $8,
    concern_categories = $9,
    key_phrases = $10,
    transcript_length = $11,
    has_chat = $12,
    analyzed_at = $13,
    completed_at = $14
WHERE id = $15`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		StatusCompleted,
		result.SatisfactionScore,
		satisfactionLabel,
		result.RiskScore,
		riskLabel,
		result.UrgencyLevel,
		sentiment,
		concerns,
		categories,
		phrases,
		result.TranscriptLength,
		result.HasChat,
		result.AnalyzedAt,
		completedAt,
		insightID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Fail marks the insight failed with an error message.
func (r *PGRepo) Fail(ctx context.Context, insightID string, errMsg string, completedAt time.Time) error {
	const query = `
UPDATE insights
SET status = $1, error = $2, completed_at = $3
WHERE id = $4`
	res, err := r.DB.ExecContext(ctx, query, StatusFailed, errMsg, completedAt, insightID)
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

func scanInsight(row rowScanner) (Insight, error) {
	var ins Insight
	var satisfactionScore, riskScore sql.NullFloat64
	var satisfactionLabel, riskLabel, urgencyLevel sql.NullString
	var sentiment, concerns, categories, phrases []byte
	var transcriptLength int
	var hasChat bool
	var analyzedAt, completedAt sql.NullTime

	err := row.Scan(
		&ins.ID,
		&ins.MeetingID,
		&ins.RequestID,
		&ins.Status,
		&satisfactionScore,
		&satisfactionLabel,
		&riskScore,
		&riskLabel,
		&urgencyLevel,
		&sentiment,
		&concerns,
		&categories,
		&phrases,
		&transcriptLength,
		&hasChat,
		&analyzedAt,
		&ins.Error,
		&ins.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Insight{}, err
	}

	if satisfactionLabel.Valid {
		ins.SatisfactionLabel = satisfactionLabel.String
	}
	if riskLabel.Valid {
		ins.RiskLabel = riskLabel.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		ins.CompletedAt = &t
	}

	if ins.Status == StatusCompleted && satisfactionScore.Valid {
		result := analyzer.Result{
			SatisfactionScore: satisfactionScore.Float64,
			RiskScore:         riskScore.Float64,
			UrgencyLevel:      urgencyLevel.String,
			TranscriptLength:  transcriptLength,
			HasChat:           hasChat,
		}
		if analyzedAt.Valid {
			result.AnalyzedAt = analyzedAt.Time
		}
		if len(sentiment) > 0 {
			if err := json.Unmarshal(sentiment, &result.Sentiment); err != nil {
				return Insight{}, fmt.Errorf("unmarshal sentiment: %w", err)
			}
		}
		if len(concerns) > 0 {
			if err := json.Unmarshal(concerns, &result.Concerns); err != nil {
				return Insight{}, fmt.Errorf("unmarshal concerns: %w", err)
			}
		}
		if len(categories) > 0 {
			if err := json.Unmarshal(categories, &result.ConcernCategories); err != nil {
				return Insight{}, fmt.Errorf("unmarshal concern categories: %w", err)
			}
		}
		if len(phrases) > 0 {
			if err := json.Unmarshal(phrases, &result.KeyPhrases); err != nil {
				return Insight{}, fmt.Errorf("unmarshal key phrases: %w", err)
			}
		}
		ins.Result = &result
	}

	return ins, nil
}

var _ Repo = (*PGRepo)(nil)
