package insights

import (
	"context"
	"time"

	"pulse-backend/internal/analyzer"
)

// Repo defines persistence operations for insights.
type Repo interface {
	Create(ctx context.Context, ins Insight) error
	GetByID(ctx context.Context, insightID string) (Insight, error)
	ListByMeeting(ctx context.Context, meetingID string, limit, offset int) ([]Insight, error)
	MarkProcessing(ctx context.Context, insightID string) error
	Complete(ctx context.Context, insightID string, result analyzer.Result, satisfactionLabel, riskLabel string, completedAt time.Time) error
	Fail(ctx context.Context, insightID string, errMsg string, completedAt time.Time) error
}
