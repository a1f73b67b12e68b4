package insights

import (
	"time"

	"pulse-backend/internal/analyzer"
)

// Insight represents a transcript analysis job for a meeting.
type Insight struct {
	ID                string
	MeetingID         string
	RequestID         string
	Status            string
	Result            *analyzer.Result
	SatisfactionLabel string
	RiskLabel         string
	Error             string
	CreatedAt         time.Time
	CompletedAt       *time.Time
}
