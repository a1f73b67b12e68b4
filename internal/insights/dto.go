package insights

import (
	"time"

	"pulse-backend/internal/analyzer"
)

// InsightResponse is the outward-facing representation of an insight.
type InsightResponse struct {
	InsightID         string           `json:"insightId"`
	MeetingID         string           `json:"meetingId"`
	Status            string           `json:"status"`
	Result            *analyzer.Result `json:"result,omitempty"`
	SatisfactionLabel string           `json:"satisfactionLabel,omitempty"`
	RiskLabel         string           `json:"riskLabel,omitempty"`
	Error             string           `json:"error,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	CompletedAt       *time.Time       `json:"completedAt,omitempty"`
}

func toResponse(ins Insight) InsightResponse {
	resp := InsightResponse{
		InsightID:   ins.ID,
		MeetingID:   ins.MeetingID,
		Status:      ins.Status,
		CreatedAt:   ins.CreatedAt,
		CompletedAt: ins.CompletedAt,
	}
	if ins.Status == StatusCompleted {
		resp.Result = ins.Result
		resp.SatisfactionLabel = ins.SatisfactionLabel
		resp.RiskLabel = ins.RiskLabel
	}
	if ins.Status == StatusFailed {
		resp.Error = ins.Error
	}
	return resp
}
