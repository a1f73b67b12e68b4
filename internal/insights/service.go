package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pulse-backend/internal/analyzer"
	"pulse-backend/internal/meetings"
	"pulse-backend/internal/queue"
	"pulse-backend/internal/shared/metrics"
	"pulse-backend/internal/shared/telemetry"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Service contains business logic for insights.
type Service struct {
	Repo     Repo
	Meetings *meetings.Service
	Analyzer *analyzer.Analyzer
	Queue    queue.Client
}

// Create enqueues a new insight for a meeting. When a queue client is
// configured the job is handed to the worker; otherwise it completes
// in-process.
func (s *Service) Create(ctx context.Context, meetingID string) (Insight, error) {
	if meetingID == "" {
		return Insight{}, errors.New("meetingID is required")
	}

	if _, err := s.Meetings.Get(ctx, meetingID); err != nil {
		return Insight{}, err
	}

	requestID := requestIDFromContext(ctx)
	ins := Insight{
		ID:        uuid.NewString(),
		MeetingID: meetingID,
		RequestID: requestID,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, ins); err != nil {
		return Insight{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			InsightID:  ins.ID,
			RequestID:  requestID,
			EnqueuedAt: ins.CreatedAt.Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			s.fail(ctx, ins.ID, meetingID, fmt.Errorf("enqueue insight: %w", err), nil)
			return Insight{}, err
		}
		return ins, nil
	}

	go s.completeAsync(backgroundWithRequestID(ctx), ins.ID)
	return ins, nil
}

// Get returns an insight by ID.
func (s *Service) Get(ctx context.Context, insightID string) (Insight, error) {
	if insightID == "" {
		return Insight{}, errors.New("insightID is required")
	}
	return s.Repo.GetByID(ctx, insightID)
}

// ListByMeeting returns insights for a meeting ordered newest-first.
func (s *Service) ListByMeeting(ctx context.Context, meetingID string, limit, offset int) ([]Insight, error) {
	if meetingID == "" {
		return nil, errors.New("meetingID is required")
	}
	return s.Repo.ListByMeeting(ctx, meetingID, limit, offset)
}

// Process runs the analysis pipeline for a queued insight. It is invoked
// by the worker for queued jobs and by completeAsync for in-process ones.
func (s *Service) Process(ctx context.Context, insightID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.MarkProcessing(ctx, insightID); err != nil {
		s.fail(ctx, insightID, "", fmt.Errorf("set processing failed: %w", err), &startedAt)
		return err
	}

	ins, err := s.Repo.GetByID(ctx, insightID)
	if err != nil {
		s.fail(ctx, insightID, "", fmt.Errorf("insight lookup: %w", err), &startedAt)
		return err
	}
	metrics.IncInsightStarted()
	telemetry.Info("insight.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"meeting_id":        ins.MeetingID,
		"insight_id":        ins.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	meeting, err := s.Meetings.Get(ctx, ins.MeetingID)
	if err != nil {
		s.fail(ctx, insightID, ins.MeetingID, fmt.Errorf("meeting lookup id=%s: %w", ins.MeetingID, err), &startedAt)
		return err
	}

	transcript, err := s.Meetings.TranscriptText(ctx, meeting)
	if err != nil {
		s.fail(ctx, insightID, ins.MeetingID, fmt.Errorf("extract transcript: %w", err), &startedAt)
		return err
	}
	chat, err := s.Meetings.ChatText(ctx, meeting)
	if err != nil {
		s.fail(ctx, insightID, ins.MeetingID, fmt.Errorf("extract chat: %w", err), &startedAt)
		return err
	}

	result := s.Analyzer.Analyze(transcript, chat)
	satisfactionLabel := analyzer.SatisfactionLabel(result.SatisfactionScore)
	riskLabel := analyzer.RiskLabel(result.RiskScore)

	completedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, insightID, result, satisfactionLabel, riskLabel, completedAt); err != nil {
		s.fail(ctx, insightID, ins.MeetingID, fmt.Errorf("set insight result failed: %w", err), &startedAt)
		return err
	}
	metrics.IncInsightCompleted()
	metrics.ObserveInsightDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("insight.status", map[string]any{
		"request_id":         requestIDFromContext(ctx),
		"meeting_id":         ins.MeetingID,
		"insight_id":         ins.ID,
		"status":             StatusCompleted,
		"status_transition":  "processing->completed",
		"duration_ms":        durationMs(&startedAt, &completedAt),
		"satisfaction_score": result.SatisfactionScore,
		"risk_score":         result.RiskScore,
		"urgency_level":      result.UrgencyLevel,
	})
	return nil
}

func (s *Service) completeAsync(ctx context.Context, insightID string) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, insightID, "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.Process(ctx, insightID)
}

func (s *Service) fail(ctx context.Context, insightID, meetingID string, err error, startedAt *time.Time) {
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.Fail(context.Background(), insightID, msg, completedAt); updateErr != nil {
		telemetry.Error("insight.fail_update", map[string]any{
			"insight_id": insightID,
			"error":      updateErr.Error(),
			"orig_error": msg,
		})
	}
	metrics.IncInsightFailed()
	if startedAt != nil {
		metrics.ObserveInsightDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("insight.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"meeting_id":        meetingID,
		"insight_id":        insightID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error":             msg,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
