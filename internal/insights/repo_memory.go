package insights

import (
	"context"
	"sort"
	"sync"
	"time"

	"pulse-backend/internal/analyzer"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Insight
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Insight),
	}
}

// Create stores an insight.
func (r *MemoryRepo) Create(ctx context.Context, ins Insight) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[ins.ID] = ins
	return nil
}

// GetByID returns an insight by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, insightID string) (Insight, error) {
	if err := ctx.Err(); err != nil {
		return Insight{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ins, ok := r.data[insightID]
	if !ok {
		return Insight{}, ErrNotFound
	}
	return ins, nil
}

// ListByMeeting returns insights for a meeting, newest first.
func (r *MemoryRepo) ListByMeeting(ctx context.Context, meetingID string, limit, offset int) ([]Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	var all []Insight
	for _, ins := range r.data {
		if ins.MeetingID == meetingID {
			all = append(all, ins)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Insight{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// MarkProcessing transitions an insight to processing.
func (r *MemoryRepo) MarkProcessing(ctx context.Context, insightID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ins, ok := r.data[insightID]
	if !ok {
		return ErrNotFound
	}
	ins.Status = StatusProcessing
	r.data[insightID] = ins
	return nil
}

// Complete stores the analysis result and marks the insight completed.
func (r *MemoryRepo) Complete(ctx context.Context, insightID string, result analyzer.Result, satisfactionLabel, riskLabel string, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ins, ok := r.data[insightID]
	if !ok {
		return ErrNotFound
	}
	ins.Status = StatusCompleted
	ins.Result = &result
	ins.SatisfactionLabel = satisfactionLabel
	ins.RiskLabel = riskLabel
	ins.CompletedAt = &completedAt
	r.data[insightID] = ins
	return nil
}

// Fail marks the insight failed with an error message.
func (r *MemoryRepo) Fail(ctx context.Context, insightID string, errMsg string, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ins, ok := r.data[insightID]
	if !ok {
		return ErrNotFound
	}
	ins.Status = StatusFailed
	ins.Error = errMsg
	ins.CompletedAt = &completedAt
	r.data[insightID] = ins
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
