package meetings

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of MeetingsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Meeting
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Meeting),
	}
}

// Create stores a meeting.
func (r *MemoryRepo) Create(ctx context.Context, m Meeting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[m.ID] = m
	return nil
}

// GetByID returns a meeting by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, meetingID string) (Meeting, error) {
	if err := ctx.Err(); err != nil {
		return Meeting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.data[meetingID]
	if !ok {
		return Meeting{}, ErrNotFound
	}
	return m, nil
}

// List returns meetings newest-first, honoring limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Meeting, error) {
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
	all := make([]Meeting, 0, len(r.data))
	for _, m := range r.data {
		all = append(all, m)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Meeting{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// SetChat records the chat storage key for a meeting.
func (r *MemoryRepo) SetChat(ctx context.Context, meetingID, chatKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.data[meetingID]
	if !ok {
		return ErrNotFound
	}
	m.ChatKey = chatKey
	m.UpdatedAt = time.Now().UTC()
	r.data[meetingID] = m
	return nil
}

var _ MeetingsRepo = (*MemoryRepo)(nil)
