package meetings

import "context"

// MeetingsRepo defines persistence operations for meetings.
type MeetingsRepo interface {
	Create(ctx context.Context, m Meeting) error
	GetByID(ctx context.Context, meetingID string) (Meeting, error)
	List(ctx context.Context, limit, offset int) ([]Meeting, error)
	SetChat(ctx context.Context, meetingID, chatKey string) error
}
