package meetings

import "time"

// MeetingResponse is the outward-facing representation of a meeting.
type MeetingResponse struct {
	MeetingID        string     `json:"meetingId"`
	Title            string     `json:"title"`
	Organizer        string     `json:"organizer"`
	Source           string     `json:"source"`
	TranscriptFormat string     `json:"transcriptFormat"`
	HasChat          bool       `json:"hasChat"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	EndedAt          *time.Time `json:"endedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func toResponse(m Meeting) MeetingResponse {
	return MeetingResponse{
		MeetingID:        m.ID,
		Title:            m.Title,
		Organizer:        m.Organizer,
		Source:           m.Source,
		TranscriptFormat: m.TranscriptFormat,
		HasChat:          m.ChatKey != "",
		StartedAt:        m.StartedAt,
		EndedAt:          m.EndedAt,
		CreatedAt:        m.CreatedAt,
	}
}
