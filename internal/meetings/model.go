package meetings

import "time"

// Source values for how a meeting's transcript entered the system.
const (
	SourceUpload = "upload"
	SourceGraph  = "graph"
)

// Meeting represents a recorded meeting whose transcript is stored for analysis.
type Meeting struct {
	ID               string
	Title            string
	Organizer        string
	Source           string
	TranscriptKey    string
	TranscriptFormat string
	ChatKey          string
	StartedAt        *time.Time
	EndedAt          *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
