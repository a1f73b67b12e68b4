package meetings

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"pulse-backend/internal/extract"
	"pulse-backend/internal/shared/metrics"
	"pulse-backend/internal/shared/storage/object"
	"pulse-backend/internal/shared/telemetry"
)

// TranscriptFetcher pulls a meeting transcript from a remote source.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, onlineMeetingID string) (content []byte, contentType string, err error)
}

// Service contains business logic for meetings.
type Service struct {
	Store   object.ObjectStore
	Repo    MeetingsRepo
	Fetcher TranscriptFetcher
}

// Upload saves the transcript to object storage and records the meeting.
func (s *Service) Upload(ctx context.Context, title, organizer, fileName string, r io.Reader) (Meeting, error) {
	if fileName == "" {
		return Meeting{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, "transcripts", fileName, r)
	if err != nil {
		return Meeting{}, err
	}

	format, err := extract.DetectFormat(mimeType, fileName)
	if err != nil {
		return Meeting{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	m := Meeting{
		ID:               uuid.NewString(),
		Title:            title,
		Organizer:        organizer,
		Source:           SourceUpload,
		TranscriptKey:    storageKey,
		TranscriptFormat: format,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repo.Create(ctx, m); err != nil {
		return Meeting{}, err
	}

	telemetry.Info("meeting.created", map[string]any{
		"meeting_id": m.ID,
		"source":     m.Source,
		"format":     format,
		"size_bytes": size,
	})
	return m, nil
}

// AttachChat saves a chat export next to the transcript.
func (s *Service) AttachChat(ctx context.Context, meetingID, fileName string, r io.Reader) (Meeting, error) {
	if meetingID == "" {
		return Meeting{}, fmt.Errorf("%w: meeting id required", ErrInvalidInput)
	}
	if _, err := s.Repo.GetByID(ctx, meetingID); err != nil {
		return Meeting{}, err
	}

	chatKey, _, _, err := s.Store.Save(ctx, "chats", fileName, r)
	if err != nil {
		return Meeting{}, err
	}
	if err := s.Repo.SetChat(ctx, meetingID, chatKey); err != nil {
		return Meeting{}, err
	}
	return s.Repo.GetByID(ctx, meetingID)
}

// ImportFromGraph fetches a transcript from the remote meeting provider and records it.
func (s *Service) ImportFromGraph(ctx context.Context, onlineMeetingID, title, organizer string) (Meeting, error) {
	if s.Fetcher == nil {
		return Meeting{}, fmt.Errorf("transcript fetcher not configured")
	}
	if onlineMeetingID == "" {
		return Meeting{}, fmt.Errorf("%w: online meeting id required", ErrInvalidInput)
	}

	content, contentType, err := s.Fetcher.FetchTranscript(ctx, onlineMeetingID)
	if err != nil {
		return Meeting{}, fmt.Errorf("fetch transcript: %w", err)
	}
	metrics.IncTranscriptFetch()

	fileName := onlineMeetingID + ".vtt"
	storageKey, _, mimeType, err := s.Store.Save(ctx, "transcripts", fileName, bytes.NewReader(content))
	if err != nil {
		return Meeting{}, err
	}

	format, err := extract.DetectFormat(contentType, fileName)
	if err != nil {
		// Graph serves transcripts as VTT; fall back when it reports a generic type.
		format, err = extract.DetectFormat(mimeType, fileName)
		if err != nil {
			return Meeting{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	now := time.Now().UTC()
	m := Meeting{
		ID:               uuid.NewString(),
		Title:            title,
		Organizer:        organizer,
		Source:           SourceGraph,
		TranscriptKey:    storageKey,
		TranscriptFormat: format,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repo.Create(ctx, m); err != nil {
		return Meeting{}, err
	}

	telemetry.Info("meeting.created", map[string]any{
		"meeting_id": m.ID,
		"source":     m.Source,
		"format":     format,
	})
	return m, nil
}

// Get returns a meeting by ID.
func (s *Service) Get(ctx context.Context, meetingID string) (Meeting, error) {
	if meetingID == "" {
		return Meeting{}, fmt.Errorf("%w: meeting id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, meetingID)
}

// List returns meetings newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Meeting, error) {
	return s.Repo.List(ctx, limit, offset)
}

// TranscriptText loads and extracts the transcript text for a meeting.
func (s *Service) TranscriptText(ctx context.Context, m Meeting) (string, error) {
	return extract.Text(ctx, s.Store, m.TranscriptKey, m.TranscriptFormat)
}

// ChatText loads the chat export for a meeting, if any.
func (s *Service) ChatText(ctx context.Context, m Meeting) (string, error) {
	if m.ChatKey == "" {
		return "", nil
	}
	return extract.Text(ctx, s.Store, m.ChatKey, extract.FormatTXT)
}
