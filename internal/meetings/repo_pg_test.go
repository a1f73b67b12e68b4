package meetings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateDefaultsSource(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	m := Meeting{
		ID:               "meeting-1",
		Title:            "Quarterly review",
		Organizer:        "alex@example.com",
		TranscriptKey:    "transcripts/abc/review.vtt",
		TranscriptFormat: "vtt",
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO meetings").
		WithArgs(
			m.ID,
			m.Title,
			m.Organizer,
			SourceUpload, // empty source falls back to upload
			m.TranscriptKey,
			m.TranscriptFormat,
			"",
			nil, // started_at
			nil, // ended_at
			m.CreatedAt,
			m.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSetChatNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE meetings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetChat(context.Background(), "missing", "chats/key"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
