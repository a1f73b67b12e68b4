package insights

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"pulse-backend/internal/analyzer"
)

func TestPGRepoCreateInsertsQueuedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	ins := Insight{
		ID:        "insight-1",
		MeetingID: "meeting-1",
		RequestID: "req-1",
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO insights").
		WithArgs(
			ins.ID,
			ins.MeetingID,
			ins.RequestID,
			ins.Status,
			ins.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), ins); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCompleteWritesResultColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	result := analyzer.Result{
		SatisfactionScore: 35.5,
		Sentiment:         analyzer.Sentiment{Polarity: -0.4, Subjectivity: 0.6},
		Concerns:          []analyzer.Concern{},
		ConcernCategories: map[string]int{"technical": 2},
		KeyPhrases:        []string{"the deploy keeps failing"},
		UrgencyLevel:      analyzer.UrgencyHigh,
		RiskScore:         96.75,
		AnalyzedAt:        time.Now().UTC(),
		TranscriptLength:  1200,
		HasChat:           true,
	}
	completedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE insights").
		WithArgs(
			StatusCompleted,
			result.SatisfactionScore,
			"Poor",
			result.RiskScore,
			"High Risk",
			result.UrgencyLevel,
			sqlmock.AnyArg(), // sentiment
			sqlmock.AnyArg(), // concerns
			sqlmock.AnyArg(), // concern_categories
			sqlmock.AnyArg(), // key_phrases
			result.TranscriptLength,
			result.HasChat,
			result.AnalyzedAt,
			completedAt,
			"insight-2",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Complete(context.Background(), "insight-2", result, "Poor", "High Risk", completedAt); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE insights").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Fail(context.Background(), "missing", "boom", time.Now().UTC()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
