package workerproc

import (
	"context"
	"errors"
	"testing"

	"pulse-backend/internal/bootstrap"
	"pulse-backend/internal/queue"
)

func TestParseMessageEmptyBody(t *testing.T) {
	_, meta, err := ParseMessage("   ")
	var emptyErr ErrEmptyBody
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
	if meta.BodyLen != 3 {
		t.Fatalf("expected body len 3, got %d", meta.BodyLen)
	}
}

func TestParseMessageInvalidJSON(t *testing.T) {
	_, meta, err := ParseMessage("{bad-json")
	var decodeErr ErrDecode
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if meta.BodySHA == "" {
		t.Fatalf("expected body hash for diagnostics")
	}
}

func TestParseMessageMissingInsightID(t *testing.T) {
	body, err := queue.EncodeMessage(queue.Message{RequestID: "req-9", Version: 1})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	_, _, err = ParseMessage(string(body))
	var missingErr ErrMissingInsightID
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected ErrMissingInsightID, got %v", err)
	}
	if missingErr.RequestID != "req-9" {
		t.Fatalf("expected request id req-9, got %s", missingErr.RequestID)
	}
}

func TestParseMessageValid(t *testing.T) {
	body, err := queue.EncodeMessage(queue.Message{InsightID: "insight-1", RequestID: "req-1", Version: 1})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	msg, _, err := ParseMessage(string(body))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.InsightID != "insight-1" {
		t.Fatalf("expected insight-1, got %s", msg.InsightID)
	}
}

type recordingProcessor struct {
	processed []string
	err       error
}

func (p *recordingProcessor) Process(ctx context.Context, insightID string) error {
	_ = ctx
	p.processed = append(p.processed, insightID)
	return p.err
}

func TestHandleMessageProcessesInsight(t *testing.T) {
	proc := &recordingProcessor{}
	app := &bootstrap.App{InsightProcessor: proc}

	body, err := queue.EncodeMessage(queue.Message{InsightID: "insight-2", RequestID: "req-2", Version: 1})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	if err := HandleMessage(context.Background(), app, string(body)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(proc.processed) != 1 || proc.processed[0] != "insight-2" {
		t.Fatalf("expected insight-2 processed, got %v", proc.processed)
	}
}

func TestHandleMessageWrapsProcessError(t *testing.T) {
	proc := &recordingProcessor{err: errors.New("boom")}
	app := &bootstrap.App{InsightProcessor: proc}

	body, err := queue.EncodeMessage(queue.Message{InsightID: "insight-3", RequestID: "req-3", Version: 1})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	err = HandleMessage(context.Background(), app, string(body))
	var procErr ErrProcess
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if procErr.InsightID != "insight-3" || procErr.RequestID != "req-3" {
		t.Fatalf("unexpected error fields: %+v", procErr)
	}
}

func TestHandleMessageUsesParsedContext(t *testing.T) {
	proc := &recordingProcessor{}
	app := &bootstrap.App{InsightProcessor: proc}

	ctx := WithParsedMessage(context.Background(), queue.Message{InsightID: "insight-4", RequestID: "req-4"})
	if err := HandleMessage(ctx, app, "ignored"); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(proc.processed) != 1 || proc.processed[0] != "insight-4" {
		t.Fatalf("expected insight-4 processed, got %v", proc.processed)
	}
}

func TestHandleMessageNilApp(t *testing.T) {
	if err := HandleMessage(context.Background(), nil, "{}"); err == nil {
		t.Fatalf("expected error for missing app")
	}
}
