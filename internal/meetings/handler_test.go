package meetings_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pulse-backend/internal/bootstrap"
	"pulse-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		SentimentMode:   "keyword",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func uploadMeeting(t *testing.T, router *gin.Engine, fileName, content string) string {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.WriteField("title", "Weekly sync"); err != nil {
		t.Fatalf("write title field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		MeetingID        string `json:"meetingId"`
		TranscriptFormat string `json:"transcriptFormat"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.MeetingID == "" {
		t.Fatalf("expected meetingId, got empty")
	}
	return created.MeetingID
}

func TestMeetingsUploadAndGet(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	transcript := "WEBVTT\n\n00:00:01.000 --> 00:00:04.000\n<v Alice>the rollout went great</v>\n"
	meetingID := uploadMeeting(t, router, "sync.vtt", transcript)

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/meetings/"+meetingID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}

	var fetched struct {
		MeetingID        string `json:"meetingId"`
		Title            string `json:"title"`
		TranscriptFormat string `json:"transcriptFormat"`
		HasChat          bool   `json:"hasChat"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Title != "Weekly sync" {
		t.Fatalf("expected title Weekly sync, got %s", fetched.Title)
	}
	if fetched.TranscriptFormat != "vtt" {
		t.Fatalf("expected transcriptFormat vtt, got %s", fetched.TranscriptFormat)
	}
	if fetched.HasChat {
		t.Fatalf("expected hasChat false before attaching a chat")
	}
}

func TestMeetingsUploadMissingFile(t *testing.T) {
	app := newTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("title", "No file"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestMeetingsGetNotFound(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meetings/does-not-exist", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestMeetingsAttachChat(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	meetingID := uploadMeeting(t, router, "sync.txt", "a plain transcript about the release")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "chat.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("carol: shipping today")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings/"+meetingID+"/chat", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated struct {
		HasChat bool `json:"hasChat"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !updated.HasChat {
		t.Fatalf("expected hasChat true after attach")
	}
}

func TestMeetingsList(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	uploadMeeting(t, router, "first.txt", "first transcript")
	uploadMeeting(t, router, "second.txt", "second transcript")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meetings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 meetings, got %d", len(items))
	}
}
