package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"pulse-backend/internal/shared/telemetry"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	defaultScope   = "https://graph.microsoft.com/.default"

	maxTranscriptBytes = 50 << 20 // 50MB
)

// Client fetches meeting transcripts from Microsoft Graph.
type Client struct {
	http    *http.Client
	baseURL string
}

// New constructs a Graph client authenticated via client credentials.
func New(ctx context.Context, tenantID, clientID, clientSecret string) (*Client, error) {
	if tenantID == "" || clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("graph credentials are required")
	}

	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf(tokenURLFormat, url.PathEscape(tenantID)),
		Scopes:       []string{defaultScope},
	}

	httpClient := cfg.Client(ctx)
	httpClient.Timeout = 60 * time.Second

	return &Client{
		http:    httpClient,
		baseURL: defaultBaseURL,
	}, nil
}

type transcriptListResponse struct {
	Value []transcriptEntry `json:"value"`
}

type transcriptEntry struct {
	ID              string `json:"id"`
	CreatedDateTime string `json:"createdDateTime"`
}

// FetchTranscript downloads the most recent transcript for an online meeting as VTT.
func (c *Client) FetchTranscript(ctx context.Context, onlineMeetingID string) ([]byte, string, error) {
	if onlineMeetingID == "" {
		return nil, "", fmt.Errorf("online meeting id is required")
	}

	listURL := fmt.Sprintf("%s/communications/onlineMeetings/%s/transcripts", c.baseURL, url.PathEscape(onlineMeetingID))
	entries, err := c.listTranscripts(ctx, listURL)
	if err != nil {
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", fmt.Errorf("no transcripts available for meeting %s", onlineMeetingID)
	}

	// Newest first; createdDateTime is RFC 3339 so string order matches time order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedDateTime > entries[j].CreatedDateTime
	})
	latest := entries[0]

	contentURL := fmt.Sprintf("%s/communications/onlineMeetings/%s/transcripts/%s/content?$format=text/vtt",
		c.baseURL, url.PathEscape(onlineMeetingID), url.PathEscape(latest.ID))

	content, contentType, err := c.downloadContent(ctx, contentURL)
	if err != nil {
		return nil, "", err
	}

	telemetry.Info("graph.transcript_fetched", map[string]any{
		"online_meeting_id": onlineMeetingID,
		"transcript_id":     latest.ID,
		"size_bytes":        len(content),
	})
	return content, contentType, nil
}

func (c *Client) listTranscripts(ctx context.Context, listURL string) ([]transcriptEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph list transcripts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, graphStatusError("list transcripts", resp)
	}

	var parsed transcriptListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("graph list transcripts: decode: %w", err)
	}
	return parsed.Value, nil
}

func (c *Client) downloadContent(ctx context.Context, contentURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("graph download transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", graphStatusError("download transcript", resp)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxTranscriptBytes))
	if err != nil {
		return nil, "", fmt.Errorf("graph download transcript: read: %w", err)
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = "text/vtt"
	}
	return content, contentType, nil
}

func graphStatusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("graph %s: status %d: %s", op, resp.StatusCode, msg)
}
