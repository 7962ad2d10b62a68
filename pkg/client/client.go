// Package client provides a typed Go HTTP client for the cadence API.
//
// The client mirrors the server's endpoint structure: public intake
// operations (submission creation, upload placeholders, FAQ listing) work
// without authentication, while the review operations require a team account
// and carry the bearer token obtained from Login automatically.
//
// Request and response types live here rather than in the server package so
// both sides of the API boundary share one definition. Errors from non-2xx
// responses are returned as [*APIError] carrying the status code and body.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cadencehq/cadence/pkg/models"
)

// Client provides strongly-typed access to the cadence REST API.
//
// Client instances are safe for concurrent use by multiple goroutines once
// authenticated; SetAuthToken and Login are not synchronized with in-flight
// requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// APIError is returned for responses with a 4xx or 5xx status code.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status=%d, body=%s", e.StatusCode, e.Body)
}

// NewClient creates a new cadence API client.
//
// The baseURL should include the protocol and host (e.g.
// "http://localhost:8080") without a trailing slash or API path prefix.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAuthToken sets the authentication token for the client
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// AuthToken returns the current bearer token, if any.
func (c *Client) AuthToken() string {
	return c.authToken
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request with proper headers
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into the target struct
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks the health status of the server
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// Submissions

// ListOptions narrow and shape the team submission listing. Zero values mean
// "no filter", default sort (date, descending), and no pagination.
type ListOptions struct {
	Status   string // all, pending, approved, declined
	Search   string // case-insensitive match on artist name or release title
	SortKey  string // date or status
	Order    string // asc or desc
	Page     int    // 1-indexed; 0 disables pagination
	PageSize int
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Search != "" {
		q.Set("q", o.Search)
	}
	if o.SortKey != "" {
		q.Set("sort", o.SortKey)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(o.PageSize))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// CreateSubmission submits a new release draft through the public intake
// endpoint. No authentication is required.
func (c *Client) CreateSubmission(ctx context.Context, draft *models.SubmissionDraft) (*models.Submission, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/submissions", draft)
	if err != nil {
		return nil, err
	}

	var result models.Submission
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListSubmissions retrieves submissions visible to the review console.
// Requires a team account.
func (c *Client) ListSubmissions(ctx context.Context, opts ListOptions) ([]*models.Submission, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/submissions"+opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Submission
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// GetSubmission retrieves a single submission by ID. Requires a team account.
func (c *Client) GetSubmission(ctx context.Context, id int64) (*models.Submission, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/submissions/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Submission
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// StatusUpdateRequest is the PATCH body for a review decision.
type StatusUpdateRequest struct {
	Status models.SubmissionStatus `json:"status"`
}

// SetSubmissionStatus applies a review decision (approved or declined).
func (c *Client) SetSubmissionStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.Submission, error) {
	req := StatusUpdateRequest{Status: status}
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/submissions/%d", id), req)
	if err != nil {
		return nil, err
	}

	var result models.Submission
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Approve marks a pending submission approved.
func (c *Client) Approve(ctx context.Context, id int64) (*models.Submission, error) {
	return c.SetSubmissionStatus(ctx, id, models.StatusApproved)
}

// Decline marks a pending submission declined.
func (c *Client) Decline(ctx context.Context, id int64) (*models.Submission, error) {
	return c.SetSubmissionStatus(ctx, id, models.StatusDeclined)
}

// DeleteArtwork removes a submission's artwork attachment.
func (c *Client) DeleteArtwork(ctx context.Context, id int64) (*models.Submission, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/submissions/%d/artwork", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Submission
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteTrack removes the track at the given index from a submission.
// Indices of later tracks shift down by one; do not cache them across calls.
func (c *Client) DeleteTrack(ctx context.Context, id int64, index int) (*models.Submission, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/submissions/%d/tracks/%d", id, index), nil)
	if err != nil {
		return nil, err
	}

	var result models.Submission
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DownloadResponse carries the resolvable URL for a stored attachment.
type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// DownloadTrack resolves the download URL for a track's audio file.
func (c *Client) DownloadTrack(ctx context.Context, id int64, index int) (*DownloadResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/submissions/%d/tracks/%d/download", id, index), nil)
	if err != nil {
		return nil, err
	}

	var result DownloadResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DownloadArtwork resolves the download URL for a submission's artwork.
func (c *Client) DownloadArtwork(ctx context.Context, id int64) (*DownloadResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/submissions/%d/artwork/download", id), nil)
	if err != nil {
		return nil, err
	}

	var result DownloadResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Uploads

// UploadResponse carries the placeholder URL assigned to an uploaded file.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadArtwork requests an artwork placeholder URL for the two-phase intake
// flow: upload first, then embed the returned URL in the submission draft.
func (c *Client) UploadArtwork(ctx context.Context) (*UploadResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/upload/artwork", nil)
	if err != nil {
		return nil, err
	}

	var result UploadResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UploadAudio requests an audio placeholder URL.
func (c *Client) UploadAudio(ctx context.Context) (*UploadResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/upload/audio", nil)
	if err != nil {
		return nil, err
	}

	var result UploadResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// FAQs

// ListFAQs retrieves the public FAQ list in display order.
func (c *Client) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/faqs", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.FAQ
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateFAQ adds a FAQ entry. Requires a team account.
func (c *Client) CreateFAQ(ctx context.Context, faq *models.FAQ) (*models.FAQ, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/faqs", faq)
	if err != nil {
		return nil, err
	}

	var result models.FAQ
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateFAQ replaces a FAQ entry. Requires a team account.
func (c *Client) UpdateFAQ(ctx context.Context, faq *models.FAQ) (*models.FAQ, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/faqs/%d", faq.ID), faq)
	if err != nil {
		return nil, err
	}

	var result models.FAQ
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteFAQ removes a FAQ entry. Requires a team account.
func (c *Client) DeleteFAQ(ctx context.Context, id int64) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/faqs/%d", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}
