package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resume-matcher/internal/analyses"
)

// DefaultTimeout bounds a single API call. Analysis runs synchronously, so it is generous.
const DefaultTimeout = 2 * time.Minute

const genericFailure = "Failed to analyze resume"

// APIError is a non-2xx response. Message is the server's error text, unmodified.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the analyses API.
type Client struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api/v1.
	BaseURL string
	// UIBaseURL is the web app root used for detail links. Empty falls back to BaseURL.
	UIBaseURL string
	Token     string
	GuestID   string
	HTTP      *http.Client
}

// New constructs a Client with a default HTTP client.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// LoggedIn reports whether the client carries an identity.
func (c *Client) LoggedIn() bool {
	return c.Token != "" || c.GuestID != ""
}

type submitBody struct {
	JobTitle           string `json:"jobTitle"`
	Company            string `json:"company"`
	JobDescription     string `json:"jobDescription"`
	ResumeText         string `json:"resumeText,omitempty"`
	ResumeBinaryBase64 string `json:"resumeBinaryBase64,omitempty"`
	ResumeMimeType     string `json:"resumeMimeType,omitempty"`
}

// Submit validates the form and posts it. The form is left untouched so a failed
// submission can be retried as is.
func (c *Client) Submit(ctx context.Context, form *Form) (analyses.Record, error) {
	if err := form.Validate(c.LoggedIn()); err != nil {
		return analyses.Record{}, err
	}

	body := submitBody{
		JobTitle:       strings.TrimSpace(form.JobTitle),
		Company:        strings.TrimSpace(form.Company),
		JobDescription: strings.TrimSpace(form.JobDescription),
	}
	if form.Mode == ModeDocument {
		body.ResumeBinaryBase64 = base64.StdEncoding.EncodeToString(form.Document.Data)
		body.ResumeMimeType = form.Document.MimeType
	} else {
		body.ResumeText = strings.TrimSpace(form.ResumeText)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return analyses.Record{}, fmt.Errorf("encode submission: %w", err)
	}

	var rec analyses.Record
	if err := c.do(ctx, http.MethodPost, "/analyses", bytes.NewReader(payload), &rec); err != nil {
		return analyses.Record{}, err
	}
	return rec, nil
}

// Get fetches one analysis owned by the caller.
func (c *Client) Get(ctx context.Context, analysisID string) (analyses.Record, error) {
	var rec analyses.Record
	if err := c.do(ctx, http.MethodGet, "/analyses/"+url.PathEscape(analysisID), nil, &rec); err != nil {
		return analyses.Record{}, err
	}
	return rec, nil
}

// List fetches the caller's analyses, newest first.
func (c *Client) List(ctx context.Context) ([]analyses.Record, error) {
	var recs []analyses.Record
	if err := c.do(ctx, http.MethodGet, "/analyses", nil, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []analyses.Record{}
	}
	return recs, nil
}

// DetailURL returns the address of the detail view for an analysis.
func (c *Client) DetailURL(analysisID string) string {
	base := strings.TrimRight(c.UIBaseURL, "/")
	if base == "" {
		return strings.TrimRight(c.BaseURL, "/") + "/analyses/" + url.PathEscape(analysisID)
	}
	return base + "/analysis/" + url.PathEscape(analysisID)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	} else if c.GuestID != "" {
		req.Header.Set("X-Guest-Id", c.GuestID)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	apiErr := &APIError{Status: status, Message: genericFailure}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Code = envelope.Code
		if envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
