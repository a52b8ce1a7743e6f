// Package apiclient talks to the interview API on behalf of the workflow.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"mock-interview-backend/internal/domain"
)

// DefaultBaseURL serves the same-origin /api group of the local server.
const DefaultBaseURL = "http://localhost:8080/api"

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

// Options configures the client.
type Options struct {
	HTTPClient *http.Client
	// Token is sent as a bearer token when set
	Token string
}

// Client implements workflow.Backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string, opts *Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	if opts != nil {
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		c.token = opts.Token
	}
	return c
}

// UploadCV posts the file as multipart field "file".
func (c *Client) UploadCV(ctx context.Context, file domain.CVFile) (*domain.UploadCVResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	if file.MIMEType != "" {
		header.Set("Content-Type", file.MIMEType)
	}
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var out domain.UploadCVResponse
	if err := c.do(ctx, "/upload-cv", mw.FormDataContentType(), &body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateQuestions(ctx context.Context, req domain.GenerateQuestionsRequest) (*domain.GenerateQuestionsResponse, error) {
	var out domain.GenerateQuestionsResponse
	if err := c.postJSON(ctx, "/generate-questions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StartInterview(ctx context.Context, req domain.StartInterviewRequest) (*domain.StartInterviewResponse, error) {
	var out domain.StartInterviewResponse
	if err := c.postJSON(ctx, "/interviews/start", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordResponse stores one answer on a server-side session.
func (c *Client) RecordResponse(ctx context.Context, sessionID string, resp domain.InterviewResponse) (*domain.InterviewSession, error) {
	var out domain.InterviewSession
	if err := c.postJSON(ctx, "/interviews/"+url.PathEscape(sessionID)+"/responses", resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteSession closes a server-side session.
func (c *Client) CompleteSession(ctx context.Context, sessionID string) (*domain.InterviewSession, error) {
	var out domain.InterviewSession
	if err := c.postJSON(ctx, "/interviews/"+url.PathEscape(sessionID)+"/complete", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PasswordStrength asks the server to rate a password.
func (c *Client) PasswordStrength(ctx context.Context, password string) (string, error) {
	var out struct {
		Data struct {
			Strength string `json:"strength"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "/auth/password-strength", map[string]string{"password": password}, &out); err != nil {
		return "", err
	}
	return out.Data.Strength, nil
}

// ExportTranscript downloads a session transcript. The returned name is the one
// the server suggested in Content-Disposition.
func (c *Client) ExportTranscript(ctx context.Context, sessionID string, format domain.ExportFormat) ([]byte, string, error) {
	path := "/interviews/" + url.PathEscape(sessionID) + "/export"
	if format != "" {
		path += "?format=" + url.QueryEscape(string(format))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", decodeError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read %s response: %w", path, err)
	}

	var filename string
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return data, filename, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, path, "application/json", bytes.NewReader(payload), out)
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// decodeError reads {error} from the mock endpoints or {message, errors} from
// the envelope, falling back to the status text.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Error   json.RawMessage   `json:"error"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		var msg string
		if json.Unmarshal(payload.Error, &msg) == nil && msg != "" {
			apiErr.Message = msg
		} else if payload.Message != "" {
			apiErr.Message = payload.Message
		}
		apiErr.Fields = payload.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("Request failed: %s", http.StatusText(resp.StatusCode))
	}
	return apiErr
}
