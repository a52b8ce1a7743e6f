package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mock-interview-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadCV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload-cv", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "resume.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(data))

		_ = json.NewEncoder(w).Encode(domain.UploadCVResponse{FileName: "resume.pdf", ParsedContent: "CV File: resume.pdf"})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", &Options{Token: "tok"})
	res, err := c.UploadCV(context.Background(), domain.CVFile{
		Name: "resume.pdf", MIMEType: "application/pdf", Size: 8, Content: []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CV File: resume.pdf", res.ParsedContent)
}

func TestGenerateQuestionsAndStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		switch r.URL.Path {
		case "/generate-questions":
			var req domain.GenerateQuestionsRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Backend engineer", req.JobDescription)
			assert.Equal(t, "cv text", req.CVContent)
			_, _ = w.Write([]byte(`{"questions":[{"id":"1","question":"Q","category":"technical","difficulty":"easy"}],"message":"ok"}`))
		case "/interviews/start":
			var req domain.StartInterviewRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.Questions, 1)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"s1","status":"in-progress"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx := context.Background()

	qs, err := c.GenerateQuestions(ctx, domain.GenerateQuestionsRequest{JobDescription: "Backend engineer", CVContent: "cv text"})
	require.NoError(t, err)
	require.Len(t, qs.Questions, 1)
	assert.Equal(t, domain.CategoryTechnical, qs.Questions[0].Category)

	s, err := c.StartInterview(ctx, domain.StartInterviewRequest{Questions: qs.Questions})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, domain.StatusInProgress, s.Status)
	assert.Empty(t, s.JobTitle)
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		fields  map[string]string
	}{
		{name: "flat error", status: 400, body: `{"error":"Job description is required"}`, message: "Job description is required"},
		{name: "envelope", status: 400, body: `{"success":false,"message":"Please fix the highlighted fields","error":"Please fix the highlighted fields","errors":{"email":"Please enter a valid email address"}}`,
			message: "Please fix the highlighted fields", fields: map[string]string{"email": "Please enter a valid email address"}},
		{name: "message only", status: 409, body: `{"message":"already completed"}`, message: "already completed"},
		{name: "not json", status: 502, body: `<html>bad gateway</html>`, message: "Request failed: Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, nil).GenerateQuestions(context.Background(), domain.GenerateQuestionsRequest{JobDescription: "x"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Error())
			assert.Equal(t, tt.fields, apiErr.Fields)
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/password-strength", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"Password rated","data":{"strength":"medium"}}`))
	}))
	defer srv.Close()

	strength, err := New(srv.URL, nil).PasswordStrength(context.Background(), "abcdef")
	require.NoError(t, err)
	assert.Equal(t, "medium", strength)
}

func TestExportTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/interviews/abc/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Disposition", "attachment; filename=interview_abc_20240501_093000.csv")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("#,QUESTION\n"))
	}))
	defer srv.Close()

	data, name, err := New(srv.URL, nil).ExportTranscript(context.Background(), "abc", domain.ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "interview_abc_20240501_093000.csv", name)
	assert.Equal(t, "#,QUESTION\n", string(data))

	t.Run("Should decode error bodies", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"Interview session not found","error":"Interview session not found"}`))
		}))
		defer srv.Close()

		_, _, err := New(srv.URL, nil).ExportTranscript(context.Background(), "nope", "")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Interview session not found", apiErr.Message)
	})
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("", nil).baseURL)
}

func TestDefaultHTTPClientHasNoTimeout(t *testing.T) {
	c := New("", nil)
	assert.Zero(t, c.httpClient.Timeout, "deadlines come from the caller's context")

	custom := &http.Client{}
	assert.Same(t, custom, New("", &Options{HTTPClient: custom}).httpClient)
}

func TestRecordResponseAndComplete(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/interviews/s 1/responses" {
			var body domain.InterviewResponse
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "q1", body.QuestionID)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(domain.InterviewSession{ID: "s 1", Responses: []domain.InterviewResponse{body}})
			return
		}
		_ = json.NewEncoder(w).Encode(domain.InterviewSession{ID: "s 1", Status: domain.StatusCompleted})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx := context.Background()

	s, err := c.RecordResponse(ctx, "s 1", domain.InterviewResponse{QuestionID: "q1", Answer: "A", Duration: 3})
	require.NoError(t, err)
	assert.Len(t, s.Responses, 1)

	s, err = c.CompleteSession(ctx, "s 1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, s.Status)
	assert.Equal(t, []string{"/interviews/s 1/responses", "/interviews/s 1/complete"}, paths)
}
