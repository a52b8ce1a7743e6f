package domain

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrSessionCompleted = errors.New("interview session already completed")
)

type QuestionCategory string

const (
	CategoryTechnical  QuestionCategory = "technical"
	CategoryBehavioral QuestionCategory = "behavioral"
	CategoryExperience QuestionCategory = "experience"
)

func (c QuestionCategory) Valid() bool {
	switch c {
	case CategoryTechnical, CategoryBehavioral, CategoryExperience:
		return true
	}
	return false
}

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

func (d QuestionDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type SessionStatus string

const (
	StatusNotStarted SessionStatus = "not-started"
	StatusInProgress SessionStatus = "in-progress"
	StatusCompleted  SessionStatus = "completed"
)

// CVFile is the raw file the candidate picked before upload.
type CVFile struct {
	Name     string `json:"name"`
	MIMEType string `json:"type"`
	Size     int64  `json:"size"`
	Content  []byte `json:"-"`
}

type CVData struct {
	File          *CVFile `json:"file,omitempty"`
	FileName      string  `json:"fileName"`
	ParsedContent string  `json:"parsedContent,omitempty"` // Filled by the external parser
}

type InterviewQuestion struct {
	ID         string             `json:"id" yaml:"id"`
	Question   string             `json:"question" yaml:"question"`
	Category   QuestionCategory   `json:"category" yaml:"category"`
	Difficulty QuestionDifficulty `json:"difficulty" yaml:"difficulty"`
}

type InterviewResponse struct {
	QuestionID string  `json:"questionId" binding:"required"`
	Answer     string  `json:"answer"`
	Duration   float64 `json:"duration"` // Seconds spent answering
	Audio      []byte  `json:"audio,omitempty"`
}

type InterviewSession struct {
	ID             string              `json:"id"`
	UserID         string              `json:"userId,omitempty"`
	JobTitle       string              `json:"jobTitle"`
	JobDescription string              `json:"jobDescription"`
	Questions      []InterviewQuestion `json:"questions"`
	Responses      []InterviewResponse `json:"responses"`
	StartedAt      *time.Time          `json:"startedAt,omitempty"`
	EndedAt        *time.Time          `json:"endedAt,omitempty"`
	Status         SessionStatus       `json:"status"`
}

// Clone returns a deep copy so callers can never mutate stored state.
func (s *InterviewSession) Clone() *InterviewSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Questions = append([]InterviewQuestion(nil), s.Questions...)
	out.Responses = make([]InterviewResponse, len(s.Responses))
	for i, r := range s.Responses {
		r.Audio = append([]byte(nil), r.Audio...)
		out.Responses[i] = r
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	return &out
}

// Wire contracts shared by the mock endpoints and the workflow client.

type UploadCVResponse struct {
	FileName      string `json:"fileName"`
	ParsedContent string `json:"parsedContent"`
	Message       string `json:"message"`
}

type GenerateQuestionsRequest struct {
	JobDescription string `json:"jobDescription"`
	CVContent      string `json:"cvContent,omitempty"`
}

type GenerateQuestionsResponse struct {
	Questions []InterviewQuestion `json:"questions"`
	Message   string              `json:"message"`
}

type StartInterviewRequest struct {
	Questions      []InterviewQuestion `json:"questions"`
	JobDescription string              `json:"jobDescription"`
	FileName       string              `json:"fileName,omitempty"`
}

// StartInterviewResponse mirrors the session shape; every field is optional
// because the real backend may omit any of them.
type StartInterviewResponse struct {
	ID             string              `json:"id,omitempty"`
	JobTitle       string              `json:"jobTitle,omitempty"`
	JobDescription string              `json:"jobDescription,omitempty"`
	Questions      []InterviewQuestion `json:"questions,omitempty"`
	StartedAt      *time.Time          `json:"startedAt,omitempty"`
	Status         SessionStatus       `json:"status,omitempty"`
}

// CVUpload is what the upload endpoint hands to the usecase.
type CVUpload struct {
	FileName    string
	Size        int64
	ContentType string
	Content     io.Reader
}

type CVUsecase interface {
	Parse(ctx context.Context, upload CVUpload) (*UploadCVResponse, error)
}

// CVArchive keeps a copy of the raw uploaded file. Implementations must read
// body to EOF or return an error.
type CVArchive interface {
	Store(ctx context.Context, key, contentType string, body io.Reader, size int64) error
}

type QuestionUsecase interface {
	Generate(ctx context.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsResponse, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *InterviewSession) error
	GetByID(ctx context.Context, id string) (*InterviewSession, error)
	Update(ctx context.Context, session *InterviewSession) error
}

type InterviewUsecase interface {
	Start(ctx context.Context, userID string, req *StartInterviewRequest) (*InterviewSession, error)
	Get(ctx context.Context, id string) (*InterviewSession, error)
	RecordResponse(ctx context.Context, id string, resp *InterviewResponse) (*InterviewSession, error)
	Complete(ctx context.Context, id string) (*InterviewSession, error)
	// Export renders the session transcript and returns the file and its name.
	Export(ctx context.Context, id string, format ExportFormat) ([]byte, string, error)
}

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ContentType is the MIME type served for the format.
func (f ExportFormat) ContentType() string {
	if f == ExportCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

const defaultJobTitle = "Mock Interview"

// JobTitleFromDescription uses the first non-empty line of a job description as
// a title, capped at 80 characters.
func JobTitleFromDescription(description string) string {
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 80 {
			line = strings.TrimSpace(string(r[:80])) + "..."
		}
		return line
	}
	return defaultJobTitle
}
