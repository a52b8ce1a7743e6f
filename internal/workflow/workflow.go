package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/logger"
	"mock-interview-backend/pkg/security"
)

// DefaultAnalysisDelay stands in for the answer analysis call made on completion.
const DefaultAnalysisDelay = 2 * time.Second

// Backend is the remote side of the workflow. apiclient.Client implements it over HTTP.
type Backend interface {
	UploadCV(ctx context.Context, file domain.CVFile) (*domain.UploadCVResponse, error)
	GenerateQuestions(ctx context.Context, req domain.GenerateQuestionsRequest) (*domain.GenerateQuestionsResponse, error)
	StartInterview(ctx context.Context, req domain.StartInterviewRequest) (*domain.StartInterviewResponse, error)
}

// Snapshot is a deep copy of everything the workflow exposes.
type Snapshot struct {
	State          State
	CV             *domain.CVData
	JobDescription string
	Questions      []domain.InterviewQuestion
	Session        *domain.InterviewSession
	Error          string
	IsUploading    bool
	IsGenerating   bool
}

type Option func(*Workflow)

func WithAnalysisDelay(d time.Duration) Option {
	return func(w *Workflow) { w.analysisDelay = d }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// Workflow drives one candidate from CV upload to a completed session.
// It is safe for concurrent use; the lock is never held across backend calls.
type Workflow struct {
	backend       Backend
	analysisDelay time.Duration
	now           func() time.Time

	mu             sync.Mutex
	cv             *domain.CVData
	jobDescription string
	questions      []domain.InterviewQuestion
	session        *domain.InterviewSession
	err            string
	busy           [numSteps]bool
	gen            [numSteps]uint64
}

func New(backend Backend, opts ...Option) *Workflow {
	w := &Workflow{
		backend:       backend,
		analysisDelay: DefaultAnalysisDelay,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// UploadCV validates the file locally, attaches it optimistically and sends it
// to the backend. A failed upload keeps the optimistic reference.
func (w *Workflow) UploadCV(ctx context.Context, file domain.CVFile) error {
	if err := security.ValidateCV(file.MIMEType, file.Size); err != nil {
		w.fail(err)
		return err
	}

	w.mu.Lock()
	token := w.begin(stepUpload)
	f := file
	f.Content = append([]byte(nil), file.Content...)
	w.cv = &domain.CVData{File: &f, FileName: file.Name}
	w.mu.Unlock()

	resp, err := w.backend.UploadCV(ctx, file)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(stepUpload, token) {
		return ErrSuperseded
	}
	w.busy[stepUpload] = false
	if err != nil {
		w.err = err.Error()
		return fmt.Errorf("upload cv: %w", err)
	}
	if w.cv == nil || resp == nil {
		return nil
	}
	if resp.FileName != "" {
		w.cv.FileName = resp.FileName
	}
	w.cv.ParsedContent = resp.ParsedContent
	return nil
}

func (w *Workflow) SetJobDescription(description string) {
	w.mu.Lock()
	w.jobDescription = description
	w.mu.Unlock()
}

// GenerateQuestions generates questions for the stored job description.
func (w *Workflow) GenerateQuestions(ctx context.Context) error {
	w.mu.Lock()
	description := w.jobDescription
	w.mu.Unlock()
	return w.generate(ctx, description)
}

// GenerateQuestionsFor stores override as the job description and generates
// questions for it, so a caller never acts on a stale stored value.
func (w *Workflow) GenerateQuestionsFor(ctx context.Context, override string) error {
	w.SetJobDescription(override)
	return w.generate(ctx, override)
}

func (w *Workflow) generate(ctx context.Context, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		w.fail(ErrEmptyJobDescription)
		return ErrEmptyJobDescription
	}

	w.mu.Lock()
	token := w.begin(stepGenerate)
	req := domain.GenerateQuestionsRequest{JobDescription: description}
	if w.cv != nil {
		req.CVContent = w.cv.ParsedContent
	}
	w.mu.Unlock()

	resp, err := w.backend.GenerateQuestions(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(stepGenerate, token) {
		return ErrSuperseded
	}
	w.busy[stepGenerate] = false
	if err != nil {
		w.err = err.Error()
		return fmt.Errorf("generate questions: %w", err)
	}
	if resp != nil {
		w.questions = append([]domain.InterviewQuestion(nil), resp.Questions...)
	}
	return nil
}

// StartInterview opens a session for the current questions. Fields the backend
// omits fall back to local values.
func (w *Workflow) StartInterview(ctx context.Context) error {
	w.mu.Lock()
	if len(w.questions) == 0 {
		w.err = ErrNoQuestions.Error()
		w.mu.Unlock()
		return ErrNoQuestions
	}
	token := w.begin(stepStart)
	req := domain.StartInterviewRequest{
		Questions:      append([]domain.InterviewQuestion(nil), w.questions...),
		JobDescription: w.jobDescription,
	}
	if w.cv != nil {
		req.FileName = w.cv.FileName
	}
	w.mu.Unlock()

	resp, err := w.backend.StartInterview(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(stepStart, token) {
		return ErrSuperseded
	}
	w.busy[stepStart] = false
	if err != nil {
		w.err = err.Error()
		return fmt.Errorf("start interview: %w", err)
	}
	w.session = w.buildSession(req, resp)
	return nil
}

func (w *Workflow) buildSession(req domain.StartInterviewRequest, resp *domain.StartInterviewResponse) *domain.InterviewSession {
	if resp == nil {
		resp = &domain.StartInterviewResponse{}
	}
	now := w.now()
	s := &domain.InterviewSession{
		ID:             resp.ID,
		JobTitle:       resp.JobTitle,
		JobDescription: resp.JobDescription,
		Questions:      resp.Questions,
		Responses:      []domain.InterviewResponse{},
		StartedAt:      resp.StartedAt,
		Status:         resp.Status,
	}
	if s.ID == "" {
		s.ID = fmt.Sprintf("session_%d", now.UnixMilli())
	}
	if s.JobDescription == "" {
		s.JobDescription = req.JobDescription
	}
	if s.JobTitle == "" {
		s.JobTitle = domain.JobTitleFromDescription(s.JobDescription)
	}
	if len(s.Questions) == 0 {
		s.Questions = req.Questions
	}
	if s.StartedAt == nil {
		s.StartedAt = &now
	}
	if s.Status == "" {
		s.Status = domain.StatusInProgress
	}
	return s
}

// RecordResponse appends an answer to the active session. Completed sessions
// accept no further answers.
func (w *Workflow) RecordResponse(resp domain.InterviewResponse) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.session == nil:
		w.err = ErrNoSession.Error()
		return ErrNoSession
	case w.session.Status == domain.StatusCompleted:
		w.err = ErrSessionCompleted.Error()
		return ErrSessionCompleted
	}
	resp.Audio = append([]byte(nil), resp.Audio...)
	w.session.Responses = append(w.session.Responses, resp)
	return nil
}

// CompleteInterview waits out the analysis delay and marks the session completed.
func (w *Workflow) CompleteInterview(ctx context.Context) error {
	w.mu.Lock()
	switch {
	case w.session == nil:
		w.err = ErrNoSession.Error()
		w.mu.Unlock()
		return ErrNoSession
	case w.session.Status == domain.StatusCompleted:
		w.err = ErrSessionCompleted.Error()
		w.mu.Unlock()
		return ErrSessionCompleted
	}
	token := w.begin(stepComplete)
	sessionID := w.session.ID
	w.mu.Unlock()

	waitErr := sleep(ctx, w.analysisDelay)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(stepComplete, token) {
		return ErrSuperseded
	}
	w.busy[stepComplete] = false
	if w.session == nil || w.session.ID != sessionID {
		return ErrSuperseded
	}
	if waitErr != nil {
		w.err = "Interview analysis was cancelled."
		return fmt.Errorf("complete interview: %w", waitErr)
	}
	ended := w.now()
	w.session.Status = domain.StatusCompleted
	w.session.EndedAt = &ended
	return nil
}

// Reset returns the workflow to idle and invalidates every in-flight call.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.gen {
		w.gen[i]++
		w.busy[i] = false
	}
	w.cv = nil
	w.jobDescription = ""
	w.questions = nil
	w.session = nil
	w.err = ""
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state()
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		State:          w.state(),
		JobDescription: w.jobDescription,
		Error:          w.err,
		IsUploading:    w.busy[stepUpload],
		IsGenerating:   w.busy[stepGenerate] || w.busy[stepComplete],
		Session:        w.session.Clone(),
	}
	if w.questions != nil {
		snap.Questions = append([]domain.InterviewQuestion(nil), w.questions...)
	}
	if w.cv != nil {
		cv := *w.cv
		if cv.File != nil {
			f := *cv.File
			f.Content = append([]byte(nil), f.Content...)
			cv.File = &f
		}
		snap.CV = &cv
	}
	return snap
}

func (w *Workflow) state() State {
	switch {
	case w.session != nil && w.session.Status == domain.StatusCompleted:
		return StateCompleted
	case w.session != nil:
		return StateSessionStarted
	case len(w.questions) > 0:
		return StateQuestionsGenerated
	case w.cv != nil:
		return StateCVAttached
	default:
		return StateIdle
	}
}

// begin claims a step for a new call. Callers hold w.mu.
func (w *Workflow) begin(s step) uint64 {
	w.gen[s]++
	w.busy[s] = true
	w.err = ""
	return w.gen[s]
}

// current reports whether token is still the latest call of the step. Callers hold w.mu.
func (w *Workflow) current(s step, token uint64) bool {
	if w.gen[s] != token {
		logger.Log.Debug("Discarding superseded workflow result", "step", s.String())
		return false
	}
	return true
}

func (w *Workflow) fail(err error) {
	w.mu.Lock()
	w.err = err.Error()
	w.mu.Unlock()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsGuardError reports whether err is a local guard failure rather than a backend error.
func IsGuardError(err error) bool {
	for _, target := range []error{ErrInvalidFileType, ErrFileTooLarge, ErrEmptyJobDescription, ErrNoQuestions, ErrNoSession, ErrSessionCompleted} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
