package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"mock-interview-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) UploadCV(ctx context.Context, file domain.CVFile) (*domain.UploadCVResponse, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadCVResponse), args.Error(1)
}

func (m *MockBackend) GenerateQuestions(ctx context.Context, req domain.GenerateQuestionsRequest) (*domain.GenerateQuestionsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerateQuestionsResponse), args.Error(1)
}

func (m *MockBackend) StartInterview(ctx context.Context, req domain.StartInterviewRequest) (*domain.StartInterviewResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StartInterviewResponse), args.Error(1)
}

var sampleQuestions = []domain.InterviewQuestion{
	{ID: "1", Question: "Tell me about yourself.", Category: domain.CategoryExperience, Difficulty: domain.DifficultyEasy},
	{ID: "2", Question: "Design a rate limiter.", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyHard},
}

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestWorkflow(b Backend) *Workflow {
	return New(b, WithAnalysisDelay(0), WithClock(func() time.Time { return fixedNow }))
}

func pdf(size int64) domain.CVFile {
	return domain.CVFile{Name: "resume.pdf", MIMEType: "application/pdf", Size: size, Content: []byte("%PDF-1.4")}
}

func TestUploadCV(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unsupported types without calling the backend", func(t *testing.T) {
		b := new(MockBackend)
		w := newTestWorkflow(b)

		err := w.UploadCV(ctx, domain.CVFile{Name: "resume.txt", MIMEType: "text/plain", Size: 500})
		assert.ErrorIs(t, err, ErrInvalidFileType)

		snap := w.Snapshot()
		assert.Nil(t, snap.CV)
		assert.Equal(t, ErrInvalidFileType.Error(), snap.Error)
		assert.Equal(t, StateIdle, snap.State)
		b.AssertNotCalled(t, "UploadCV", mock.Anything, mock.Anything)
	})

	t.Run("Should reject files over 10MB without calling the backend", func(t *testing.T) {
		b := new(MockBackend)
		w := newTestWorkflow(b)

		err := w.UploadCV(ctx, pdf(10<<20+1))
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.Nil(t, w.Snapshot().CV)
		b.AssertNotCalled(t, "UploadCV", mock.Anything, mock.Anything)
	})

	t.Run("Should keep the prior CV when a later file fails validation", func(t *testing.T) {
		b := new(MockBackend)
		b.On("UploadCV", ctx, mock.Anything).Return(&domain.UploadCVResponse{FileName: "resume.pdf", ParsedContent: "parsed"}, nil)
		w := newTestWorkflow(b)
		require.NoError(t, w.UploadCV(ctx, pdf(100)))

		require.Error(t, w.UploadCV(ctx, domain.CVFile{Name: "a.gif", MIMEType: "image/gif", Size: 1}))
		snap := w.Snapshot()
		require.NotNil(t, snap.CV)
		assert.Equal(t, "parsed", snap.CV.ParsedContent)
		b.AssertNumberOfCalls(t, "UploadCV", 1)
	})

	t.Run("Should overwrite file name and parsed content from the response", func(t *testing.T) {
		b := new(MockBackend)
		b.On("UploadCV", ctx, mock.Anything).Return(&domain.UploadCVResponse{FileName: "server.pdf", ParsedContent: "CV File: server.pdf"}, nil)
		w := newTestWorkflow(b)

		require.NoError(t, w.UploadCV(ctx, pdf(100)))
		snap := w.Snapshot()
		assert.Equal(t, StateCVAttached, snap.State)
		assert.Equal(t, "server.pdf", snap.CV.FileName)
		assert.Equal(t, "CV File: server.pdf", snap.CV.ParsedContent)
		assert.False(t, snap.IsUploading)
		assert.Empty(t, snap.Error)
	})

	t.Run("Should keep the optimistic reference when the upload fails", func(t *testing.T) {
		b := new(MockBackend)
		b.On("UploadCV", ctx, mock.Anything).Return(nil, errors.New("Failed to upload CV"))
		w := newTestWorkflow(b)

		err := w.UploadCV(ctx, pdf(100))
		require.Error(t, err)
		snap := w.Snapshot()
		require.NotNil(t, snap.CV)
		assert.Equal(t, "resume.pdf", snap.CV.FileName)
		assert.Empty(t, snap.CV.ParsedContent)
		assert.Equal(t, "Failed to upload CV", snap.Error)
	})
}

func TestGenerateQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a blank description without calling the backend", func(t *testing.T) {
		b := new(MockBackend)
		w := newTestWorkflow(b)

		w.SetJobDescription("   \n\t")
		assert.ErrorIs(t, w.GenerateQuestions(ctx), ErrEmptyJobDescription)
		assert.ErrorIs(t, w.GenerateQuestionsFor(ctx, ""), ErrEmptyJobDescription)
		assert.Equal(t, ErrEmptyJobDescription.Error(), w.Snapshot().Error)
		b.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything)
	})

	t.Run("Should send the override and the parsed CV", func(t *testing.T) {
		b := new(MockBackend)
		b.On("UploadCV", ctx, mock.Anything).Return(&domain.UploadCVResponse{FileName: "resume.pdf", ParsedContent: "parsed"}, nil)
		b.On("GenerateQuestions", ctx, domain.GenerateQuestionsRequest{JobDescription: "Backend engineer", CVContent: "parsed"}).
			Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
		w := newTestWorkflow(b)
		require.NoError(t, w.UploadCV(ctx, pdf(100)))
		w.SetJobDescription("stale description")

		require.NoError(t, w.GenerateQuestionsFor(ctx, "  Backend engineer  "))
		snap := w.Snapshot()
		assert.Equal(t, StateQuestionsGenerated, snap.State)
		assert.Equal(t, sampleQuestions, snap.Questions)
		assert.Equal(t, "  Backend engineer  ", snap.JobDescription)
		b.AssertExpectations(t)
	})

	t.Run("Should leave prior questions untouched on failure", func(t *testing.T) {
		b := new(MockBackend)
		b.On("GenerateQuestions", ctx, domain.GenerateQuestionsRequest{JobDescription: "first"}).
			Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
		b.On("GenerateQuestions", ctx, domain.GenerateQuestionsRequest{JobDescription: "second"}).
			Return(nil, errors.New("Failed to generate questions"))
		w := newTestWorkflow(b)

		require.NoError(t, w.GenerateQuestionsFor(ctx, "first"))
		require.Error(t, w.GenerateQuestionsFor(ctx, "second"))

		snap := w.Snapshot()
		assert.Equal(t, sampleQuestions, snap.Questions)
		assert.Equal(t, "Failed to generate questions", snap.Error)
		assert.False(t, snap.IsGenerating)
	})

	t.Run("Should discard a superseded result", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		newer := []domain.InterviewQuestion{{ID: "9", Question: "Newer", Category: domain.CategoryBehavioral, Difficulty: domain.DifficultyMedium}}

		b := new(MockBackend)
		b.On("GenerateQuestions", ctx, domain.GenerateQuestionsRequest{JobDescription: "slow"}).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
		b.On("GenerateQuestions", ctx, domain.GenerateQuestionsRequest{JobDescription: "fast"}).
			Return(&domain.GenerateQuestionsResponse{Questions: newer}, nil)
		w := newTestWorkflow(b)

		slowErr := make(chan error, 1)
		go func() { slowErr <- w.GenerateQuestionsFor(ctx, "slow") }()
		<-started

		require.NoError(t, w.GenerateQuestionsFor(ctx, "fast"))
		close(release)

		assert.ErrorIs(t, <-slowErr, ErrSuperseded)
		assert.Equal(t, newer, w.Snapshot().Questions)
	})
}

func TestStartInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse to start without questions", func(t *testing.T) {
		b := new(MockBackend)
		w := newTestWorkflow(b)

		assert.ErrorIs(t, w.StartInterview(ctx), ErrNoQuestions)
		assert.Equal(t, "No questions available. Please generate questions first.", w.Snapshot().Error)
		b.AssertNotCalled(t, "StartInterview", mock.Anything, mock.Anything)
	})

	t.Run("Should fall back to local values the response omits", func(t *testing.T) {
		b := new(MockBackend)
		b.On("GenerateQuestions", ctx, mock.Anything).Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
		b.On("StartInterview", ctx, domain.StartInterviewRequest{Questions: sampleQuestions, JobDescription: "Backend engineer"}).
			Return(&domain.StartInterviewResponse{}, nil)
		w := newTestWorkflow(b)
		require.NoError(t, w.GenerateQuestionsFor(ctx, "Backend engineer"))

		require.NoError(t, w.StartInterview(ctx))
		snap := w.Snapshot()
		require.NotNil(t, snap.Session)
		assert.Equal(t, StateSessionStarted, snap.State)
		assert.Equal(t, "session_1714555800000", snap.Session.ID)
		assert.Equal(t, "Backend engineer", snap.Session.JobTitle)
		assert.Equal(t, sampleQuestions, snap.Session.Questions)
		assert.Equal(t, domain.StatusInProgress, snap.Session.Status)
		assert.Equal(t, fixedNow, *snap.Session.StartedAt)
	})

	t.Run("Should prefer the fields the backend returns", func(t *testing.T) {
		b := new(MockBackend)
		b.On("GenerateQuestions", ctx, mock.Anything).Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
		b.On("StartInterview", ctx, mock.Anything).Return(&domain.StartInterviewResponse{ID: "abc", JobTitle: "Go Developer"}, nil)
		w := newTestWorkflow(b)
		require.NoError(t, w.GenerateQuestionsFor(ctx, "Backend engineer"))

		require.NoError(t, w.StartInterview(ctx))
		snap := w.Snapshot()
		assert.Equal(t, "abc", snap.Session.ID)
		assert.Equal(t, "Go Developer", snap.Session.JobTitle)
	})
}

func startedWorkflow(t *testing.T) *Workflow {
	t.Helper()
	ctx := context.Background()
	b := new(MockBackend)
	b.On("GenerateQuestions", ctx, mock.Anything).Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
	b.On("StartInterview", ctx, mock.Anything).Return(&domain.StartInterviewResponse{ID: "s1"}, nil)
	w := newTestWorkflow(b)
	require.NoError(t, w.GenerateQuestionsFor(ctx, "Backend engineer"))
	require.NoError(t, w.StartInterview(ctx))
	return w
}

func TestResponsesAndCompletion(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require an active session", func(t *testing.T) {
		w := newTestWorkflow(new(MockBackend))
		assert.ErrorIs(t, w.RecordResponse(domain.InterviewResponse{QuestionID: "1"}), ErrNoSession)
		assert.ErrorIs(t, w.CompleteInterview(ctx), ErrNoSession)
		assert.Equal(t, ErrNoSession.Error(), w.Snapshot().Error)
	})

	t.Run("Should append responses and complete the session", func(t *testing.T) {
		w := startedWorkflow(t)
		require.NoError(t, w.RecordResponse(domain.InterviewResponse{QuestionID: "1", Answer: "I build APIs", Duration: 42}))
		require.NoError(t, w.RecordResponse(domain.InterviewResponse{QuestionID: "2", Answer: "Token bucket", Duration: 60}))

		require.NoError(t, w.CompleteInterview(ctx))
		snap := w.Snapshot()
		assert.Equal(t, StateCompleted, snap.State)
		assert.Len(t, snap.Session.Responses, 2)
		assert.Equal(t, domain.StatusCompleted, snap.Session.Status)
		assert.Equal(t, fixedNow, *snap.Session.EndedAt)
		assert.False(t, snap.IsGenerating)
	})

	t.Run("Should reject responses after completion", func(t *testing.T) {
		w := startedWorkflow(t)
		require.NoError(t, w.CompleteInterview(ctx))

		assert.ErrorIs(t, w.RecordResponse(domain.InterviewResponse{QuestionID: "1", Answer: "late"}), ErrSessionCompleted)
		assert.ErrorIs(t, w.CompleteInterview(ctx), ErrSessionCompleted)
		assert.Empty(t, w.Snapshot().Session.Responses)
	})

	t.Run("Should honour cancellation during analysis", func(t *testing.T) {
		w := startedWorkflow(t)
		w.analysisDelay = time.Hour
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := w.CompleteInterview(cctx)
		assert.ErrorIs(t, err, context.Canceled)
		snap := w.Snapshot()
		assert.Equal(t, StateSessionStarted, snap.State)
		assert.NotEmpty(t, snap.Error)
	})

	t.Run("Should stop generating when a new session replaces the one being completed", func(t *testing.T) {
		b := new(MockBackend)
		b.On("GenerateQuestions", ctx, mock.Anything).Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
		b.On("StartInterview", ctx, mock.Anything).Return(&domain.StartInterviewResponse{ID: "s1"}, nil).Once()
		b.On("StartInterview", ctx, mock.Anything).Return(&domain.StartInterviewResponse{ID: "s2"}, nil).Once()
		w := newTestWorkflow(b)
		w.analysisDelay = 100 * time.Millisecond
		require.NoError(t, w.GenerateQuestionsFor(ctx, "Backend engineer"))
		require.NoError(t, w.StartInterview(ctx))

		done := make(chan error, 1)
		go func() { done <- w.CompleteInterview(ctx) }()
		require.Eventually(t, func() bool { return w.Snapshot().IsGenerating }, time.Second, time.Millisecond)

		require.NoError(t, w.StartInterview(ctx))
		assert.ErrorIs(t, <-done, ErrSuperseded)

		snap := w.Snapshot()
		assert.False(t, snap.IsGenerating)
		assert.Equal(t, StateSessionStarted, snap.State)
		assert.Equal(t, "s2", snap.Session.ID)
	})

	t.Run("Should not mutate state through a snapshot", func(t *testing.T) {
		w := startedWorkflow(t)
		snap := w.Snapshot()
		snap.Session.Status = domain.StatusCompleted
		snap.Questions[0].Question = "changed"

		again := w.Snapshot()
		assert.Equal(t, domain.StatusInProgress, again.Session.Status)
		assert.Equal(t, sampleQuestions[0].Question, again.Questions[0].Question)
	})
}

func TestReset(t *testing.T) {
	t.Run("Should be idempotent", func(t *testing.T) {
		w := startedWorkflow(t)
		w.Reset()
		once := w.Snapshot()
		w.Reset()
		twice := w.Snapshot()

		assert.Equal(t, once, twice)
		assert.Equal(t, Snapshot{State: StateIdle}, once)
	})

	t.Run("Should discard calls that were in flight", func(t *testing.T) {
		ctx := context.Background()
		started := make(chan struct{})
		release := make(chan struct{})

		b := new(MockBackend)
		b.On("GenerateQuestions", ctx, mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(&domain.GenerateQuestionsResponse{Questions: sampleQuestions}, nil)
		w := newTestWorkflow(b)

		done := make(chan error, 1)
		go func() { done <- w.GenerateQuestionsFor(ctx, "Backend engineer") }()
		<-started
		assert.True(t, w.Snapshot().IsGenerating)

		w.Reset()
		close(release)

		assert.ErrorIs(t, <-done, ErrSuperseded)
		assert.Equal(t, StateIdle, w.State())
		assert.Empty(t, w.Snapshot().Questions)
	})
}

func TestIsGuardError(t *testing.T) {
	assert.True(t, IsGuardError(ErrNoQuestions))
	assert.True(t, IsGuardError(ErrInvalidFileType))
	assert.False(t, IsGuardError(errors.New("Failed to upload CV")))
	assert.False(t, IsGuardError(ErrSuperseded))
}
