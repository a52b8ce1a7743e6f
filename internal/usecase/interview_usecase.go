package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/logger"

	"github.com/google/uuid"
)

type interviewUsecase struct {
	sessionRepo domain.SessionRepository
	// mu serialises read-modify-write cycles on sessions
	mu  sync.Mutex
	now func() time.Time
}

func NewInterviewUsecase(sessionRepo domain.SessionRepository) domain.InterviewUsecase {
	return &interviewUsecase{
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// Start opens an in-progress session; it stands in for the external session service.
func (u *interviewUsecase) Start(ctx context.Context, userID string, req *domain.StartInterviewRequest) (*domain.InterviewSession, error) {
	if req == nil || len(req.Questions) == 0 {
		return nil, apperror.BadRequest("No questions provided")
	}

	now := u.now()
	session := &domain.InterviewSession{
		ID:             uuid.NewString(),
		UserID:         userID,
		JobTitle:       domain.JobTitleFromDescription(req.JobDescription),
		JobDescription: strings.TrimSpace(req.JobDescription),
		Questions:      append([]domain.InterviewQuestion(nil), req.Questions...),
		Responses:      []domain.InterviewResponse{},
		StartedAt:      &now,
		Status:         domain.StatusInProgress,
	}

	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	logger.Log.Info("Interview session started",
		"session_id", session.ID,
		"questions", len(session.Questions),
		"file_name", req.FileName)

	return session, nil
}

// Get loads a session. Sessions with an owner are hidden from every other caller.
func (u *interviewUsecase) Get(ctx context.Context, id string) (*domain.InterviewSession, error) {
	session, err := u.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interview session not found")
		}
		return nil, err
	}
	if caller, _ := ctx.Value(domain.KeyUserID).(string); session.UserID != "" && session.UserID != caller {
		return nil, apperror.NotFound("Interview session not found")
	}
	return session, nil
}

// RecordResponse appends an answer. Completed sessions are closed for writing.
func (u *interviewUsecase) RecordResponse(ctx context.Context, id string, resp *domain.InterviewResponse) (*domain.InterviewSession, error) {
	if resp == nil || resp.QuestionID == "" {
		return nil, apperror.BadRequest("Question ID is required")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.StatusCompleted {
		return nil, apperror.Conflict(domain.ErrSessionCompleted.Error())
	}

	session.Responses = append(session.Responses, *resp)
	if err := u.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (u *interviewUsecase) Complete(ctx context.Context, id string) (*domain.InterviewSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.StatusCompleted {
		return nil, apperror.Conflict(domain.ErrSessionCompleted.Error())
	}

	now := u.now()
	session.Status = domain.StatusCompleted
	session.EndedAt = &now
	if err := u.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	logger.Log.Info("Interview session completed",
		"session_id", session.ID,
		"responses", len(session.Responses))

	return session, nil
}
