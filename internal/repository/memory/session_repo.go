package memory

import (
	"context"
	"sync"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
)

type sessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*domain.InterviewSession
}

func NewSessionRepository() domain.SessionRepository {
	return &sessionRepo{sessions: make(map[string]*domain.InterviewSession)}
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return apperror.Conflict("Interview session already exists")
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *sessionRepo) Update(ctx context.Context, session *domain.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return domain.ErrNotFound
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}
