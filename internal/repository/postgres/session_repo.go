package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type sessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) domain.SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *domain.InterviewSession) error {
	questions, responses, err := marshalSessionBody(s)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `INSERT INTO interview_sessions
                (id, user_id, job_title, job_description, question_ids, questions, responses, status, started_at, ended_at)
              VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.Exec(ctx, query,
		s.ID, s.UserID, s.JobTitle, s.JobDescription, pq.Array(questionIDs(s.Questions)),
		questions, responses, string(s.Status), s.StartedAt, s.EndedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Interview session already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	query := `SELECT id, COALESCE(user_id, ''), job_title, job_description, question_ids, questions, responses,
                     status, started_at, ended_at
              FROM interview_sessions WHERE id = $1`

	var (
		s             domain.InterviewSession
		ids           []string
		questionsJSON []byte
		responsesJSON []byte
		status        string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.JobTitle, &s.JobDescription, pq.Array(&ids), &questionsJSON, &responsesJSON,
		&status, &s.StartedAt, &s.EndedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.Status = domain.SessionStatus(status)

	if err := json.Unmarshal(questionsJSON, &s.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of session %s: %w", id, err)
	}
	if err := json.Unmarshal(responsesJSON, &s.Responses); err != nil {
		return nil, fmt.Errorf("decode responses of session %s: %w", id, err)
	}
	if len(ids) != len(s.Questions) {
		return nil, fmt.Errorf("session %s: question_ids out of sync with questions", id)
	}
	return &s, nil
}

// Update persists responses, status and end time; questions are immutable.
func (r *sessionRepo) Update(ctx context.Context, s *domain.InterviewSession) error {
	_, responses, err := marshalSessionBody(s)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `UPDATE interview_sessions SET responses = $2, status = $3, ended_at = $4 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, s.ID, responses, string(s.Status), s.EndedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func marshalSessionBody(s *domain.InterviewSession) ([]byte, []byte, error) {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return nil, nil, err
	}
	responses := s.Responses
	if responses == nil {
		responses = []domain.InterviewResponse{}
	}
	respJSON, err := json.Marshal(responses)
	if err != nil {
		return nil, nil, err
	}
	return questions, respJSON, nil
}

func questionIDs(questions []domain.InterviewQuestion) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
