package memory_test

import (
	"context"
	"testing"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/internal/repository/memory"
	"mock-interview-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "Ada@Example.com"}))

	t.Run("Should find users case-insensitively by email", func(t *testing.T) {
		u, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("Should reject duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{ID: "u2", Email: "ADA@example.com"})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should report missing users with ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSessionRepositoryCopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()

	s := &domain.InterviewSession{ID: "s1", Status: domain.StatusInProgress}
	require.NoError(t, repo.Create(ctx, s))
	s.Status = domain.StatusCompleted

	stored, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, stored.Status, "caller mutations must not leak into the store")

	stored.Responses = append(stored.Responses, domain.InterviewResponse{QuestionID: "1"})
	require.NoError(t, repo.Update(ctx, stored))

	again, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Responses, 1)

	assert.ErrorIs(t, repo.Update(ctx, &domain.InterviewSession{ID: "missing"}), domain.ErrNotFound)
}
