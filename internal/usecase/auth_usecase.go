package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/auth"
	"mock-interview-backend/pkg/logger"
	"mock-interview-backend/pkg/security"
	"mock-interview-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
	validate *validator.Validate
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	mailer   domain.WelcomeMailer
}

// AuthOption configures the auth usecase.
type AuthOption func(*authUsecase)

// WithWelcomeMailer sends a welcome email after every successful signup.
func WithWelcomeMailer(mailer domain.WelcomeMailer) AuthOption {
	return func(u *authUsecase) { u.mailer = mailer }
}

func NewAuthUsecase(userRepo domain.UserRepository, validate *validator.Validate, hasher *auth.PasswordHasher, tokens *auth.TokenService, opts ...AuthOption) domain.AuthUsecase {
	u := &authUsecase{
		userRepo: userRepo,
		validate: validate,
		hasher:   hasher,
		tokens:   tokens,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Signup validates the form before touching storage; an invalid form never
// reaches the repository.
func (u *authUsecase) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.SignupResult, error) {
	if fieldErrs := validation.ValidateSignup(u.validate, req); len(fieldErrs) > 0 {
		security.DefaultLogger().LogSignupRejected(req.Email, requestIDFrom(ctx), "invalid_form")
		return nil, apperror.Validation("Please fix the highlighted fields", fieldErrs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		security.DefaultLogger().LogSignupRejected(email, requestIDFrom(ctx), "email_taken")
		return nil, apperror.Conflict("An account with this email already exists")
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	result := &domain.SignupResult{User: user}
	if u.tokens.Enabled() {
		token, err := u.tokens.Generate(user.ID, user.Email)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		result.Token = token
	}

	logger.Log.Info("User signed up", "user_id", user.ID)
	security.DefaultLogger().LogSignupSucceeded(user.ID, requestIDFrom(ctx))

	if u.mailer != nil {
		// Send async so SMTP latency never delays the response
		go func(firstName, to, userID string) {
			if err := u.mailer.SendWelcome(firstName, to); err != nil {
				logger.Log.Warn("Welcome email failed", "user_id", userID, "error", err)
			}
		}(user.FirstName, user.Email, user.ID)
	}
	return result, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
