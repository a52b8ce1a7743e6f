package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignupRequest is the signup form as submitted by the browser.
type SignupRequest struct {
	FirstName       string `json:"firstName" validate:"required_trimmed,min_trimmed=2"`
	LastName        string `json:"lastName" validate:"required_trimmed,min_trimmed=2"`
	Email           string `json:"email" validate:"required_trimmed,simple_email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"required"`
}

type SignupResult struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// WelcomeMailer notifies a freshly created user.
type WelcomeMailer interface {
	SendWelcome(firstName, to string) error
}

type AuthUsecase interface {
	Signup(ctx context.Context, req *SignupRequest) (*SignupResult, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
