package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/ErlanBelekov/taskboard/internal/auth"
	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/email"
	"github.com/ErlanBelekov/taskboard/internal/repository"
)

const (
	minPasswordLen   = 6
	maxPasswordBytes = 72 // bcrypt ignores everything past this

	defaultWelcomeTimeout = 3 * time.Second
)

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	VerifyDummy(password string) bool
}

type tokenIssuer interface {
	Issue(id domain.Identity) (string, *auth.Claims, error)
	Verify(raw string) (*auth.Claims, error)
}

type AuthUsecase struct {
	users          repository.UserRepository
	hasher         passwordHasher
	tokens         tokenIssuer
	email          email.Sender
	welcomeTimeout time.Duration
	logger         *slog.Logger
}

type AuthOption func(*AuthUsecase)

// WithWelcomeTimeout caps how long Register waits on the welcome mail.
func WithWelcomeTimeout(d time.Duration) AuthOption {
	return func(u *AuthUsecase) { u.welcomeTimeout = d }
}

func NewAuthUsecase(users repository.UserRepository, hasher passwordHasher, tokens tokenIssuer, sender email.Sender, logger *slog.Logger, opts ...AuthOption) *AuthUsecase {
	u := &AuthUsecase{
		users:          users,
		hasher:         hasher,
		tokens:         tokens,
		email:          sender,
		welcomeTimeout: defaultWelcomeTimeout,
		logger:         logger.With("component", "auth_usecase"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
}

// Register creates an account. It deliberately does not log the user in.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	addr := domain.NormalizeEmail(input.Email)
	if addr == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, domain.ErrMissingFields
	}
	if parsed, err := mail.ParseAddress(addr); err != nil || parsed.Address != addr {
		return nil, domain.ErrInvalidEmail
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	_, err := u.users.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	// A concurrent registration can still win the race; Create reports it
	// as ErrEmailTaken via the unique index.
	user, err := u.users.Create(ctx, &domain.User{
		Email:        addr,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.sendWelcome(ctx, user)
	return user, nil
}

// sendWelcome is best effort. The account already exists, so neither a slow
// mail provider nor a client hanging up may turn the registration into an
// error.
func (u *AuthUsecase) sendWelcome(ctx context.Context, user *domain.User) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.welcomeTimeout)
	defer cancel()

	if err := u.email.SendWelcome(sendCtx, user.Email, user.Name); err != nil {
		u.logger.WarnContext(ctx, "welcome email", "user_id", user.ID, "error", err)
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login returns domain.ErrInvalidCredentials for both an unknown email and a
// wrong password so the response does not reveal which emails exist.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	addr := domain.NormalizeEmail(emailAddr)
	if addr == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := u.users.FindByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.hasher.VerifyDummy(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := u.tokens.Issue(domain.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Verify checks a raw session token and returns its claims.
func (u *AuthUsecase) Verify(_ context.Context, rawToken string) (*auth.Claims, error) {
	return u.tokens.Verify(rawToken)
}

func validatePassword(p string) error {
	if len(p) > maxPasswordBytes {
		return domain.ErrPasswordTooLong
	}
	if len([]rune(p)) < minPasswordLen || !strings.ContainsFunc(p, unicode.IsDigit) {
		return domain.ErrWeakPassword
	}
	return nil
}
