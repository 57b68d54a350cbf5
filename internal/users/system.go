package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/pkg/validation"
)

// System defines the public contract for account operations.
type System interface {
	Handler() *Handler

	Register(ctx context.Context, cmd RegisterCommand) (*Session, error)
	Login(ctx context.Context, cmd LoginCommand) (*Session, error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
}

type system struct {
	repo   Repository
	tokens *auth.Tokens
	logger *slog.Logger
	cost   int
}

// New creates the user System. cost is the bcrypt work factor; values
// outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func New(repo Repository, tokens *auth.Tokens, logger *slog.Logger, cost int) System {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &system{
		repo:   repo,
		tokens: tokens,
		logger: logger.With("system", "users"),
		cost:   cost,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) Register(ctx context.Context, cmd RegisterCommand) (*Session, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = normalizeEmail(cmd.Email)

	if err := validation.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, cmd.Name, cmd.Email, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID)
	return s.session(user)
}

func (s *system) Login(ctx context.Context, cmd LoginCommand) (*Session, error) {
	cmd.Email = normalizeEmail(cmd.Email)

	if err := validation.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user, err := s.repo.FindByEmail(ctx, cmd.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *system) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.Find(ctx, id)
}

func (s *system) session(user *User) (*Session, error) {
	token, expires, err := s.tokens.Issue(auth.Principal{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}
	return &Session{User: user, AccessToken: token, ExpiresAt: expires}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
