package users_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/internal/users"
)

type mockRepo struct {
	createFn      func(ctx context.Context, name, email, hash string) (*users.User, error)
	findFn        func(ctx context.Context, id uuid.UUID) (*users.User, error)
	findByEmailFn func(ctx context.Context, email string) (*users.User, error)
}

func (m *mockRepo) Create(ctx context.Context, name, email, hash string) (*users.User, error) {
	return m.createFn(ctx, name, email, hash)
}

func (m *mockRepo) Find(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return m.findFn(ctx, id)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	return m.findByEmailFn(ctx, email)
}

func newTokens() *auth.Tokens {
	return auth.NewTokens(&auth.Config{
		Secret:   "0123456789abcdef0123456789abcdef",
		Issuer:   "elib",
		TokenTTL: "1h",
	})
}

func newSystem(repo users.Repository) users.System {
	return users.New(repo, newTokens(), slog.New(slog.NewTextHandler(io.Discard, nil)), bcrypt.MinCost)
}

var userID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func TestRegister(t *testing.T) {
	var gotName, gotEmail, gotHash string
	repo := &mockRepo{
		createFn: func(_ context.Context, name, email, hash string) (*users.User, error) {
			gotName, gotEmail, gotHash = name, email, hash
			return &users.User{ID: userID, Name: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}, nil
		},
	}
	sys := newSystem(repo)

	session, err := sys.Register(context.Background(), users.RegisterCommand{
		Name:     "  Frank Herbert ",
		Email:    " Frank@Example.COM ",
		Password: "arrakis-spice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotName != "Frank Herbert" {
		t.Errorf("name: got %q", gotName)
	}
	if gotEmail != "frank@example.com" {
		t.Errorf("email: got %q", gotEmail)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("arrakis-spice")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if session.AccessToken == "" {
		t.Fatal("access token is empty")
	}

	p, err := newTokens().Verify(session.AccessToken)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if p.ID != userID || p.Email != "frank@example.com" {
		t.Errorf("principal: %+v", p)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  users.RegisterCommand
	}{
		{"missing name", users.RegisterCommand{Email: "a@b.co", Password: "longenough"}},
		{"invalid email", users.RegisterCommand{Name: "A", Email: "not-an-email", Password: "longenough"}},
		{"short password", users.RegisterCommand{Name: "A", Email: "a@b.co", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem(&mockRepo{})
			_, err := sys.Register(context.Background(), tt.cmd)
			if !errors.Is(err, users.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	sys := newSystem(&mockRepo{
		createFn: func(context.Context, string, string, string) (*users.User, error) {
			return nil, users.ErrDuplicate
		},
	})

	_, err := sys.Register(context.Background(), users.RegisterCommand{
		Name: "A", Email: "a@b.co", Password: "longenough",
	})
	if users.MapHTTPStatus(err) != 409 {
		t.Errorf("status: got %d, want 409", users.MapHTTPStatus(err))
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("arrakis-spice"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	stored := &users.User{ID: userID, Name: "Frank", Email: "frank@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "FRANK@example.com", "arrakis-spice", nil},
		{"wrong password", "frank@example.com", "caladan", users.ErrInvalidCredentials},
		{"unknown email", "paul@example.com", "arrakis-spice", users.ErrInvalidCredentials},
		{"missing password", "frank@example.com", "", users.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem(&mockRepo{
				findByEmailFn: func(_ context.Context, email string) (*users.User, error) {
					if email == stored.Email {
						return stored, nil
					}
					return nil, users.ErrNotFound
				},
			})

			session, err := sys.Login(context.Background(), users.LoginCommand{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.User.ID != userID {
				t.Errorf("user: got %s", session.User.ID)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{users.ErrValidation, 400},
		{users.ErrInvalidCredentials, 401},
		{users.ErrNotFound, 404},
		{users.ErrDuplicate, 409},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		if got := users.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("%v: got %d, want %d", tt.err, got, tt.want)
		}
	}
}
