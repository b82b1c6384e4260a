package service

import (
	"context"
	"testing"
	"time"

	"arb_backend/internal/auth"
	"arb_backend/internal/domain"
	"arb_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubUserStore is an in-memory UserStore for service tests
type stubUserStore struct {
	users    map[uint]*domain.User
	nextID   uint
	onCreate func() // Runs before the insert, used to simulate racing writers
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[uint]*domain.User), nextID: 1}
}

func (s *stubUserStore) Create(_ context.Context, user *domain.User) error {
	if s.onCreate != nil {
		s.onCreate()
	}
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrUserExists
		}
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubUserStore) ByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) ByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func TestAuthService_Register(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	// The stored credential is a salted hash, never the plaintext
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, "secret", time.Hour)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, "secret", time.Hour)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "bob", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_InsertRace(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, "secret", time.Hour)

	// A concurrent register wins between the duplicate checks and the insert:
	// the unique index rejects the loser and the service re-reads to report
	// the colliding field.
	users.onCreate = func() {
		users.users[9] = &domain.User{ID: 9, Username: "alice", Email: "alice@example.com", Password: "x"}
	}

	_, err := svc.Register(context.Background(), "alice", "new@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(context.Background(), "carol", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, "secret", time.Hour)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The token subject is the username
	subject, err := auth.VerifyToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, "secret", time.Hour)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	// Wrong password and unknown username must fail identically
	_, wrongPass := svc.Login(context.Background(), "alice", "wrong")
	_, unknownUser := svc.Login(context.Background(), "nobody", "secret123")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknownUser)
}

func TestAuthService_UserByUsername(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, "secret", time.Hour)

	created, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	got, err := svc.UserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.UserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
