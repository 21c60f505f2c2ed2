package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

type memGuardians struct {
	nextID    int64
	byEmail   map[string]*domain.Guardian
	touched   []int64
	touchErr  error
	lookupErr error
}

func newMemGuardians() *memGuardians {
	return &memGuardians{byEmail: map[string]*domain.Guardian{}}
}

func (m *memGuardians) CreateGuardian(ctx context.Context, g *domain.Guardian) (int64, error) {
	m.nextID++
	g.GuardianID = m.nextID
	m.byEmail[g.Email] = g
	return g.GuardianID, nil
}

func (m *memGuardians) GetGuardianByEmail(ctx context.Context, email string) (*domain.Guardian, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.byEmail[email], nil
}

func (m *memGuardians) TouchLastLogin(ctx context.Context, guardianID int64) error {
	m.touched = append(m.touched, guardianID)
	return m.touchErr
}

func testService(repo Repository) *Service {
	return NewService(repo, NewTokenManager("test-secret", time.Hour), bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	repo := newMemGuardians()
	svc := testService(repo)

	g, err := svc.Register(context.Background(), RegisterInput{
		Name:     "김보호",
		Email:    "parent@example.com",
		Password: "hunter2",
		Phone:    "010-1234-5678",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), g.GuardianID)
	assert.Equal(t, "active", g.Status)
	assert.NotEqual(t, "hunter2", g.PasswordHash, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte("hunter2")))
}

func TestRegisterValidation(t *testing.T) {
	svc := testService(newMemGuardians())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "a", Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemGuardians()
	svc := testService(repo)

	input := RegisterInput{Name: "김보호", Email: "parent@example.com", Password: "hunter2"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newMemGuardians()
	svc := testService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "김보호", Email: "parent@example.com", Password: "hunter2"})
	require.NoError(t, err)

	token, g, err := svc.Login(context.Background(), "parent@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, []int64{g.GuardianID}, repo.touched)

	claims, err := NewTokenManager("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, g.GuardianID, claims.GuardianID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newMemGuardians()
	svc := testService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "김보호", Email: "parent@example.com", Password: "hunter2"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "parent@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginNoPasswordHash(t *testing.T) {
	repo := newMemGuardians()
	repo.byEmail["sso@example.com"] = &domain.Guardian{GuardianID: 9, Email: "sso@example.com"}
	svc := testService(repo)

	_, _, err := svc.Login(context.Background(), "sso@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSurvivesTouchFailure(t *testing.T) {
	repo := newMemGuardians()
	repo.touchErr = errors.New("deadlock")
	svc := testService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "김보호", Email: "parent@example.com", Password: "hunter2"})
	require.NoError(t, err)

	token, _, err := svc.Login(context.Background(), "parent@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
