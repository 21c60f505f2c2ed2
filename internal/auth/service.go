package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// Sentinel errors for the auth service layer.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("name, email and password are required")
)

// Repository defines the guardian data access the auth service needs.
type Repository interface {
	// CreateGuardian inserts a guardian and returns its ID.
	CreateGuardian(ctx context.Context, g *domain.Guardian) (int64, error)

	// GetGuardianByEmail returns the active guardian with the given email,
	// or (nil, nil) when none exists.
	GetGuardianByEmail(ctx context.Context, email string) (*domain.Guardian, error)

	// TouchLastLogin records a successful login.
	TouchLastLogin(ctx context.Context, guardianID int64) error
}

// Service implements guardian registration and login.
type Service struct {
	repo       Repository
	tokens     *TokenManager
	bcryptCost int
}

// NewService creates an auth service.
func NewService(repo Repository, tokens *TokenManager, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// RegisterInput holds the fields for creating a guardian account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register creates a guardian account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Guardian, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetGuardianByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	g := &domain.Guardian{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Status:       "active",
	}
	id, err := s.repo.CreateGuardian(ctx, g)
	if err != nil {
		return nil, err
	}
	g.GuardianID = id
	return g, nil
}

// Login verifies credentials and returns a signed token plus the guardian.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Guardian, error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	g, err := s.repo.GetGuardianByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("lookup guardian: %w", err)
	}
	if g == nil || g.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(g.GuardianID, g.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	// Login still succeeds if the timestamp update fails; it is informational.
	if err := s.repo.TouchLastLogin(ctx, g.GuardianID); err != nil {
		log.Printf("[auth.Service] last login update failed for guardian %d: %v", g.GuardianID, err)
	}
	return token, g, nil
}
