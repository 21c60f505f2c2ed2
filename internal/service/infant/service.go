// Package infant manages the guardian's registered children. Every
// operation is scoped to the owning guardian; cross-guardian access
// resolves to ErrNotFound.
package infant

import (
	"context"
	"errors"
	"time"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// Sentinel errors for the infant service layer.
var (
	ErrNotFound    = errors.New("infant not found")
	ErrMissingName = errors.New("name is required")
)

// Repository defines the data access contract for infants.
type Repository interface {
	// List returns a guardian's infants ordered by ID.
	List(ctx context.Context, guardianID int64) ([]domain.Infant, error)

	// Create inserts an infant and returns its ID.
	Create(ctx context.Context, i *domain.Infant) (int64, error)

	// Delete removes an infant owned by the guardian. Returns ErrNotFound
	// when no such infant exists for that guardian.
	Delete(ctx context.Context, guardianID, infantID int64) error
}

// Service implements infant management.
type Service struct {
	repo Repository
}

// NewService creates an infant service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the guardian's infants.
func (s *Service) List(ctx context.Context, guardianID int64) ([]domain.Infant, error) {
	return s.repo.List(ctx, guardianID)
}

// CreateInput holds the fields for registering an infant.
type CreateInput struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD, optional
	Gender    string `json:"gender"`
}

// Create validates and registers an infant for the guardian.
func (s *Service) Create(ctx context.Context, guardianID int64, input CreateInput) (*domain.Infant, error) {
	if input.Name == "" {
		return nil, ErrMissingName
	}

	i := &domain.Infant{
		GuardianID: guardianID,
		Name:       input.Name,
		Gender:     input.Gender,
	}
	if i.Gender == "" {
		i.Gender = "other"
	}
	if input.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", input.BirthDate); err == nil {
			i.BirthDate = &t
		}
	}

	id, err := s.repo.Create(ctx, i)
	if err != nil {
		return nil, err
	}
	i.InfantID = id
	return i, nil
}

// Delete removes an infant owned by the guardian.
func (s *Service) Delete(ctx context.Context, guardianID, infantID int64) error {
	return s.repo.Delete(ctx, guardianID, infantID)
}
