package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/service/infant"
)

// InfantRepo implements infant.Repository against PostgreSQL.
type InfantRepo struct{ db *sql.DB }

// NewInfantRepo creates a Postgres-backed infant repository.
func NewInfantRepo(db *sql.DB) *InfantRepo { return &InfantRepo{db: db} }

func (r *InfantRepo) List(ctx context.Context, guardianID int64) ([]domain.Infant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT infant_id, guardian_id, name, birth_date, COALESCE(gender,'other'), created_at
		FROM infant
		WHERE guardian_id = $1
		ORDER BY infant_id
	`, guardianID)
	if err != nil {
		return nil, fmt.Errorf("list infants: %w", err)
	}
	defer rows.Close()

	var out []domain.Infant
	for rows.Next() {
		var i domain.Infant
		var birth sql.NullTime
		if err := rows.Scan(&i.InfantID, &i.GuardianID, &i.Name, &birth, &i.Gender, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan infant: %w", err)
		}
		if birth.Valid {
			i.BirthDate = &birth.Time
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *InfantRepo) Create(ctx context.Context, i *domain.Infant) (int64, error) {
	var id int64
	var birth interface{}
	if i.BirthDate != nil {
		birth = *i.BirthDate
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO infant (guardian_id, name, birth_date, gender, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING infant_id
	`, i.GuardianID, i.Name, birth, i.Gender).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create infant: %w", err)
	}
	return id, nil
}

func (r *InfantRepo) Delete(ctx context.Context, guardianID, infantID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM infant WHERE infant_id = $1 AND guardian_id = $2
	`, infantID, guardianID)
	if err != nil {
		return fmt.Errorf("delete infant: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return infant.ErrNotFound
	}
	return nil
}
