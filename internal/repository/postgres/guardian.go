package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/service/notify"
)

// GuardianRepo implements auth.Repository and notify.GuardianResolver
// against PostgreSQL.
type GuardianRepo struct{ db *sql.DB }

// NewGuardianRepo creates a Postgres-backed guardian repository.
func NewGuardianRepo(db *sql.DB) *GuardianRepo { return &GuardianRepo{db: db} }

func (r *GuardianRepo) CreateGuardian(ctx context.Context, g *domain.Guardian) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO guardian (name, email, password_hash, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING guardian_id
	`, g.Name, g.Email, g.PasswordHash, nullIfEmpty(g.Phone), g.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create guardian: %w", err)
	}
	return id, nil
}

func (r *GuardianRepo) GetGuardianByEmail(ctx context.Context, email string) (*domain.Guardian, error) {
	g := &domain.Guardian{}
	var phone sql.NullString
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT guardian_id, name, email, COALESCE(password_hash,''), phone,
		       status, last_login_at, created_at
		FROM guardian
		WHERE email = $1 AND status = 'active'
	`, email).Scan(
		&g.GuardianID, &g.Name, &g.Email, &g.PasswordHash, &phone,
		&g.Status, &lastLogin, &g.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guardian by email: %w", err)
	}
	g.Phone = phone.String
	if lastLogin.Valid {
		g.LastLoginAt = &lastLogin.Time
	}
	return g, nil
}

func (r *GuardianRepo) TouchLastLogin(ctx context.Context, guardianID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE guardian SET last_login_at = NOW() WHERE guardian_id = $1
	`, guardianID)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// InfantGuardian resolves the guardian contact for an infant.
func (r *GuardianRepo) InfantGuardian(ctx context.Context, infantID int64) (*notify.GuardianInfo, error) {
	info := &notify.GuardianInfo{}
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT i.name, g.guardian_id, g.phone
		FROM infant i
		JOIN guardian g ON i.guardian_id = g.guardian_id
		WHERE i.infant_id = $1
	`, infantID).Scan(&info.InfantName, &info.GuardianID, &phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("infant %d not found", infantID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve guardian: %w", err)
	}
	info.Phone = phone.String
	return info, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
