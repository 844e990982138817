package repository

import (
	"context"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, external_id, name, email, industry, sub_industry, bio, experience, skills, created_at, updated_at`

func (r *UserRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID).
		Scan(&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.Industry, &u.SubIndustry, &u.Bio, &u.ExperienceYears, &u.Skills, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user")
	}
	return &u, nil
}

// Upsert inserts u or updates the row with the same external id. u.ID and
// u.CreatedAt are refreshed from the stored row.
func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	err := r.pool.QueryRow(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (external_id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, industry = EXCLUDED.industry,
			sub_industry = EXCLUDED.sub_industry, bio = EXCLUDED.bio, experience = EXCLUDED.experience,
			skills = EXCLUDED.skills, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`,
		u.ID, u.ExternalID, u.Name, u.Email, u.Industry, u.SubIndustry, u.Bio, u.ExperienceYears, skills, u.CreatedAt, u.UpdatedAt).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "upsert user")
	}
	return nil
}
