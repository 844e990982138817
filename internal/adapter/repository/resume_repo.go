package repository

import (
	"context"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

type ResumeRepo struct {
	pool *pgxpool.Pool
}

func NewResumeRepo(pool *pgxpool.Pool) *ResumeRepo {
	return &ResumeRepo{pool: pool}
}

// Upsert keeps exactly one resume per user.
func (r *ResumeRepo) Upsert(ctx context.Context, userID uuid.UUID, content string) (*domain.StoredResume, error) {
	var s domain.StoredResume
	err := r.pool.QueryRow(ctx, `INSERT INTO resumes (id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET content = EXCLUDED.content, updated_at = now()
		RETURNING id, user_id, content, created_at, updated_at`,
		uuid.New(), userID, content).
		Scan(&s.ID, &s.UserID, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "upsert resume")
	}
	return &s, nil
}

func (r *ResumeRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.StoredResume, error) {
	var s domain.StoredResume
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, content, created_at, updated_at FROM resumes WHERE user_id = $1`, userID).
		Scan(&s.ID, &s.UserID, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select resume")
	}
	return &s, nil
}
