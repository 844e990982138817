package repository

import (
	"context"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

type CoverLetterRepo struct {
	pool *pgxpool.Pool
}

func NewCoverLetterRepo(pool *pgxpool.Pool) *CoverLetterRepo {
	return &CoverLetterRepo{pool: pool}
}

const coverLetterColumns = `id, user_id, company_name, job_title, job_description, content, status, created_at, updated_at`

func scanCoverLetter(row pgx.Row, cl *domain.CoverLetter) error {
	return row.Scan(&cl.ID, &cl.UserID, &cl.CompanyName, &cl.JobTitle, &cl.JobDescription, &cl.Content, &cl.Status, &cl.CreatedAt, &cl.UpdatedAt)
}

func (r *CoverLetterRepo) Create(ctx context.Context, cl *domain.CoverLetter) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO cover_letters (`+coverLetterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		cl.ID, cl.UserID, cl.CompanyName, cl.JobTitle, cl.JobDescription, cl.Content, cl.Status, cl.CreatedAt, cl.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert cover letter")
	}
	return nil
}

// ListByUser returns the user's letters, newest first.
func (r *CoverLetterRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CoverLetter, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+coverLetterColumns+` FROM cover_letters WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list cover letters")
	}
	defer rows.Close()

	out := []domain.CoverLetter{}
	for rows.Next() {
		var cl domain.CoverLetter
		if err := scanCoverLetter(rows, &cl); err != nil {
			return nil, errors.Wrap(err, "scan cover letter")
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (r *CoverLetterRepo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.CoverLetter, error) {
	var cl domain.CoverLetter
	err := scanCoverLetter(r.pool.QueryRow(ctx, `SELECT `+coverLetterColumns+` FROM cover_letters WHERE id = $1 AND user_id = $2`, id, userID), &cl)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select cover letter")
	}
	return &cl, nil
}

func (r *CoverLetterRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cover_letters WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, errors.Wrap(err, "delete cover letter")
	}
	return tag.RowsAffected() > 0, nil
}
