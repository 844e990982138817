package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/IdiotCoffee/jobforge/internal/infrastructure/migration"
	"github.com/IdiotCoffee/jobforge/pkg/infrastructure"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to JOBFORGE_TEST_DATABASE_URL and migrates it; tests are
// skipped when it is not set.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("JOBFORGE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("JOBFORGE_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := infrastructure.NewPool(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, migration.RunMigrations(ctx, pool))
	// running twice must be harmless
	require.NoError(t, migration.RunMigrations(ctx, pool))
	return pool
}

func newUser(t *testing.T, users *UserRepo) *domain.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := &domain.User{ID: uuid.New(), ExternalID: "ext_" + uuid.NewString(), Name: "Ada", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Upsert(context.Background(), u))
	return u
}

func TestUserRepo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepo(pool)

	missing, err := users.GetByExternalID(ctx, "nobody_"+uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)

	u := newUser(t, users)
	assert.Empty(t, u.Skills)

	firstID := u.ID
	u.ID = uuid.New()
	u.Industry = "tech"
	u.Skills = []string{"Go", "SQL"}
	require.NoError(t, users.Upsert(ctx, u))
	assert.Equal(t, firstID, u.ID)

	got, err := users.GetByExternalID(ctx, u.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, "tech", got.Industry)
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills)
}

func TestResumeRepoUpsertKeepsOneRow(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	u := newUser(t, NewUserRepo(pool))
	resumes := NewResumeRepo(pool)

	none, err := resumes.GetByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := resumes.Upsert(ctx, u.ID, "# one")
	require.NoError(t, err)
	second, err := resumes.Upsert(ctx, u.ID, "# two")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := resumes.GetByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "# two", got.Content)
}

func TestCoverLetterRepo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepo(pool)
	owner := newUser(t, users)
	other := newUser(t, users)
	letters := NewCoverLetterRepo(pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	cl := &domain.CoverLetter{
		ID: uuid.New(), UserID: owner.ID, CompanyName: "Acme", JobTitle: "Engineer",
		JobDescription: "Go", Content: "Dear Acme", Status: domain.CoverLetterCompleted,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, letters.Create(ctx, cl))

	list, err := letters.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dear Acme", list[0].Content)

	hidden, err := letters.Get(ctx, other.ID, cl.ID)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	ok, err := letters.Delete(ctx, other.ID, cl.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = letters.Delete(ctx, owner.ID, cl.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err = letters.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
