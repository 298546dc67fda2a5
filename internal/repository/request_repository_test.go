package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/motomotoph/mc1lovecamerabot/internal/app"
	"github.com/motomotoph/mc1lovecamerabot/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestRepositoryRejectsWrongWidth(t *testing.T) {
	repo := NewRequestRepository(nil)

	err := repo.Append(context.Background(), []string{"mc00001", "extra"})

	assert.ErrorIs(t, err, ErrRowWidth)
}

// Нужна живая база: TEST_DB_DSN=postgres://... go test ./internal/repository
func TestRequestRepositoryPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	defer migrator.Close()
	require.NoError(t, migrator.Run(ctx))

	_, err = pool.Exec(ctx, "TRUNCATE booking_requests")
	require.NoError(t, err)

	repo := NewRequestRepository(pool)
	require.NoError(t, repo.Append(ctx, testRow()))

	second := testRow()
	second[0] = "mc00043"
	require.NoError(t, repo.Append(ctx, second))

	rows, err := repo.ListRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, testRow(), rows[0])
	assert.Equal(t, "mc00043", rows[1][0])
}
