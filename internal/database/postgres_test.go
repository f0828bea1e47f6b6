package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnectPostgres_Unreachable(t *testing.T) {
	db, err := ConnectPostgres(context.Background(), "postgres://127.0.0.1:1/journal?sslmode=disable&connect_timeout=1", zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestConnectPostgres_SchemaIsSeparateStep(t *testing.T) {
	uri := os.Getenv("POSTGRES_TEST_URI")
	if uri == "" {
		t.Skip("POSTGRES_TEST_URI not set")
	}
	ctx := context.Background()

	db, err := ConnectPostgres(ctx, uri, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = DisconnectPostgres(db) })

	require.NoError(t, InitPostgresTables(ctx, db))
	require.NoError(t, InitPostgresTables(ctx, db), "schema bootstrap is idempotent")

	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM information_schema.tables WHERE table_name = 'journal_entries'`).Scan(&n))
	assert.Equal(t, 1, n)
}
