package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// openTestDB opens a fresh in-memory database with every table initialized.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewSourceRepository(db).Init(ctx))
	require.NoError(t, NewSessionRepository(db).Init(ctx))
	return db
}
