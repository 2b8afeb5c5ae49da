package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/turnbattle/internal/testutil"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	// SetupTestDB already applied everything
	version, err := RunMigrations(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	again, err := RunMigrations(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, version, again)

	var skills int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM skills").Scan(&skills))
	assert.Equal(t, 5, skills, "starter catalog seeded once")
}
