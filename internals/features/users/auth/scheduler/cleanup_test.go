package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "quizcourse_backend/internals/features/users/auth/model"
	"quizcourse_backend/internals/features/users/auth/scheduler"
	helperAuth "quizcourse_backend/internals/helpers/auth"
	"quizcourse_backend/internals/tests"
)

func TestRunBlacklistCleanup(t *testing.T) {
	db := tests.OpenDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, helperAuth.AddToBlacklist(ctx, db, "old-token", tests.Secret, now.Add(-10*24*time.Hour)))
	require.NoError(t, helperAuth.AddToBlacklist(ctx, db, "recent-token", tests.Secret, now.Add(-time.Hour)))
	require.NoError(t, helperAuth.AddToBlacklist(ctx, db, "live-token", tests.Secret, now.Add(time.Hour)))

	n, err := scheduler.RunBlacklistCleanup(ctx, db, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left int64
	require.NoError(t, db.Unscoped().Model(&authModel.TokenBlacklist{}).Count(&left).Error)
	assert.Equal(t, int64(2), left)

	live, err := helperAuth.IsBlacklisted(ctx, db, "live-token", tests.Secret)
	require.NoError(t, err)
	assert.True(t, live)
	// expired rows no longer block even before they are purged
	recent, err := helperAuth.IsBlacklisted(ctx, db, "recent-token", tests.Secret)
	require.NoError(t, err)
	assert.False(t, recent)

	n, err = scheduler.RunBlacklistCleanup(ctx, db, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStartBlacklistCleanupScheduler(t *testing.T) {
	db := tests.OpenDB(t)

	c, err := scheduler.StartBlacklistCleanupScheduler(db, "@daily", 7)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()

	_, err = scheduler.StartBlacklistCleanupScheduler(db, "not a spec", 7)
	assert.Error(t, err)
}
