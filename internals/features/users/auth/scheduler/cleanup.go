package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	helperAuth "quizcourse_backend/internals/helpers/auth"
)

// StartBlacklistCleanupScheduler runs RunBlacklistCleanup on the given cron
// expression ("@daily", "0 3 * * *", ...). The caller stops the returned cron on shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string, ttlDays int) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = RunBlacklistCleanup(ctx, db, ttlDays)
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] token_blacklist cleanup scheduled (%s, ttl=%dd)", spec, ttlDays)
	return c, nil
}

// RunBlacklistCleanup deletes blacklist rows that expired more than ttlDays ago.
func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, ttlDays int) (int64, error) {
	if ttlDays < 0 {
		ttlDays = 0
	}
	deleteBefore := time.Now().UTC().Add(-time.Duration(ttlDays) * 24 * time.Hour)

	n, err := helperAuth.PurgeExpired(ctx, db, deleteBefore)
	if err != nil {
		log.Printf("[CLEANUP ERROR] token_blacklist: %v", err)
		return 0, err
	}
	log.Printf("[CLEANUP] %d expired tokens removed", n)
	return n, nil
}
