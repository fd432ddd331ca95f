package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internals/databases"
	model "schoolhub_backend/internals/features/school/announcements/model"
	service "schoolhub_backend/internals/features/school/announcements/service"
)

func newAnnouncementEnv(t *testing.T) (*gorm.DB, *service.AnnouncementService, []uuid.UUID) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.AutoMigrate(db))

	ids := make([]uuid.UUID, 0, 3)
	for _, title := range []string{"Sports day", "Parent meeting", "Library hours"} {
		a := model.AnnouncementModel{
			Title:       title,
			Description: "details",
			Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&a).Error)
		ids = append(ids, a.ID)
	}
	return db, service.NewAnnouncementService(db), ids
}

func TestMarkSeenIsIdempotent(t *testing.T) {
	db, svc, ids := newAnnouncementEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.MarkSeen(ctx, userID, ids[:2]))

	first, err := svc.Views(ctx, userID, ids)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Marking again refreshes viewed_at without erroring or
	// duplicating the row.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.MarkSeen(ctx, userID, ids[:2]))

	second, err := svc.Views(ctx, userID, ids)
	require.NoError(t, err)
	require.Len(t, second, 2)
	for id, at := range first {
		assert.True(t, second[id].After(at), "viewed_at not refreshed for %s", id)
	}

	var n int64
	require.NoError(t, db.Model(&model.AnnouncementViewModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestMarkSeenEmptyPage(t *testing.T) {
	_, svc, _ := newAnnouncementEnv(t)
	require.NoError(t, svc.MarkSeen(context.Background(), uuid.New(), nil))
}

func TestUnseenCountTracksViews(t *testing.T) {
	db, svc, ids := newAnnouncementEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	scoped := func() *gorm.DB { return db.Model(&model.AnnouncementModel{}) }

	n, err := svc.UnseenCount(ctx, scoped(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	require.NoError(t, svc.MarkSeen(ctx, userID, ids[:1]))
	n, err = svc.UnseenCount(ctx, scoped(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, svc.MarkSeen(ctx, userID, ids))
	n, err = svc.UnseenCount(ctx, scoped(), userID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Another user's views do not leak into this user's count.
	n, err = svc.UnseenCount(ctx, scoped(), uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
