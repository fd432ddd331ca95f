package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "schoolhub_backend/internals/features/school/announcements/model"
)

// AnnouncementService owns the read tracking: listing a page marks the
// page as seen with one idempotent batched upsert.
type AnnouncementService struct {
	DB *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{DB: db}
}

// MarkSeen records a view per announcement for this user in one
// batched upsert. Marking an already-seen announcement again never
// errors and never duplicates, it only refreshes viewed_at.
func (s *AnnouncementService) MarkSeen(ctx context.Context, userID uuid.UUID, announcementIDs []uuid.UUID) error {
	if len(announcementIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	views := make([]model.AnnouncementViewModel, 0, len(announcementIDs))
	for _, id := range announcementIDs {
		views = append(views, model.AnnouncementViewModel{
			UserID:         userID,
			AnnouncementID: id,
			ViewedAt:       now,
		})
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "announcement_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
		}).
		Create(&views).Error
}

// Views fetches the viewed_at timestamps for this user over a set of
// announcements.
func (s *AnnouncementService) Views(ctx context.Context, userID uuid.UUID, announcementIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	out := make(map[uuid.UUID]time.Time, len(announcementIDs))
	if len(announcementIDs) == 0 {
		return out, nil
	}
	var rows []model.AnnouncementViewModel
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND announcement_id IN ?", userID, announcementIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.AnnouncementID] = r.ViewedAt
	}
	return out, nil
}

// UnseenCount counts scoped announcements without a view row for this
// user. It uses the same scoped query as the list, so the count always
// agrees with what the list would show.
func (s *AnnouncementService) UnseenCount(ctx context.Context, scoped *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := scoped.WithContext(ctx).
		Where("id NOT IN (SELECT announcement_id FROM announcement_views WHERE user_id = ?)", userID).
		Count(&n).Error
	return n, err
}
