package postgres

import (
	"context"

	"teamup-service/internal/models"

	"gorm.io/gorm"
)

type SwipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db}
}

func (r *SwipeRepository) Create(ctx context.Context, swipe *models.Swipe) error {
	return r.db.WithContext(ctx).Create(swipe).Error
}

// HasLiked reports whether fromUserID has an outstanding like or super
// like on toUserID. Passes don't count towards a mutual match.
func (r *SwipeRepository) HasLiked(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("from_user_id = ? AND to_user_id = ? AND swipe_type IN ?",
			fromUserID, toUserID, []string{models.SwipeTypeLike, models.SwipeTypeSuper}).
		Count(&count).Error
	return count > 0, err
}
