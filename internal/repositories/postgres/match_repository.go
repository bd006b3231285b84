package postgres

import (
	"context"
	"errors"

	"teamup-service/internal/models"

	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db}
}

func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

func (r *MatchRepository) MatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	var m models.Match
	err := r.db.WithContext(ctx).First(&m, "id = ?", matchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepository) MatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

// MatchBetween finds an existing match for the pair in either order.
func (r *MatchRepository) MatchBetween(ctx context.Context, userA, userB string) (*models.Match, error) {
	var m models.Match
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userA, userB, userB, userA).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepository) TouchLastMessageAt(ctx context.Context, matchID string) error {
	return r.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ?", matchID).
		Update("last_message_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
