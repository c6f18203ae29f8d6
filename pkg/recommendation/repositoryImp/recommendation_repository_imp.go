package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cropadvisor/entities"
	"cropadvisor/pkg/recommendation/repository"
)

type recRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecommendationRepository { return &recRepo{db} }

// Save replaces whatever the client had stored under the same key.
func (r *recRepo) Save(ctx context.Context, rec *entities.SavedRecommendation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"params", "recommendations", "advice", "saved_at"}),
	}).Create(rec).Error
}

func (r *recRepo) Find(ctx context.Context, clientID, key string) (*entities.SavedRecommendation, error) {
	var out entities.SavedRecommendation
	err := r.db.WithContext(ctx).Where("client_id = ? AND cache_key = ?", clientID, key).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *recRepo) Delete(ctx context.Context, clientID, key string) error {
	return r.db.WithContext(ctx).Where("client_id = ? AND cache_key = ?", clientID, key).Delete(&entities.SavedRecommendation{}).Error
}
