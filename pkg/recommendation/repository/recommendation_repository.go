package repository

import (
	"context"
	"errors"

	"cropadvisor/entities"
)

var ErrNotFound = errors.New("saved recommendation not found")

type RecommendationRepository interface {
	Save(ctx context.Context, rec *entities.SavedRecommendation) error
	Find(ctx context.Context, clientID, key string) (*entities.SavedRecommendation, error)
	Delete(ctx context.Context, clientID, key string) error
}
