package service

import (
	"context"
	"errors"

	"cropadvisor/entities"
)

// LastRecommendationKey is the fixed cache key a client's last result is stored under.
const LastRecommendationKey = "lastRecommendation"

// MaxAlternatives is how many runner-up crops are shown next to the primary one.
const MaxAlternatives = 3

var (
	// ErrNoSuitableCrops is returned when ranking yields nothing. The ranker
	// falls back to a fixed record, so this only fires if it is replaced.
	ErrNoSuitableCrops = errors.New("no suitable crops found for these conditions")
	ErrNoRecent        = errors.New("no recent recommendation")
	ErrUnknownCrop     = errors.New("unknown crop")
)

type RecommendationService interface {
	Analyze(ctx context.Context, clientID string, p entities.ParameterSet) (*entities.SavedRecommendation, error)
	Last(ctx context.Context, clientID string) (*entities.SavedRecommendation, error)
	Reset(ctx context.Context, clientID string) error
	Sample() entities.ParameterSet
	Crops() []entities.CropProfile
	Crop(key string) (entities.CropProfile, error)
}
