package entities

import "time"

// ScoredCrop is a catalog crop ranked against one ParameterSet.
type ScoredCrop struct {
	CropProfile
	Suitability float64 `json:"suitability"`
	Fallback    bool    `json:"fallback,omitempty"`
}

type Advice struct {
	SoilAdvice       string `json:"soil_advice"`
	FertilizerAdvice string `json:"fertilizer_advice"`
}

// SavedRecommendation is the advisory cache of a client's last result.
type SavedRecommendation struct {
	ID              uint         `gorm:"primaryKey" json:"-"`
	ClientID        string       `gorm:"uniqueIndex:idx_client_key" json:"client_id"`
	Key             string       `gorm:"column:cache_key;uniqueIndex:idx_client_key" json:"key"`
	Params          ParameterSet `gorm:"serializer:json" json:"params"`
	Recommendations []ScoredCrop `gorm:"serializer:json" json:"recommendations"`
	Advice          Advice       `gorm:"serializer:json" json:"advice"`
	SavedAt         time.Time    `json:"timestamp"`
}

// Primary is the best-ranked crop. Recommendations is never empty once ranked.
func (s *SavedRecommendation) Primary() ScoredCrop {
	if len(s.Recommendations) == 0 {
		return ScoredCrop{}
	}
	return s.Recommendations[0]
}

// Alternatives returns up to n runner-up crops.
func (s *SavedRecommendation) Alternatives(n int) []ScoredCrop {
	if len(s.Recommendations) <= 1 || n <= 0 {
		return nil
	}
	rest := s.Recommendations[1:]
	if len(rest) > n {
		rest = rest[:n]
	}
	return rest
}
