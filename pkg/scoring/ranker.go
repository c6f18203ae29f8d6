package scoring

import (
	"fmt"
	"sort"

	"cropadvisor/entities"
	"cropadvisor/pkg/catalog"
)

// MinSuitability is the exclusive lower bound a crop must beat to be recommended.
const MinSuitability = 40.0

// Ranker scores every crop of an injected catalog.
type Ranker struct {
	cat *catalog.Catalog
}

func NewRanker(cat *catalog.Catalog) *Ranker {
	return &Ranker{cat: cat}
}

// Recommend returns the crops scoring above MinSuitability, best first, with
// catalog order kept among equal scores. When nothing qualifies it returns the
// single Fallback record, so the result is never empty.
func (r *Ranker) Recommend(p entities.ParameterSet) []entities.ScoredCrop {
	entries := r.cat.Entries()
	out := make([]entities.ScoredCrop, 0, len(entries))
	for _, crop := range entries {
		s := Score(crop, p)
		if s <= MinSuitability {
			continue
		}
		sc := entities.ScoredCrop{CropProfile: crop, Suitability: s}
		sc.Score = DisplayScore(s)
		out = append(out, sc)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Suitability > out[j].Suitability })

	if len(out) == 0 {
		return []entities.ScoredCrop{Fallback()}
	}
	return out
}

// DisplayScore renders a 0–100 suitability on a ten-point scale, e.g. "9.5/10".
func DisplayScore(suitability float64) string {
	return fmt.Sprintf("%.1f/10", suitability/10)
}

// Fallback is the fixed placeholder for readings no crop tolerates. It does not
// depend on the reading.
func Fallback() entities.ScoredCrop {
	return entities.ScoredCrop{
		CropProfile: entities.CropProfile{
			Key:        "barley",
			Name:       "Barley",
			Confidence: "65% Confidence",
			Score:      "6.5/10",
			Yield:      "1-2 tons/hectare",
			Season:     "Cool Season",
			Reasoning:  "Most tolerant option for current conditions. Consider soil improvement and irrigation adjustments.",
			Tags:       []string{"Hardy Crop", "Stress Tolerant"},
		},
		Suitability: 65,
		Fallback:    true,
	}
}
