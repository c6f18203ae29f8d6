package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cropadvisor/entities"
	"cropadvisor/pkg/catalog"
	"cropadvisor/pkg/metrics"
	"cropadvisor/pkg/recommendation/repository"
	"cropadvisor/pkg/recommendation/service"
	"cropadvisor/pkg/scoring"
)

// Recommender ranks crops for a reading; *scoring.Ranker implements it.
type Recommender interface {
	Recommend(p entities.ParameterSet) []entities.ScoredCrop
}

type Options struct {
	Delay time.Duration    // simulated processing time before ranking
	TTL   time.Duration    // how long a saved result may be replayed
	Now   func() time.Time // defaults to time.Now
}

type recommendationSvc struct {
	ranker Recommender
	cat    *catalog.Catalog
	repo   repository.RecommendationRepository
	log    *zap.Logger
	m      *metrics.Metrics
	opts   Options
}

func New(ranker Recommender, cat *catalog.Catalog, repo repository.RecommendationRepository, log *zap.Logger, m *metrics.Metrics, opts Options) service.RecommendationService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &recommendationSvc{ranker: ranker, cat: cat, repo: repo, log: log, m: m, opts: opts}
}

func (s *recommendationSvc) Analyze(ctx context.Context, clientID string, p entities.ParameterSet) (*entities.SavedRecommendation, error) {
	if err := p.Validate(); err != nil {
		var fe entities.FieldErrors
		if errors.As(err, &fe) {
			for field := range fe {
				s.m.InvalidInputs.WithLabelValues(field).Inc()
			}
		}
		return nil, err
	}

	if s.opts.Delay > 0 {
		t := time.NewTimer(s.opts.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	recs := s.ranker.Recommend(p)
	if len(recs) == 0 {
		return nil, service.ErrNoSuitableCrops
	}

	out := &entities.SavedRecommendation{
		ClientID:        clientID,
		Key:             service.LastRecommendationKey,
		Params:          p,
		Recommendations: recs,
		Advice:          scoring.Advise(p),
		SavedAt:         s.opts.Now().UTC(),
	}

	s.m.Analyses.Inc()
	s.m.TopSuitability.Observe(recs[0].Suitability)
	if recs[0].Fallback {
		s.m.Fallbacks.Inc()
	}

	// The cache is advisory: a failed write does not fail the request.
	if clientID != "" {
		if err := s.repo.Save(ctx, out); err != nil {
			s.log.Warn("save last recommendation", zap.String("client_id", clientID), zap.Error(err))
		}
	}

	s.log.Debug("analyzed",
		zap.String("client_id", clientID),
		zap.String("primary", recs[0].Name),
		zap.Float64("suitability", recs[0].Suitability),
		zap.Int("count", len(recs)),
	)
	return out, nil
}

// Last replays the client's saved result while it is younger than the TTL.
func (s *recommendationSvc) Last(ctx context.Context, clientID string) (*entities.SavedRecommendation, error) {
	rec, err := s.repo.Find(ctx, clientID, service.LastRecommendationKey)
	if errors.Is(err, repository.ErrNotFound) {
		s.m.CacheReplays.WithLabelValues("miss").Inc()
		return nil, service.ErrNoRecent
	}
	if err != nil {
		return nil, err
	}
	if s.opts.Now().Sub(rec.SavedAt) >= s.opts.TTL {
		s.m.CacheReplays.WithLabelValues("stale").Inc()
		return nil, service.ErrNoRecent
	}
	s.m.CacheReplays.WithLabelValues("hit").Inc()
	return rec, nil
}

func (s *recommendationSvc) Reset(ctx context.Context, clientID string) error {
	return s.repo.Delete(ctx, clientID, service.LastRecommendationKey)
}

func (s *recommendationSvc) Sample() entities.ParameterSet { return entities.SampleParameters() }

func (s *recommendationSvc) Crops() []entities.CropProfile { return s.cat.Entries() }

func (s *recommendationSvc) Crop(key string) (entities.CropProfile, error) {
	c, ok := s.cat.Get(key)
	if !ok {
		return entities.CropProfile{}, fmt.Errorf("%w: %q", service.ErrUnknownCrop, key)
	}
	return c, nil
}
