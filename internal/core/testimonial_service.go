package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"coaching-backend/internal/cache"
	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

const testimonialsCacheKey = "testimonials:list"

type testimonialService struct {
	repo     db.TestimonialRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTestimonialService creates a TestimonialService. The cache may be nil.
func NewTestimonialService(repo db.TestimonialRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) TestimonialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &testimonialService{repo: repo, cache: c, cacheTTL: cacheTTL, logger: logger}
}

// ListTestimonials never fails: an empty collection or a read error yields
// the fallback set.
func (s *testimonialService) ListTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	if s.cache != nil {
		var cached []*models.Testimonial
		err := cache.GetJSON(ctx, s.cache, testimonialsCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Failed to read testimonials from cache", zap.Error(err))
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("Falling back to built-in testimonials", zap.Error(err))
		return FallbackTestimonials(), nil
	}
	if len(list) == 0 {
		list = FallbackTestimonials()
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, testimonialsCacheKey, list, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache testimonials", zap.Error(err))
		}
	}
	return list, nil
}
