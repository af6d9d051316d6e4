package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wscmeso/mesocycle-planner/internal/cache"
	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/metrics"
	"wscmeso/mesocycle-planner/internal/repository"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrEmptySearchQuery = errors.New("search query cannot be empty")
)

// Recommendation defaults.
const (
	DefaultRecommendationLevel = "intermediate"
	RecommendationLimit        = 8
	maxSearchResults           = 50
)

// ExercisePage is one page of the library.
type ExercisePage struct {
	Exercises []domain.Exercise `json:"exercises"`
	Total     int64             `json:"total"`
}

// --- Service Interface ---
type ExerciseService interface {
	GetExercise(ctx context.Context, id int) (*domain.Exercise, error)
	ListExercises(ctx context.Context, filter repository.ExerciseFilter, page repository.Page) (*ExercisePage, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Exercise, error)
	// Recommended returns up to RecommendationLimit exercises of group,
	// preferring those rated at level.
	Recommended(ctx context.Context, group domain.MuscleGroup, level string) ([]domain.Exercise, error)
}

// --- Service Implementation ---

// exerciseService reads the library through a cache. The library is seeded
// out of band, so entries only expire.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	cache        cache.Cache
	ttl          time.Duration
	log          *zap.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, c cache.Cache, ttl time.Duration, log *zap.Logger) ExerciseService {
	if c == nil {
		c = cache.Nop{}
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		cache:        c,
		ttl:          ttl,
		log:          log,
	}
}

func (s *exerciseService) GetExercise(ctx context.Context, id int) (*domain.Exercise, error) {
	key := fmt.Sprintf("exercise:%d", id)
	var cached domain.Exercise
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrExerciseNotFound)
	}
	s.store(ctx, key, exercise)
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, filter repository.ExerciseFilter, page repository.Page) (*ExercisePage, error) {
	page = page.Normalize()
	key := fmt.Sprintf("exercises:list:%s:%s:%s:%d:%d", filter.MuscleGroup, filter.Type, filter.Difficulty, page.Number, page.Size)
	var cached ExercisePage
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	exercises, total, err := s.exerciseRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	result := &ExercisePage{Exercises: exercises, Total: total}
	s.store(ctx, key, result)
	return result, nil
}

// Search is not cached; queries are free text.
func (s *exerciseService) Search(ctx context.Context, query string, limit int) ([]domain.Exercise, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearchQuery
	}
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	return s.exerciseRepo.Search(ctx, query, limit)
}

func (s *exerciseService) Recommended(ctx context.Context, group domain.MuscleGroup, level string) ([]domain.Exercise, error) {
	if !group.IsValid() {
		return nil, &domain.ValidationError{Field: "muscle_group", Message: fmt.Sprintf("unknown muscle group %q", group)}
	}
	if level == "" {
		level = DefaultRecommendationLevel
	}
	key := fmt.Sprintf("exercises:recommended:%s:%s", group, level)
	var cached []domain.Exercise
	if s.lookup(ctx, key, &cached) {
		return cached, nil
	}

	first := repository.Page{Number: 1, Size: RecommendationLimit}
	matching, _, err := s.exerciseRepo.List(ctx, repository.ExerciseFilter{MuscleGroup: group, Difficulty: level}, first)
	if err != nil {
		return nil, err
	}

	result := matching
	if len(result) < RecommendationLimit {
		// Top up with the rest of the group. Fetching a full extra page is
		// enough to fill the gap after skipping the ones already chosen.
		fill, _, err := s.exerciseRepo.List(ctx, repository.ExerciseFilter{MuscleGroup: group},
			repository.Page{Number: 1, Size: 2 * RecommendationLimit})
		if err != nil {
			return nil, err
		}
		seen := make(map[int]struct{}, len(result))
		for _, e := range result {
			seen[e.ID] = struct{}{}
		}
		for _, e := range fill {
			if len(result) == RecommendationLimit {
				break
			}
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			result = append(result, e)
		}
	}
	if result == nil {
		result = []domain.Exercise{}
	}
	s.store(ctx, key, result)
	return result, nil
}

// lookup reports a cache hit. Cache failures are logged and treated as misses.
func (s *exerciseService) lookup(ctx context.Context, key string, result any) bool {
	found, err := s.cache.Get(ctx, key, result)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	case found:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return true
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
}

func (s *exerciseService) store(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
