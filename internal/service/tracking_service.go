package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/metrics"
	"wscmeso/mesocycle-planner/internal/repository"

	"go.uber.org/zap"
)

// Stats window bounds, in weeks.
const (
	DefaultStatsWeeks = 4
	MaxStatsWeeks     = 52
)

// SessionInput carries a logged session. MesocycleID is optional; when set,
// a nil WeekNumber is filled with the block's week on Date.
type SessionInput struct {
	MesocycleID      string
	MicrocycleNumber *int
	WeekNumber       *int
	Date             time.Time
	Exercises        []domain.ExercisePerformed
	Notes            string
}

// ProgressionPoint is one session in a stats window. Per-exercise fields are
// zero when the stats are not scoped to an exercise.
type ProgressionPoint struct {
	SessionID          string    `json:"sessionId"`
	Date               time.Time `json:"date"`
	Volume             float64   `json:"volume"`
	AverageRPE         float64   `json:"averageRpe,omitempty"`
	BestEstimated1RM   float64   `json:"bestEstimated1rm,omitempty"`
	ExerciseSetsLogged int       `json:"exerciseSetsLogged,omitempty"`
}

// TrainingStats aggregates the sessions of a window.
type TrainingStats struct {
	ExerciseID      int                `json:"exerciseId,omitempty"`
	WeeksBack       int                `json:"weeksBack"`
	TotalSessions   int                `json:"totalSessions"`
	TotalVolume     float64            `json:"totalVolume"`
	ProgressionData []ProgressionPoint `json:"progressionData"`
}

type TrackingService interface {
	LogSession(ctx context.Context, userID string, in SessionInput) (*domain.TrainingSession, error)
	// Stats covers the last weeksBack weeks, optionally narrowed to one
	// exercise. weeksBack 0 means DefaultStatsWeeks.
	Stats(ctx context.Context, userID string, exerciseID, weeksBack int) (*TrainingStats, error)
}

type trackingService struct {
	sessionRepo   repository.TrainingSessionRepository
	mesocycleRepo repository.MesocycleRepository
	exerciseRepo  repository.ExerciseRepository
	log           *zap.Logger
	now           func() time.Time
}

func NewTrackingService(
	sessionRepo repository.TrainingSessionRepository,
	mesocycleRepo repository.MesocycleRepository,
	exerciseRepo repository.ExerciseRepository,
	log *zap.Logger,
) TrackingService {
	return &trackingService{
		sessionRepo:   sessionRepo,
		mesocycleRepo: mesocycleRepo,
		exerciseRepo:  exerciseRepo,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *trackingService) LogSession(ctx context.Context, userID string, in SessionInput) (*domain.TrainingSession, error) {
	session, err := domain.NewTrainingSession(userID, in.MesocycleID, in.Date, in.Exercises, in.Notes)
	if err != nil {
		return nil, err
	}

	checked := make(map[int]struct{}, len(in.Exercises))
	for _, ex := range in.Exercises {
		if _, ok := checked[ex.ExerciseID]; ok {
			continue
		}
		if _, err := s.exerciseRepo.GetByID(ctx, ex.ExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &domain.ValidationError{Field: "exercise_id", Message: fmt.Sprintf("unknown exercise %d", ex.ExerciseID)}
			}
			return nil, err
		}
		checked[ex.ExerciseID] = struct{}{}
	}

	session.MicrocycleNumber = in.MicrocycleNumber
	session.WeekNumber = in.WeekNumber
	if in.MesocycleID != "" {
		m, err := s.mesocycleRepo.GetByID(ctx, in.MesocycleID, userID)
		if err != nil {
			return nil, mapNotFound(err, ErrMesocycleNotFound)
		}
		if session.WeekNumber == nil {
			if week := m.CurrentWeek(session.Date); week > 0 {
				session.WeekNumber = &week
			}
		}
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create training session: %w", err)
	}
	metrics.SessionsLogged.Inc()
	s.log.Debug("training session logged",
		zap.String("session_id", session.ID),
		zap.Int("exercises", len(session.Exercises)),
		zap.Float64("volume", session.TotalVolume()),
	)
	return session, nil
}

func (s *trackingService) Stats(ctx context.Context, userID string, exerciseID, weeksBack int) (*TrainingStats, error) {
	if weeksBack == 0 {
		weeksBack = DefaultStatsWeeks
	}
	if weeksBack < 1 || weeksBack > MaxStatsWeeks {
		return nil, &domain.ValidationError{Field: "weeks_back", Message: fmt.Sprintf("weeks back must be between 1 and %d", MaxStatsWeeks)}
	}
	if exerciseID < 0 {
		return nil, &domain.ValidationError{Field: "exercise_id", Message: "exercise id must be positive"}
	}

	since := domain.DateOnly(s.now()).AddDate(0, 0, -7*weeksBack)
	sessions, err := s.sessionRepo.ListSince(ctx, userID, since, exerciseID)
	if err != nil {
		return nil, err
	}

	stats := &TrainingStats{
		ExerciseID:      exerciseID,
		WeeksBack:       weeksBack,
		TotalSessions:   len(sessions),
		ProgressionData: make([]ProgressionPoint, 0, len(sessions)),
	}
	for i := range sessions {
		sess := &sessions[i]
		point := ProgressionPoint{SessionID: sess.ID, Date: sess.Date}
		if exerciseID == 0 {
			point.Volume = sess.TotalVolume()
			point.AverageRPE = sess.AverageRPE()
		} else {
			for _, ex := range sess.Exercises {
				if ex.ExerciseID != exerciseID {
					continue
				}
				point.Volume += ex.TotalVolume()
				point.ExerciseSetsLogged += len(ex.PerformedSets)
			}
			point.BestEstimated1RM = sess.BestEstimatedOneRepMax(exerciseID)
			point.AverageRPE = exerciseAverageRPE(sess, exerciseID)
		}
		stats.TotalVolume += point.Volume
		stats.ProgressionData = append(stats.ProgressionData, point)
	}
	return stats, nil
}

// exerciseAverageRPE averages the rated sets of one exercise in a session.
func exerciseAverageRPE(sess *domain.TrainingSession, exerciseID int) float64 {
	var (
		sum float64
		n   int
	)
	for _, ex := range sess.Exercises {
		if ex.ExerciseID != exerciseID {
			continue
		}
		for _, set := range ex.PerformedSets {
			if set.RPE > 0 {
				sum += set.RPE
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
