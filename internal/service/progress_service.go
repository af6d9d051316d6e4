package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"
	"wscmeso/mesocycle-planner/internal/storage"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrProgressNotFound   = errors.New("progress entry not found")
	ErrPhotoStorageOff    = errors.New("photo storage is not configured")
	ErrPhotoNotFound      = errors.New("progress entry has no photo")
	ErrUnsupportedContent = errors.New("unsupported photo content type")
)

// photoExtensions maps accepted upload content types to object key suffixes.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// ProgressInput carries a measurement. An empty Unit takes the metric's
// default unit.
type ProgressInput struct {
	Date       time.Time
	MetricType domain.MetricType
	Value      float64
	Unit       string
	Notes      string
}

// PhotoURL is a presigned link to a progress photo.
type PhotoURL struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ProgressService interface {
	Create(ctx context.Context, userID string, in ProgressInput) (*domain.Progress, error)
	Get(ctx context.Context, userID, id string) (*domain.Progress, error)
	List(ctx context.Context, filter repository.ProgressFilter, page repository.Page) ([]domain.Progress, int64, error)
	Update(ctx context.Context, userID, id string, in ProgressInput) (*domain.Progress, error)
	Delete(ctx context.Context, userID, id string) error
	// Analytics summarizes one metric over an optional date window.
	Analytics(ctx context.Context, userID string, metric domain.MetricType, from, to time.Time) (domain.ProgressSummary, error)
	PhotoUploadURL(ctx context.Context, userID, id, contentType string) (*PhotoURL, error)
	PhotoDownloadURL(ctx context.Context, userID, id string) (*PhotoURL, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	// files is nil when photo storage is disabled.
	files storage.FileStorage
	log   *zap.Logger
}

func NewProgressService(progressRepo repository.ProgressRepository, files storage.FileStorage, log *zap.Logger) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		files:        files,
		log:          log,
	}
}

func (s *progressService) Create(ctx context.Context, userID string, in ProgressInput) (*domain.Progress, error) {
	p, err := domain.NewProgress(userID, in.Date, in.MetricType, in.Value, in.Unit, in.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.progressRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create progress: %w", err)
	}
	return p, nil
}

func (s *progressService) Get(ctx context.Context, userID, id string) (*domain.Progress, error) {
	p, err := s.progressRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrProgressNotFound)
	}
	return p, nil
}

func (s *progressService) List(ctx context.Context, filter repository.ProgressFilter, page repository.Page) ([]domain.Progress, int64, error) {
	if filter.MetricType != "" && !filter.MetricType.IsValid() {
		return nil, 0, &domain.ValidationError{Field: "metric_type", Message: fmt.Sprintf("unknown metric type %q", filter.MetricType)}
	}
	if err := checkWindow(filter.From, filter.To); err != nil {
		return nil, 0, err
	}
	return s.progressRepo.List(ctx, filter, page.Normalize())
}

func (s *progressService) Update(ctx context.Context, userID, id string, in ProgressInput) (*domain.Progress, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := p.Revise(in.Date, in.MetricType, in.Value, in.Unit, in.Notes); err != nil {
		return nil, err
	}
	if err := s.progressRepo.Update(ctx, p); err != nil {
		return nil, mapNotFound(err, ErrProgressNotFound)
	}
	return p, nil
}

// Delete removes the entry and then its photo. A failed photo delete only
// leaves an unreferenced object behind.
func (s *progressService) Delete(ctx context.Context, userID, id string) error {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.progressRepo.Delete(ctx, id, userID); err != nil {
		return mapNotFound(err, ErrProgressNotFound)
	}
	if p.PhotoKey != "" && s.files != nil {
		if err := s.files.DeleteObject(ctx, p.PhotoKey); err != nil {
			s.log.Warn("delete progress photo", zap.String("key", p.PhotoKey), zap.Error(err))
		}
	}
	return nil
}

func (s *progressService) Analytics(ctx context.Context, userID string, metric domain.MetricType, from, to time.Time) (domain.ProgressSummary, error) {
	if !metric.IsValid() {
		return domain.ProgressSummary{}, &domain.ValidationError{Field: "metric_type", Message: fmt.Sprintf("unknown metric type %q", metric)}
	}
	if err := checkWindow(from, to); err != nil {
		return domain.ProgressSummary{}, err
	}
	entries, err := s.progressRepo.ListAll(ctx, repository.ProgressFilter{UserID: userID, MetricType: metric, From: from, To: to})
	if err != nil {
		return domain.ProgressSummary{}, err
	}
	return domain.SummarizeProgress(metric, entries), nil
}

// PhotoUploadURL presigns a PUT for the entry's photo and records the key.
// Uploading again replaces the photo.
func (s *progressService) PhotoUploadURL(ctx context.Context, userID, id, contentType string) (*PhotoURL, error) {
	if s.files == nil {
		return nil, ErrPhotoStorageOff
	}
	ext, ok := photoExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedContent
	}
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	key := p.PhotoObjectKey(ext)
	expires := time.Now().Add(storage.DefaultPresignedURLExpiry)
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	if err := s.progressRepo.SetPhotoKey(ctx, p.ID, userID, key); err != nil {
		return nil, mapNotFound(err, ErrProgressNotFound)
	}
	return &PhotoURL{URL: url, ObjectKey: key, ExpiresAt: expires.UTC()}, nil
}

func (s *progressService) PhotoDownloadURL(ctx context.Context, userID, id string) (*PhotoURL, error) {
	if s.files == nil {
		return nil, ErrPhotoStorageOff
	}
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.PhotoKey == "" {
		return nil, ErrPhotoNotFound
	}
	expires := time.Now().Add(storage.DefaultPresignedURLExpiry)
	url, err := s.files.GeneratePresignedDownloadURL(ctx, p.PhotoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &PhotoURL{URL: url, ObjectKey: p.PhotoKey, ExpiresAt: expires.UTC()}, nil
}

func checkWindow(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return &domain.ValidationError{Field: "to", Message: "end of range is before its start"}
	}
	return nil
}
