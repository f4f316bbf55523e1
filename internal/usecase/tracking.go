package usecase

import (
	"context"
	"time"

	"github.com/strideworks/stride/internal/domain"
)

// DatumRepository defines storage operations for tracked data points.
type DatumRepository interface {
	Create(ctx context.Context, datum domain.Datum) error
	Get(ctx context.Context, id domain.ID) (domain.Datum, error)
	Query(ctx context.Context, filter domain.DatumFilter) ([]domain.Datum, error)
	GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Datum, error)
	GetByUser(ctx context.Context, user domain.ID) ([]domain.Datum, error)
	Delete(ctx context.Context, id domain.ID) error
}

type TrackingUsecase struct {
	repo DatumRepository
}

func NewTrackingUsecase(repo DatumRepository) *TrackingUsecase {
	return &TrackingUsecase{repo: repo}
}

// Log records one performance data point.
func (uc *TrackingUsecase) Log(ctx context.Context, user domain.ID, date time.Time, score int) (domain.Datum, error) {
	datum := domain.Datum{
		ID:    domain.NewID(),
		User:  user,
		Date:  date,
		Score: score,
		CDate: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, datum); err != nil {
		return domain.Datum{}, err
	}
	return datum, nil
}

// Query returns data matching the filter, ordered per the filter's sort
// option (score or date descending, otherwise newest first).
func (uc *TrackingUsecase) Query(ctx context.Context, filter domain.DatumFilter) ([]domain.Datum, error) {
	return uc.repo.Query(ctx, filter)
}

func (uc *TrackingUsecase) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Datum, error) {
	return uc.repo.GetByIDs(ctx, ids)
}

func (uc *TrackingUsecase) GetByUser(ctx context.Context, user domain.ID) ([]domain.Datum, error) {
	return uc.repo.GetByUser(ctx, user)
}

// HighScore returns the user's best score, zero when no data exists.
func (uc *TrackingUsecase) HighScore(ctx context.Context, user domain.ID) (int, error) {
	data, err := uc.repo.GetByUser(ctx, user)
	if err != nil {
		return 0, err
	}
	best := 0
	for _, d := range data {
		if d.Score > best {
			best = d.Score
		}
	}
	return best, nil
}

func (uc *TrackingUsecase) Delete(ctx context.Context, id domain.ID) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *TrackingUsecase) AssertOwner(ctx context.Context, id, user domain.ID) error {
	datum, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if datum.User != user {
		return domain.NotOwnerError{User: user, Resource: id, Kind: "datum"}
	}
	return nil
}
