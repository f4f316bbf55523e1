package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/strideworks/stride/internal/domain"
)

// CompetitionRepository defines storage operations for competitions and the
// data entered into them.
type CompetitionRepository interface {
	Create(ctx context.Context, competition domain.Competition) error
	Get(ctx context.Context, id domain.ID) (domain.Competition, error)
	GetByName(ctx context.Context, name string) (domain.Competition, error)
	GetActive(ctx context.Context) ([]domain.Competition, error)
	GetByOwner(ctx context.Context, owner domain.ID) ([]domain.Competition, error)
	GetAll(ctx context.Context) ([]domain.Competition, error)
	Update(ctx context.Context, competition domain.Competition) error
	AddDatum(ctx context.Context, id, datum domain.ID) error
	Delete(ctx context.Context, id domain.ID) error
}

type CompetingUsecase struct {
	repo CompetitionRepository
}

func NewCompetingUsecase(repo CompetitionRepository) *CompetingUsecase {
	return &CompetingUsecase{repo: repo}
}

func (uc *CompetingUsecase) Create(ctx context.Context, owner domain.ID, name string, endDate time.Time) (domain.Competition, error) {
	if err := uc.assertNameFree(ctx, name); err != nil {
		return domain.Competition{}, err
	}
	if !endDate.After(time.Now()) {
		return domain.Competition{}, domain.DateNotFutureError{Date: endDate}
	}

	now := time.Now().UTC()
	competition := domain.Competition{
		ID:      domain.NewID(),
		Name:    name,
		Owner:   owner,
		EndDate: endDate,
		Data:    []domain.ID{},
		CDate:   now,
		MDate:   now,
	}
	err := uc.repo.Create(ctx, competition)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Competition{}, domain.NameTakenError{Name: name}
	}
	if err != nil {
		return domain.Competition{}, err
	}
	return competition, nil
}

// GetActive returns competitions whose end date has not passed, soonest
// ending first.
func (uc *CompetingUsecase) GetActive(ctx context.Context) ([]domain.Competition, error) {
	return uc.repo.GetActive(ctx)
}

func (uc *CompetingUsecase) GetAll(ctx context.Context) ([]domain.Competition, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *CompetingUsecase) GetByOwner(ctx context.Context, owner domain.ID) ([]domain.Competition, error) {
	return uc.repo.GetByOwner(ctx, owner)
}

func (uc *CompetingUsecase) Get(ctx context.Context, id domain.ID) (domain.Competition, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *CompetingUsecase) GetByName(ctx context.Context, name string) (domain.Competition, error) {
	return uc.repo.GetByName(ctx, name)
}

func (uc *CompetingUsecase) Update(ctx context.Context, id domain.ID, name *string, endDate *time.Time) error {
	competition, err := uc.assertActive(ctx, id)
	if err != nil {
		return err
	}
	if name != nil && *name != competition.Name {
		if err := uc.assertNameFree(ctx, *name); err != nil {
			return err
		}
		competition.Name = *name
	}
	if endDate != nil {
		if !endDate.After(time.Now()) {
			return domain.DateNotFutureError{Date: *endDate}
		}
		competition.EndDate = *endDate
	}
	competition.MDate = time.Now().UTC()
	return uc.repo.Update(ctx, competition)
}

// InputData enters a tracked data point into an active competition.
func (uc *CompetingUsecase) InputData(ctx context.Context, id, datum domain.ID) error {
	if _, err := uc.assertActive(ctx, id); err != nil {
		return err
	}
	return uc.repo.AddDatum(ctx, id, datum)
}

func (uc *CompetingUsecase) Delete(ctx context.Context, id domain.ID) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CompetingUsecase) AssertOwner(ctx context.Context, id, user domain.ID) error {
	competition, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if competition.Owner != user {
		return domain.NotOwnerError{User: user, Resource: id, Kind: "competition"}
	}
	return nil
}

func (uc *CompetingUsecase) assertActive(ctx context.Context, id domain.ID) (domain.Competition, error) {
	competition, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.Competition{}, err
	}
	if competition.EndDate.Before(time.Now()) {
		return domain.Competition{}, domain.CompetitionEndedError{Name: competition.Name}
	}
	return competition, nil
}

func (uc *CompetingUsecase) assertNameFree(ctx context.Context, name string) error {
	_, err := uc.repo.GetByName(ctx, name)
	if err == nil {
		return domain.NameTakenError{Name: name}
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
