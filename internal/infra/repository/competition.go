package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

type CompetitionRepository struct {
	db *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) toDomain(ctx context.Context, m models.Competition) (domain.Competition, error) {
	var entries []models.CompetitionDatum
	err := r.db.WithContext(ctx).
		Where("competition_id = ?", m.ID).
		Order("c_date ASC").
		Find(&entries).Error
	if err != nil {
		return domain.Competition{}, err
	}
	data := make([]domain.ID, 0, len(entries))
	for _, e := range entries {
		data = append(data, domain.ID(e.DatumID))
	}
	return domain.Competition{
		ID:      domain.ID(m.ID),
		Name:    m.Name,
		Owner:   domain.ID(m.Owner),
		EndDate: m.EndDate,
		Data:    data,
		CDate:   m.CDate,
		MDate:   m.MDate,
	}, nil
}

func (r *CompetitionRepository) toDomainAll(ctx context.Context, ms []models.Competition) ([]domain.Competition, error) {
	competitions := make([]domain.Competition, 0, len(ms))
	for _, m := range ms {
		c, err := r.toDomain(ctx, m)
		if err != nil {
			return nil, err
		}
		competitions = append(competitions, c)
	}
	return competitions, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, competition domain.Competition) error {
	m := models.Competition{
		ID:      competition.ID.String(),
		Name:    competition.Name,
		Owner:   competition.Owner.String(),
		EndDate: competition.EndDate,
		CDate:   competition.CDate,
		MDate:   competition.MDate,
	}
	err := r.db.WithContext(ctx).Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *CompetitionRepository) Get(ctx context.Context, id domain.ID) (domain.Competition, error) {
	var m models.Competition
	err := r.db.WithContext(ctx).Take(&m, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Competition{}, domain.NotFoundError{Resource: "competition"}
	}
	if err != nil {
		return domain.Competition{}, err
	}
	return r.toDomain(ctx, m)
}

func (r *CompetitionRepository) GetByName(ctx context.Context, name string) (domain.Competition, error) {
	var m models.Competition
	err := r.db.WithContext(ctx).Take(&m, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Competition{}, domain.NotFoundError{Resource: "competition"}
	}
	if err != nil {
		return domain.Competition{}, err
	}
	return r.toDomain(ctx, m)
}

// GetActive returns competitions that have not ended, soonest ending first.
func (r *CompetitionRepository) GetActive(ctx context.Context) ([]domain.Competition, error) {
	var ms []models.Competition
	err := r.db.WithContext(ctx).
		Where("end_date > ?", time.Now()).
		Order("end_date ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainAll(ctx, ms)
}

func (r *CompetitionRepository) GetByOwner(ctx context.Context, owner domain.ID) ([]domain.Competition, error) {
	var ms []models.Competition
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner.String()).
		Order("end_date ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainAll(ctx, ms)
}

func (r *CompetitionRepository) GetAll(ctx context.Context) ([]domain.Competition, error) {
	var ms []models.Competition
	err := r.db.WithContext(ctx).Order("end_date ASC, id ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainAll(ctx, ms)
}

func (r *CompetitionRepository) Update(ctx context.Context, competition domain.Competition) error {
	err := r.db.WithContext(ctx).Model(&models.Competition{}).
		Where("id = ?", competition.ID.String()).
		Updates(map[string]any{
			"name":     competition.Name,
			"end_date": competition.EndDate,
			"m_date":   competition.MDate,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *CompetitionRepository) AddDatum(ctx context.Context, id, datum domain.ID) error {
	entry := models.CompetitionDatum{
		CompetitionID: id.String(),
		DatumID:       datum.String(),
		CDate:         time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Create(&entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *CompetitionRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CompetitionDatum{}, "competition_id = ?", id.String()).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Competition{}, "id = ?", id.String()).Error
	})
}
