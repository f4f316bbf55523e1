package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

type DatumRepository struct {
	db *gorm.DB
}

func NewDatumRepository(db *gorm.DB) *DatumRepository {
	return &DatumRepository{db: db}
}

func datumToDomain(m models.Datum) domain.Datum {
	return domain.Datum{
		ID:    domain.ID(m.ID),
		User:  domain.ID(m.User),
		Date:  m.Date,
		Score: m.Score,
		CDate: m.CDate,
	}
}

func datumsToDomain(ms []models.Datum) []domain.Datum {
	data := make([]domain.Datum, 0, len(ms))
	for _, m := range ms {
		data = append(data, datumToDomain(m))
	}
	return data
}

func (r *DatumRepository) Create(ctx context.Context, datum domain.Datum) error {
	m := models.Datum{
		ID:    datum.ID.String(),
		User:  datum.User.String(),
		Date:  datum.Date,
		Score: datum.Score,
		CDate: datum.CDate,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *DatumRepository) Get(ctx context.Context, id domain.ID) (domain.Datum, error) {
	var m models.Datum
	err := r.db.WithContext(ctx).Take(&m, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Datum{}, domain.NotFoundError{Resource: "datum"}
	}
	if err != nil {
		return domain.Datum{}, err
	}
	return datumToDomain(m), nil
}

func (r *DatumRepository) Query(ctx context.Context, filter domain.DatumFilter) ([]domain.Datum, error) {
	tx := r.db.WithContext(ctx).Model(&models.Datum{})
	if !filter.User.IsZero() {
		tx = tx.Where("\"user\" = ?", filter.User.String())
	}
	if filter.Start != nil {
		tx = tx.Where("date >= ?", *filter.Start)
	}
	if filter.End != nil {
		tx = tx.Where("date <= ?", *filter.End)
	}
	switch filter.Sort {
	case domain.SortByScore:
		tx = tx.Order("score DESC, id DESC")
	case domain.SortByDate:
		tx = tx.Order("date DESC, id DESC")
	default:
		tx = tx.Order("c_date DESC, id DESC")
	}

	var ms []models.Datum
	if err := tx.Find(&ms).Error; err != nil {
		return nil, err
	}
	return datumsToDomain(ms), nil
}

func (r *DatumRepository) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Datum, error) {
	if len(ids) == 0 {
		return []domain.Datum{}, nil
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	var ms []models.Datum
	err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return datumsToDomain(ms), nil
}

func (r *DatumRepository) GetByUser(ctx context.Context, user domain.ID) ([]domain.Datum, error) {
	var ms []models.Datum
	err := r.db.WithContext(ctx).
		Where("\"user\" = ?", user.String()).
		Order("c_date DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return datumsToDomain(ms), nil
}

func (r *DatumRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.db.WithContext(ctx).Delete(&models.Datum{}, "id = ?", id.String()).Error
}
