package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func linkToDomain(m models.Link) domain.Link {
	return domain.Link{
		ID:    domain.ID(m.ID),
		User:  domain.ID(m.User),
		Item:  domain.ID(m.Item),
		CDate: m.CDate,
	}
}

func (r *LinkRepository) Create(ctx context.Context, link domain.Link) error {
	m := models.Link{
		ID:    link.ID.String(),
		User:  link.User.String(),
		Item:  link.Item.String(),
		CDate: link.CDate,
	}
	err := r.db.WithContext(ctx).Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *LinkRepository) Get(ctx context.Context, id domain.ID) (domain.Link, error) {
	var m models.Link
	err := r.db.WithContext(ctx).Take(&m, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Link{}, domain.NotFoundError{Resource: "link"}
	}
	if err != nil {
		return domain.Link{}, err
	}
	return linkToDomain(m), nil
}

func (r *LinkRepository) GetByUserItem(ctx context.Context, user, item domain.ID) (domain.Link, error) {
	var m models.Link
	err := r.db.WithContext(ctx).
		Take(&m, "\"user\" = ? AND item = ?", user.String(), item.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Link{}, domain.NotFoundError{Resource: "link"}
	}
	if err != nil {
		return domain.Link{}, err
	}
	return linkToDomain(m), nil
}

// Exists is a point lookup on the composite (user, item) index.
func (r *LinkRepository) Exists(ctx context.Context, user, item domain.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Link{}).
		Where("\"user\" = ? AND item = ?", user.String(), item.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *LinkRepository) GetAll(ctx context.Context) ([]domain.Link, error) {
	var ms []models.Link
	err := r.db.WithContext(ctx).Order("c_date DESC, id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	links := make([]domain.Link, 0, len(ms))
	for _, m := range ms {
		links = append(links, linkToDomain(m))
	}
	return links, nil
}

func (r *LinkRepository) GetByUser(ctx context.Context, user domain.ID) ([]domain.Link, error) {
	var ms []models.Link
	err := r.db.WithContext(ctx).
		Where("\"user\" = ?", user.String()).
		Order("c_date DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	links := make([]domain.Link, 0, len(ms))
	for _, m := range ms {
		links = append(links, linkToDomain(m))
	}
	return links, nil
}

func (r *LinkRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.db.WithContext(ctx).Delete(&models.Link{}, "id = ?", id.String()).Error
}

// DeleteByUserItem deletes the link for the pair; deleting zero rows is not
// an error.
func (r *LinkRepository) DeleteByUserItem(ctx context.Context, user, item domain.ID) error {
	return r.db.WithContext(ctx).
		Delete(&models.Link{}, "\"user\" = ? AND item = ?", user.String(), item.String()).Error
}
