package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func membershipToDomain(m models.Membership) domain.Membership {
	return domain.Membership{
		ID:    domain.ID(m.ID),
		User:  domain.ID(m.User),
		Group: domain.ID(m.Group),
		CDate: m.CDate,
	}
}

func (r *MembershipRepository) Create(ctx context.Context, membership domain.Membership) error {
	m := models.Membership{
		ID:    membership.ID.String(),
		User:  membership.User.String(),
		Group: membership.Group.String(),
		CDate: membership.CDate,
	}
	err := r.db.WithContext(ctx).Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *MembershipRepository) Exists(ctx context.Context, user, group domain.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Membership{}).
		Where("\"user\" = ? AND \"group\" = ?", user.String(), group.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *MembershipRepository) GetByGroup(ctx context.Context, group domain.ID) ([]domain.Membership, error) {
	var ms []models.Membership
	err := r.db.WithContext(ctx).
		Where("\"group\" = ?", group.String()).
		Order("c_date ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	memberships := make([]domain.Membership, 0, len(ms))
	for _, m := range ms {
		memberships = append(memberships, membershipToDomain(m))
	}
	return memberships, nil
}

func (r *MembershipRepository) GetByUser(ctx context.Context, user domain.ID) ([]domain.Membership, error) {
	var ms []models.Membership
	err := r.db.WithContext(ctx).
		Where("\"user\" = ?", user.String()).
		Order("c_date ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	memberships := make([]domain.Membership, 0, len(ms))
	for _, m := range ms {
		memberships = append(memberships, membershipToDomain(m))
	}
	return memberships, nil
}

func (r *MembershipRepository) Delete(ctx context.Context, user, group domain.ID) error {
	return r.db.WithContext(ctx).
		Delete(&models.Membership{}, "\"user\" = ? AND \"group\" = ?", user.String(), group.String()).Error
}
