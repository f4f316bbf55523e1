package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

// IdentityRepository answers id-to-name lookups over the users table. The
// credential side of user management lives outside this service.
type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) GetUser(ctx context.Context, id domain.ID) (domain.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).Take(&m, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: domain.ID(m.ID), Username: m.Username}, nil
}

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).Take(&m, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: domain.ID(m.ID), Username: m.Username}, nil
}

// GetNames resolves ids to usernames, output aligned by index with the
// input. Unknown ids resolve to an empty name rather than failing the batch.
func (r *IdentityRepository) GetNames(ctx context.Context, ids []domain.ID) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	unique := make([]string, 0, len(ids))
	seen := map[string]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id.String()]; ok {
			continue
		}
		seen[id.String()] = struct{}{}
		unique = append(unique, id.String())
	}

	var ms []models.User
	err := r.db.WithContext(ctx).Where("id IN ?", unique).Find(&ms).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]string, len(ms))
	for _, m := range ms {
		byID[m.ID] = m.Username
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = byID[id.String()]
	}
	return names, nil
}
