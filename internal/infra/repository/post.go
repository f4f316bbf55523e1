package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func postToDomain(m models.Post) domain.Post {
	return domain.Post{
		ID:              domain.ID(m.ID),
		Author:          domain.ID(m.Author),
		Content:         m.Content,
		BackgroundColor: m.BackgroundColor,
		CDate:           m.CDate,
		MDate:           m.MDate,
	}
}

func postToModel(p domain.Post) models.Post {
	return models.Post{
		ID:              p.ID.String(),
		Author:          p.Author.String(),
		Content:         p.Content,
		BackgroundColor: p.BackgroundColor,
		CDate:           p.CDate,
		MDate:           p.MDate,
	}
}

func (r *PostRepository) Create(ctx context.Context, post domain.Post) error {
	m := postToModel(post)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *PostRepository) Get(ctx context.Context, id domain.ID) (domain.Post, error) {
	var m models.Post
	err := r.db.WithContext(ctx).Take(&m, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Post{}, domain.NotFoundError{Resource: "post"}
	}
	if err != nil {
		return domain.Post{}, err
	}
	return postToDomain(m), nil
}

func (r *PostRepository) GetAll(ctx context.Context) ([]domain.Post, error) {
	var ms []models.Post
	err := r.db.WithContext(ctx).Order("c_date DESC, id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(ms))
	for _, m := range ms {
		posts = append(posts, postToDomain(m))
	}
	return posts, nil
}

func (r *PostRepository) GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Post, error) {
	var ms []models.Post
	err := r.db.WithContext(ctx).
		Where("author = ?", author.String()).
		Order("c_date DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(ms))
	for _, m := range ms {
		posts = append(posts, postToDomain(m))
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post domain.Post) error {
	m := postToModel(post)
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"content":          m.Content,
			"background_color": m.BackgroundColor,
			"m_date":           m.MDate,
		}).Error
}

func (r *PostRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id.String()).Error
}
