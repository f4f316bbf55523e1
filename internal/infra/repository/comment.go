package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func commentToDomain(m models.Comment) domain.Comment {
	return domain.Comment{
		ID:      domain.ID(m.ID),
		Author:  domain.ID(m.Author),
		Item:    domain.ID(m.Item),
		Content: m.Content,
		CDate:   m.CDate,
		MDate:   m.MDate,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment) error {
	m := models.Comment{
		ID:      comment.ID.String(),
		Author:  comment.Author.String(),
		Item:    comment.Item.String(),
		Content: comment.Content,
		CDate:   comment.CDate,
		MDate:   comment.MDate,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *CommentRepository) Get(ctx context.Context, id domain.ID) (domain.Comment, error) {
	var m models.Comment
	err := r.db.WithContext(ctx).Take(&m, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Comment{}, domain.NotFoundError{Resource: "comment"}
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return commentToDomain(m), nil
}

func (r *CommentRepository) GetAll(ctx context.Context) ([]domain.Comment, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *CommentRepository) GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Comment, error) {
	return r.find(r.db.WithContext(ctx).Where("author = ?", author.String()))
}

func (r *CommentRepository) GetByItem(ctx context.Context, item domain.ID) ([]domain.Comment, error) {
	return r.find(r.db.WithContext(ctx).Where("item = ?", item.String()))
}

func (r *CommentRepository) find(tx *gorm.DB) ([]domain.Comment, error) {
	var ms []models.Comment
	err := tx.Order("c_date DESC, id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(ms))
	for _, m := range ms {
		comments = append(comments, commentToDomain(m))
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment domain.Comment) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", comment.ID.String()).
		Updates(map[string]any{
			"content": comment.Content,
			"m_date":  comment.MDate,
		}).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id.String()).Error
}
