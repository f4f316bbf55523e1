package usecase

import (
	"context"
	"time"

	"github.com/strideworks/stride/internal/domain"
)

// CommentRepository defines storage operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) error
	Get(ctx context.Context, id domain.ID) (domain.Comment, error)
	GetAll(ctx context.Context) ([]domain.Comment, error)
	GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Comment, error)
	GetByItem(ctx context.Context, item domain.ID) ([]domain.Comment, error)
	Update(ctx context.Context, comment domain.Comment) error
	Delete(ctx context.Context, id domain.ID) error
}

type CommentingUsecase struct {
	repo CommentRepository
}

func NewCommentingUsecase(repo CommentRepository) *CommentingUsecase {
	return &CommentingUsecase{repo: repo}
}

func (uc *CommentingUsecase) Create(ctx context.Context, author, item domain.ID, content string) (domain.Comment, error) {
	now := time.Now().UTC()
	comment := domain.Comment{
		ID:      domain.NewID(),
		Author:  author,
		Item:    item,
		Content: content,
		CDate:   now,
		MDate:   now,
	}
	if err := uc.repo.Create(ctx, comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (uc *CommentingUsecase) GetAll(ctx context.Context) ([]domain.Comment, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *CommentingUsecase) GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Comment, error) {
	return uc.repo.GetByAuthor(ctx, author)
}

// GetByItem returns the comments attached to one item, newest first.
func (uc *CommentingUsecase) GetByItem(ctx context.Context, item domain.ID) ([]domain.Comment, error) {
	return uc.repo.GetByItem(ctx, item)
}

func (uc *CommentingUsecase) Update(ctx context.Context, id domain.ID, content *string) error {
	comment, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if content != nil {
		comment.Content = *content
	}
	comment.MDate = time.Now().UTC()
	return uc.repo.Update(ctx, comment)
}

func (uc *CommentingUsecase) Delete(ctx context.Context, id domain.ID) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CommentingUsecase) AssertAuthor(ctx context.Context, id, user domain.ID) error {
	comment, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if comment.Author != user {
		return domain.NotOwnerError{User: user, Resource: id, Kind: "comment"}
	}
	return nil
}
