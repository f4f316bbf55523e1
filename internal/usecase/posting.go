package usecase

import (
	"context"
	"time"

	"github.com/strideworks/stride/internal/domain"
)

// PostRepository defines storage operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) error
	Get(ctx context.Context, id domain.ID) (domain.Post, error)
	GetAll(ctx context.Context) ([]domain.Post, error)
	GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Post, error)
	Update(ctx context.Context, post domain.Post) error
	Delete(ctx context.Context, id domain.ID) error
}

type PostingUsecase struct {
	repo PostRepository
}

func NewPostingUsecase(repo PostRepository) *PostingUsecase {
	return &PostingUsecase{repo: repo}
}

func (uc *PostingUsecase) Create(ctx context.Context, author domain.ID, content, backgroundColor string) (domain.Post, error) {
	now := time.Now().UTC()
	post := domain.Post{
		ID:              domain.NewID(),
		Author:          author,
		Content:         content,
		BackgroundColor: backgroundColor,
		CDate:           now,
		MDate:           now,
	}
	if err := uc.repo.Create(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// GetAll returns every post, newest first.
func (uc *PostingUsecase) GetAll(ctx context.Context) ([]domain.Post, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *PostingUsecase) GetByAuthor(ctx context.Context, author domain.ID) ([]domain.Post, error) {
	return uc.repo.GetByAuthor(ctx, author)
}

func (uc *PostingUsecase) Get(ctx context.Context, id domain.ID) (domain.Post, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *PostingUsecase) Update(ctx context.Context, id domain.ID, content, backgroundColor *string) error {
	post, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if content != nil {
		post.Content = *content
	}
	if backgroundColor != nil {
		post.BackgroundColor = *backgroundColor
	}
	post.MDate = time.Now().UTC()
	return uc.repo.Update(ctx, post)
}

func (uc *PostingUsecase) Delete(ctx context.Context, id domain.ID) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *PostingUsecase) AssertAuthor(ctx context.Context, id, user domain.ID) error {
	post, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.Author != user {
		return domain.NotOwnerError{User: user, Resource: id, Kind: "post"}
	}
	return nil
}
