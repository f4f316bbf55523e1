package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/strideworks/stride/internal/domain"
)

// LinkRepository defines storage operations for the link relation.
type LinkRepository interface {
	Create(ctx context.Context, link domain.Link) error
	Get(ctx context.Context, id domain.ID) (domain.Link, error)
	GetByUserItem(ctx context.Context, user, item domain.ID) (domain.Link, error)
	Exists(ctx context.Context, user, item domain.ID) (bool, error)
	GetAll(ctx context.Context) ([]domain.Link, error)
	GetByUser(ctx context.Context, user domain.ID) ([]domain.Link, error)
	Delete(ctx context.Context, id domain.ID) error
	DeleteByUserItem(ctx context.Context, user, item domain.ID) error
}

type LinkingUsecase struct {
	repo LinkRepository
}

func NewLinkingUsecase(repo LinkRepository) *LinkingUsecase {
	return &LinkingUsecase{repo: repo}
}

// Link makes (user, item) publicly discoverable. The existence check is a
// fast path for a friendly error; the unique index on (user, item) is what
// actually guarantees at-most-one under concurrent calls.
func (uc *LinkingUsecase) Link(ctx context.Context, user, item domain.ID) (domain.Link, error) {
	exists, err := uc.repo.Exists(ctx, user, item)
	if err != nil {
		return domain.Link{}, err
	}
	if exists {
		return domain.Link{}, domain.AlreadyLinkedError{User: user, Item: item}
	}

	link := domain.Link{
		ID:    domain.NewID(),
		User:  user,
		Item:  item,
		CDate: time.Now().UTC(),
	}
	err = uc.repo.Create(ctx, link)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Link{}, domain.AlreadyLinkedError{User: user, Item: item}
	}
	if err != nil {
		return domain.Link{}, err
	}
	return link, nil
}

// Unlink removes the link for (user, item). Deleting an absent link is a
// silent no-op.
func (uc *LinkingUsecase) Unlink(ctx context.Context, user, item domain.ID) error {
	return uc.repo.DeleteByUserItem(ctx, user, item)
}

// SetLinked reconciles the link state for (user, item) with the desired
// flag, used when an update endpoint carries an isLinked toggle.
func (uc *LinkingUsecase) SetLinked(ctx context.Context, user, item domain.ID, linked bool) error {
	if !linked {
		return uc.repo.DeleteByUserItem(ctx, user, item)
	}
	_, err := uc.Link(ctx, user, item)
	var already domain.AlreadyLinkedError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// Delete removes a link by its own id after asserting ownership.
func (uc *LinkingUsecase) Delete(ctx context.Context, id, user domain.ID) error {
	if err := uc.AssertLinkBelongsToUser(ctx, id, user); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// HasLink is the point lookup driving every visibility decision.
func (uc *LinkingUsecase) HasLink(ctx context.Context, user, item domain.ID) (bool, error) {
	return uc.repo.Exists(ctx, user, item)
}

func (uc *LinkingUsecase) GetLinks(ctx context.Context) ([]domain.Link, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *LinkingUsecase) GetByUser(ctx context.Context, user domain.ID) ([]domain.Link, error) {
	return uc.repo.GetByUser(ctx, user)
}

func (uc *LinkingUsecase) GetByUserItem(ctx context.Context, user, item domain.ID) (domain.Link, error) {
	return uc.repo.GetByUserItem(ctx, user, item)
}

func (uc *LinkingUsecase) AssertLinkBelongsToUser(ctx context.Context, id, user domain.ID) error {
	link, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if link.User != user {
		return domain.NotOwnerError{User: user, Resource: id, Kind: "link"}
	}
	return nil
}

// FilterByItems keeps the links whose item id belongs to the given id set,
// preserving order. Links pointing at unknown items are silently excluded.
func FilterByItems(links []domain.Link, ids map[domain.ID]struct{}) []domain.Link {
	kept := make([]domain.Link, 0, len(links))
	for _, link := range links {
		if _, ok := ids[link.Item]; ok {
			kept = append(kept, link)
		}
	}
	return kept
}
