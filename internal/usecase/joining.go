package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/strideworks/stride/internal/domain"
)

// MembershipRepository defines storage operations for group memberships.
type MembershipRepository interface {
	Create(ctx context.Context, membership domain.Membership) error
	Exists(ctx context.Context, user, group domain.ID) (bool, error)
	GetByGroup(ctx context.Context, group domain.ID) ([]domain.Membership, error)
	GetByUser(ctx context.Context, user domain.ID) ([]domain.Membership, error)
	Delete(ctx context.Context, user, group domain.ID) error
}

type JoiningUsecase struct {
	repo MembershipRepository
}

func NewJoiningUsecase(repo MembershipRepository) *JoiningUsecase {
	return &JoiningUsecase{repo: repo}
}

func (uc *JoiningUsecase) Join(ctx context.Context, user, group domain.ID) (domain.Membership, error) {
	exists, err := uc.repo.Exists(ctx, user, group)
	if err != nil {
		return domain.Membership{}, err
	}
	if exists {
		return domain.Membership{}, domain.AlreadyMemberError{User: user, Group: group}
	}

	membership := domain.Membership{
		ID:    domain.NewID(),
		User:  user,
		Group: group,
		CDate: time.Now().UTC(),
	}
	err = uc.repo.Create(ctx, membership)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Membership{}, domain.AlreadyMemberError{User: user, Group: group}
	}
	if err != nil {
		return domain.Membership{}, err
	}
	return membership, nil
}

func (uc *JoiningUsecase) Leave(ctx context.Context, user, group domain.ID) error {
	exists, err := uc.repo.Exists(ctx, user, group)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotMemberError{User: user, Group: group}
	}
	return uc.repo.Delete(ctx, user, group)
}

// GetMembers returns the user ids of a group's members.
func (uc *JoiningUsecase) GetMembers(ctx context.Context, group domain.ID) ([]domain.ID, error) {
	memberships, err := uc.repo.GetByGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	members := make([]domain.ID, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, m.User)
	}
	return members, nil
}

func (uc *JoiningUsecase) GetMemberships(ctx context.Context, group domain.ID) ([]domain.Membership, error) {
	return uc.repo.GetByGroup(ctx, group)
}

func (uc *JoiningUsecase) GetUserMemberships(ctx context.Context, user domain.ID) ([]domain.Membership, error) {
	return uc.repo.GetByUser(ctx, user)
}
