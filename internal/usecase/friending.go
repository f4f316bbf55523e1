package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/strideworks/stride/internal/domain"
)

// FriendRepository defines storage operations for friendships and friend
// requests.
type FriendRepository interface {
	CreateRequest(ctx context.Context, request domain.FriendRequest) error
	GetPendingRequest(ctx context.Context, from, to domain.ID) (domain.FriendRequest, error)
	UpdateRequestStatus(ctx context.Context, from, to domain.ID, status string) error
	DeletePendingRequest(ctx context.Context, from, to domain.ID) error
	GetRequestsInvolving(ctx context.Context, user domain.ID) ([]domain.FriendRequest, error)
	CreateFriendship(ctx context.Context, friendship domain.Friendship) error
	AreFriends(ctx context.Context, user1, user2 domain.ID) (bool, error)
	DeleteFriendship(ctx context.Context, user1, user2 domain.ID) error
	GetFriends(ctx context.Context, user domain.ID) ([]domain.ID, error)
}

type FriendingUsecase struct {
	repo FriendRepository
}

func NewFriendingUsecase(repo FriendRepository) *FriendingUsecase {
	return &FriendingUsecase{repo: repo}
}

func (uc *FriendingUsecase) SendRequest(ctx context.Context, from, to domain.ID) (domain.FriendRequest, error) {
	if err := uc.assertNotFriends(ctx, from, to); err != nil {
		return domain.FriendRequest{}, err
	}
	for _, pair := range [][2]domain.ID{{from, to}, {to, from}} {
		_, err := uc.repo.GetPendingRequest(ctx, pair[0], pair[1])
		if err == nil {
			return domain.FriendRequest{}, domain.FriendRequestExistsError{From: from, To: to}
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.FriendRequest{}, err
		}
	}

	request := domain.FriendRequest{
		ID:     domain.NewID(),
		From:   from,
		To:     to,
		Status: domain.FriendRequestPending,
		CDate:  time.Now().UTC(),
	}
	if err := uc.repo.CreateRequest(ctx, request); err != nil {
		return domain.FriendRequest{}, err
	}
	return request, nil
}

func (uc *FriendingUsecase) RemoveRequest(ctx context.Context, from, to domain.ID) error {
	_, err := uc.repo.GetPendingRequest(ctx, from, to)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FriendRequestNotFoundError{From: from, To: to}
	}
	if err != nil {
		return err
	}
	return uc.repo.DeletePendingRequest(ctx, from, to)
}

func (uc *FriendingUsecase) AcceptRequest(ctx context.Context, from, to domain.ID) error {
	_, err := uc.repo.GetPendingRequest(ctx, from, to)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FriendRequestNotFoundError{From: from, To: to}
	}
	if err != nil {
		return err
	}
	if err := uc.repo.UpdateRequestStatus(ctx, from, to, domain.FriendRequestAccepted); err != nil {
		return err
	}
	return uc.repo.CreateFriendship(ctx, domain.Friendship{
		ID:    domain.NewID(),
		User1: from,
		User2: to,
		CDate: time.Now().UTC(),
	})
}

func (uc *FriendingUsecase) RejectRequest(ctx context.Context, from, to domain.ID) error {
	_, err := uc.repo.GetPendingRequest(ctx, from, to)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FriendRequestNotFoundError{From: from, To: to}
	}
	if err != nil {
		return err
	}
	return uc.repo.UpdateRequestStatus(ctx, from, to, domain.FriendRequestRejected)
}

func (uc *FriendingUsecase) RemoveFriend(ctx context.Context, user, friend domain.ID) error {
	friends, err := uc.repo.AreFriends(ctx, user, friend)
	if err != nil {
		return err
	}
	if !friends {
		return domain.FriendNotFoundError{User1: user, User2: friend}
	}
	return uc.repo.DeleteFriendship(ctx, user, friend)
}

func (uc *FriendingUsecase) GetFriends(ctx context.Context, user domain.ID) ([]domain.ID, error) {
	return uc.repo.GetFriends(ctx, user)
}

func (uc *FriendingUsecase) GetRequests(ctx context.Context, user domain.ID) ([]domain.FriendRequest, error) {
	return uc.repo.GetRequestsInvolving(ctx, user)
}

func (uc *FriendingUsecase) assertNotFriends(ctx context.Context, user1, user2 domain.ID) error {
	friends, err := uc.repo.AreFriends(ctx, user1, user2)
	if err != nil {
		return err
	}
	if friends {
		return domain.AlreadyFriendsError{User1: user1, User2: user2}
	}
	return nil
}
