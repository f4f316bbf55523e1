package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database/models"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

func requestToDomain(m models.FriendRequest) domain.FriendRequest {
	return domain.FriendRequest{
		ID:     domain.ID(m.ID),
		From:   domain.ID(m.FromUser),
		To:     domain.ID(m.ToUser),
		Status: m.Status,
		CDate:  m.CDate,
	}
}

func (r *FriendRepository) CreateRequest(ctx context.Context, request domain.FriendRequest) error {
	m := models.FriendRequest{
		ID:       request.ID.String(),
		FromUser: request.From.String(),
		ToUser:   request.To.String(),
		Status:   request.Status,
		CDate:    request.CDate,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *FriendRepository) GetPendingRequest(ctx context.Context, from, to domain.ID) (domain.FriendRequest, error) {
	var m models.FriendRequest
	err := r.db.WithContext(ctx).
		Take(&m, "from_user = ? AND to_user = ? AND status = ?",
			from.String(), to.String(), domain.FriendRequestPending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FriendRequest{}, domain.NotFoundError{Resource: "friend request"}
	}
	if err != nil {
		return domain.FriendRequest{}, err
	}
	return requestToDomain(m), nil
}

func (r *FriendRepository) UpdateRequestStatus(ctx context.Context, from, to domain.ID, status string) error {
	return r.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("from_user = ? AND to_user = ? AND status = ?",
			from.String(), to.String(), domain.FriendRequestPending).
		Update("status", status).Error
}

func (r *FriendRepository) DeletePendingRequest(ctx context.Context, from, to domain.ID) error {
	return r.db.WithContext(ctx).
		Delete(&models.FriendRequest{}, "from_user = ? AND to_user = ? AND status = ?",
			from.String(), to.String(), domain.FriendRequestPending).Error
}

func (r *FriendRepository) GetRequestsInvolving(ctx context.Context, user domain.ID) ([]domain.FriendRequest, error) {
	var ms []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_user = ? OR to_user = ?", user.String(), user.String()).
		Order("c_date DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	requests := make([]domain.FriendRequest, 0, len(ms))
	for _, m := range ms {
		requests = append(requests, requestToDomain(m))
	}
	return requests, nil
}

func (r *FriendRepository) CreateFriendship(ctx context.Context, friendship domain.Friendship) error {
	m := models.Friendship{
		ID:    friendship.ID.String(),
		User1: friendship.User1.String(),
		User2: friendship.User2.String(),
		CDate: friendship.CDate,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *FriendRepository) AreFriends(ctx context.Context, user1, user2 domain.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("(user1 = ? AND user2 = ?) OR (user1 = ? AND user2 = ?)",
			user1.String(), user2.String(), user2.String(), user1.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *FriendRepository) DeleteFriendship(ctx context.Context, user1, user2 domain.ID) error {
	return r.db.WithContext(ctx).
		Delete(&models.Friendship{}, "(user1 = ? AND user2 = ?) OR (user1 = ? AND user2 = ?)",
			user1.String(), user2.String(), user2.String(), user1.String()).Error
}

func (r *FriendRepository) GetFriends(ctx context.Context, user domain.ID) ([]domain.ID, error) {
	var ms []models.Friendship
	err := r.db.WithContext(ctx).
		Where("user1 = ? OR user2 = ?", user.String(), user.String()).
		Order("c_date ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	friends := make([]domain.ID, 0, len(ms))
	for _, m := range ms {
		if domain.ID(m.User1) == user {
			friends = append(friends, domain.ID(m.User2))
		} else {
			friends = append(friends, domain.ID(m.User1))
		}
	}
	return friends, nil
}
