package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/strideworks/stride/internal/domain"
)

// IdentityRepository is the narrow interface to the external identity
// concept: opaque id to public name, with an order-preserving batch variant.
type IdentityRepository interface {
	GetUser(ctx context.Context, id domain.ID) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetNames(ctx context.Context, ids []domain.ID) ([]string, error)
}

// DirectoryService fronts identity resolution with a short-lived name cache.
// Only names are cached; visibility decisions never are.
type DirectoryService struct {
	repo  IdentityRepository
	names *cache.Cache
}

func NewDirectoryService(repo IdentityRepository) *DirectoryService {
	return &DirectoryService{
		repo:  repo,
		names: cache.New(10*time.Minute, 15*time.Minute),
	}
}

// Name resolves one id to a display name.
func (s *DirectoryService) Name(ctx context.Context, id domain.ID) (string, error) {
	if cached, ok := s.names.Get(id.String()); ok {
		return cached.(string), nil
	}
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	s.names.SetDefault(id.String(), user.Username)
	return user.Username, nil
}

// Names resolves a batch of ids, output aligned by index with the input so
// callers can zip entities and names positionally. Cache misses are fetched
// in one batch call.
func (s *DirectoryService) Names(ctx context.Context, ids []domain.ID) ([]string, error) {
	names := make([]string, len(ids))
	var missing []domain.ID
	missingAt := map[domain.ID][]int{}

	for i, id := range ids {
		if cached, ok := s.names.Get(id.String()); ok {
			names[i] = cached.(string)
			continue
		}
		if _, ok := missingAt[id]; !ok {
			missing = append(missing, id)
		}
		missingAt[id] = append(missingAt[id], i)
	}

	if len(missing) == 0 {
		return names, nil
	}

	fetched, err := s.repo.GetNames(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, id := range missing {
		for _, i := range missingAt[id] {
			names[i] = fetched[j]
		}
		if fetched[j] != "" {
			s.names.SetDefault(id.String(), fetched[j])
		}
	}
	return names, nil
}

// Lookup resolves a username to its user record.
func (s *DirectoryService) Lookup(ctx context.Context, username string) (domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}
