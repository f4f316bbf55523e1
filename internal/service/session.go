package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/strideworks/stride/internal/domain"
)

var tracer = otel.Tracer("service")

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 30 * 24 * time.Hour
)

// SessionService resolves bearer tokens to viewer identities. Tokens are
// opaque and stored in redis; credential checking happens elsewhere.
type SessionService struct {
	rdb *redis.Client
}

func NewSessionService(rdb *redis.Client) *SessionService {
	return &SessionService{rdb: rdb}
}

// Begin stores a session for the user and returns its token.
func (s *SessionService) Begin(ctx context.Context, user domain.ID) (string, error) {
	ctx, span := tracer.Start(ctx, "Session.Service.Begin")
	defer span.End()

	token := domain.NewID().String()
	err := s.rdb.Set(ctx, sessionKeyPrefix+token, user.String(), sessionTTL).Err()
	if err != nil {
		return "", errors.Wrap(err, "SessionService.Begin: redis set failed")
	}
	return token, nil
}

// Viewer resolves a token to a user id. An unknown token yields ErrNotFound;
// callers treat that as an anonymous request or an authentication failure
// depending on the endpoint.
func (s *SessionService) Viewer(ctx context.Context, token string) (domain.ID, error) {
	ctx, span := tracer.Start(ctx, "Session.Service.Viewer")
	defer span.End()

	val, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", domain.NotFoundError{Resource: "session"}
	}
	if err != nil {
		return "", errors.Wrap(err, "SessionService.Viewer: redis get failed")
	}
	return domain.ID(val), nil
}

// End discards a session. Ending an unknown token is a no-op.
func (s *SessionService) End(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Session.Service.End")
	defer span.End()

	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}
