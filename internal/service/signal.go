package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/strideworks/stride"
)

const feedChannel = "stride:feed"

// SignalService fans creation events out to realtime subscribers over redis
// pub/sub. Events carry entity kind and id only; visibility state is never
// pushed.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(rdb *redis.Client) *SignalService {
	return &SignalService{rdb: rdb}
}

func (s *SignalService) Publish(ctx context.Context, event stride.Event) error {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, feedChannel, jsonstr).Err()
}

// Realtime forwards feed events to output until the context is cancelled.
func (s *SignalService) Realtime(ctx context.Context, output chan<- stride.Event) {
	pubsub := s.rdb.Subscribe(ctx, feedChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event stride.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(ctx, "failed to decode feed event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
