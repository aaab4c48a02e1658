package source

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	docKeyPrefix  = "frontdesk:"
	changeChannel = "frontdesk:changed:"
)

// DocKey returns the Redis key holding a collection document.
func DocKey(name string) string { return docKeyPrefix + name }

// ChangeChannel returns the pub/sub channel a collection signals changes on.
func ChangeChannel(name string) string { return changeChannel + name }

// Watch subscribes every feed to its collection: one initial load, then a
// reload on every change notification. Blocks until ctx is cancelled; on
// cancellation all subscriptions are torn down and no snapshot is published
// afterwards.
func (h *Hub) Watch(ctx context.Context, rdb *redis.Client) {
	for _, name := range Names {
		go h.watchOne(ctx, rdb, name)
	}
	<-ctx.Done()
}

func (h *Hub) watchOne(ctx context.Context, rdb *redis.Client, name string) {
	pubsub := rdb.Subscribe(ctx, ChangeChannel(name))
	defer pubsub.Close()

	// Wait for the subscription to be established before the initial load so
	// that a write landing between load and subscribe is not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		h.Fail(name, err)
		return
	}

	h.reload(ctx, rdb, name)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			h.reload(ctx, rdb, name)
		}
	}
}

func (h *Hub) reload(ctx context.Context, rdb *redis.Client, name string) {
	doc, err := rdb.Get(ctx, DocKey(name)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		// Collection not written yet — an empty document, not an error.
		h.Apply(name, nil)
	case err != nil:
		if ctx.Err() != nil {
			return // torn down mid-read; publish nothing
		}
		log.Error().Err(err).Str("collection", name).Msg("source: load failed")
		h.Fail(name, err)
	default:
		if applyErr := h.Apply(name, doc); applyErr != nil {
			log.Error().Err(applyErr).Str("collection", name).Msg("source: apply failed")
		}
	}
}

// Publish writes a collection document and signals its change channel. Used
// by seeding tools and tests; the service itself only reads.
func Publish(ctx context.Context, rdb *redis.Client, name string, doc []byte) error {
	if err := rdb.Set(ctx, DocKey(name), doc, 0).Err(); err != nil {
		return err
	}
	return rdb.Publish(ctx, ChangeChannel(name), "changed").Err()
}
