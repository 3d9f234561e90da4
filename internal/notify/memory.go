package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const mirrorKey = "minaret:pending"

// MemoryCenter keeps pending requests in process and fires them with
// timers, publishing each fired request and then dropping it. When a
// redis client is supplied the pending set is mirrored into a hash so
// it survives restarts: on construction future requests are re-armed
// and already-elapsed ones are discarded.
type MemoryCenter struct {
	mu      sync.Mutex
	entries map[string]*entry
	pub     Publisher
	rdb     *redis.Client
}

type entry struct {
	req   Request
	timer *time.Timer
}

func NewMemoryCenter(pub Publisher, rdb *redis.Client) *MemoryCenter {
	c := &MemoryCenter{
		entries: make(map[string]*entry),
		pub:     pub,
		rdb:     rdb,
	}
	c.restore()
	return c
}

func (c *MemoryCenter) Pending(ctx context.Context) ([]Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Request, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.req)
	}
	return out, nil
}

func (c *MemoryCenter) Add(ctx context.Context, req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dropLocked(req.ID)

	delay := time.Until(req.Trigger)
	if delay < 0 {
		delay = 0
	}

	e := &entry{req: req}
	e.timer = time.AfterFunc(delay, func() { c.fire(req.ID) })
	c.entries[req.ID] = e

	c.mirrorSet(ctx, req)
	log.Debug().Str("id", req.ID).Time("trigger", req.Trigger).Msg("notification registered")
	return nil
}

func (c *MemoryCenter) Remove(ctx context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		c.dropLocked(id)
	}
	c.mirrorDel(ctx, ids...)
	return nil
}

func (c *MemoryCenter) fire(id string) {
	c.mu.Lock()
	e, ok := c.entries[id]
	if ok {
		delete(c.entries, id)
	}
	c.mu.Unlock()

	if !ok {
		return
	}

	c.mirrorDel(context.Background(), id)

	if c.pub == nil {
		return
	}
	if err := c.pub.Publish(e.req); err != nil {
		log.Error().Err(err).Str("id", id).Msg("notification publish failed")
		return
	}
	log.Info().Str("id", id).Str("title", e.req.Title).Msg("notification fired")
}

func (c *MemoryCenter) dropLocked(id string) {
	if e, ok := c.entries[id]; ok {
		e.timer.Stop()
		delete(c.entries, id)
	}
}

func (c *MemoryCenter) restore() {
	if c.rdb == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fields, err := c.rdb.HGetAll(ctx, mirrorKey).Result()
	if err != nil {
		log.Warn().Err(err).Msg("could not restore pending notifications")
		return
	}

	restored, stale := 0, 0
	for id, raw := range fields {
		var req Request
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			c.rdb.HDel(ctx, mirrorKey, id)
			continue
		}
		if !req.Trigger.After(time.Now()) {
			c.rdb.HDel(ctx, mirrorKey, id)
			stale++
			continue
		}
		e := &entry{req: req}
		e.timer = time.AfterFunc(time.Until(req.Trigger), func() { c.fire(req.ID) })
		c.entries[req.ID] = e
		restored++
	}

	if restored > 0 || stale > 0 {
		log.Info().Int("restored", restored).Int("stale", stale).Msg("pending notifications restored")
	}
}

func (c *MemoryCenter) mirrorSet(ctx context.Context, req Request) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(req)
	if err != nil {
		return
	}
	if err := c.rdb.HSet(ctx, mirrorKey, req.ID, data).Err(); err != nil {
		log.Warn().Err(err).Str("id", req.ID).Msg("pending mirror write failed")
	}
}

func (c *MemoryCenter) mirrorDel(ctx context.Context, ids ...string) {
	if c.rdb == nil || len(ids) == 0 {
		return
	}
	if err := c.rdb.HDel(ctx, mirrorKey, ids...).Err(); err != nil {
		log.Warn().Err(err).Msg("pending mirror delete failed")
	}
}
