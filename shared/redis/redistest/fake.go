// Package redistest provides an in-process stand-in for the handful of Redis
// commands the service issues, for use in tests.
package redistest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned by every command once Fail is set.
var ErrUnavailable = errors.New("redistest: unavailable")

// Client implements the key/value and stream commands used by the view cache
// and the event publisher. Calling any other Cmdable method panics.
type Client struct {
	goredis.Cmdable

	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	streams map[string][]goredis.XMessage
	cursors map[string]int
	acked   map[string][]string
	seq     int
	Fail    bool
}

func New() *Client {
	return &Client{
		values:  make(map[string]string),
		ttls:    make(map[string]time.Duration),
		streams: make(map[string][]goredis.XMessage),
		cursors: make(map[string]int),
		acked:   make(map[string][]string),
	}
}

func (c *Client) Get(ctx context.Context, key string) *goredis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := goredis.NewStringCmd(ctx, "get", key)
	if c.Fail {
		cmd.SetErr(ErrUnavailable)
		return cmd
	}
	v, ok := c.values[key]
	if !ok {
		cmd.SetErr(goredis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := goredis.NewStatusCmd(ctx, "set", key)
	if c.Fail {
		cmd.SetErr(ErrUnavailable)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	default:
		c.values[key] = fmt.Sprint(v)
	}
	c.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (c *Client) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := goredis.NewIntCmd(ctx, "del")
	if c.Fail {
		cmd.SetErr(ErrUnavailable)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := c.values[k]; ok {
			delete(c.values, k)
			delete(c.ttls, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (c *Client) XAdd(ctx context.Context, a *goredis.XAddArgs) *goredis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := goredis.NewStringCmd(ctx, "xadd", a.Stream)
	if c.Fail {
		cmd.SetErr(ErrUnavailable)
		return cmd
	}
	c.seq++
	id := fmt.Sprintf("%d-0", c.seq)
	values := make(map[string]interface{})
	if m, ok := a.Values.(map[string]any); ok {
		for k, v := range m {
			if b, isBytes := v.([]byte); isBytes {
				v = string(b)
			}
			values[k] = v
		}
	}
	c.streams[a.Stream] = append(c.streams[a.Stream], goredis.XMessage{ID: id, Values: values})
	cmd.SetVal(id)
	return cmd
}

// Value returns the raw string stored under key.
func (c *Client) Value(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

// TTLOf returns the expiration passed with the last Set of key.
func (c *Client) TTLOf(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key]
}

// Messages returns a copy of every entry appended to stream.
func (c *Client) Messages(stream string) []goredis.XMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]goredis.XMessage(nil), c.streams[stream]...)
}

func (c *Client) XGroupCreateMkStream(ctx context.Context, stream, group, start string) *goredis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := goredis.NewStatusCmd(ctx, "xgroup", "create", stream, group, start)
	if c.Fail {
		cmd.SetErr(ErrUnavailable)
		return cmd
	}
	key := stream + "/" + group
	if _, ok := c.cursors[key]; ok {
		cmd.SetErr(errors.New("BUSYGROUP Consumer Group name already exists"))
		return cmd
	}
	c.cursors[key] = 0
	cmd.SetVal("OK")
	return cmd
}

// XReadGroup delivers the entries of the first requested stream that the
// group has not seen yet. It never blocks; an empty read returns redis.Nil.
func (c *Client) XReadGroup(ctx context.Context, a *goredis.XReadGroupArgs) *goredis.XStreamSliceCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := goredis.NewXStreamSliceCmd(ctx, "xreadgroup", a.Group)
	if c.Fail {
		cmd.SetErr(ErrUnavailable)
		return cmd
	}
	stream := a.Streams[0]
	key := stream + "/" + a.Group
	pending := c.streams[stream][c.cursors[key]:]
	if a.Count > 0 && int64(len(pending)) > a.Count {
		pending = pending[:a.Count]
	}
	if len(pending) == 0 {
		cmd.SetErr(goredis.Nil)
		return cmd
	}
	c.cursors[key] += len(pending)
	cmd.SetVal([]goredis.XStream{{Stream: stream, Messages: append([]goredis.XMessage(nil), pending...)}})
	return cmd
}

func (c *Client) XAck(ctx context.Context, stream, group string, ids ...string) *goredis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := goredis.NewIntCmd(ctx, "xack", stream, group)
	if c.Fail {
		cmd.SetErr(ErrUnavailable)
		return cmd
	}
	key := stream + "/" + group
	c.acked[key] = append(c.acked[key], ids...)
	cmd.SetVal(int64(len(ids)))
	return cmd
}

// Acked returns the message IDs group has acknowledged on stream.
func (c *Client) Acked(stream, group string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.acked[stream+"/"+group]...)
}
