package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/dtakkiy/todo-api/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyListAll       = "todo:list:all"
	keyListCompleted = "todo:list:completed"
	keyListActive    = "todo:list:active"
	keyItemPrefix    = "todo:item:"
)

// TodoCache caches list and single-item reads in Redis.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// ListKey returns the cache key for a list with the given completed filter.
func ListKey(completed *bool) string {
	switch {
	case completed == nil:
		return keyListAll
	case *completed:
		return keyListCompleted
	default:
		return keyListActive
	}
}

func itemKey(id int64) string {
	return keyItemPrefix + strconv.FormatInt(id, 10)
}

// GetList returns the cached list for the filter, or nil on miss.
func (c *TodoCache) GetList(ctx context.Context, completed *bool) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, ListKey(completed)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list for the filter. Empty results are stored as []
// rather than null so GetList can tell a cached empty list from a miss.
func (c *TodoCache) SetList(ctx context.Context, completed *bool, list []dom.Todo) error {
	if list == nil {
		list = []dom.Todo{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ListKey(completed), b, c.ttl).Err()
}

// GetItem returns the cached todo, or nil on miss.
func (c *TodoCache) GetItem(ctx context.Context, id int64) (*dom.Todo, error) {
	b, err := c.rdb.Get(ctx, itemKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t dom.Todo
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SetItem stores a single todo.
func (c *TodoCache) SetItem(ctx context.Context, t dom.Todo) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, itemKey(t.ID), b, c.ttl).Err()
}

// InvalidateAll removes the list keys and every item key (cache invalidation
// on write).
func (c *TodoCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Del(ctx, keyListAll, keyListCompleted, keyListActive).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keyItemPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
