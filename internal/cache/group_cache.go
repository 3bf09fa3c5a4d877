// Package cache holds the redis facade for the group shadow copy.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ali506108/Chat-Service/internal/models"
)

const groupKeyPrefix = "group:"

// GroupCache stores JSON-encoded groups under `group:<id>` with a fixed
// TTL. Entries expire independently of the mongo record, so a cached
// group may lag a concurrent update by at most the TTL window.
type GroupCache struct {
	cli *redis.Client
	ttl time.Duration
}

func NewGroupCache(cli *redis.Client, ttl time.Duration) *GroupCache {
	return &GroupCache{cli: cli, ttl: ttl}
}

// NewRedis builds and pings a redis client.
func NewRedis(addr, password string, db int) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return cli, nil
}

// Get returns (nil, nil) on a miss. Absence is a valid empty result, not
// an error.
func (c *GroupCache) Get(ctx context.Context, groupID string) (*models.Group, error) {
	raw, err := c.cli.Get(ctx, groupKeyPrefix+groupID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g models.Group
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *GroupCache) Set(ctx context.Context, g *models.Group) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return c.cli.Set(ctx, groupKeyPrefix+g.GroupID, raw, c.ttl).Err()
}

func (c *GroupCache) Delete(ctx context.Context, groupID string) error {
	return c.cli.Del(ctx, groupKeyPrefix+groupID).Err()
}
