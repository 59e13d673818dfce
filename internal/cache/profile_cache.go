package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// ProfileCache holds public user rows. Cached users never carry a password hash.
type ProfileCache struct{ R *redis.Client }

func profileKey(id string) string { return "profile:" + id }

func (c *ProfileCache) Get(ctx context.Context, id string) (*domain.User, error) {
	b, err := c.R.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var u domain.User
	return &u, json.Unmarshal(b, &u)
}

func (c *ProfileCache) Set(ctx context.Context, u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, profileKey(u.ID), b, time.Hour).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, id string) error {
	return c.R.Del(ctx, profileKey(id)).Err()
}
