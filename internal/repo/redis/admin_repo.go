package redis

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

const adminKey = "config:admin"

// AdminRepo holds the singleton admin id. The SET NX makes the first
// assignment a compare-and-set: two racing bootstraps cannot both win.
type AdminRepo struct {
	client *goredis.Client
}

func NewAdminRepo(client *goredis.Client) *AdminRepo {
	return &AdminRepo{client: client}
}

// EnsureAdmin assigns candidate as admin if no admin exists yet and
// reports whether this call made the assignment. The loser of a race
// observes the winner's id.
func (r *AdminRepo) EnsureAdmin(ctx context.Context, candidate int64) (int64, bool, error) {
	if r.client == nil {
		return 0, false, fmt.Errorf("redis client is nil")
	}
	if candidate <= 0 {
		return 0, false, fmt.Errorf("invalid admin candidate %d", candidate)
	}

	won, err := r.client.SetNX(ctx, adminKey, strconv.FormatInt(candidate, 10), 0).Result()
	if err != nil {
		return 0, false, fmt.Errorf("set admin id: %w", err)
	}
	if won {
		return candidate, true, nil
	}

	adminID, _, err := r.Admin(ctx)
	if err != nil {
		return 0, false, err
	}
	return adminID, false, nil
}

// Admin returns the current admin id, or ok=false when no admin has been
// bootstrapped yet.
func (r *AdminRepo) Admin(ctx context.Context) (int64, bool, error) {
	if r.client == nil {
		return 0, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, adminKey).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read admin id: %w", err)
	}

	adminID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("malformed admin id %q: %w", raw, err)
	}
	return adminID, true, nil
}
