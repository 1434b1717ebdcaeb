package redis

import (
	"context"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"
)

// SchoolRepo stores the per-city school catalog as a set, so repeated
// admin saves deduplicate at the store level.
type SchoolRepo struct {
	client *goredis.Client
}

func NewSchoolRepo(client *goredis.Client) *SchoolRepo {
	return &SchoolRepo{client: client}
}

func schoolKey(province, city string) string {
	return fmt.Sprintf("schools:%s:%s", province, city)
}

// Add stores the given school names and returns how many were new.
func (r *SchoolRepo) Add(ctx context.Context, province, city string, names []string) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}
	if province == "" || city == "" {
		return 0, fmt.Errorf("province and city are required")
	}
	if len(names) == 0 {
		return 0, nil
	}

	members := make([]interface{}, 0, len(names))
	for _, name := range names {
		members = append(members, name)
	}
	added, err := r.client.SAdd(ctx, schoolKey(province, city), members...).Result()
	if err != nil {
		return 0, fmt.Errorf("store schools for %s/%s: %w", province, city, err)
	}
	return added, nil
}

// List returns the city's schools sorted lexicographically.
func (r *SchoolRepo) List(ctx context.Context, province, city string) ([]string, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	names, err := r.client.SMembers(ctx, schoolKey(province, city)).Result()
	if err != nil {
		return nil, fmt.Errorf("list schools for %s/%s: %w", province, city, err)
	}
	sort.Strings(names)
	return names, nil
}
