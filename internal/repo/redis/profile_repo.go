package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/domain/model"
)

const (
	fieldID           = "id"
	fieldUsername     = "username"
	fieldFirstName    = "first_name"
	fieldGender       = "gender"
	fieldProvince     = "province"
	fieldCity         = "city"
	fieldName         = "name"
	fieldAge          = "age"
	fieldSchool       = "school"
	fieldPhone        = "phone"
	fieldCoins        = "coins"
	fieldBonusAwarded = "bonus_awarded"
	fieldCreatedAt    = "created_at"
)

// ProfileRepo stores one user document per `users:{id}` hash. A field
// missing from the hash is an absent optional; HSET of a subset of
// fields is the partial merge the flows rely on.
type ProfileRepo struct {
	client *goredis.Client
	now    func() time.Time
}

func NewProfileRepo(client *goredis.Client) *ProfileRepo {
	return &ProfileRepo{client: client, now: time.Now}
}

func profileKey(userID int64) string {
	return fmt.Sprintf("users:%d", userID)
}

func (r *ProfileRepo) Get(ctx context.Context, userID int64) (model.Profile, bool, error) {
	if r.client == nil {
		return model.Profile{}, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.HGetAll(ctx, profileKey(userID)).Result()
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("read profile %d: %w", userID, err)
	}
	if len(raw) == 0 {
		return model.Profile{}, false, nil
	}

	profile, err := parseProfile(userID, raw)
	if err != nil {
		return model.Profile{}, false, err
	}
	return profile, true, nil
}

func (r *ProfileRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	n, err := r.client.Exists(ctx, profileKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check profile %d existence: %w", userID, err)
	}
	return n > 0, nil
}

// createScript claims the id field and seeds the rest of the document in
// the same server-side step, so a won creation is always fully seeded.
const createScript = `
if redis.call("HSETNX", KEYS[1], "id", ARGV[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1],
	"username", ARGV[2],
	"first_name", ARGV[3],
	"coins", ARGV[4],
	"bonus_awarded", "0",
	"created_at", ARGV[5])
return 1
`

// CreateIfAbsent seeds a fresh profile document and reports whether this
// call performed the creation. The HSETNX on the id field is the atomic
// gate: under concurrent duplicate starts exactly one caller wins, and
// only the winner may credit a referrer.
func (r *ProfileRepo) CreateIfAbsent(ctx context.Context, userID int64, username, firstName string, coins int64) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return false, fmt.Errorf("invalid user id %d", userID)
	}

	res, err := r.client.Eval(ctx, createScript, []string{profileKey(userID)},
		strconv.FormatInt(userID, 10),
		username,
		firstName,
		strconv.FormatInt(coins, 10),
		r.now().UTC().Format(time.RFC3339),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("create profile %d: %w", userID, err)
	}
	return res == 1, nil
}

// SetRegistration persists the three mandatory fields in one merge.
func (r *ProfileRepo) SetRegistration(ctx context.Context, userID int64, gender enums.Gender, province, city string) error {
	return r.merge(ctx, userID, map[string]interface{}{
		fieldGender:   string(gender),
		fieldProvince: province,
		fieldCity:     city,
	})
}

func (r *ProfileRepo) SetName(ctx context.Context, userID int64, name string) error {
	return r.merge(ctx, userID, map[string]interface{}{fieldName: name})
}

func (r *ProfileRepo) SetAge(ctx context.Context, userID int64, age int) error {
	return r.merge(ctx, userID, map[string]interface{}{fieldAge: strconv.Itoa(age)})
}

func (r *ProfileRepo) SetPhone(ctx context.Context, userID int64, phone string) error {
	return r.merge(ctx, userID, map[string]interface{}{fieldPhone: phone})
}

func (r *ProfileRepo) SetSchool(ctx context.Context, userID int64, school string) error {
	return r.merge(ctx, userID, map[string]interface{}{fieldSchool: school})
}

// IncrCoins applies a positive balance delta. Negative deltas are
// rejected at this layer so the coins >= 0 invariant cannot be broken.
func (r *ProfileRepo) IncrCoins(ctx context.Context, userID int64, delta int64) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}
	if delta <= 0 {
		return 0, fmt.Errorf("coin delta must be positive, got %d", delta)
	}
	balance, err := r.client.HIncrBy(ctx, profileKey(userID), fieldCoins, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("increment coins for %d: %w", userID, err)
	}
	return balance, nil
}

// bonusScript flips the once-only flag and pays the coins in the same
// server-side step: the flag can never end up set with the coins unpaid.
const bonusScript = `
if redis.call("HSETNX", KEYS[1], "bonus_awarded", "1") == 0 then
	return 0
end
redis.call("HINCRBY", KEYS[1], "coins", ARGV[1])
return 1
`

// AwardBonusOnce flips the bonus flag and pays the bonus atomically.
// Every invocation after the first returns false and pays nothing.
func (r *ProfileRepo) AwardBonusOnce(ctx context.Context, userID int64, coins int64) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if coins <= 0 {
		return false, fmt.Errorf("bonus must be positive, got %d", coins)
	}

	res, err := r.client.Eval(ctx, bonusScript, []string{profileKey(userID)},
		strconv.FormatInt(coins, 10)).Int64()
	if err != nil {
		return false, fmt.Errorf("award bonus for %d: %w", userID, err)
	}
	return res == 1, nil
}

func (r *ProfileRepo) merge(ctx context.Context, userID int64, fields map[string]interface{}) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if len(fields) == 0 {
		return fmt.Errorf("empty profile merge for %d", userID)
	}
	if err := r.client.HSet(ctx, profileKey(userID), fields).Err(); err != nil {
		return fmt.Errorf("merge profile %d: %w", userID, err)
	}
	return nil
}

func parseProfile(userID int64, raw map[string]string) (model.Profile, error) {
	profile := model.Profile{
		ID:        userID,
		Username:  raw[fieldUsername],
		FirstName: raw[fieldFirstName],
	}

	if v, ok := raw[fieldGender]; ok && v != "" {
		gender, valid := enums.ParseGender(v)
		if !valid {
			return model.Profile{}, fmt.Errorf("profile %d has unknown gender %q", userID, v)
		}
		profile.Gender = &gender
	}
	if v, ok := raw[fieldProvince]; ok && v != "" {
		profile.Province = &v
	}
	if v, ok := raw[fieldCity]; ok && v != "" {
		profile.City = &v
	}
	if v, ok := raw[fieldName]; ok && v != "" {
		profile.Name = &v
	}
	if v, ok := raw[fieldAge]; ok && v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return model.Profile{}, fmt.Errorf("profile %d has malformed age %q: %w", userID, v, err)
		}
		profile.Age = &age
	}
	if v, ok := raw[fieldSchool]; ok && v != "" {
		profile.School = &v
	}
	if v, ok := raw[fieldPhone]; ok && v != "" {
		profile.Phone = &v
	}
	if v, ok := raw[fieldCoins]; ok && v != "" {
		coins, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return model.Profile{}, fmt.Errorf("profile %d has malformed coins %q: %w", userID, v, err)
		}
		profile.Coins = coins
	}
	profile.BonusAwarded = raw[fieldBonusAwarded] == "1"
	if v, ok := raw[fieldCreatedAt]; ok && v != "" {
		createdAt, err := time.Parse(time.RFC3339, v)
		if err == nil {
			createdAt = createdAt.UTC()
			profile.CreatedAt = &createdAt
		}
	}

	return profile, nil
}
