package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/FardadA/samp-crush/internal/domain/model"
)

const channelsIndexKey = "channels:index"

// ChannelRepo stores the promoted channels whose membership is
// mandatory: one `channels:{id}` hash per channel plus an id index set.
type ChannelRepo struct {
	client *goredis.Client
}

func NewChannelRepo(client *goredis.Client) *ChannelRepo {
	return &ChannelRepo{client: client}
}

func channelKey(chatID int64) string {
	return fmt.Sprintf("channels:%d", chatID)
}

func (r *ChannelRepo) Add(ctx context.Context, channel model.Channel) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if channel.ID == 0 {
		return fmt.Errorf("channel id is required")
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, channelKey(channel.ID), map[string]interface{}{
		"title":       channel.Title,
		"invite_link": channel.InviteLink,
		"button_text": channel.ButtonText,
	})
	pipe.SAdd(ctx, channelsIndexKey, strconv.FormatInt(channel.ID, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store channel %d: %w", channel.ID, err)
	}
	return nil
}

func (r *ChannelRepo) List(ctx context.Context) ([]model.Channel, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	ids, err := r.client.SMembers(ctx, channelsIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list channel ids: %w", err)
	}

	channels := make([]model.Channel, 0, len(ids))
	for _, rawID := range ids {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed channel id %q: %w", rawID, err)
		}
		raw, err := r.client.HGetAll(ctx, channelKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("read channel %d: %w", id, err)
		}
		if len(raw) == 0 {
			continue
		}
		channels = append(channels, model.Channel{
			ID:         id,
			Title:      raw["title"],
			InviteLink: raw["invite_link"],
			ButtonText: raw["button_text"],
		})
	}

	sort.Slice(channels, func(i, j int) bool { return channels[i].ID < channels[j].ID })
	return channels, nil
}

func (r *ChannelRepo) Contains(ctx context.Context, chatID int64) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	ok, err := r.client.SIsMember(ctx, channelsIndexKey, strconv.FormatInt(chatID, 10)).Result()
	if err != nil {
		return false, fmt.Errorf("check channel %d: %w", chatID, err)
	}
	return ok, nil
}
