package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/FardadA/samp-crush/internal/domain/model"
)

const chatsIndexKey = "chats:index"

// ChatsRepo tracks chats where the bot currently holds administrator
// rights, fed by my_chat_member updates.
type ChatsRepo struct {
	client *goredis.Client
}

func NewChatsRepo(client *goredis.Client) *ChatsRepo {
	return &ChatsRepo{client: client}
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("chats:%d", chatID)
}

func (r *ChatsRepo) Upsert(ctx context.Context, chat model.AdministeredChat) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if chat.ID == 0 {
		return fmt.Errorf("chat id is required")
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, chatKey(chat.ID), map[string]interface{}{
		"title":       chat.Title,
		"type":        chat.Type,
		"invite_link": chat.InviteLink,
	})
	pipe.SAdd(ctx, chatsIndexKey, strconv.FormatInt(chat.ID, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store administered chat %d: %w", chat.ID, err)
	}
	return nil
}

func (r *ChatsRepo) Remove(ctx context.Context, chatID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, chatKey(chatID))
	pipe.SRem(ctx, chatsIndexKey, strconv.FormatInt(chatID, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("remove administered chat %d: %w", chatID, err)
	}
	return nil
}

func (r *ChatsRepo) List(ctx context.Context) ([]model.AdministeredChat, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	ids, err := r.client.SMembers(ctx, chatsIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list administered chat ids: %w", err)
	}

	chats := make([]model.AdministeredChat, 0, len(ids))
	for _, rawID := range ids {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed chat id %q: %w", rawID, err)
		}
		raw, err := r.client.HGetAll(ctx, chatKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("read administered chat %d: %w", id, err)
		}
		if len(raw) == 0 {
			continue
		}
		chats = append(chats, model.AdministeredChat{
			ID:         id,
			Title:      raw["title"],
			Type:       raw["type"],
			InviteLink: raw["invite_link"],
		})
	}

	sort.Slice(chats, func(i, j int) bool { return chats[i].ID < chats[j].ID })
	return chats, nil
}
