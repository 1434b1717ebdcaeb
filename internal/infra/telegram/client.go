package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type UpdateHandler func(context.Context, tgbotapi.Update)

type Client struct {
	api         *tgbotapi.BotAPI
	logger      *zap.Logger
	handler     UpdateHandler
	pollTimeout int
	dryRun      bool
}

func NewClient(token string, pollTimeout int, logger *zap.Logger, handler UpdateHandler) (*Client, error) {
	if handler == nil {
		return nil, errors.New("telegram update handler is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(token) == "" {
		return &Client{
			logger:      logger,
			handler:     handler,
			pollTimeout: pollTimeout,
			dryRun:      true,
		}, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Client{
		api:         api,
		logger:      logger,
		handler:     handler,
		pollTimeout: pollTimeout,
	}, nil
}

func (c *Client) Start(ctx context.Context) error {
	if c.dryRun {
		c.logger.Warn("BOT_TOKEN is empty, running in dry mode")
		<-ctx.Done()
		return nil
	}

	timeout := c.pollTimeout
	if timeout <= 0 {
		timeout = 30
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := c.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handler(ctx, update)
		}
	}
}

func (c *Client) Send(msg tgbotapi.Chattable) error {
	if c.dryRun {
		return nil
	}
	_, err := c.api.Send(msg)
	return err
}

// Request fires a call whose response body is not a message (callback
// answers, message deletion).
func (c *Client) Request(msg tgbotapi.Chattable) error {
	if c.dryRun {
		return nil
	}
	_, err := c.api.Request(msg)
	return err
}

func (c *Client) BotUsername() string {
	if c.dryRun {
		return ""
	}
	return c.api.Self.UserName
}

// MemberStatus returns the raw chat-member status for userID in chatID.
// The channel gate treats any error here as "not a member".
func (c *Client) MemberStatus(_ context.Context, chatID int64, userID int64) (string, error) {
	if c.dryRun {
		return "", errors.New("telegram client is in dry mode")
	}
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", err
	}
	return member.Status, nil
}

func (c *Client) InviteLink(chatID int64) (string, error) {
	if c.dryRun {
		return "", errors.New("telegram client is in dry mode")
	}
	return c.api.GetInviteLink(tgbotapi.ChatInviteLinkConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
}
