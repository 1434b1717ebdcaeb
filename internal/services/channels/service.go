package channels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/domain/model"
)

var (
	ErrButtonTextLength = errors.New("button text must be 1 to 30 characters")
	ErrNotAdministered  = errors.New("bot is not an admin of this chat")
)

// ChannelStore persists promoted mandatory channels.
type ChannelStore interface {
	Add(ctx context.Context, channel model.Channel) error
	List(ctx context.Context) ([]model.Channel, error)
	Contains(ctx context.Context, chatID int64) (bool, error)
}

// ChatStore tracks every chat the bot currently administers, promoted or not.
type ChatStore interface {
	Upsert(ctx context.Context, chat model.AdministeredChat) error
	Remove(ctx context.Context, chatID int64) error
	List(ctx context.Context) ([]model.AdministeredChat, error)
}

// InviteLinker fetches or creates a chat's invite link.
type InviteLinker interface {
	InviteLink(chatID int64) (string, error)
}

// Service manages the pool of administered chats and promotes selected
// ones into the mandatory-join list.
type Service struct {
	channels ChannelStore
	chats    ChatStore
	links    InviteLinker
	logger   *zap.Logger
}

func NewService(channels ChannelStore, chats ChatStore, links InviteLinker, logger *zap.Logger) *Service {
	return &Service{channels: channels, chats: chats, links: links, logger: logger}
}

// ValidateButtonText normalizes the join-button label the admin typed.
func (s *Service) ValidateButtonText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(text); n < 1 || n > 30 {
		return "", ErrButtonTextLength
	}
	return text, nil
}

// AddPromoted turns an administered chat into a mandatory channel. The
// invite link is resolved at promotion time so the join button works even
// for private channels.
func (s *Service) AddPromoted(ctx context.Context, chatID int64, buttonText string) (model.Channel, error) {
	text, err := s.ValidateButtonText(buttonText)
	if err != nil {
		return model.Channel{}, err
	}

	chats, err := s.chats.List(ctx)
	if err != nil {
		return model.Channel{}, fmt.Errorf("list administered chats: %w", err)
	}
	var chat *model.AdministeredChat
	for i := range chats {
		if chats[i].ID == chatID {
			chat = &chats[i]
			break
		}
	}
	if chat == nil {
		return model.Channel{}, fmt.Errorf("%w: %d", ErrNotAdministered, chatID)
	}

	link := chat.InviteLink
	if link == "" {
		link, err = s.links.InviteLink(chatID)
		if err != nil {
			return model.Channel{}, fmt.Errorf("resolve invite link for %d: %w", chatID, err)
		}
	}

	channel := model.Channel{
		ID:         chatID,
		Title:      chat.Title,
		InviteLink: link,
		ButtonText: text,
	}
	if err := s.channels.Add(ctx, channel); err != nil {
		return model.Channel{}, fmt.Errorf("store channel %d: %w", chatID, err)
	}

	s.logger.Info("channel promoted to mandatory list",
		zap.Int64("chat_id", chatID),
		zap.String("title", chat.Title))
	return channel, nil
}

// TrackAdministered records that the bot became an admin of chat.
func (s *Service) TrackAdministered(ctx context.Context, chat model.AdministeredChat) error {
	if err := s.chats.Upsert(ctx, chat); err != nil {
		return fmt.Errorf("track chat %d: %w", chat.ID, err)
	}
	return nil
}

// UntrackAdministered removes chatID from the pool and reports whether it
// was a promoted mandatory channel at the time.
func (s *Service) UntrackAdministered(ctx context.Context, chatID int64) (bool, error) {
	wasPromoted, err := s.channels.Contains(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("check promotion of %d: %w", chatID, err)
	}
	if err := s.chats.Remove(ctx, chatID); err != nil {
		return false, fmt.Errorf("untrack chat %d: %w", chatID, err)
	}
	return wasPromoted, nil
}

// Administered lists the chats available for promotion.
func (s *Service) Administered(ctx context.Context) ([]model.AdministeredChat, error) {
	return s.chats.List(ctx)
}

// Promoted lists the current mandatory channels.
func (s *Service) Promoted(ctx context.Context) ([]model.Channel, error) {
	return s.channels.List(ctx)
}
