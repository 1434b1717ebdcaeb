package gate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/domain/model"
)

// ChannelSource lists the channels users must join before using the bot.
type ChannelSource interface {
	List(ctx context.Context) ([]model.Channel, error)
}

// MembershipChecker asks Telegram for a user's status in a chat.
type MembershipChecker interface {
	MemberStatus(ctx context.Context, chatID, userID int64) (string, error)
}

// Service enforces the mandatory-channel gate. Membership lookups that fail
// count as "not a member": when Telegram cannot confirm membership the gate
// stays closed.
type Service struct {
	channels ChannelSource
	checker  MembershipChecker
	logger   *zap.Logger
}

func NewService(channels ChannelSource, checker MembershipChecker, logger *zap.Logger) *Service {
	return &Service{channels: channels, checker: checker, logger: logger}
}

// Check returns whether userID passes the gate and, when it does not, the
// channels the user still has to join. An empty channel list means the gate
// is open for everyone.
func (s *Service) Check(ctx context.Context, userID int64) (bool, []model.Channel, error) {
	channels, err := s.channels.List(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("list mandatory channels: %w", err)
	}
	if len(channels) == 0 {
		return true, nil, nil
	}

	var missing []model.Channel
	for _, channel := range channels {
		status, err := s.checker.MemberStatus(ctx, channel.ID, userID)
		if err != nil {
			s.logger.Warn("membership check failed, treating as not joined",
				zap.Int64("chat_id", channel.ID),
				zap.Int64("user_id", userID),
				zap.Error(err))
			missing = append(missing, channel)
			continue
		}
		if !joinedStatus(status) {
			missing = append(missing, channel)
		}
	}

	return len(missing) == 0, missing, nil
}

func joinedStatus(status string) bool {
	switch status {
	case "member", "administrator", "creator":
		return true
	default:
		return false
	}
}
