package referral

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ProfileStore is the slice of profile storage the referral economy needs.
type ProfileStore interface {
	CreateIfAbsent(ctx context.Context, userID int64, username, firstName string, coins int64) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	IncrCoins(ctx context.Context, userID int64, delta int64) (int64, error)
}

type Service struct {
	profiles      ProfileStore
	welcomeCoins  int64
	referralCoins int64
	logger        *zap.Logger
}

// InitResult describes what a first-contact init actually did.
type InitResult struct {
	Created    bool
	ReferrerID int64
	Credited   bool
}

func NewService(profiles ProfileStore, welcomeCoins, referralCoins int64, logger *zap.Logger) *Service {
	return &Service{
		profiles:      profiles,
		welcomeCoins:  welcomeCoins,
		referralCoins: referralCoins,
		logger:        logger,
	}
}

// InitNewUser creates the user's profile on first contact and pays the
// referrer. The create is the gate: a user whose profile already exists never
// triggers a payout, so replaying a referral deep link cannot double-credit.
// Self-referrals and unknown referrers are ignored.
func (s *Service) InitNewUser(ctx context.Context, userID int64, username, firstName string, referrerID int64) (InitResult, error) {
	created, err := s.profiles.CreateIfAbsent(ctx, userID, username, firstName, s.welcomeCoins)
	if err != nil {
		return InitResult{}, fmt.Errorf("create profile %d: %w", userID, err)
	}

	result := InitResult{Created: created}
	if !created || referrerID <= 0 || referrerID == userID {
		return result, nil
	}
	result.ReferrerID = referrerID

	exists, err := s.profiles.Exists(ctx, referrerID)
	if err != nil {
		return result, fmt.Errorf("check referrer %d: %w", referrerID, err)
	}
	if !exists {
		s.logger.Info("referral link points at unknown user, skipping payout",
			zap.Int64("user_id", userID),
			zap.Int64("referrer_id", referrerID))
		return result, nil
	}

	if _, err := s.profiles.IncrCoins(ctx, referrerID, s.referralCoins); err != nil {
		return result, fmt.Errorf("credit referrer %d: %w", referrerID, err)
	}
	result.Credited = true

	return result, nil
}
