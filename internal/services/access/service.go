package access

import (
	"context"
	"fmt"
)

// AdminStore persists the single admin seat.
type AdminStore interface {
	EnsureAdmin(ctx context.Context, candidate int64) (int64, bool, error)
	Admin(ctx context.Context) (int64, bool, error)
}

// Service resolves admin identity. The first user who ever talks to the bot
// claims the admin seat; everyone after that is a regular user.
type Service struct {
	admins AdminStore
}

func NewService(admins AdminStore) *Service {
	return &Service{admins: admins}
}

// EnsureAdmin claims the admin seat for candidate if it is still vacant.
// It returns the effective admin id and whether candidate just became admin.
func (s *Service) EnsureAdmin(ctx context.Context, candidate int64) (int64, bool, error) {
	if candidate <= 0 {
		return 0, false, fmt.Errorf("invalid candidate id %d", candidate)
	}

	adminID, claimed, err := s.admins.EnsureAdmin(ctx, candidate)
	if err != nil {
		return 0, false, fmt.Errorf("ensure admin: %w", err)
	}
	return adminID, claimed, nil
}

// AdminID returns the current admin id, if the seat has been claimed.
func (s *Service) AdminID(ctx context.Context) (int64, bool, error) {
	adminID, ok, err := s.admins.Admin(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("load admin: %w", err)
	}
	return adminID, ok, nil
}

// IsAdmin reports whether userID currently holds the admin seat.
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	adminID, ok, err := s.admins.Admin(ctx)
	if err != nil {
		return false, fmt.Errorf("load admin: %w", err)
	}
	return ok && adminID == userID, nil
}
