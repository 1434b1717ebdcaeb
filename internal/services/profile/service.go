package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/catalog"
	"github.com/FardadA/samp-crush/internal/domain/model"
)

var (
	ErrEmptyName              = errors.New("name must not be empty")
	ErrInvalidAge             = errors.New("age out of range")
	ErrNotOwnContact          = errors.New("contact does not belong to the sender")
	ErrRegistrationIncomplete = errors.New("registration incomplete")
	ErrNoSchools              = errors.New("no schools for this city")
	ErrUnknownSchool          = errors.New("school not in the city's catalog")
)

// ProfileStore is the profile storage surface the completion flow uses.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (model.Profile, bool, error)
	SetName(ctx context.Context, userID int64, name string) error
	SetAge(ctx context.Context, userID int64, age int) error
	SetPhone(ctx context.Context, userID int64, phone string) error
	SetSchool(ctx context.Context, userID int64, school string) error
	AwardBonusOnce(ctx context.Context, userID int64, coins int64) (bool, error)
}

// SchoolSource lists the school catalog for a city.
type SchoolSource interface {
	List(ctx context.Context, province, city string) ([]string, error)
}

// Service handles the optional profile fields and the one-time
// completion bonus.
type Service struct {
	profiles ProfileStore
	schools  SchoolSource
	ageMin   int
	ageMax   int
	bonus    int64
	logger   *zap.Logger
}

func NewService(profiles ProfileStore, schools SchoolSource, ageMin, ageMax int, bonus int64, logger *zap.Logger) *Service {
	return &Service{
		profiles: profiles,
		schools:  schools,
		ageMin:   ageMin,
		ageMax:   ageMax,
		bonus:    bonus,
		logger:   logger,
	}
}

func (s *Service) Get(ctx context.Context, userID int64) (model.Profile, bool, error) {
	return s.profiles.Get(ctx, userID)
}

func (s *Service) SetName(ctx context.Context, userID int64, raw string) error {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ErrEmptyName
	}
	if err := s.profiles.SetName(ctx, userID, name); err != nil {
		return fmt.Errorf("store name for %d: %w", userID, err)
	}
	return nil
}

// SetAge parses the raw reply and stores it if it is inside the allowed
// range. A non-numeric or out-of-range reply returns ErrInvalidAge and
// stores nothing, so the conversation stays on the age question.
func (s *Service) SetAge(ctx context.Context, userID int64, raw string) error {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAge, raw)
	}
	if age < s.ageMin || age > s.ageMax {
		return fmt.Errorf("%w: %d", ErrInvalidAge, age)
	}
	if err := s.profiles.SetAge(ctx, userID, age); err != nil {
		return fmt.Errorf("store age for %d: %w", userID, err)
	}
	return nil
}

// SetPhone accepts a shared Telegram contact. The contact must be the
// sender's own: a forwarded contact card of someone else is rejected.
func (s *Service) SetPhone(ctx context.Context, userID, contactUserID int64, phone string) error {
	if contactUserID != userID {
		return ErrNotOwnContact
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrNotOwnContact
	}
	if err := s.profiles.SetPhone(ctx, userID, phone); err != nil {
		return fmt.Errorf("store phone for %d: %w", userID, err)
	}
	return nil
}

// SchoolOptions returns the schools the user may pick from, scoped to the
// city they registered in.
func (s *Service) SchoolOptions(ctx context.Context, userID int64) ([]string, error) {
	profile, found, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile %d: %w", userID, err)
	}
	if !found || !profile.RegistrationComplete() {
		return nil, ErrRegistrationIncomplete
	}
	if !catalog.HasCity(*profile.Province, *profile.City) {
		return nil, ErrRegistrationIncomplete
	}

	options, err := s.schools.List(ctx, *profile.Province, *profile.City)
	if err != nil {
		return nil, fmt.Errorf("list schools for %s/%s: %w", *profile.Province, *profile.City, err)
	}
	if len(options) == 0 {
		return nil, ErrNoSchools
	}
	return options, nil
}

func (s *Service) SetSchool(ctx context.Context, userID int64, school string) error {
	options, err := s.SchoolOptions(ctx, userID)
	if err != nil {
		return err
	}
	valid := false
	for _, option := range options {
		if option == school {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", ErrUnknownSchool, school)
	}
	if err := s.profiles.SetSchool(ctx, userID, school); err != nil {
		return fmt.Errorf("store school for %d: %w", userID, err)
	}
	return nil
}

// Evaluate pays the completion bonus when all four optional fields are
// present. The award is atomic and one-shot: replaying Evaluate after a
// payout returns awarded=false.
func (s *Service) Evaluate(ctx context.Context, userID int64) (bool, error) {
	profile, found, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load profile %d: %w", userID, err)
	}
	if !found || !profile.OptionalComplete() || profile.BonusAwarded {
		return false, nil
	}

	awarded, err := s.profiles.AwardBonusOnce(ctx, userID, s.bonus)
	if err != nil {
		return false, fmt.Errorf("award bonus for %d: %w", userID, err)
	}
	if awarded {
		s.logger.Info("profile completion bonus paid",
			zap.Int64("user_id", userID),
			zap.Int64("coins", s.bonus))
	}
	return awarded, nil
}
