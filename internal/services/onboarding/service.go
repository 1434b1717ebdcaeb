package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/FardadA/samp-crush/internal/catalog"
	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/domain/model"
)

var (
	ErrUnknownGender   = errors.New("unknown gender")
	ErrUnknownProvince = errors.New("unknown province")
	ErrUnknownCity     = errors.New("unknown city")
	ErrIncomplete      = errors.New("registration scratch incomplete")
)

// ProfileStore is the slice of profile storage registration needs.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (model.Profile, bool, error)
	SetRegistration(ctx context.Context, userID int64, gender enums.Gender, province, city string) error
}

// Scratch holds in-flight registration answers. Nothing here touches storage
// until Complete persists all three answers in one write.
type Scratch struct {
	Gender   *enums.Gender
	Province *string
	City     *string
}

// NextStage returns the first question the scratch has no answer for.
func (s Scratch) NextStage() enums.Stage {
	switch {
	case s.Gender == nil:
		return enums.StageSelectGender
	case s.Province == nil:
		return enums.StageSelectProvince
	default:
		return enums.StageSelectCity
	}
}

type Service struct {
	profiles ProfileStore
}

func NewService(profiles ProfileStore) *Service {
	return &Service{profiles: profiles}
}

// Entry inspects the stored profile and builds the scratch a resumed
// registration should start from. A profile that already has a gender and a
// province but no city resumes at the city question.
func (s *Service) Entry(ctx context.Context, userID int64) (Scratch, enums.Stage, bool, error) {
	profile, found, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Scratch{}, "", false, fmt.Errorf("load profile %d: %w", userID, err)
	}
	if found && profile.RegistrationComplete() {
		return Scratch{}, "", true, nil
	}

	scratch := Scratch{
		Gender:   profile.Gender,
		Province: profile.Province,
		City:     profile.City,
	}
	return scratch, scratch.NextStage(), false, nil
}

func (s *Service) SelectGender(scratch *Scratch, raw string) error {
	gender, ok := enums.ParseGender(raw)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGender, raw)
	}
	scratch.Gender = &gender
	return nil
}

func (s *Service) SelectProvince(scratch *Scratch, province string) error {
	if !catalog.HasProvince(province) {
		return fmt.Errorf("%w: %q", ErrUnknownProvince, province)
	}
	scratch.Province = &province
	// A new province invalidates any previously picked city.
	scratch.City = nil
	return nil
}

func (s *Service) SelectCity(scratch *Scratch, city string) error {
	if scratch.Province == nil {
		return ErrIncomplete
	}
	if !catalog.HasCity(*scratch.Province, city) {
		return fmt.Errorf("%w: %q in %q", ErrUnknownCity, city, *scratch.Province)
	}
	scratch.City = &city
	return nil
}

// Complete persists gender, province and city in a single write. The stored
// profile either has all three or none of the new answers, never a partial
// mix from a registration that died halfway.
func (s *Service) Complete(ctx context.Context, userID int64, scratch Scratch) error {
	if scratch.Gender == nil || scratch.Province == nil || scratch.City == nil {
		return ErrIncomplete
	}
	if err := s.profiles.SetRegistration(ctx, userID, *scratch.Gender, *scratch.Province, *scratch.City); err != nil {
		return fmt.Errorf("persist registration %d: %w", userID, err)
	}
	return nil
}
