package model

import (
	"time"

	"github.com/FardadA/samp-crush/internal/domain/enums"
)

// Profile is one user document. Optional fields are pointers: nil means
// the field has never been supplied.
type Profile struct {
	ID        int64
	Username  string
	FirstName string

	Gender   *enums.Gender
	Province *string
	City     *string

	Name   *string
	Age    *int
	School *string
	Phone  *string

	Coins        int64
	BonusAwarded bool
	CreatedAt    *time.Time
}

// RegistrationComplete reports whether the mandatory onboarding fields
// are all present. A user with an incomplete registration never reaches
// the main menu.
func (p Profile) RegistrationComplete() bool {
	return p.Gender != nil && p.Province != nil && p.City != nil
}

// OptionalComplete reports whether all four optional profile fields are
// present, the precondition for the one-time completion bonus.
func (p Profile) OptionalComplete() bool {
	return p.Name != nil && p.Age != nil && p.School != nil && p.Phone != nil
}
