package profile

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/domain/model"
)

type fakeStore struct {
	profiles map[int64]model.Profile
	awards   int
}

func (f *fakeStore) Get(_ context.Context, userID int64) (model.Profile, bool, error) {
	p, ok := f.profiles[userID]
	return p, ok, nil
}

func (f *fakeStore) SetName(_ context.Context, userID int64, name string) error {
	p := f.profiles[userID]
	p.Name = &name
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) SetAge(_ context.Context, userID int64, age int) error {
	p := f.profiles[userID]
	p.Age = &age
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) SetPhone(_ context.Context, userID int64, phone string) error {
	p := f.profiles[userID]
	p.Phone = &phone
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) SetSchool(_ context.Context, userID int64, school string) error {
	p := f.profiles[userID]
	p.School = &school
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) AwardBonusOnce(_ context.Context, userID int64, coins int64) (bool, error) {
	p := f.profiles[userID]
	if p.BonusAwarded {
		return false, nil
	}
	p.BonusAwarded = true
	p.Coins += coins
	f.profiles[userID] = p
	f.awards++
	return true, nil
}

type fakeSchools struct {
	byCity map[string][]string
}

func (f *fakeSchools) List(_ context.Context, _, city string) ([]string, error) {
	return f.byCity[city], nil
}

func registeredProfile(userID int64) model.Profile {
	gender := enums.GenderMale
	province := "تهران"
	city := "ورامین"
	return model.Profile{ID: userID, Gender: &gender, Province: &province, City: &city}
}

func newTestService(store *fakeStore, schools *fakeSchools) *Service {
	return NewService(store, schools, 11, 24, 50, zap.NewNop())
}

func TestSetAgeRejectsOutOfRangeAndGarbage(t *testing.T) {
	store := &fakeStore{profiles: map[int64]model.Profile{1: registeredProfile(1)}}
	svc := newTestService(store, &fakeSchools{})
	ctx := context.Background()

	for _, raw := range []string{"ten", "", "10", "25", "-3"} {
		if err := svc.SetAge(ctx, 1, raw); !errors.Is(err, ErrInvalidAge) {
			t.Fatalf("SetAge(%q): expected ErrInvalidAge, got %v", raw, err)
		}
	}
	if store.profiles[1].Age != nil {
		t.Fatal("rejected ages must not be stored")
	}

	if err := svc.SetAge(ctx, 1, " 17 "); err != nil {
		t.Fatalf("SetAge(17): %v", err)
	}
	if got := store.profiles[1].Age; got == nil || *got != 17 {
		t.Fatalf("stored age = %v, want 17", got)
	}
}

func TestSetPhoneRejectsForeignContact(t *testing.T) {
	store := &fakeStore{profiles: map[int64]model.Profile{1: registeredProfile(1)}}
	svc := newTestService(store, &fakeSchools{})
	ctx := context.Background()

	if err := svc.SetPhone(ctx, 1, 2, "+989120000000"); !errors.Is(err, ErrNotOwnContact) {
		t.Fatalf("expected ErrNotOwnContact, got %v", err)
	}
	if store.profiles[1].Phone != nil {
		t.Fatal("foreign contact must not be stored")
	}

	if err := svc.SetPhone(ctx, 1, 1, "+989120000000"); err != nil {
		t.Fatalf("own contact: %v", err)
	}
	if got := store.profiles[1].Phone; got == nil || *got != "+989120000000" {
		t.Fatalf("stored phone = %v", got)
	}
}

func TestSchoolOptionsRequireRegistrationAndCatalog(t *testing.T) {
	store := &fakeStore{profiles: map[int64]model.Profile{
		1: registeredProfile(1),
		2: {ID: 2},
	}}
	schools := &fakeSchools{byCity: map[string][]string{}}
	svc := newTestService(store, schools)
	ctx := context.Background()

	if _, err := svc.SchoolOptions(ctx, 2); !errors.Is(err, ErrRegistrationIncomplete) {
		t.Fatalf("unregistered user: expected ErrRegistrationIncomplete, got %v", err)
	}
	if _, err := svc.SchoolOptions(ctx, 1); !errors.Is(err, ErrNoSchools) {
		t.Fatalf("empty catalog: expected ErrNoSchools, got %v", err)
	}

	schools.byCity["ورامین"] = []string{"مدرسه فرهنگ", "مدرسه امید"}
	options, err := svc.SchoolOptions(ctx, 1)
	if err != nil {
		t.Fatalf("school options: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("options = %v", options)
	}

	if err := svc.SetSchool(ctx, 1, "مدرسه ناشناس"); !errors.Is(err, ErrUnknownSchool) {
		t.Fatalf("expected ErrUnknownSchool, got %v", err)
	}
	if err := svc.SetSchool(ctx, 1, "مدرسه فرهنگ"); err != nil {
		t.Fatalf("set school: %v", err)
	}
}

func TestEvaluatePaysBonusExactlyOnceWhenComplete(t *testing.T) {
	p := registeredProfile(1)
	store := &fakeStore{profiles: map[int64]model.Profile{1: p}}
	schools := &fakeSchools{byCity: map[string][]string{"ورامین": {"مدرسه فرهنگ"}}}
	svc := newTestService(store, schools)
	ctx := context.Background()

	awarded, err := svc.Evaluate(ctx, 1)
	if err != nil || awarded {
		t.Fatalf("incomplete profile: awarded=%v err=%v", awarded, err)
	}

	if err := svc.SetName(ctx, 1, "فرداد"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := svc.SetAge(ctx, 1, "17"); err != nil {
		t.Fatalf("set age: %v", err)
	}
	if err := svc.SetPhone(ctx, 1, 1, "+989120000000"); err != nil {
		t.Fatalf("set phone: %v", err)
	}
	if err := svc.SetSchool(ctx, 1, "مدرسه فرهنگ"); err != nil {
		t.Fatalf("set school: %v", err)
	}

	awarded, err = svc.Evaluate(ctx, 1)
	if err != nil || !awarded {
		t.Fatalf("complete profile: awarded=%v err=%v", awarded, err)
	}
	awarded, err = svc.Evaluate(ctx, 1)
	if err != nil || awarded {
		t.Fatalf("second evaluate: awarded=%v err=%v", awarded, err)
	}
	if store.awards != 1 || store.profiles[1].Coins != 50 {
		t.Fatalf("awards=%d coins=%d, want one award of 50", store.awards, store.profiles[1].Coins)
	}
}

func TestSetNameRejectsBlank(t *testing.T) {
	store := &fakeStore{profiles: map[int64]model.Profile{1: registeredProfile(1)}}
	svc := newTestService(store, &fakeSchools{})

	if err := svc.SetName(context.Background(), 1, "   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}
