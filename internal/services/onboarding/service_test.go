package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/domain/model"
)

type fakeProfiles struct {
	profiles map[int64]model.Profile
	writes   int
}

func (f *fakeProfiles) Get(_ context.Context, userID int64) (model.Profile, bool, error) {
	p, ok := f.profiles[userID]
	return p, ok, nil
}

func (f *fakeProfiles) SetRegistration(_ context.Context, userID int64, gender enums.Gender, province, city string) error {
	p := f.profiles[userID]
	p.ID = userID
	p.Gender = &gender
	p.Province = &province
	p.City = &city
	f.profiles[userID] = p
	f.writes++
	return nil
}

func strPtr(s string) *string { return &s }

func TestEntryResumesAtFirstMissingAnswer(t *testing.T) {
	gender := enums.GenderFemale
	store := &fakeProfiles{profiles: map[int64]model.Profile{
		1: {ID: 1},
		2: {ID: 2, Gender: &gender},
		3: {ID: 3, Gender: &gender, Province: strPtr("تهران")},
	}}
	svc := NewService(store)
	ctx := context.Background()

	cases := []struct {
		userID int64
		stage  enums.Stage
	}{
		{1, enums.StageSelectGender},
		{2, enums.StageSelectProvince},
		{3, enums.StageSelectCity},
		{99, enums.StageSelectGender}, // no profile at all
	}
	for _, tc := range cases {
		_, stage, done, err := svc.Entry(ctx, tc.userID)
		if err != nil {
			t.Fatalf("entry %d: %v", tc.userID, err)
		}
		if done {
			t.Fatalf("entry %d: unexpectedly complete", tc.userID)
		}
		if stage != tc.stage {
			t.Fatalf("entry %d: stage = %s, want %s", tc.userID, stage, tc.stage)
		}
	}
}

func TestEntryReportsCompleteRegistration(t *testing.T) {
	gender := enums.GenderMale
	store := &fakeProfiles{profiles: map[int64]model.Profile{
		1: {ID: 1, Gender: &gender, Province: strPtr("البرز"), City: strPtr("کرج")},
	}}
	svc := NewService(store)

	_, _, done, err := svc.Entry(context.Background(), 1)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if !done {
		t.Fatal("expected registration to be reported complete")
	}
}

func TestSelectProvinceResetsCity(t *testing.T) {
	svc := NewService(&fakeProfiles{profiles: map[int64]model.Profile{}})

	var scratch Scratch
	if err := svc.SelectGender(&scratch, "male"); err != nil {
		t.Fatalf("select gender: %v", err)
	}
	if err := svc.SelectProvince(&scratch, "تهران"); err != nil {
		t.Fatalf("select province: %v", err)
	}
	if err := svc.SelectCity(&scratch, "ورامین"); err != nil {
		t.Fatalf("select city: %v", err)
	}

	if err := svc.SelectProvince(&scratch, "البرز"); err != nil {
		t.Fatalf("reselect province: %v", err)
	}
	if scratch.City != nil {
		t.Fatalf("city should reset on province change, got %q", *scratch.City)
	}
	if err := svc.SelectCity(&scratch, "ورامین"); !errors.Is(err, ErrUnknownCity) {
		t.Fatalf("expected ErrUnknownCity for city outside province, got %v", err)
	}
}

func TestSelectRejectsUnknownValues(t *testing.T) {
	svc := NewService(&fakeProfiles{profiles: map[int64]model.Profile{}})

	var scratch Scratch
	if err := svc.SelectGender(&scratch, "robot"); !errors.Is(err, ErrUnknownGender) {
		t.Fatalf("expected ErrUnknownGender, got %v", err)
	}
	if err := svc.SelectProvince(&scratch, "فارس"); !errors.Is(err, ErrUnknownProvince) {
		t.Fatalf("expected ErrUnknownProvince, got %v", err)
	}
	if err := svc.SelectCity(&scratch, "کرج"); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete without province, got %v", err)
	}
}

func TestCompleteWritesAllThreeAnswersOnce(t *testing.T) {
	store := &fakeProfiles{profiles: map[int64]model.Profile{}}
	svc := NewService(store)
	ctx := context.Background()

	var scratch Scratch
	if err := svc.Complete(ctx, 1, scratch); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete for empty scratch, got %v", err)
	}

	if err := svc.SelectGender(&scratch, "female"); err != nil {
		t.Fatalf("select gender: %v", err)
	}
	if err := svc.SelectProvince(&scratch, "البرز"); err != nil {
		t.Fatalf("select province: %v", err)
	}
	if err := svc.SelectCity(&scratch, "فردیس"); err != nil {
		t.Fatalf("select city: %v", err)
	}
	if err := svc.Complete(ctx, 1, scratch); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if store.writes != 1 {
		t.Fatalf("expected a single registration write, got %d", store.writes)
	}
	p := store.profiles[1]
	if !p.RegistrationComplete() {
		t.Fatalf("profile should be registration-complete: %+v", p)
	}
	if *p.Province != "البرز" || *p.City != "فردیس" || *p.Gender != enums.GenderFemale {
		t.Fatalf("unexpected stored answers: %+v", p)
	}
}
