package app

import (
	"context"
	"testing"

	"github.com/FardadA/samp-crush/internal/domain/enums"
	profilesvc "github.com/FardadA/samp-crush/internal/services/profile"
	"github.com/FardadA/samp-crush/internal/ui"
)

func TestSchoolOptionsReplyAsksForRegistrationFirst(t *testing.T) {
	a := newTestApp(t)

	got := a.schoolOptionsReply(context.Background(), 42, profilesvc.ErrRegistrationIncomplete)
	if got != ui.MsgRegisterFirst {
		t.Fatalf("got %q, want the register-first prompt", got)
	}
}

func TestSchoolOptionsReplyNamesTheEmptyCity(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	const userID = 45
	if _, err := a.profileRepo.CreateIfAbsent(ctx, userID, "kid", "سارا", 20); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if err := a.profileRepo.SetRegistration(ctx, userID, enums.GenderFemale, "تهران", "ورامین"); err != nil {
		t.Fatalf("SetRegistration: %v", err)
	}

	got := a.schoolOptionsReply(ctx, userID, profilesvc.ErrNoSchools)
	want := ui.MsgNoSchoolsForCity("ورامین", "تهران")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
