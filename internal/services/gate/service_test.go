package gate

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/domain/model"
)

type fakeChannelSource struct {
	channels []model.Channel
	err      error
}

func (f *fakeChannelSource) List(context.Context) ([]model.Channel, error) {
	return f.channels, f.err
}

type fakeChecker struct {
	statuses map[int64]string
	err      map[int64]error
}

func (f *fakeChecker) MemberStatus(_ context.Context, chatID, _ int64) (string, error) {
	if err, ok := f.err[chatID]; ok {
		return "", err
	}
	return f.statuses[chatID], nil
}

func TestCheckOpenWhenNoChannelsConfigured(t *testing.T) {
	svc := NewService(&fakeChannelSource{}, &fakeChecker{}, zap.NewNop())

	ok, missing, err := svc.Check(context.Background(), 42)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok || len(missing) != 0 {
		t.Fatalf("expected open gate, got ok=%v missing=%v", ok, missing)
	}
}

func TestCheckReportsOnlyChannelsNotJoined(t *testing.T) {
	channels := []model.Channel{
		{ID: -1001, Title: "اخبار"},
		{ID: -1002, Title: "سرگرمی"},
		{ID: -1003, Title: "مسابقه"},
	}
	checker := &fakeChecker{statuses: map[int64]string{
		-1001: "member",
		-1002: "left",
		-1003: "creator",
	}}
	svc := NewService(&fakeChannelSource{channels: channels}, checker, zap.NewNop())

	ok, missing, err := svc.Check(context.Background(), 42)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Fatal("expected closed gate")
	}
	if len(missing) != 1 || missing[0].ID != -1002 {
		t.Fatalf("expected only -1002 missing, got %v", missing)
	}
}

func TestCheckTreatsLookupErrorAsNotJoined(t *testing.T) {
	channels := []model.Channel{{ID: -1001, Title: "اخبار"}}
	checker := &fakeChecker{err: map[int64]error{-1001: errors.New("chat not found")}}
	svc := NewService(&fakeChannelSource{channels: channels}, checker, zap.NewNop())

	ok, missing, err := svc.Check(context.Background(), 42)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok || len(missing) != 1 {
		t.Fatalf("expected gate closed on lookup error, got ok=%v missing=%v", ok, missing)
	}
}
