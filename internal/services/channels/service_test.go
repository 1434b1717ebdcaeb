package channels

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/domain/model"
)

type fakeChannelStore struct {
	channels map[int64]model.Channel
}

func (f *fakeChannelStore) Add(_ context.Context, channel model.Channel) error {
	f.channels[channel.ID] = channel
	return nil
}

func (f *fakeChannelStore) List(context.Context) ([]model.Channel, error) {
	out := make([]model.Channel, 0, len(f.channels))
	for _, ch := range f.channels {
		out = append(out, ch)
	}
	return out, nil
}

func (f *fakeChannelStore) Contains(_ context.Context, chatID int64) (bool, error) {
	_, ok := f.channels[chatID]
	return ok, nil
}

type fakeChatStore struct {
	chats map[int64]model.AdministeredChat
}

func (f *fakeChatStore) Upsert(_ context.Context, chat model.AdministeredChat) error {
	f.chats[chat.ID] = chat
	return nil
}

func (f *fakeChatStore) Remove(_ context.Context, chatID int64) error {
	delete(f.chats, chatID)
	return nil
}

func (f *fakeChatStore) List(context.Context) ([]model.AdministeredChat, error) {
	out := make([]model.AdministeredChat, 0, len(f.chats))
	for _, chat := range f.chats {
		out = append(out, chat)
	}
	return out, nil
}

type fakeLinker struct {
	links map[int64]string
	err   error
}

func (f *fakeLinker) InviteLink(chatID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.links[chatID], nil
}

func newTestService() (*Service, *fakeChannelStore, *fakeChatStore, *fakeLinker) {
	channelStore := &fakeChannelStore{channels: map[int64]model.Channel{}}
	chatStore := &fakeChatStore{chats: map[int64]model.AdministeredChat{}}
	linker := &fakeLinker{links: map[int64]string{}}
	return NewService(channelStore, chatStore, linker, zap.NewNop()), channelStore, chatStore, linker
}

func TestValidateButtonTextBounds(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, err := svc.ValidateButtonText("   "); !errors.Is(err, ErrButtonTextLength) {
		t.Fatalf("blank text: expected ErrButtonTextLength, got %v", err)
	}
	if _, err := svc.ValidateButtonText(strings.Repeat("ع", 31)); !errors.Is(err, ErrButtonTextLength) {
		t.Fatalf("31-rune text: expected ErrButtonTextLength, got %v", err)
	}
	text, err := svc.ValidateButtonText(" عضویت در کانال ")
	if err != nil || text != "عضویت در کانال" {
		t.Fatalf("valid text: %q err=%v", text, err)
	}
}

func TestAddPromotedRequiresAdministeredChat(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.AddPromoted(context.Background(), -1001, "عضویت")
	if !errors.Is(err, ErrNotAdministered) {
		t.Fatalf("expected ErrNotAdministered, got %v", err)
	}
}

func TestAddPromotedResolvesInviteLinkWhenMissing(t *testing.T) {
	svc, channelStore, chatStore, linker := newTestService()
	ctx := context.Background()

	chatStore.chats[-1001] = model.AdministeredChat{ID: -1001, Title: "کانال اخبار", Type: "channel"}
	linker.links[-1001] = "https://t.me/+abc"

	channel, err := svc.AddPromoted(ctx, -1001, "عضویت در اخبار")
	if err != nil {
		t.Fatalf("add promoted: %v", err)
	}
	if channel.InviteLink != "https://t.me/+abc" {
		t.Fatalf("invite link = %q", channel.InviteLink)
	}
	if _, ok := channelStore.channels[-1001]; !ok {
		t.Fatal("channel not persisted")
	}
}

func TestAddPromotedKeepsStoredInviteLink(t *testing.T) {
	svc, _, chatStore, linker := newTestService()
	chatStore.chats[-1001] = model.AdministeredChat{ID: -1001, Title: "کانال", InviteLink: "https://t.me/stored"}
	linker.err = errors.New("should not be called")

	channel, err := svc.AddPromoted(context.Background(), -1001, "عضویت")
	if err != nil {
		t.Fatalf("add promoted: %v", err)
	}
	if channel.InviteLink != "https://t.me/stored" {
		t.Fatalf("invite link = %q, want stored one", channel.InviteLink)
	}
}

func TestUntrackReportsWhetherChatWasPromoted(t *testing.T) {
	svc, channelStore, chatStore, _ := newTestService()
	ctx := context.Background()

	chatStore.chats[-1001] = model.AdministeredChat{ID: -1001, Title: "الف"}
	chatStore.chats[-1002] = model.AdministeredChat{ID: -1002, Title: "ب"}
	channelStore.channels[-1001] = model.Channel{ID: -1001}

	wasPromoted, err := svc.UntrackAdministered(ctx, -1001)
	if err != nil || !wasPromoted {
		t.Fatalf("promoted chat: wasPromoted=%v err=%v", wasPromoted, err)
	}
	wasPromoted, err = svc.UntrackAdministered(ctx, -1002)
	if err != nil || wasPromoted {
		t.Fatalf("plain chat: wasPromoted=%v err=%v", wasPromoted, err)
	}
	if len(chatStore.chats) != 0 {
		t.Fatalf("chats left tracked: %v", chatStore.chats)
	}
}
