package app

import (
	"sync"

	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/services/onboarding"
)

// channelDraft accumulates the add-channel conversation.
type channelDraft struct {
	ChatID     int64
	Title      string
	InviteLink string
	ButtonText string
}

// schoolDraft accumulates the manage-schools conversation.
type schoolDraft struct {
	Province string
	City     string
	Queued   []string
}

// flowState is one chat's active conversation. A chat has at most one
// flow at a time; starting a new one replaces the old.
type flowState struct {
	Flow  enums.Flow
	Stage enums.Stage

	Reg     onboarding.Scratch
	Channel channelDraft
	Schools schoolDraft
}

// sessions is the in-memory conversation store keyed by chat id. State is
// process-local: a restart drops in-flight conversations, persisted
// profile fields survive.
type sessions struct {
	mu    sync.Mutex
	flows map[int64]*flowState
}

func newSessions() *sessions {
	return &sessions{flows: map[int64]*flowState{}}
}

func (s *sessions) get(chatID int64) (*flowState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.flows[chatID]
	return state, ok
}

func (s *sessions) set(chatID int64, state *flowState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[chatID] = state
}

func (s *sessions) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, chatID)
}
