package app

import (
	"strconv"
	"strings"

	"github.com/FardadA/samp-crush/internal/ui"
)

type callbackKind int

const (
	cbUnknown callbackKind = iota
	cbGender
	cbProvince
	cbCity
	cbComplete
	cbSchool
	cbCheckJoinAgain
	cbShowProfile
	cbShowCoins
	cbShowMainMenu
	cbComingSoon
	cbAdminPanel
	cbAdminChannels
	cbAdminSchools
	cbPromoteChat
	cbChannelConfirm
	cbChannelCancel
	cbSchoolsDone
	cbSchoolsCancel
	cbAdminProvince
	cbAdminCity
)

// callback is a decoded callback-query payload. Value carries the text
// payload of prefixed tags; ChatID is set only for cbPromoteChat.
type callback struct {
	Kind   callbackKind
	Value  string
	ChatID int64
}

func parseCallback(data string) (callback, bool) {
	switch data {
	case ui.TagCheckJoinAgain:
		return callback{Kind: cbCheckJoinAgain}, true
	case ui.TagShowProfile:
		return callback{Kind: cbShowProfile}, true
	case ui.TagShowCoins:
		return callback{Kind: cbShowCoins}, true
	case ui.TagShowMainMenu:
		return callback{Kind: cbShowMainMenu}, true
	case ui.TagSoonChat, ui.TagSoonOpinion, ui.TagSoonNearby:
		return callback{Kind: cbComingSoon}, true
	case ui.TagAdminPanel:
		return callback{Kind: cbAdminPanel}, true
	case ui.TagAdminChans:
		return callback{Kind: cbAdminChannels}, true
	case ui.TagAdminSchools:
		return callback{Kind: cbAdminSchools}, true
	case ui.TagChannelConfirm:
		return callback{Kind: cbChannelConfirm}, true
	case ui.TagChannelCancel:
		return callback{Kind: cbChannelCancel}, true
	case ui.TagSchoolsDone:
		return callback{Kind: cbSchoolsDone}, true
	case ui.TagSchoolsCancel:
		return callback{Kind: cbSchoolsCancel}, true
	}

	prefixed := []struct {
		prefix string
		kind   callbackKind
	}{
		{ui.TagGenderPrefix, cbGender},
		{ui.TagProvPrefix, cbProvince},
		{ui.TagCityPrefix, cbCity},
		{ui.TagCompletePrefix, cbComplete},
		{ui.TagSchoolPrefix, cbSchool},
		{ui.TagAProvPrefix, cbAdminProvince},
		{ui.TagACityPrefix, cbAdminCity},
	}
	for _, p := range prefixed {
		if value, ok := strings.CutPrefix(data, p.prefix); ok && value != "" {
			return callback{Kind: p.kind, Value: value}, true
		}
	}

	if raw, ok := strings.CutPrefix(data, ui.TagPromoChatPrefix); ok {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return callback{}, false
		}
		return callback{Kind: cbPromoteChat, ChatID: chatID}, true
	}

	return callback{}, false
}
