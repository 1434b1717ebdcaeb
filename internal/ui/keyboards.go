package ui

import (
	"fmt"

	"github.com/FardadA/samp-crush/internal/domain/model"
	"github.com/FardadA/samp-crush/internal/infra/telegram"
)

// Callback data tags. Prefixed tags carry a payload after the underscore.
const (
	TagGenderPrefix = "gender_"
	TagProvPrefix   = "prov_"
	TagCityPrefix   = "city_"

	TagCompletePrefix = "complete_"
	TagSchoolPrefix   = "school_"

	TagCheckJoinAgain = "check_join_again"
	TagShowProfile    = "main_profile"
	TagShowCoins      = "main_coins"
	TagShowMainMenu   = "back_to_main_menu"

	TagSoonChat     = "main_anonymous_chat"
	TagSoonOpinion  = "main_submit_opinion"
	TagSoonNearby   = "main_nearby_opinions"
	TagAdminPanel   = "admin_panel"
	TagAdminChans   = "admin_channels"
	TagAdminSchools = "admin_schools"

	TagPromoChatPrefix = "promo_chat_"
	TagChannelConfirm  = "chadd_confirm"
	TagChannelCancel   = "chadd_cancel"

	TagSchoolsDone   = "schools_done"
	TagSchoolsCancel = "schools_cancel"
	TagAProvPrefix   = "aprov_"
	TagACityPrefix   = "acity_"
)

func GenderKeyboard() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "🚹 آقا", Data: TagGenderPrefix + "male"},
		{Text: "🚺 خانم", Data: TagGenderPrefix + "female"},
	}}
}

func ProvinceKeyboard(provinces []string, tagPrefix string) [][]telegram.InlineButton {
	rows := make([][]telegram.InlineButton, 0, len(provinces))
	for _, province := range provinces {
		rows = append(rows, []telegram.InlineButton{{Text: province, Data: tagPrefix + province}})
	}
	return rows
}

func CityKeyboard(cities []string, tagPrefix string) [][]telegram.InlineButton {
	rows := make([][]telegram.InlineButton, 0, len(cities))
	for _, city := range cities {
		rows = append(rows, []telegram.InlineButton{{Text: city, Data: tagPrefix + city}})
	}
	return rows
}

func SchoolKeyboard(schools []string) [][]telegram.InlineButton {
	rows := make([][]telegram.InlineButton, 0, len(schools))
	for _, school := range schools {
		rows = append(rows, []telegram.InlineButton{{Text: school, Data: TagSchoolPrefix + school}})
	}
	return rows
}

// JoinKeyboard lists one URL button per missing channel plus the recheck
// button at the bottom.
func JoinKeyboard(missing []model.Channel) [][]telegram.InlineButton {
	rows := make([][]telegram.InlineButton, 0, len(missing)+1)
	for _, channel := range missing {
		label := channel.ButtonText
		if label == "" {
			label = channel.Title
		}
		rows = append(rows, []telegram.InlineButton{{Text: label, URL: channel.InviteLink}})
	}
	rows = append(rows, []telegram.InlineButton{{Text: "✅ عضو شدم", Data: TagCheckJoinAgain}})
	return rows
}

func MainMenuKeyboard(isAdmin bool) [][]telegram.InlineButton {
	rows := [][]telegram.InlineButton{
		{
			{Text: "👤 نمایه من", Data: TagShowProfile},
			{Text: "💰 سکه‌های من", Data: TagShowCoins},
		},
		{
			{Text: "💬 چت با ناشناس", Data: TagSoonChat},
		},
		{
			{Text: "✍️ ثبت نظر", Data: TagSoonOpinion},
			{Text: "👀 نظرات اطراف", Data: TagSoonNearby},
		},
	}
	if isAdmin {
		rows = append(rows, []telegram.InlineButton{{Text: "👑 پنل ادمین", Data: TagAdminPanel}})
	}
	return rows
}

func AdminPanelKeyboard() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{{Text: "📢 مدیریت کانال‌ها", Data: TagAdminChans}},
		{{Text: "🏫 مدیریت مدارس", Data: TagAdminSchools}},
		{{Text: " بازگشت به منوی اصلی", Data: TagShowMainMenu}},
	}
}

func AdministeredChatsKeyboard(chats []model.AdministeredChat) [][]telegram.InlineButton {
	rows := make([][]telegram.InlineButton, 0, len(chats)+1)
	for _, chat := range chats {
		rows = append(rows, []telegram.InlineButton{{
			Text: chat.Title,
			Data: fmt.Sprintf("%s%d", TagPromoChatPrefix, chat.ID),
		}})
	}
	rows = append(rows, []telegram.InlineButton{{Text: "لغو", Data: TagChannelCancel}})
	return rows
}

func ChannelConfirmKeyboard() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "✅ بله، اضافه شود", Data: TagChannelConfirm},
		{Text: "❌ لغو", Data: TagChannelCancel},
	}}
}

func SchoolBatchKeyboard() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: "اتمام و ذخیره", Data: TagSchoolsDone},
		{Text: "لغو", Data: TagSchoolsCancel},
	}}
}
