package ui

import (
	"fmt"
	"strings"

	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/domain/model"
	"github.com/FardadA/samp-crush/internal/infra/telegram"
)

func genderLabel(gender *enums.Gender) string {
	if gender == nil {
		return FieldUnset
	}
	if *gender == enums.GenderFemale {
		return "خانم"
	}
	return "آقا"
}

func orUnset(value *string) string {
	if value == nil {
		return FieldUnset
	}
	return *value
}

// RenderProfileCard builds the profile text and the buttons offering to
// fill whatever optional fields are still missing.
func RenderProfileCard(profile model.Profile) (string, [][]telegram.InlineButton) {
	age := FieldUnset
	if profile.Age != nil {
		age = fmt.Sprintf("%d", *profile.Age)
	}

	var b strings.Builder
	b.WriteString("👤 **نمایه شما** 👤\n\n")
	fmt.Fprintf(&b, "🔸 نام: %s\n", orUnset(profile.Name))
	fmt.Fprintf(&b, "🔸 سن: %s\n", age)
	fmt.Fprintf(&b, "🔸 جنسیت: %s\n", genderLabel(profile.Gender))
	fmt.Fprintf(&b, "🔸 استان: %s\n", orUnset(profile.Province))
	fmt.Fprintf(&b, "🔸 شهر: %s\n", orUnset(profile.City))
	fmt.Fprintf(&b, "🔸 مدرسه: %s\n", orUnset(profile.School))
	fmt.Fprintf(&b, "🔸 شماره تماس: %s\n", orUnset(profile.Phone))
	fmt.Fprintf(&b, "💰 سکه‌ها: %d", profile.Coins)

	var rows [][]telegram.InlineButton
	if profile.Name == nil {
		rows = append(rows, []telegram.InlineButton{{Text: "📝 ثبت نام", Data: TagCompletePrefix + "name"}})
	}
	if profile.Age == nil {
		rows = append(rows, []telegram.InlineButton{{Text: "🎂 ثبت سن", Data: TagCompletePrefix + "age"}})
	}
	if profile.School == nil {
		rows = append(rows, []telegram.InlineButton{{Text: "🏫 انتخاب مدرسه", Data: TagCompletePrefix + "school"}})
	}
	if profile.Phone == nil {
		rows = append(rows, []telegram.InlineButton{{Text: "📱 ثبت شماره تماس", Data: TagCompletePrefix + "phone"}})
	}
	rows = append(rows, []telegram.InlineButton{{Text: " بازگشت به منوی اصلی", Data: TagShowMainMenu}})

	return b.String(), rows
}

// ReferralLink builds the user's personal deep link.
func ReferralLink(botUsername string, userID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%d", botUsername, userID)
}
