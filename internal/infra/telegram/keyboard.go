package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// InlineButton renders as a URL button when URL is set, otherwise as a
// callback button carrying Data.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

func BuildInlineKeyboard(rows [][]InlineButton) tgbotapi.InlineKeyboardMarkup {
	keyboardRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			if button.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(button.Text, button.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data))
		}
		keyboardRows = append(keyboardRows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboardRows...)
}

// BuildContactKeyboard is the one-time reply keyboard used by the phone
// stage: a single share-contact button.
func BuildContactKeyboard(label string) tgbotapi.ReplyKeyboardMarkup {
	button := tgbotapi.NewKeyboardButtonContact(label)
	keyboard := tgbotapi.NewReplyKeyboard([]tgbotapi.KeyboardButton{button})
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}
