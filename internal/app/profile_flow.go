package app

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/infra/telegram"
	profilesvc "github.com/FardadA/samp-crush/internal/services/profile"
	"github.com/FardadA/samp-crush/internal/ui"
)

func (a *App) showProfile(ctx context.Context, chatID, userID int64, messageID int) {
	profile, found, err := a.profileService.Get(ctx, userID)
	if err != nil || !found {
		a.logger.Warn("profile lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgProfileNotFound)
		return
	}

	text, rows := ui.RenderProfileCard(profile)
	if messageID > 0 {
		a.editWithKeyboard(chatID, messageID, text, rows)
		return
	}
	a.sendWithKeyboard(chatID, text, rows)
}

// handleCompleteRequest starts one optional-field question. field is the
// payload of a complete_ button: name, age, phone or school.
func (a *App) handleCompleteRequest(ctx context.Context, query *tgbotapi.CallbackQuery, field string) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	switch field {
	case "name":
		a.sessions.set(chatID, &flowState{Flow: enums.FlowProfile, Stage: enums.StageAwaitName})
		a.editText(chatID, query.Message.MessageID, ui.MsgNamePrompt)

	case "age":
		a.sessions.set(chatID, &flowState{Flow: enums.FlowProfile, Stage: enums.StageAwaitAge})
		a.editText(chatID, query.Message.MessageID, ui.MsgAgePrompt)

	case "phone":
		a.sessions.set(chatID, &flowState{Flow: enums.FlowProfile, Stage: enums.StageAwaitPhone})
		msg := tgbotapi.NewMessage(chatID, ui.MsgPhonePrompt)
		msg.ReplyMarkup = telegram.BuildContactKeyboard("ارسال شماره تماس 📞")
		if err := a.tg.Send(msg); err != nil {
			a.logger.Warn("phone prompt failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}

	case "school":
		options, err := a.profileService.SchoolOptions(ctx, userID)
		if err != nil {
			a.handleSchoolOptionsError(ctx, chatID, userID, err)
			return
		}
		a.sessions.set(chatID, &flowState{Flow: enums.FlowProfile, Stage: enums.StageSelectSchool})
		a.editWithKeyboard(chatID, query.Message.MessageID, ui.MsgSchoolPrompt, ui.SchoolKeyboard(options))

	default:
		a.sendText(chatID, ui.MsgChooseOption)
	}
}

func (a *App) handleSchoolOptionsError(ctx context.Context, chatID, userID int64, err error) {
	a.sendText(chatID, a.schoolOptionsReply(ctx, userID, err))
}

// schoolOptionsReply maps a SchoolOptions failure to the message the
// user sees. Missing registration answers ask for registration first,
// an empty school list for the user's city names that city.
func (a *App) schoolOptionsReply(ctx context.Context, userID int64, err error) string {
	switch {
	case errors.Is(err, profilesvc.ErrRegistrationIncomplete):
		return ui.MsgRegisterFirst
	case errors.Is(err, profilesvc.ErrNoSchools):
		profile, found, perr := a.profileService.Get(ctx, userID)
		if perr != nil || !found || !profile.RegistrationComplete() {
			return ui.MsgGeneralError
		}
		return ui.MsgNoSchoolsForCity(*profile.City, *profile.Province)
	default:
		a.logger.Error("school options failed", zap.Int64("user_id", userID), zap.Error(err))
		return ui.MsgGeneralError
	}
}

func (a *App) handleSchoolPick(ctx context.Context, query *tgbotapi.CallbackQuery, school string) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	state, active := a.sessions.get(chatID)
	if !active || state.Flow != enums.FlowProfile || state.Stage != enums.StageSelectSchool {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	if err := a.profileService.SetSchool(ctx, userID, school); err != nil {
		if errors.Is(err, profilesvc.ErrUnknownSchool) {
			a.sendText(chatID, ui.MsgSchoolNotListed)
			return
		}
		a.logger.Error("set school failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}

	a.sessions.clear(chatID)
	a.editText(chatID, query.Message.MessageID, ui.MsgSchoolSaved(school))
	a.evaluateBonus(ctx, chatID, userID)
	a.showProfile(ctx, chatID, userID, 0)
}

// handleProfileText consumes a typed reply while a name or age question
// is pending. Returns false when the message is not for this flow.
func (a *App) handleProfileText(ctx context.Context, message *tgbotapi.Message, state *flowState) bool {
	chatID := message.Chat.ID
	userID := message.From.ID

	switch state.Stage {
	case enums.StageAwaitName:
		if err := a.profileService.SetName(ctx, userID, message.Text); err != nil {
			if errors.Is(err, profilesvc.ErrEmptyName) {
				a.sendText(chatID, ui.MsgNameInvalid)
				return true
			}
			a.logger.Error("set name failed", zap.Int64("user_id", userID), zap.Error(err))
			a.sendText(chatID, ui.MsgGeneralError)
			return true
		}
		a.sessions.clear(chatID)
		a.sendText(chatID, ui.MsgNameSaved(message.Text))
		a.evaluateBonus(ctx, chatID, userID)
		a.showProfile(ctx, chatID, userID, 0)
		return true

	case enums.StageAwaitAge:
		if err := a.profileService.SetAge(ctx, userID, message.Text); err != nil {
			if errors.Is(err, profilesvc.ErrInvalidAge) {
				// Stay on the age question until a valid number arrives.
				a.sendText(chatID, ui.MsgAgeInvalid(a.cfg.Rewards.AgeMin, a.cfg.Rewards.AgeMax))
				return true
			}
			a.logger.Error("set age failed", zap.Int64("user_id", userID), zap.Error(err))
			a.sendText(chatID, ui.MsgGeneralError)
			return true
		}
		a.sessions.clear(chatID)
		if age, err := strconv.Atoi(strings.TrimSpace(message.Text)); err == nil {
			a.sendText(chatID, ui.MsgAgeSaved(age))
		}
		a.evaluateBonus(ctx, chatID, userID)
		a.showProfile(ctx, chatID, userID, 0)
		return true
	}
	return false
}

func (a *App) handleContact(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	state, active := a.sessions.get(chatID)
	if !active || state.Flow != enums.FlowProfile || state.Stage != enums.StageAwaitPhone {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	contact := message.Contact
	if err := a.profileService.SetPhone(ctx, userID, contact.UserID, contact.PhoneNumber); err != nil {
		if errors.Is(err, profilesvc.ErrNotOwnContact) {
			// A foreign contact card ends the stage, nothing persisted.
			a.sessions.clear(chatID)
			msg := tgbotapi.NewMessage(chatID, ui.MsgPhoneNotOwn)
			msg.ReplyMarkup = telegram.RemoveKeyboard()
			if err := a.tg.Send(msg); err != nil {
				a.logger.Warn("phone rejection failed", zap.Int64("chat_id", chatID), zap.Error(err))
			}
			a.showProfile(ctx, chatID, userID, 0)
			return
		}
		a.logger.Error("set phone failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}

	a.sessions.clear(chatID)
	msg := tgbotapi.NewMessage(chatID, ui.MsgPhoneSaved(contact.PhoneNumber))
	msg.ReplyMarkup = telegram.RemoveKeyboard()
	if err := a.tg.Send(msg); err != nil {
		a.logger.Warn("phone confirmation failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	a.evaluateBonus(ctx, chatID, userID)
	a.showProfile(ctx, chatID, userID, 0)
}

func (a *App) evaluateBonus(ctx context.Context, chatID, userID int64) {
	awarded, err := a.profileService.Evaluate(ctx, userID)
	if err != nil {
		a.logger.Error("bonus evaluation failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	if awarded {
		a.auditService.LogBonusAwarded(ctx, userID, a.cfg.Rewards.CompletionCoins)
		a.sendText(chatID, ui.MsgCompletionBonus(a.cfg.Rewards.CompletionCoins))
	}
}
