package app

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/catalog"
	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/infra/telegram"
	"github.com/FardadA/samp-crush/internal/services/onboarding"
	"github.com/FardadA/samp-crush/internal/ui"
)

func (a *App) routeUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.MyChatMember != nil {
		a.handleMyChatMember(ctx, update.MyChatMember)
	}

	if update.Message != nil {
		a.routeMessage(ctx, update.Message)
	}

	if update.CallbackQuery != nil {
		a.handleCallback(ctx, update.CallbackQuery)
	}
}

func (a *App) routeMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || !message.Chat.IsPrivate() {
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			a.handleStart(ctx, message)
		case "cancel":
			state, active := a.sessions.get(message.Chat.ID)
			a.sessions.clear(message.Chat.ID)
			a.sendText(message.Chat.ID, ui.MsgOperationCanceled)
			if active && state.Flow == enums.FlowProfile {
				a.showProfile(ctx, message.Chat.ID, message.From.ID, 0)
			} else {
				a.sendMainMenu(ctx, message.Chat.ID, message.From.ID)
			}
		case "menu":
			a.runEntry(ctx, message)
		case "profile":
			if !a.ensureAccess(ctx, message.Chat.ID, message.From.ID) {
				return
			}
			a.showProfile(ctx, message.Chat.ID, message.From.ID, 0)
		case "admin":
			a.handleAdminEntry(ctx, message.Chat.ID, message.From.ID)
		default:
			a.sendText(message.Chat.ID, ui.MsgChooseOption)
		}
		return
	}

	if message.Contact != nil {
		a.handleContact(ctx, message)
		return
	}

	if a.handleFlowTextIfNeeded(ctx, message) {
		return
	}

	a.sendText(message.Chat.ID, ui.MsgChooseOption)
}

func (a *App) handleStart(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	var referrerID int64
	if payload := strings.TrimSpace(message.CommandArguments()); payload != "" {
		if id, err := strconv.ParseInt(payload, 10, 64); err == nil {
			referrerID = id
		}
	}

	result, err := a.referralService.InitNewUser(ctx, userID, message.From.UserName, message.From.FirstName, referrerID)
	if err != nil {
		a.logger.Error("init user failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}
	a.auditService.LogStart(ctx, userID, referrerID, result.Created)

	if result.Created {
		a.sendText(chatID, ui.MsgWelcomeNewUser(a.cfg.Rewards.WelcomeCoins))
	}
	if result.Credited {
		a.auditService.LogReferralCredited(ctx, result.ReferrerID, userID, a.cfg.Rewards.ReferralCoins)
		if err := a.tg.Send(tgbotapi.NewMessage(result.ReferrerID,
			ui.MsgReferrerNotified(message.From.FirstName, a.cfg.Rewards.ReferralCoins))); err != nil {
			a.logger.Warn("referrer notification failed",
				zap.Int64("referrer_id", result.ReferrerID), zap.Error(err))
		}
	}

	a.runEntry(ctx, message)
}

// runEntry is the pipeline every returning user goes through: admin
// bootstrap, channel gate, registration check, main menu. The profile is
// created here too, so a user whose first message was not /start still
// gets a document.
func (a *App) runEntry(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	result, err := a.referralService.InitNewUser(ctx, userID, message.From.UserName, message.From.FirstName, 0)
	if err != nil {
		a.logger.Error("init user failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}
	if result.Created {
		a.sendText(chatID, ui.MsgWelcomeNewUser(a.cfg.Rewards.WelcomeCoins))
	}

	adminID, claimed, err := a.accessService.EnsureAdmin(ctx, userID)
	if err != nil {
		a.logger.Error("admin bootstrap failed", zap.Int64("user_id", userID), zap.Error(err))
	} else if claimed {
		a.auditService.LogAdminBootstrap(ctx, userID)
		a.logger.Info("admin seat claimed", zap.Int64("user_id", userID))
		a.sendText(chatID, ui.MsgAdminClaimed)
	}

	// The admin is never locked out by the join gate.
	if adminID != userID {
		passed, missing, err := a.gateService.Check(ctx, userID)
		if err != nil {
			a.logger.Error("channel gate check failed", zap.Int64("user_id", userID), zap.Error(err))
			a.sendText(chatID, ui.MsgGeneralError)
			return
		}
		if !passed {
			a.sendWithKeyboard(chatID, ui.MsgJoinPrompt, ui.JoinKeyboard(missing))
			return
		}
	}

	scratch, stage, done, err := a.regService.Entry(ctx, userID)
	if err != nil {
		a.logger.Error("registration entry failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}
	if !done {
		a.sessions.set(chatID, &flowState{
			Flow:  enums.FlowRegistration,
			Stage: stage,
			Reg:   scratch,
		})
		a.sendRegistrationPrompt(chatID, stage, scratch)
		return
	}

	a.sessions.clear(chatID)
	a.sendMainMenu(ctx, chatID, userID)
}

// ensureAccess guards every user-facing surface outside the entry
// commands: unless the chat is inside an active flow (whose start was
// already guarded) or the user is the admin, the channel gate and the
// registration check run again, exactly like the entry pipeline.
func (a *App) ensureAccess(ctx context.Context, chatID, userID int64) bool {
	if state, active := a.sessions.get(chatID); active && state.Flow != enums.FlowRegistration {
		return true
	}
	if a.isAdmin(ctx, userID) {
		return true
	}

	passed, missing, err := a.gateService.Check(ctx, userID)
	if err != nil {
		a.logger.Error("channel gate check failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return false
	}
	if !passed {
		a.sendWithKeyboard(chatID, ui.MsgJoinPrompt, ui.JoinKeyboard(missing))
		return false
	}

	scratch, stage, done, err := a.regService.Entry(ctx, userID)
	if err != nil {
		a.logger.Error("registration entry failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return false
	}
	if !done {
		a.sessions.set(chatID, &flowState{
			Flow:  enums.FlowRegistration,
			Stage: stage,
			Reg:   scratch,
		})
		a.sendRegistrationPrompt(chatID, stage, scratch)
		return false
	}

	return true
}

func (a *App) sendRegistrationPrompt(chatID int64, stage enums.Stage, scratch onboarding.Scratch) {
	switch stage {
	case enums.StageSelectGender:
		a.sendWithKeyboard(chatID, ui.MsgRegistrationGuide, ui.GenderKeyboard())
	case enums.StageSelectProvince:
		a.sendWithKeyboard(chatID, ui.MsgSelectProvince, ui.ProvinceKeyboard(catalog.Provinces(), ui.TagProvPrefix))
	case enums.StageSelectCity:
		cities, ok := catalog.Cities(*scratch.Province)
		if !ok {
			a.sendText(chatID, ui.MsgGeneralError)
			return
		}
		a.sendWithKeyboard(chatID, ui.MsgSelectCity, ui.CityKeyboard(cities, ui.TagCityPrefix))
	}
}

func (a *App) handleRegistrationCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *flowState, cb callback) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	var err error
	switch cb.Kind {
	case cbGender:
		if state.Stage != enums.StageSelectGender {
			return
		}
		err = a.regService.SelectGender(&state.Reg, cb.Value)
	case cbProvince:
		if state.Stage != enums.StageSelectProvince {
			return
		}
		err = a.regService.SelectProvince(&state.Reg, cb.Value)
	case cbCity:
		if state.Stage != enums.StageSelectCity {
			return
		}
		err = a.regService.SelectCity(&state.Reg, cb.Value)
	default:
		return
	}
	if err != nil {
		a.logger.Warn("registration answer rejected",
			zap.Int64("user_id", userID), zap.String("value", cb.Value), zap.Error(err))
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	if state.Reg.Gender != nil && state.Reg.Province != nil && state.Reg.City != nil {
		if err := a.regService.Complete(ctx, userID, state.Reg); err != nil {
			a.logger.Error("registration persist failed", zap.Int64("user_id", userID), zap.Error(err))
			a.sendText(chatID, ui.MsgGeneralError)
			return
		}
		a.auditService.LogRegistrationCompleted(ctx, userID, *state.Reg.Province, *state.Reg.City)
		a.sessions.clear(chatID)
		a.editText(chatID, query.Message.MessageID, ui.MsgRegistrationDone)
		a.sendMainMenu(ctx, chatID, userID)
		return
	}

	state.Stage = state.Reg.NextStage()
	a.sessions.set(chatID, state)
	a.editRegistrationPrompt(chatID, query.Message.MessageID, state)
}

func (a *App) editRegistrationPrompt(chatID int64, messageID int, state *flowState) {
	switch state.Stage {
	case enums.StageSelectProvince:
		a.editWithKeyboard(chatID, messageID, ui.MsgSelectProvince, ui.ProvinceKeyboard(catalog.Provinces(), ui.TagProvPrefix))
	case enums.StageSelectCity:
		cities, ok := catalog.Cities(*state.Reg.Province)
		if !ok {
			a.sendText(chatID, ui.MsgGeneralError)
			return
		}
		a.editWithKeyboard(chatID, messageID, ui.MsgSelectCity, ui.CityKeyboard(cities, ui.TagCityPrefix))
	}
}

func (a *App) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.From == nil || query.Message == nil {
		return
	}
	if err := a.tg.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		a.logger.Warn("callback answer failed", zap.Error(err))
	}

	cb, ok := parseCallback(query.Data)
	if !ok {
		a.logger.Warn("unknown callback data", zap.String("data", query.Data))
		return
	}

	chatID := query.Message.Chat.ID
	userID := query.From.ID

	switch cb.Kind {
	case cbGender, cbProvince, cbCity:
		state, active := a.sessions.get(chatID)
		if !active || state.Flow != enums.FlowRegistration {
			a.sendText(chatID, ui.MsgChooseOption)
			return
		}
		a.handleRegistrationCallback(ctx, query, state, cb)

	case cbCheckJoinAgain:
		a.editText(chatID, query.Message.MessageID, ui.MsgJoinChecking)
		a.recheckJoin(ctx, query)

	case cbShowMainMenu:
		a.sendMainMenu(ctx, chatID, userID)

	case cbShowProfile, cbShowCoins, cbComingSoon, cbComplete, cbSchool:
		if !a.ensureAccess(ctx, chatID, userID) {
			return
		}
		switch cb.Kind {
		case cbShowProfile:
			a.showProfile(ctx, chatID, userID, query.Message.MessageID)
		case cbShowCoins:
			a.showCoins(ctx, chatID, userID)
		case cbComingSoon:
			a.editWithKeyboard(chatID, query.Message.MessageID, ui.MsgSectionSoon, ui.MainMenuKeyboard(a.isAdmin(ctx, userID)))
		case cbComplete:
			a.handleCompleteRequest(ctx, query, cb.Value)
		case cbSchool:
			a.handleSchoolPick(ctx, query, cb.Value)
		}

	case cbAdminPanel, cbAdminChannels, cbAdminSchools,
		cbPromoteChat, cbChannelConfirm, cbChannelCancel,
		cbSchoolsDone, cbSchoolsCancel, cbAdminProvince, cbAdminCity:
		a.handleAdminCallback(ctx, query, cb)
	}
}

// recheckJoin re-runs the whole entry pipeline after the user claims to
// have joined the mandatory channels.
func (a *App) recheckJoin(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	passed, missing, err := a.gateService.Check(ctx, userID)
	if err != nil {
		a.logger.Error("channel gate recheck failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}
	if !passed {
		a.editWithKeyboard(chatID, query.Message.MessageID, ui.MsgJoinStillUnjoined, ui.JoinKeyboard(missing))
		return
	}

	a.deleteMessage(chatID, query.Message.MessageID)
	a.sendText(chatID, ui.MsgJoinConfirmed)
	message := &tgbotapi.Message{From: query.From, Chat: query.Message.Chat}
	a.runEntry(ctx, message)
}

func (a *App) sendMainMenu(ctx context.Context, chatID, userID int64) {
	a.sendWithKeyboard(chatID, ui.MsgWelcomeBack, ui.MainMenuKeyboard(a.isAdmin(ctx, userID)))
}

func (a *App) showCoins(ctx context.Context, chatID, userID int64) {
	profile, found, err := a.profileService.Get(ctx, userID)
	if err != nil || !found {
		a.logger.Warn("coins lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		a.sendText(chatID, ui.MsgProfileNotFound)
		return
	}

	link := ui.ReferralLink(a.tg.BotUsername(), userID)
	text := ui.MsgCoinsBalance(profile.Coins, a.cfg.Rewards.ReferralCoins, link)

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		a.logger.Warn("referral qr encode failed", zap.Error(err))
		a.sendText(chatID, text)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "referral.png", Bytes: png})
	photo.Caption = text
	photo.ParseMode = tgbotapi.ModeMarkdown
	if err := a.tg.Send(photo); err != nil {
		a.logger.Warn("coins message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) isAdmin(ctx context.Context, userID int64) bool {
	isAdmin, err := a.accessService.IsAdmin(ctx, userID)
	if err != nil {
		a.logger.Warn("admin lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	return isAdmin
}

func (a *App) handleFlowTextIfNeeded(ctx context.Context, message *tgbotapi.Message) bool {
	state, active := a.sessions.get(message.Chat.ID)
	if !active {
		return false
	}

	switch state.Flow {
	case enums.FlowProfile:
		return a.handleProfileText(ctx, message, state)
	case enums.FlowAddChannel:
		return a.handleChannelText(ctx, message, state)
	case enums.FlowManageSchools:
		return a.handleSchoolsText(ctx, message, state)
	}
	return false
}

func (a *App) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if err := a.tg.Send(msg); err != nil {
		a.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) sendWithKeyboard(chatID int64, text string, rows [][]telegram.InlineButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = telegram.BuildInlineKeyboard(rows)
	if err := a.tg.Send(msg); err != nil {
		a.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if err := a.tg.Send(edit); err != nil {
		a.logger.Warn("edit failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) editWithKeyboard(chatID int64, messageID int, text string, rows [][]telegram.InlineButton) {
	keyboard := telegram.BuildInlineKeyboard(rows)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	if err := a.tg.Send(edit); err != nil {
		a.logger.Warn("edit failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) deleteMessage(chatID int64, messageID int) {
	if err := a.tg.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		a.logger.Warn("delete failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
