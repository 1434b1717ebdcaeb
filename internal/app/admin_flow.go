package app

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/catalog"
	"github.com/FardadA/samp-crush/internal/domain/enums"
	"github.com/FardadA/samp-crush/internal/domain/model"
	channelsvc "github.com/FardadA/samp-crush/internal/services/channels"
	"github.com/FardadA/samp-crush/internal/ui"
)

func (a *App) handleAdminEntry(ctx context.Context, chatID, userID int64) {
	if !a.isAdmin(ctx, userID) {
		a.sendText(chatID, ui.MsgAccessDenied)
		return
	}
	a.sendWithKeyboard(chatID, ui.MsgAdminWelcome, ui.AdminPanelKeyboard())
}

func (a *App) handleAdminCallback(ctx context.Context, query *tgbotapi.CallbackQuery, cb callback) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	if !a.isAdmin(ctx, userID) {
		a.sendText(chatID, ui.MsgAccessDenied)
		return
	}

	switch cb.Kind {
	case cbAdminPanel:
		a.editWithKeyboard(chatID, query.Message.MessageID, ui.MsgAdminWelcome, ui.AdminPanelKeyboard())

	case cbAdminChannels:
		a.startChannelFlow(ctx, query)

	case cbPromoteChat:
		a.handlePromoteChatPick(ctx, query, cb.ChatID)

	case cbChannelConfirm:
		a.handleChannelConfirm(ctx, query)

	case cbChannelCancel:
		a.sessions.clear(chatID)
		a.editText(chatID, query.Message.MessageID, ui.MsgAdminChannelCanceled)

	case cbAdminSchools:
		a.sessions.set(chatID, &flowState{Flow: enums.FlowManageSchools, Stage: enums.StageAdminSelectProvince})
		a.editWithKeyboard(chatID, query.Message.MessageID, ui.MsgAdminSchoolProvince,
			ui.ProvinceKeyboard(catalog.Provinces(), ui.TagAProvPrefix))

	case cbAdminProvince:
		a.handleAdminProvincePick(query, cb.Value)

	case cbAdminCity:
		a.handleAdminCityPick(ctx, query, cb.Value)

	case cbSchoolsDone:
		a.handleSchoolsDone(ctx, query)

	case cbSchoolsCancel:
		a.sessions.clear(chatID)
		a.editText(chatID, query.Message.MessageID, ui.MsgAdminSchoolCanceled)
	}
}

func (a *App) startChannelFlow(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	chats, err := a.channelService.Administered(ctx)
	if err != nil {
		a.logger.Error("list administered chats failed", zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}
	if len(chats) == 0 {
		a.editText(chatID, query.Message.MessageID, ui.MsgAdminNoChats)
		return
	}

	current, err := a.channelService.Promoted(ctx)
	if err != nil {
		a.logger.Warn("list promoted channels failed", zap.Error(err))
	}

	a.sessions.set(chatID, &flowState{Flow: enums.FlowAddChannel})
	a.editWithKeyboard(chatID, query.Message.MessageID, ui.MsgAdminSelectChat(current), ui.AdministeredChatsKeyboard(chats))
}

func (a *App) handlePromoteChatPick(ctx context.Context, query *tgbotapi.CallbackQuery, pickedChatID int64) {
	chatID := query.Message.Chat.ID

	state, active := a.sessions.get(chatID)
	if !active || state.Flow != enums.FlowAddChannel {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	chats, err := a.channelService.Administered(ctx)
	if err != nil {
		a.logger.Error("list administered chats failed", zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}
	for _, chat := range chats {
		if chat.ID == pickedChatID {
			state.Channel = channelDraft{ChatID: chat.ID, Title: chat.Title, InviteLink: chat.InviteLink}
			state.Stage = enums.StageAwaitButtonText
			a.sessions.set(chatID, state)
			a.editText(chatID, query.Message.MessageID, ui.MsgAdminButtonTextPrompt)
			return
		}
	}

	a.sendText(chatID, ui.MsgGeneralError)
}

// handleChannelText consumes the button-text reply of the add-channel flow.
func (a *App) handleChannelText(_ context.Context, message *tgbotapi.Message, state *flowState) bool {
	if state.Stage != enums.StageAwaitButtonText {
		return false
	}
	chatID := message.Chat.ID

	text, err := a.channelService.ValidateButtonText(message.Text)
	if err != nil {
		a.sendText(chatID, ui.MsgAdminButtonInvalid)
		return true
	}

	state.Channel.ButtonText = text
	state.Stage = enums.StageConfirmChannel
	a.sessions.set(chatID, state)

	a.sendWithKeyboard(chatID,
		ui.MsgAdminChannelConfirm(state.Channel.Title, state.Channel.InviteLink, text),
		ui.ChannelConfirmKeyboard())
	return true
}

func (a *App) handleChannelConfirm(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	state, active := a.sessions.get(chatID)
	if !active || state.Flow != enums.FlowAddChannel || state.Stage != enums.StageConfirmChannel {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	channel, err := a.channelService.AddPromoted(ctx, state.Channel.ChatID, state.Channel.ButtonText)
	if err != nil {
		if errors.Is(err, channelsvc.ErrNotAdministered) {
			a.sessions.clear(chatID)
			a.editText(chatID, query.Message.MessageID, ui.MsgAdminNoChats)
			return
		}
		a.logger.Error("channel promotion failed",
			zap.Int64("chat_id", state.Channel.ChatID), zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}

	a.sessions.clear(chatID)
	a.auditService.LogChannelAdded(ctx, userID, channel.ID, channel.Title)
	a.editText(chatID, query.Message.MessageID, ui.MsgAdminChannelAdded(channel.Title))
}

func (a *App) handleAdminProvincePick(query *tgbotapi.CallbackQuery, province string) {
	chatID := query.Message.Chat.ID

	state, active := a.sessions.get(chatID)
	if !active || state.Flow != enums.FlowManageSchools || state.Stage != enums.StageAdminSelectProvince {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	cities, ok := catalog.Cities(province)
	if !ok {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	state.Schools.Province = province
	state.Stage = enums.StageAdminSelectCity
	a.sessions.set(chatID, state)

	a.editWithKeyboard(chatID, query.Message.MessageID,
		ui.MsgAdminSchoolCity(province), ui.CityKeyboard(cities, ui.TagACityPrefix))
}

func (a *App) handleAdminCityPick(ctx context.Context, query *tgbotapi.CallbackQuery, city string) {
	chatID := query.Message.Chat.ID

	state, active := a.sessions.get(chatID)
	if !active || state.Flow != enums.FlowManageSchools || state.Stage != enums.StageAdminSelectCity {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}
	if !catalog.HasCity(state.Schools.Province, city) {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	state.Schools.City = city
	state.Stage = enums.StageAdminAddSchools
	a.sessions.set(chatID, state)

	existing, err := a.schoolService.List(ctx, state.Schools.Province, city)
	if err != nil {
		a.logger.Warn("list existing schools failed", zap.Error(err))
	}

	a.editWithKeyboard(chatID, query.Message.MessageID, ui.MsgAdminSchoolBatchIntro(existing), ui.SchoolBatchKeyboard())
}

// handleSchoolsText queues one school name typed by the admin.
func (a *App) handleSchoolsText(_ context.Context, message *tgbotapi.Message, state *flowState) bool {
	if state.Stage != enums.StageAdminAddSchools {
		return false
	}
	chatID := message.Chat.ID

	name, err := a.schoolService.ValidateName(message.Text)
	if err != nil {
		a.sendText(chatID, ui.MsgAdminSchoolNameInvalid)
		return true
	}
	for _, queued := range state.Schools.Queued {
		if queued == name {
			a.sendText(chatID, ui.MsgAdminSchoolDuplicate(name))
			return true
		}
	}

	state.Schools.Queued = append(state.Schools.Queued, name)
	a.sessions.set(chatID, state)
	a.sendWithKeyboard(chatID, ui.MsgAdminSchoolQueued(name, state.Schools.Queued), ui.SchoolBatchKeyboard())
	return true
}

func (a *App) handleSchoolsDone(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	state, active := a.sessions.get(chatID)
	if !active || state.Flow != enums.FlowManageSchools || state.Stage != enums.StageAdminAddSchools {
		a.sendText(chatID, ui.MsgChooseOption)
		return
	}

	a.sessions.clear(chatID)
	if len(state.Schools.Queued) == 0 {
		a.editText(chatID, query.Message.MessageID, ui.MsgAdminSchoolNoNew)
		return
	}

	added, err := a.schoolService.Save(ctx, state.Schools.Province, state.Schools.City, state.Schools.Queued)
	if err != nil {
		a.logger.Error("save schools failed",
			zap.String("province", state.Schools.Province),
			zap.String("city", state.Schools.City),
			zap.Error(err))
		a.sendText(chatID, ui.MsgGeneralError)
		return
	}

	a.auditService.LogSchoolsAdded(ctx, userID, state.Schools.Province, state.Schools.City, added)
	a.editText(chatID, query.Message.MessageID,
		ui.MsgAdminSchoolsSaved(added, state.Schools.City, state.Schools.Province))
}

// handleMyChatMember keeps the administered-chat pool in sync with the
// bot's own membership changes in channels and groups.
func (a *App) handleMyChatMember(ctx context.Context, update *tgbotapi.ChatMemberUpdated) {
	if update.Chat.IsPrivate() {
		return
	}

	switch update.NewChatMember.Status {
	case "administrator":
		chat := model.AdministeredChat{
			ID:         update.Chat.ID,
			Title:      update.Chat.Title,
			Type:       update.Chat.Type,
			InviteLink: update.Chat.InviteLink,
		}
		if err := a.channelService.TrackAdministered(ctx, chat); err != nil {
			a.logger.Error("track administered chat failed", zap.Int64("chat_id", chat.ID), zap.Error(err))
			return
		}
		a.logger.Info("bot promoted in chat", zap.Int64("chat_id", chat.ID), zap.String("title", chat.Title))

	default:
		wasPromoted, err := a.channelService.UntrackAdministered(ctx, update.Chat.ID)
		if err != nil {
			a.logger.Error("untrack chat failed", zap.Int64("chat_id", update.Chat.ID), zap.Error(err))
			return
		}
		if wasPromoted {
			a.logger.Warn("mandatory channel lost admin rights, join gate may fail",
				zap.Int64("chat_id", update.Chat.ID),
				zap.String("title", update.Chat.Title))
			if adminID, ok, err := a.accessService.AdminID(ctx); err == nil && ok {
				a.sendText(adminID, ui.MsgChannelLost(update.Chat.Title))
			}
		}
	}
}
