package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/keeperbot/internal/platform"
)

// Client implements platform.Client over a go-telegram bot. Every failure is
// returned as *platform.APIError naming the Bot API method.
type Client struct {
	b *bot.Bot
}

var _ platform.Client = (*Client)(nil)

// NewClient wraps b.
func NewClient(b *bot.Bot) *Client {
	return &Client{b: b}
}

func apiErr(method string, err error) error {
	if err == nil {
		return nil
	}
	return &platform.APIError{Method: method, Err: err}
}

// unix converts an expiry to the API's epoch seconds; zero means forever.
func unix(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return int(t.Unix())
}

func parseMode(opts platform.SendOptions) models.ParseMode {
	if opts.HTML {
		return models.ParseModeHTML
	}
	return ""
}

func replyMarkup(grid platform.Grid) models.ReplyMarkup {
	if kb := InlineKeyboard(grid); kb != nil {
		return kb
	}
	return nil
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts platform.SendOptions) (int, error) {
	msg, err := c.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   parseMode(opts),
		ReplyMarkup: replyMarkup(opts.Keyboard),
	})
	if err != nil {
		return 0, apiErr("sendMessage", err)
	}
	return msg.ID, nil
}

func (c *Client) EditMessage(ctx context.Context, chatID int64, messageID int, text string, opts platform.SendOptions) error {
	_, err := c.b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   parseMode(opts),
		ReplyMarkup: replyMarkup(opts.Keyboard),
	})
	return apiErr("editMessageText", err)
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: messageID})
	return apiErr("deleteMessage", err)
}

func (c *Client) PinMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.b.PinChatMessage(ctx, &bot.PinChatMessageParams{ChatID: chatID, MessageID: messageID})
	return apiErr("pinChatMessage", err)
}

// UnpinMessage unpins the most recent pinned message.
func (c *Client) UnpinMessage(ctx context.Context, chatID int64) error {
	_, err := c.b.UnpinChatMessage(ctx, &bot.UnpinChatMessageParams{ChatID: chatID})
	return apiErr("unpinChatMessage", err)
}

func (c *Client) BanMember(ctx context.Context, chatID, userID int64, until time.Time, revoke bool) error {
	_, err := c.b.BanChatMember(ctx, &bot.BanChatMemberParams{
		ChatID:         chatID,
		UserID:         userID,
		UntilDate:      unix(until),
		RevokeMessages: revoke,
	})
	return apiErr("banChatMember", err)
}

func (c *Client) UnbanMember(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error {
	_, err := c.b.UnbanChatMember(ctx, &bot.UnbanChatMemberParams{
		ChatID:       chatID,
		UserID:       userID,
		OnlyIfBanned: onlyIfBanned,
	})
	return apiErr("unbanChatMember", err)
}

func (c *Client) RestrictMember(ctx context.Context, chatID, userID int64, perms platform.Permissions, until time.Time) error {
	_, err := c.b.RestrictChatMember(ctx, &bot.RestrictChatMemberParams{
		ChatID:      chatID,
		UserID:      userID,
		Permissions: chatPermissions(perms),
		UntilDate:   unix(until),
	})
	return apiErr("restrictChatMember", err)
}

func (c *Client) SetChatPermissions(ctx context.Context, chatID int64, perms platform.Permissions) error {
	_, err := c.b.SetChatPermissions(ctx, &bot.SetChatPermissionsParams{
		ChatID:      chatID,
		Permissions: *chatPermissions(perms),
	})
	return apiErr("setChatPermissions", err)
}

func (c *Client) PromoteMember(ctx context.Context, chatID, userID int64, r platform.AdminRights) error {
	_, err := c.b.PromoteChatMember(ctx, &bot.PromoteChatMemberParams{
		ChatID:              chatID,
		UserID:              userID,
		CanManageChat:       r.ManageChat,
		CanDeleteMessages:   r.DeleteMessages,
		CanManageVideoChats: r.ManageVideoChats,
		CanRestrictMembers:  r.RestrictMembers,
		CanPromoteMembers:   r.PromoteMembers,
		CanChangeInfo:       r.ChangeInfo,
		CanInviteUsers:      r.InviteUsers,
		CanPinMessages:      r.PinMessages,
		CanPostStories:      r.PostStories,
		CanEditStories:      r.EditStories,
		CanDeleteStories:    r.DeleteStories,
	})
	return apiErr("promoteChatMember", err)
}

func (c *Client) SetCustomTitle(ctx context.Context, chatID, userID int64, title string) error {
	_, err := c.b.SetChatAdministratorCustomTitle(ctx, &bot.SetChatAdministratorCustomTitleParams{
		ChatID:      chatID,
		UserID:      userID,
		CustomTitle: title,
	})
	return apiErr("setChatAdministratorCustomTitle", err)
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID string, a platform.CallbackAnswer) error {
	_, err := c.b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            a.Text,
		ShowAlert:       a.ShowAlert,
		URL:             a.URL,
	})
	return apiErr("answerCallbackQuery", err)
}

func (c *Client) AnswerInlineQuery(ctx context.Context, queryID string, results []platform.InlineResult) error {
	out := make([]models.InlineQueryResult, 0, len(results))
	for _, r := range results {
		article := &models.InlineQueryResultArticle{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			InputMessageContent: &models.InputTextMessageContent{
				MessageText: r.Text,
				ParseMode:   models.ParseModeHTML,
			},
		}
		if kb := InlineKeyboard(r.Keyboard); kb != nil {
			article.ReplyMarkup = kb
		}
		out = append(out, article)
	}
	_, err := c.b.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{
		InlineQueryID: queryID,
		Results:       out,
	})
	return apiErr("answerInlineQuery", err)
}

func (c *Client) GetChatMember(ctx context.Context, chatID, userID int64) (platform.ChatMember, error) {
	m, err := c.b.GetChatMember(ctx, &bot.GetChatMemberParams{ChatID: chatID, UserID: userID})
	if err != nil {
		return platform.ChatMember{}, apiErr("getChatMember", err)
	}
	return convertMember(*m), nil
}

func (c *Client) GetChatAdministrators(ctx context.Context, chatID int64) ([]platform.ChatMember, error) {
	admins, err := c.b.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{ChatID: chatID})
	if err != nil {
		return nil, apiErr("getChatAdministrators", err)
	}
	out := make([]platform.ChatMember, len(admins))
	for i, a := range admins {
		out[i] = convertMember(a)
	}
	return out, nil
}

// GetChat looks a chat up by @handle. Only public chats and users resolve.
func (c *Client) GetChat(ctx context.Context, handle string) (platform.ChatInfo, error) {
	chat, err := c.b.GetChat(ctx, &bot.GetChatParams{ChatID: handle})
	if err != nil {
		return platform.ChatInfo{}, apiErr("getChat", err)
	}
	return platform.ChatInfo{
		ID:        chat.ID,
		Type:      platform.ChatType(chat.Type),
		Title:     chat.Title,
		Username:  chat.Username,
		FirstName: chat.FirstName,
		LastName:  chat.LastName,
	}, nil
}

func (c *Client) GetMemberCount(ctx context.Context, chatID int64) (int, error) {
	n, err := c.b.GetChatMemberCount(ctx, &bot.GetChatMemberCountParams{ChatID: chatID})
	if err != nil {
		return 0, apiErr("getChatMemberCount", err)
	}
	return n, nil
}

func (c *Client) ExportInviteLink(ctx context.Context, chatID int64) (string, error) {
	link, err := c.b.ExportChatInviteLink(ctx, &bot.ExportChatInviteLinkParams{ChatID: chatID})
	if err != nil {
		return "", apiErr("exportChatInviteLink", err)
	}
	return link, nil
}

func (c *Client) SendDice(ctx context.Context, chatID int64, emoji string) error {
	_, err := c.b.SendDice(ctx, &bot.SendDiceParams{ChatID: chatID, Emoji: emoji})
	return apiErr("sendDice", err)
}

// SendMedia sends a file by URL or file id using the method matching its kind.
func (c *Client) SendMedia(ctx context.Context, chatID int64, media platform.Media, opts platform.SendOptions) error {
	file := &models.InputFileString{Data: media.Source}
	mode := parseMode(opts)
	markup := replyMarkup(opts.Keyboard)

	var (
		method string
		err    error
	)
	switch media.Kind {
	case platform.MediaPhoto:
		method = "sendPhoto"
		_, err = c.b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID: chatID, Photo: file, Caption: media.Caption, ParseMode: mode, ReplyMarkup: markup,
		})
	case platform.MediaVideo:
		method = "sendVideo"
		_, err = c.b.SendVideo(ctx, &bot.SendVideoParams{
			ChatID: chatID, Video: file, Caption: media.Caption, ParseMode: mode, ReplyMarkup: markup,
		})
	case platform.MediaAudio:
		method = "sendAudio"
		_, err = c.b.SendAudio(ctx, &bot.SendAudioParams{
			ChatID: chatID, Audio: file, Caption: media.Caption, ParseMode: mode, ReplyMarkup: markup,
		})
	case platform.MediaDocument:
		method = "sendDocument"
		_, err = c.b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID: chatID, Document: file, Caption: media.Caption, ParseMode: mode, ReplyMarkup: markup,
		})
	case platform.MediaAnimation:
		method = "sendAnimation"
		_, err = c.b.SendAnimation(ctx, &bot.SendAnimationParams{
			ChatID: chatID, Animation: file, Caption: media.Caption, ParseMode: mode, ReplyMarkup: markup,
		})
	default:
		method = "sendMedia"
		err = fmt.Errorf("unsupported media kind %q", media.Kind)
	}
	return apiErr(method, err)
}

func (c *Client) SendLocation(ctx context.Context, chatID int64, lat, lon float64) error {
	_, err := c.b.SendLocation(ctx, &bot.SendLocationParams{ChatID: chatID, Latitude: lat, Longitude: lon})
	return apiErr("sendLocation", err)
}

func (c *Client) SendVenue(ctx context.Context, chatID int64, lat, lon float64, title, address string) error {
	_, err := c.b.SendVenue(ctx, &bot.SendVenueParams{
		ChatID:    chatID,
		Latitude:  lat,
		Longitude: lon,
		Title:     title,
		Address:   address,
	})
	return apiErr("sendVenue", err)
}

func (c *Client) SendContact(ctx context.Context, chatID int64, phone, firstName, lastName string) error {
	_, err := c.b.SendContact(ctx, &bot.SendContactParams{
		ChatID:      chatID,
		PhoneNumber: phone,
		FirstName:   firstName,
		LastName:    lastName,
	})
	return apiErr("sendContact", err)
}

func (c *Client) SendPoll(ctx context.Context, chatID int64, question string, options []string) error {
	opts := make([]models.InputPollOption, len(options))
	for i, o := range options {
		opts[i] = models.InputPollOption{Text: o}
	}
	_, err := c.b.SendPoll(ctx, &bot.SendPollParams{ChatID: chatID, Question: question, Options: opts})
	return apiErr("sendPoll", err)
}

func (c *Client) ApproveJoinRequest(ctx context.Context, chatID, userID int64) error {
	_, err := c.b.ApproveChatJoinRequest(ctx, &bot.ApproveChatJoinRequestParams{ChatID: chatID, UserID: userID})
	return apiErr("approveChatJoinRequest", err)
}

func (c *Client) SetCommands(ctx context.Context, commands []platform.BotCommand) error {
	cmds := make([]models.BotCommand, len(commands))
	for i, cmd := range commands {
		cmds[i] = models.BotCommand{Command: cmd.Command, Description: cmd.Description}
	}
	_, err := c.b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: cmds})
	return apiErr("setMyCommands", err)
}

func (c *Client) DeleteCommands(ctx context.Context) error {
	_, err := c.b.DeleteMyCommands(ctx, &bot.DeleteMyCommandsParams{})
	return apiErr("deleteMyCommands", err)
}

func (c *Client) GetCommands(ctx context.Context) ([]platform.BotCommand, error) {
	cmds, err := c.b.GetMyCommands(ctx, &bot.GetMyCommandsParams{})
	if err != nil {
		return nil, apiErr("getMyCommands", err)
	}
	out := make([]platform.BotCommand, len(cmds))
	for i, cmd := range cmds {
		out[i] = platform.BotCommand{Command: cmd.Command, Description: cmd.Description}
	}
	return out, nil
}

func (c *Client) DeleteWebhook(ctx context.Context) error {
	_, err := c.b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{})
	return apiErr("deleteWebhook", err)
}

func (c *Client) WebhookInfo(ctx context.Context) (platform.WebhookInfo, error) {
	info, err := c.b.GetWebhookInfo(ctx)
	if err != nil {
		return platform.WebhookInfo{}, apiErr("getWebhookInfo", err)
	}
	return platform.WebhookInfo{
		URL:                info.URL,
		PendingUpdateCount: info.PendingUpdateCount,
		LastErrorMessage:   info.LastErrorMessage,
	}, nil
}

func (c *Client) Me(ctx context.Context) (platform.User, error) {
	me, err := c.b.GetMe(ctx)
	if err != nil {
		return platform.User{}, apiErr("getMe", err)
	}
	return convertUser(me), nil
}
