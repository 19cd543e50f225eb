package handlers

import (
	"context"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

// callbackAction runs a command in response to a button click.
type callbackAction struct {
	cmd Command
	ack string
	// inPlace replaces the clicked message instead of sending a new one.
	inPlace bool
}

var callbackActions = map[string]callbackAction{
	"about":           {cmd: CmdAbout},
	"library":         {cmd: CmdLibrary},
	"stats_info":      {cmd: CmdStats},
	"text_styles":     {cmd: CmdTextStyles},
	content.HelpToken: {cmd: CmdHelp},

	"dice":       {cmd: CmdDice, ack: content.Games["dice"].Ack},
	"darts":      {cmd: CmdDarts, ack: content.Games["darts"].Ack},
	"bowling":    {cmd: CmdBowling, ack: content.Games["bowling"].Ack},
	"basketball": {cmd: CmdBasketball, ack: content.Games["basketball"].Ack},
	"football":   {cmd: CmdFootball, ack: content.Games["football"].Ack},
	"slots":      {cmd: CmdSlots, ack: content.Games["slots"].Ack},
	"fact":       {cmd: CmdFact},
	"joke":       {cmd: CmdJoke},
	"magic8":     {cmd: CmdMagic8},
	"coinflip":   {cmd: CmdCoinFlip},

	"webhook_info": {cmd: CmdWebhookInfo, ack: "📡 Fetching...", inPlace: true},
	"bot_details":  {cmd: CmdBotInfo, ack: "🤖 Getting info...", inPlace: true},
	"botinfo":      {cmd: CmdBotInfo, ack: "🤖 Getting info...", inPlace: true},
	"member_count": {cmd: CmdMemberCount, ack: "👥 Counting...", inPlace: true},
	"admins":       {cmd: CmdAdmins, ack: "👑 Fetching...", inPlace: true},
	"invite_link":  {cmd: CmdInviteLink, ack: "🔗 Generating...", inPlace: true},
	"my_commands":  {cmd: CmdMyCommands, ack: "📋 Fetching...", inPlace: true},
	"my_profile":   {cmd: CmdMyProfile, ack: "👤 Fetching...", inPlace: true},
	"ping":         {cmd: CmdPing, ack: "🏓 Pinging..."},

	"location": {cmd: CmdLocation, ack: "📍 Sending..."},
	"venue":    {cmd: CmdVenue, ack: "🏢 Sending..."},
	"contact":  {cmd: CmdContact, ack: "📞 Sending..."},
	"poll":     {cmd: CmdPoll, ack: "📊 Creating..."},

	"send_photo":     {cmd: CmdPhoto, ack: "🖼 Demo..."},
	"send_animation": {cmd: CmdAnimation, ack: "🎬 Demo..."},
}

// callbackAnswers are clicks that are answered without touching the chat.
var callbackAnswers = map[string]platform.CallbackAnswer{
	"btn_color":   {Text: "🎨 Pretty button clicked!"},
	"btn_shape":   {Text: "🎨 Pretty button clicked!"},
	"alert_demo":  {Text: "🚨 This is a popup alert!", ShowAlert: true},
	"notif_demo":  {Text: "📢 This is a toast notification at the top!"},
	"toast_demo":  {Text: "🍞 Toast: short notification, no popup."},
	"cb_url_demo": {Text: "Opening " + content.BotName + " on GitHub...", URL: content.RepoURL},
}

// IsCallbackToken reports whether data is handled by the callback table.
func IsCallbackToken(data string) bool {
	if _, ok := content.Keyboard(data); ok {
		return true
	}
	if _, ok := callbackActions[data]; ok {
		return true
	}
	if _, ok := callbackAnswers[data]; ok {
		return true
	}
	_, ok := content.InfoPages[data]
	return ok
}

// handleCallback acknowledges every click exactly once, then acts on it.
func (d *Dispatcher) handleCallback(ctx context.Context, cq *platform.CallbackQuery) {
	log := d.log.With("callback", cq.Data, "chat_id", cq.ChatID)

	answered := false
	ack := func(a platform.CallbackAnswer) {
		if answered {
			return
		}
		answered = true
		if err := d.deps.Client.AnswerCallback(ctx, cq.ID, a); err != nil {
			log.WarnContext(ctx, "Failed to answer callback", "error", err)
		}
	}
	defer ack(platform.CallbackAnswer{})

	if text, kb, ok := content.Menu(cq.Data, cq.From.DisplayName()); ok {
		ack(platform.CallbackAnswer{})
		d.editOrSend(ctx, cq, text, kb)
		return
	}

	if a, ok := callbackAnswers[cq.Data]; ok {
		ack(a)
		return
	}

	if page, ok := content.InfoPages[cq.Data]; ok {
		ack(platform.CallbackAnswer{})
		d.editOrSend(ctx, cq, page.Text, content.BackTo(content.ParentLabel(page.Parent), page.Parent))
		return
	}

	action, ok := callbackActions[cq.Data]
	if !ok {
		log.DebugContext(ctx, "Unknown callback token")
		ack(platform.CallbackAnswer{Text: "Unknown: " + cq.Data})
		return
	}
	ack(platform.CallbackAnswer{Text: action.ack})

	from := cq.From
	req := &Request{
		Msg:     &platform.Message{ID: cq.MessageID, Chat: platform.Chat{ID: cq.ChatID}, From: &from},
		Command: action.cmd,
		Name:    action.cmd.String(),
	}
	if action.inPlace {
		req.EditID = cq.MessageID
	}
	d.runCommand(ctx, req)
}

func (d *Dispatcher) editOrSend(ctx context.Context, cq *platform.CallbackQuery, text string, kb platform.Grid) {
	err := d.deps.Client.EditMessage(ctx, cq.ChatID, cq.MessageID, text, platform.SendOptions{HTML: true, Keyboard: kb})
	if err == nil {
		return
	}
	d.log.DebugContext(ctx, "Edit failed, sending new message", "error", err, "chat_id", cq.ChatID)
	d.sendHTML(ctx, cq.ChatID, text, kb)
}
