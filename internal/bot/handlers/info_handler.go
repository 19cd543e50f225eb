package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

// Demo coordinates for the location and venue commands.
const (
	demoLat = 48.8584
	demoLon = 2.2945
)

var pollOptions = []string{
	"⚡ Goroutines",
	"📦 Modules",
	"🧰 Standard library",
	"🚀 Fast builds",
	"😊 Community",
}

// infoHandler serves the static pages, games and API showcase commands.
type infoHandler struct {
	base
}

func apiBack() platform.Grid { return content.BackTo("API Menu", content.APIMenu) }

func (h infoHandler) start(ctx context.Context, req *Request) error {
	kb, _ := content.Keyboard(content.MainMenu)
	h.reply(ctx, req, content.Welcome(req.Sender().DisplayName()), kb)
	return nil
}

func (h infoHandler) menu(ctx context.Context, req *Request) error {
	text, kb, _ := content.Menu(content.MainMenu, req.Sender().DisplayName())
	h.show(ctx, req, text, kb)
	return nil
}

func (h infoHandler) help(ctx context.Context, req *Request) error {
	h.show(ctx, req, content.Help, content.MenuOnly())
	return nil
}

func (h infoHandler) page(text string) CommandFunc {
	return func(ctx context.Context, req *Request) error {
		h.show(ctx, req, text, content.MenuOnly())
		return nil
	}
}

// ping measures the send round trip, then edits the placeholder with the
// result.
func (h infoHandler) ping(ctx context.Context, req *Request) error {
	var delay time.Duration
	if !req.Msg.Date.IsZero() {
		delay = max(0, time.Since(req.Msg.Date))
	}

	start := time.Now()
	id, err := h.deps.Client.SendMessage(ctx, req.ChatID(), "🏓 Pong! Measuring...", platform.SendOptions{})
	if err != nil {
		return failed("Ping", err, "")
	}
	rtt := time.Since(start)

	text := fmt.Sprintf("🏓 <b>Pong!</b>\n\n⚡ <b>API RTT:</b> <code>%d ms</code>", rtt.Milliseconds())
	if !req.Msg.Date.IsZero() {
		text += fmt.Sprintf("\n📨 <b>Msg Delay:</b> <code>%d ms</code>", delay.Milliseconds())
	}
	if err := h.deps.Client.EditMessage(ctx, req.ChatID(), id, text, platform.SendOptions{HTML: true}); err != nil {
		req.log.WarnContext(ctx, "Failed to edit ping reply", "error", err)
	}
	return nil
}

func (h infoHandler) game(key string) CommandFunc {
	g := content.Games[key]
	return func(ctx context.Context, req *Request) error {
		if err := h.deps.Client.SendDice(ctx, req.ChatID(), g.Emoji); err != nil {
			return failed(g.Label, err, "")
		}
		h.reply(ctx, req, content.GameMessage(g), platform.Row(
			platform.CallbackButton("🔄 Again", key),
			content.MenuButton(),
		))
		return nil
	}
}

func (h infoHandler) fact(ctx context.Context, req *Request) error {
	h.reply(ctx, req, content.Fact(), platform.Row(platform.CallbackButton("💡 Another", "fact"), content.MenuButton()))
	return nil
}

func (h infoHandler) joke(ctx context.Context, req *Request) error {
	h.reply(ctx, req, content.Joke(), platform.Row(platform.CallbackButton("😂 Another", "joke"), content.MenuButton()))
	return nil
}

func (h infoHandler) magic8(ctx context.Context, req *Request) error {
	h.reply(ctx, req, content.Magic8(), platform.Row(platform.CallbackButton("🔮 Ask again", "magic8"), content.MenuButton()))
	return nil
}

func (h infoHandler) coinFlip(ctx context.Context, req *Request) error {
	h.reply(ctx, req, content.CoinFlip()+" The coin has spoken!",
		platform.Row(platform.CallbackButton("🪙 Flip again", "coinflip"), content.MenuButton()))
	return nil
}

func (h infoHandler) photo(ctx context.Context, req *Request) error {
	h.reply(ctx, req, "📷 <b>SendPhoto demo</b>\n\n"+
		"The photo method accepts:\n"+
		"• a <code>file_id</code> to re-use uploaded files\n"+
		"• a URL to an image\n"+
		"• an uploaded file\n\n"+
		"<b>Optional params:</b> caption, parse mode, spoiler, reply markup\n\n"+
		"Try <code>/img URL caption</code> to send one.",
		platform.Row(platform.CallbackButton("🎬 Animation", "send_animation"), content.MenuButton()))
	return nil
}

func (h infoHandler) animation(ctx context.Context, req *Request) error {
	h.reply(ctx, req, "🎬 <b>SendAnimation demo</b>\n\n"+
		"Sends GIF or silent MP4 animations.\n\n"+
		"<b>Optional params:</b>\n"+
		"• <code>Caption</code>, <code>ParseMode</code>\n"+
		"• <code>Duration</code>, <code>Width</code>, <code>Height</code>\n"+
		"• <code>HasSpoiler</code>",
		platform.Row(platform.CallbackButton("🖼 Photo", "send_photo"), content.MenuButton()))
	return nil
}

func (h infoHandler) location(ctx context.Context, req *Request) error {
	if err := h.deps.Client.SendLocation(ctx, req.ChatID(), demoLat, demoLon); err != nil {
		return failed("Send location", err, "")
	}
	h.reply(ctx, req, "📍 <b>Location sent!</b>\n\nEiffel Tower, Paris 🗼",
		platform.Row(platform.CallbackButton("🏢 Venue", "venue"), content.MenuButton()))
	return nil
}

func (h infoHandler) venue(ctx context.Context, req *Request) error {
	err := h.deps.Client.SendVenue(ctx, req.ChatID(), demoLat, demoLon, "Eiffel Tower 🗼", "Champ de Mars, 75007 Paris")
	if err != nil {
		return failed("Send venue", err, "")
	}
	h.reply(ctx, req, "🏢 <b>Venue sent!</b>",
		platform.Row(platform.CallbackButton("📞 Contact", "contact"), content.MenuButton()))
	return nil
}

func (h infoHandler) contact(ctx context.Context, req *Request) error {
	if err := h.deps.Client.SendContact(ctx, req.ChatID(), "+1234567890", "Keeper", "Demo"); err != nil {
		return failed("Send contact", err, "")
	}
	h.reply(ctx, req, "📞 <b>Contact sent!</b>",
		platform.Row(platform.CallbackButton("📊 Poll", "poll"), content.MenuButton()))
	return nil
}

func (h infoHandler) poll(ctx context.Context, req *Request) error {
	if err := h.deps.Client.SendPoll(ctx, req.ChatID(), "🐹 What do you love most about Go?", pollOptions); err != nil {
		return failed("Send poll", err, "")
	}
	h.reply(ctx, req, "📊 <b>Poll created!</b>", content.MenuOnly())
	return nil
}

func (h infoHandler) botInfo(ctx context.Context, req *Request) error {
	me, err := h.deps.Client.Me(ctx)
	if err != nil {
		return failed("Get bot info", err, "")
	}
	h.show(ctx, req, fmt.Sprintf("🤖 <b>Bot Information</b>\n\n"+
		"<b>ID:</b> <code>%d</code>\n<b>Name:</b> %s\n<b>Username:</b> @%s\n<b>Is Bot:</b> %t",
		me.ID, html.EscapeString(me.FirstName), html.EscapeString(me.Username), me.IsBot), content.MenuOnly())
	return nil
}

func (h infoHandler) webhookInfo(ctx context.Context, req *Request) error {
	info, err := h.deps.Client.WebhookInfo(ctx)
	if err != nil {
		return failed("Get webhook info", err, "")
	}
	url := info.URL
	if url == "" {
		url = "None (polling mode)"
	}
	lastErr := info.LastErrorMessage
	if lastErr == "" {
		lastErr = "None"
	}
	h.show(ctx, req, fmt.Sprintf("📡 <b>Webhook Info</b>\n\n"+
		"<b>URL:</b> <code>%s</code>\n<b>Pending Updates:</b> %d\n<b>Last Error:</b> %s",
		html.EscapeString(url), info.PendingUpdateCount, html.EscapeString(lastErr)), apiBack())
	return nil
}

func (h infoHandler) memberCount(ctx context.Context, req *Request) error {
	n, err := h.deps.Client.GetMemberCount(ctx, req.ChatID())
	if err != nil {
		return failed("Get member count", err, "")
	}
	h.show(ctx, req, fmt.Sprintf("👥 <b>Chat Member Count</b>\n\nThis chat has <b>%d</b> member(s).", n), apiBack())
	return nil
}

func (h infoHandler) admins(ctx context.Context, req *Request) error {
	admins, err := h.deps.Client.GetChatAdministrators(ctx, req.ChatID())
	if err != nil {
		return failed("Get administrators", err, "Only works in groups.")
	}
	lines := make([]string, 0, len(admins))
	for _, a := range admins {
		line := "• " + html.EscapeString(a.User.DisplayName())
		if a.User.Username != "" {
			line += " (@" + html.EscapeString(a.User.Username) + ")"
		}
		lines = append(lines, line)
	}
	list := "No admins found."
	if len(lines) > 0 {
		list = strings.Join(lines, "\n")
	}
	h.show(ctx, req, fmt.Sprintf("👑 <b>Chat Administrators</b> (%d total)\n\n%s", len(admins), list), apiBack())
	return nil
}

func (h infoHandler) inviteLink(ctx context.Context, req *Request) error {
	link, err := h.deps.Client.ExportInviteLink(ctx, req.ChatID())
	if err != nil {
		return failed("Export invite link", err, "Only works for groups and channels where the bot is admin.")
	}
	h.show(ctx, req, fmt.Sprintf("🔗 <b>Chat Invite Link</b>\n\n<code>%s</code>", html.EscapeString(link)),
		platform.Row(platform.LinkButton("🔗 Join", link), platform.CallbackButton("⬅️ API Menu", content.APIMenu)))
	return nil
}

func (h infoHandler) myCommands(ctx context.Context, req *Request) error {
	cmds, err := h.deps.Client.GetCommands(ctx)
	if err != nil {
		return failed("Get commands", err, "")
	}
	list := "None registered."
	if len(cmds) > 0 {
		lines := make([]string, len(cmds))
		for i, c := range cmds {
			lines[i] = fmt.Sprintf("/%s - %s", c.Command, html.EscapeString(c.Description))
		}
		list = strings.Join(lines, "\n")
	}
	h.show(ctx, req, fmt.Sprintf("📋 <b>Registered Commands</b> (%d total)\n\n%s", len(cmds), list), apiBack())
	return nil
}

func (h infoHandler) myProfile(ctx context.Context, req *Request) error {
	u := req.Sender()
	username := "none"
	if u.Username != "" {
		username = "@" + html.EscapeString(u.Username)
	}
	h.show(ctx, req, fmt.Sprintf("👤 <b>Your Profile</b>\n\n<b>ID:</b> <code>%d</code>\n<b>Name:</b> %s\n<b>Username:</b> %s",
		u.ID, html.EscapeString(strings.TrimSpace(u.FirstName+" "+u.LastName)), username), apiBack())
	return nil
}
