// Package content holds the bot's static replies: menu keyboards, help and
// info pages, the random fact/joke tables and the inline query catalogue.
// Everything here is HTML and free of side effects.
package content

import (
	"fmt"
	"html"

	"github.com/edgard/keeperbot/internal/platform"
)

const (
	BotName    = "KeeperBot"
	Version    = "0.1.0"
	RepoURL    = "https://github.com/edgard/keeperbot"
	LibraryURL = "https://github.com/go-telegram/bot"
	APIDocsURL = "https://core.telegram.org/bots/api"
)

// Callback tokens that open a menu.
const (
	MainMenu   = "main_menu"
	FunMenu    = "fun_menu"
	APIMenu    = "api_menu"
	ToolsMenu  = "tools_menu"
	MediaMenu  = "media_menu"
	AlertsMenu = "alerts_menu"
	HelpToken  = "help_cb"
)

// MenuButton returns to the main menu.
func MenuButton() platform.Button { return platform.CallbackButton("⬅️ Menu", MainMenu) }

// MenuOnly is the keyboard attached to moderation, filter, note and admin
// replies.
func MenuOnly() platform.Grid { return platform.Row(MenuButton()) }

// MenuAndHelp is attached to echo replies and the unknown command hint.
func MenuAndHelp() platform.Grid {
	return platform.Row(
		platform.CallbackButton("📋 Menu", MainMenu),
		platform.CallbackButton("📖 Help", HelpToken),
	)
}

// BackTo is a single back button to the given menu.
func BackTo(label, token string) platform.Grid {
	return platform.Row(platform.CallbackButton("⬅️ "+label, token))
}

func cb(label, token string) platform.Button { return platform.CallbackButton(label, token) }

// Keyboard returns the keyboard of a menu token.
func Keyboard(token string) (platform.Grid, bool) {
	switch token {
	case MainMenu:
		return platform.Grid{
			{cb("🛡 About Keeper", "about"), cb("📚 Library Info", "library")},
			{cb("🎮 Fun & Games", FunMenu), cb("📡 API Showcase", APIMenu)},
			{cb("🛠 Tools", ToolsMenu), cb("📊 Bot Stats", "stats_info")},
			{cb("💬 Media Demo", MediaMenu), cb("🔔 Alerts Demo", AlertsMenu)},
			{platform.LinkButton("🌐 GitHub", RepoURL)},
		}, true
	case FunMenu:
		return platform.Grid{
			{cb("🎲 Roll Dice", "dice"), cb("🎯 Darts", "darts")},
			{cb("🎳 Bowling", "bowling"), cb("🏀 Basketball", "basketball")},
			{cb("⚽ Football", "football"), cb("🎰 Slot Machine", "slots")},
			{cb("💡 Random Fact", "fact"), cb("😂 Joke", "joke")},
			{cb("🔮 Magic 8-Ball", "magic8"), cb("🪙 Coin Flip", "coinflip")},
			{cb("⬅️ Back", MainMenu)},
		}, true
	case APIMenu:
		return platform.Grid{
			{cb("📋 Webhook Info", "webhook_info"), cb("🏓 Ping", "ping")},
			{cb("👑 Chat Admins", "admins"), cb("📊 Member Count", "member_count")},
			{cb("🔗 Invite Link", "invite_link"), cb("📄 My Commands", "my_commands")},
			{cb("👤 My Profile", "my_profile"), cb("🤖 Bot Details", "bot_details")},
			{cb("⬅️ Back", MainMenu)},
		}, true
	case ToolsMenu:
		return platform.Grid{
			{cb("📍 Location", "location"), cb("📞 Contact", "contact")},
			{cb("🏢 Venue", "venue"), cb("📊 Create Poll", "poll")},
			{cb("⏱️ Live Location", "countdown"), cb("🌐 Web App Info", "webapp_info")},
			{cb("🔤 Text Styles", "text_styles")},
			{cb("⬅️ Back", MainMenu)},
		}, true
	case MediaMenu:
		return platform.Grid{
			{cb("🖼 Send Photo", "send_photo"), cb("🎬 Send Animation", "send_animation")},
			{cb("🎵 Audio Info", "audio_info"), cb("📹 Video Info", "video_info")},
			{cb("🎤 Voice Info", "voice_info"), cb("📁 Document Info", "doc_info")},
			{cb("🎭 Sticker Info", "sticker_info"), cb("📦 Media Group", "media_group_info")},
			{cb("⬅️ Back", MainMenu)},
		}, true
	case AlertsMenu:
		return platform.Grid{
			{cb("🚨 Show Alert", "alert_demo"), cb("📢 Notification", "notif_demo")},
			{cb("🔗 Callback URL", "cb_url_demo"), cb("💬 Toast", "toast_demo")},
			{cb("⬅️ Back", MainMenu)},
		}, true
	}
	return nil, false
}

// Menu returns the text and keyboard shown when a menu token is clicked.
// name is the first name of the user who clicked.
func Menu(token, name string) (string, platform.Grid, bool) {
	kb, ok := Keyboard(token)
	if !ok {
		return "", nil, false
	}
	var text string
	switch token {
	case MainMenu:
		text = fmt.Sprintf("🛡 <b>%s</b>\n\nWelcome back, <b>%s</b>! Choose a category:", BotName, html.EscapeString(name))
	case FunMenu:
		text = "🎮 <b>Fun &amp; Games</b>\n\nChoose an activity!"
	case APIMenu:
		text = "📡 <b>API Showcase</b>\n\nExplore Telegram Bot API methods in action."
	case ToolsMenu:
		text = "🛠 <b>Tools &amp; Interactive Features</b>"
	case MediaMenu:
		text = "💬 <b>Media Demo</b>\n\nExplore the media types the bot can send."
	case AlertsMenu:
		text = "🔔 <b>Alerts Demo</b>\n\nThese buttons show the different ways a button click can be answered:"
	}
	return text, kb, true
}

// Welcome is the /start greeting.
func Welcome(name string) string {
	return fmt.Sprintf("🛡 <b>Hello, %s!</b>\n\n"+
		"I'm <b>%s</b>, a group management bot written in Go on top of "+
		"<a href=\"%s\">go-telegram/bot</a>.\n\n"+
		"I can moderate groups, remember notes, answer keyword filters and "+
		"post messages with buttons.\n\n"+
		"Use the menu below or send /help to see every command.",
		html.EscapeString(name), BotName, LibraryURL)
}

// GroupWelcome is sent when the bot is added to a chat.
func GroupWelcome(chatTitle string) string {
	title := "this chat"
	if chatTitle != "" {
		title = "<b>" + html.EscapeString(chatTitle) + "</b>"
	}
	return fmt.Sprintf("👋 Thanks for adding me to %s!\n\n"+
		"Make me an administrator so moderation commands work, then send "+
		"/modhelp to see them.", title)
}

// UnknownCommand is the private-chat hint for an unrecognized command.
func UnknownCommand(cmd string) string {
	return fmt.Sprintf("❓ Unknown command: <code>%s</code>\n\nUse /help to see all commands.", html.EscapeString(cmd))
}

// DisplayLink renders a clickable mention of a user id.
func DisplayLink(userID int64, name string) string {
	return fmt.Sprintf("<a href=\"tg://user?id=%d\">%s</a>", userID, html.EscapeString(name))
}
