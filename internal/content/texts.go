package content

import (
	"fmt"
	"html"
	"strings"
)

const Help = "🛡 <b>" + BotName + " Command Reference</b>\n\n" +
	"<b>General</b>\n" +
	"/start /menu: welcome and main menu\n" +
	"/help: this message\n" +
	"/about /library /stats: about the bot\n" +
	"/ping: round-trip latency 🏓\n\n" +
	"<b>Fun</b>\n" +
	"/dice /darts /bowling /basketball /football /slots\n" +
	"/fact /joke /magic8 /coinflip\n\n" +
	"<b>Info</b>\n" +
	"/botinfo /webhookinfo /membercount /admins\n" +
	"/invitelink /mycommands /myprofile\n\n" +
	"<b>Media</b>\n" +
	"/photo /animation /location /venue /contact /poll /textstyles\n\n" +
	"<b>Moderation</b>: see /modhelp\n" +
	"<b>Admin</b>: /promote /demote /title /userinfo /whois\n" +
	"<b>Filters</b>: /filter /delfilter /filters\n" +
	"<b>Notes</b>: /note /get /notes /delnote, or <code>#name</code>\n" +
	"<b>Broadcast</b>: /send /post /img /vid /aud /doc /buttons /sendhelp\n\n" +
	"<b>System</b>\n" +
	"/setcommands /deletecommands /deletewebhook\n\n" +
	"<i>Source: github.com/edgard/keeperbot</i>"

const About = "🛡 <b>About " + BotName + "</b>\n\n" +
	"<b>Version:</b> " + Version + "\n" +
	"<b>Language:</b> Go 🐹\n" +
	"<b>Library:</b> <a href=\"" + LibraryURL + "\">go-telegram/bot</a>\n\n" +
	"A group management bot: moderation with timed bans and mutes, a three " +
	"strike warning system, keyword filters, hashtag notes and broadcast " +
	"posts with inline buttons.\n\n" +
	"State lives in memory and is gone after a restart."

const Library = "📚 <b>go-telegram/bot</b>\n\n" +
	"A zero-dependency Go client for the Telegram Bot API.\n\n" +
	"✅ Long polling and webhooks\n" +
	"✅ Middlewares and a default handler\n" +
	"✅ Typed params for every method\n" +
	"✅ Context-aware calls\n\n" +
	"<b>Send a message:</b>\n" +
	"<pre>b.SendMessage(ctx, &amp;bot.SendMessageParams{\n" +
	"    ChatID: chatID,\n" +
	"    Text:   \"hello\",\n" +
	"})</pre>\n\n" +
	"<a href=\"" + LibraryURL + "\">GitHub</a> | <a href=\"" + APIDocsURL + "\">Bot API</a>"

const Stats = "📊 <b>" + BotName + " Statistics</b>\n\n" +
	"<b>Version:</b> " + Version + "\n" +
	"<b>Library:</b> go-telegram/bot\n\n" +
	"<b>Feature modules:</b>\n" +
	"✅ Core commands and menus\n" +
	"✅ Moderation (ban/mute/kick/warn)\n" +
	"✅ Admin (promote/demote/title/userinfo)\n" +
	"✅ Filters (keyword auto-replies)\n" +
	"✅ Notes (#hashtag recall)\n" +
	"✅ Broadcast (/send /post with buttons)\n" +
	"✅ Media (/img /vid /aud /doc)\n" +
	"✅ Inline search\n\n" +
	"<b>Modes:</b> Long polling ✅ | Webhook ✅"

const TextStyles = "✨ <b>HTML Formatting Showcase</b>\n\n" +
	"<b>Bold text</b>\n" +
	"<i>Italic text</i>\n" +
	"<u>Underlined text</u>\n" +
	"<s>Strikethrough text</s>\n" +
	"<code>Inline code</code>\n" +
	"<pre>Preformatted block\nMultiple lines</pre>\n" +
	"<tg-spoiler>Hidden spoiler text</tg-spoiler>\n" +
	"<a href=\"" + RepoURL + "\">Link text</a>\n\n" +
	"<b>Nested:</b> <b><i>bold italic</i></b> | <i><code>italic code</code></i>\n\n" +
	"<blockquote>This is a blockquote.</blockquote>\n\n" +
	"<i>All sent with <code>ParseMode: models.ParseModeHTML</code></i>"

const ModHelp = "🛡️ <b>Moderation Commands</b>\n\n" +
	"Reply to a message, or pass a numeric user id as the first argument.\n\n" +
	"/ban <code>[7d|12h|30m]</code>: ban, permanent without a duration\n" +
	"/unban: lift a ban\n" +
	"/kick: remove, the user may rejoin\n" +
	"/mute <code>[duration]</code>: remove send rights\n" +
	"/unmute: restore send rights\n" +
	"/warn: add a warning, 3 warnings ban\n" +
	"/unwarn: remove one warning\n" +
	"/warns: show warnings\n\n" +
	"/delete (/del): delete the replied message\n" +
	"/pin, /unpin: pin or unpin messages\n" +
	"/ro, /unro: chat-wide read-only mode\n\n" +
	"<i>The bot must be an administrator with the matching rights.</i>"

const SendHelp = "📡 <b>Send &amp; Post Guide</b>\n\n" +
	"<b>/send</b> posts your text with inline buttons.\n" +
	"<b>/post</b> does the same inside a framed layout.\n\n" +
	"Write the message first, then one line per button row:\n" +
	"<pre>/send Release v2 is out!\n" +
	"[Changelog | https://example.com/changes] [Docs | https://example.com/docs]\n" +
	"[Thanks | toast_demo]</pre>\n\n" +
	"• <code>[Label | https://...]</code> opens a link\n" +
	"• <code>[Label | token]</code> sends a callback\n" +
	"• Malformed groups are skipped\n\n" +
	"<b>Media:</b> <code>/img URL caption</code>, also /vid /aud /doc. " +
	"Button lines work in captions too."

const Buttons = "🎨 <b>Inline Button Showcase</b>\n\n" +
	"Callback buttons answer in place, link buttons open a page.\n" +
	"Try them all!"

// PostFrame is the rule drawn around /post bodies.
const PostFrame = "━━━━━━━━━━━━━━━━━━━━"

// Post frames a broadcast body.
func Post(body string) string {
	return PostFrame + "\n" + body + "\n" + PostFrame
}

// InfoPage is a read-only explainer opened from a sub menu.
type InfoPage struct {
	Text   string
	Parent string
}

// InfoPages are keyed by callback token.
var InfoPages = map[string]InfoPage{
	"audio_info": {Parent: MediaMenu, Text: "🎵 <b>Audio</b>\n\n" +
		"<code>b.SendAudio(ctx, &amp;bot.SendAudioParams{...})</code>\n\n" +
		"Sends MP3 or M4A files shown in the music player. Try <code>/aud URL</code>."},
	"video_info": {Parent: MediaMenu, Text: "📹 <b>Video</b>\n\n" +
		"<code>b.SendVideo(ctx, &amp;bot.SendVideoParams{...})</code>\n\n" +
		"MP4 files up to 50 MB by URL. Try <code>/vid URL</code>."},
	"voice_info": {Parent: MediaMenu, Text: "🎤 <b>Voice</b>\n\n" +
		"<code>b.SendVoice(ctx, &amp;bot.SendVoiceParams{...})</code>\n\n" +
		"OGG/OPUS voice notes, shown with a waveform."},
	"doc_info": {Parent: MediaMenu, Text: "📁 <b>Documents</b>\n\n" +
		"<code>b.SendDocument(ctx, &amp;bot.SendDocumentParams{...})</code>\n\n" +
		"Any file type, sent as-is. Try <code>/doc URL</code>."},
	"sticker_info": {Parent: MediaMenu, Text: "🎭 <b>Stickers</b>\n\n" +
		"<code>b.SendSticker(ctx, &amp;bot.SendStickerParams{...})</code>\n\n" +
		"Send me a sticker in private and I'll show its file id."},
	"media_group_info": {Parent: MediaMenu, Text: "📦 <b>Media Groups</b>\n\n" +
		"<code>b.SendMediaGroup(ctx, &amp;bot.SendMediaGroupParams{...})</code>\n\n" +
		"Two to ten photos or videos delivered as one album."},
	"countdown": {Parent: ToolsMenu, Text: "⏱️ <b>Live Location</b>\n\n" +
		"<code>SendLocation</code> with <code>LivePeriod</code> starts a live location.\n" +
		"<code>EditMessageLiveLocation</code> moves it and " +
		"<code>StopMessageLiveLocation</code> ends it.\n\n" +
		"<i>Live period: 60 to 86400 seconds.</i>"},
	"webapp_info": {Parent: ToolsMenu, Text: "🌐 <b>Web Apps</b>\n\n" +
		"An inline button with <code>WebApp: &amp;models.WebAppInfo{URL: ...}</code> " +
		"opens a page inside Telegram. Results come back through " +
		"<code>AnswerWebAppQuery</code>."},
}

// ParentLabel names the menu an info page returns to.
func ParentLabel(token string) string {
	switch token {
	case MediaMenu:
		return "Media"
	case ToolsMenu:
		return "Tools"
	case APIMenu:
		return "API Menu"
	}
	return "Menu"
}

// Echo is the canned reply to unmatched private text.
func Echo(text, name string) string {
	lower := strings.ToLower(text)
	name = html.EscapeString(name)
	switch {
	case strings.Contains(lower, "golang") || strings.Contains(lower, "gopher") || strings.Contains(lower, "🐹"):
		return fmt.Sprintf("🐹 <b>Gopher spotted!</b>\n\nGo is great, %s! Try /fact for trivia or /menu to explore.", name)
	case hasWord(lower, "hello", "hi", "hey"):
		return fmt.Sprintf("👋 <b>Hey, %s!</b>\n\nI'm %s. Use /start to explore!", name, BotName)
	case strings.Contains(lower, "help"):
		return fmt.Sprintf("ℹ️ Use /help to see all commands, %s!", name)
	case strings.Contains(lower, "thank"):
		return fmt.Sprintf("😊 You're welcome, %s!", name)
	}
	return fmt.Sprintf("💬 <code>%s</code>\n\nUse /help or /menu!", html.EscapeString(text))
}

func hasWord(lower string, words ...string) bool {
	for _, f := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
