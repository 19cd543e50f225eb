package content

import (
	"fmt"
	"strings"

	"github.com/edgard/keeperbot/internal/platform"
)

type method struct {
	id, name, category, description, call string
}

var methods = []method{
	{"m_send_message", "SendMessage", "📨 Messaging", "Send a text message", "b.SendMessage(ctx, &bot.SendMessageParams{ChatID, Text})"},
	{"m_send_photo", "SendPhoto", "📨 Messaging", "Send a photo by URL, file id or upload", "b.SendPhoto(ctx, &bot.SendPhotoParams{ChatID, Photo})"},
	{"m_send_video", "SendVideo", "📨 Messaging", "Send a video file", "b.SendVideo(ctx, &bot.SendVideoParams{ChatID, Video})"},
	{"m_send_audio", "SendAudio", "📨 Messaging", "Send an audio file", "b.SendAudio(ctx, &bot.SendAudioParams{ChatID, Audio})"},
	{"m_send_document", "SendDocument", "📨 Messaging", "Send any file as a document", "b.SendDocument(ctx, &bot.SendDocumentParams{ChatID, Document})"},
	{"m_send_dice", "SendDice", "📨 Messaging", "Send an animated dice", "b.SendDice(ctx, &bot.SendDiceParams{ChatID, Emoji})"},
	{"m_send_poll", "SendPoll", "📨 Messaging", "Send a poll with options", "b.SendPoll(ctx, &bot.SendPollParams{ChatID, Question, Options})"},
	{"m_send_location", "SendLocation", "📨 Messaging", "Send a map location", "b.SendLocation(ctx, &bot.SendLocationParams{ChatID, Latitude, Longitude})"},
	{"m_edit_message_text", "EditMessageText", "✏️ Editing", "Edit the text of a message", "b.EditMessageText(ctx, &bot.EditMessageTextParams{ChatID, MessageID, Text})"},
	{"m_delete_message", "DeleteMessage", "✏️ Editing", "Delete a message", "b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID, MessageID})"},
	{"m_pin_chat_message", "PinChatMessage", "✏️ Editing", "Pin a message in a chat", "b.PinChatMessage(ctx, &bot.PinChatMessageParams{ChatID, MessageID})"},
	{"m_ban_chat_member", "BanChatMember", "👥 Chat Mgmt", "Ban a user from a chat", "b.BanChatMember(ctx, &bot.BanChatMemberParams{ChatID, UserID})"},
	{"m_unban_chat_member", "UnbanChatMember", "👥 Chat Mgmt", "Unban a user", "b.UnbanChatMember(ctx, &bot.UnbanChatMemberParams{ChatID, UserID})"},
	{"m_restrict_chat_member", "RestrictChatMember", "👥 Chat Mgmt", "Restrict (mute) a member", "b.RestrictChatMember(ctx, &bot.RestrictChatMemberParams{ChatID, UserID, Permissions})"},
	{"m_promote_chat_member", "PromoteChatMember", "👥 Chat Mgmt", "Promote a member to admin", "b.PromoteChatMember(ctx, &bot.PromoteChatMemberParams{ChatID, UserID})"},
	{"m_get_chat_member_count", "GetChatMemberCount", "👥 Chat Mgmt", "Count chat members", "b.GetChatMemberCount(ctx, &bot.GetChatMemberCountParams{ChatID})"},
	{"m_get_me", "GetMe", "🤖 Bot Info", "Get the bot's own account", "b.GetMe(ctx)"},
	{"m_set_my_commands", "SetMyCommands", "🤖 Bot Info", "Register the command menu", "b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands})"},
	{"m_answer_inline_query", "AnswerInlineQuery", "🔎 Inline", "Answer an inline query", "b.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{InlineQueryID, Results})"},
	{"m_answer_callback_query", "AnswerCallbackQuery", "🔎 Inline", "Acknowledge a button click", "b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID})"},
}

type article struct {
	id, title, description, text string
}

var factArticles = []article{
	{"fact_origin", "🐹 Where Go came from", "Designed at Google in 2007",
		"🐹 <b>Where Go came from</b>\n\nGo was designed at Google in 2007 by Robert Griesemer, Rob Pike and Ken Thompson, and open sourced in 2009."},
	{"fact_goroutines", "⚡ Goroutines are cheap", "Stacks start at a few kilobytes",
		"⚡ <b>Goroutines are cheap</b>\n\nA goroutine starts with a tiny stack that grows as needed, so programs routinely run hundreds of thousands of them."},
	{"fact_compat", "🔒 Go 1 compatibility", "Programs written for Go 1.0 still build",
		"🔒 <b>Go 1 compatibility</b>\n\nThe Go 1 promise means code written for Go 1.0 in 2012 still compiles with today's toolchain."},
	{"fact_cloud", "☁️ The language of the cloud", "Docker, Kubernetes, Terraform",
		"☁️ <b>The language of the cloud</b>\n\nDocker, Kubernetes, Terraform, Prometheus and etcd are all written in Go."},
}

var jokeArticles = []article{
	{"joke_err", "😂 The error joke", "if err != nil",
		"😂 <b>Go Joke</b>\n\nHow do Go developers handle stress?\n\n<code>if err != nil { return err }</code>"},
	{"joke_select", "😂 The select joke", "Why did the gopher refuse to fight?",
		"😂 <b>Go Joke</b>\n\nWhy did the gopher refuse to fight?\n\nIt preferred to <b>select</b> its battles."},
}

var aboutArticles = []article{
	{"about_bot", "🛡 About " + BotName, "Group management bot written in Go",
		"🛡 <b>" + BotName + "</b>\n\nA group management bot built on <a href=\"" + LibraryURL + "\">go-telegram/bot</a>: moderation, warnings, filters, notes and button posts."},
	{"about_install", "📦 Install go-telegram/bot", "go get github.com/go-telegram/bot",
		"📦 <b>Install go-telegram/bot</b>\n\n<pre>go get github.com/go-telegram/bot</pre>"},
}

func (m method) result() platform.InlineResult {
	return platform.InlineResult{
		ID:          m.id,
		Title:       m.category + " " + m.name,
		Description: m.description,
		Text: fmt.Sprintf("🐹 <b>%s</b>\n%s\n\n<b>Call:</b>\n<code>%s</code>",
			m.name, m.description, escapeAmp(m.call)),
		Keyboard: libraryKeyboard(),
	}
}

func (a article) result() platform.InlineResult {
	return platform.InlineResult{
		ID:          a.id,
		Title:       a.title,
		Description: a.description,
		Text:        a.text,
		Keyboard:    libraryKeyboard(),
	}
}

func libraryKeyboard() platform.Grid {
	return platform.Row(platform.LinkButton("🐹 go-telegram/bot", LibraryURL))
}

func escapeAmp(s string) string {
	return strings.ReplaceAll(s, "&", "&amp;")
}

func (m method) matches(q string) bool {
	return strings.Contains(strings.ToLower(m.name), q) ||
		strings.Contains(strings.ToLower(m.description), q) ||
		strings.Contains(strings.ToLower(m.category), q)
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// InlineResults answers an inline query from the static catalogue.
func InlineResults(query string) []platform.InlineResult {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []platform.InlineResult
	addMethods := func(limit int, keep func(method) bool) {
		for _, m := range methods {
			if len(out) >= limit {
				return
			}
			if keep(m) {
				out = append(out, m.result())
			}
		}
	}
	addArticles := func(list []article) {
		for _, a := range list {
			out = append(out, a.result())
		}
	}

	switch {
	case q == "":
		addMethods(5, func(method) bool { return true })
		addArticles(factArticles[:3])
	case strings.HasPrefix(q, "method:") || strings.HasPrefix(q, "b."):
		search := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(q, "method:"), "b."))
		addMethods(10, func(m method) bool { return m.matches(search) })
	case containsAny(q, "ban", "mute", "kick", "restrict", "admin", "promote", "member"):
		addMethods(10, func(m method) bool { return m.matches(q) || m.category == "👥 Chat Mgmt" })
	case containsAny(q, "joke", "fun", "lol"):
		addArticles(jokeArticles)
	case containsAny(q, "fact", "golang", "gopher", "goroutine"):
		addArticles(factArticles)
	case containsAny(q, "about", "keeper", "install", "lib"):
		addArticles(aboutArticles)
	default:
		addMethods(5, func(m method) bool { return m.matches(q) })
		for _, a := range factArticles {
			if strings.Contains(strings.ToLower(a.title), q) || strings.Contains(strings.ToLower(a.description), q) {
				out = append(out, a.result())
			}
		}
		if len(out) == 0 {
			addMethods(5, func(method) bool { return true })
		}
	}
	return out
}
