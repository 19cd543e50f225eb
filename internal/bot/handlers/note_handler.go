package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

// noteHandler manages saved notes.
type noteHandler struct {
	base
}

func noteName(arg string) string {
	return strings.ToLower(strings.TrimLeft(arg, "#"))
}

func (h noteHandler) save(ctx context.Context, req *Request) error {
	body := afterFirst(req)
	if len(req.Args) == 0 || noteName(req.Args[0]) == "" || body == "" {
		return usage("<code>/note name content</code>\n\n" +
			"<i>Retrieve with <code>/get name</code> or just type <code>#name</code></i>")
	}
	name := noteName(req.Args[0])
	h.deps.Notes.Save(req.ChatID(), name, body)
	req.log.InfoContext(ctx, "Note saved", "chat_id", req.ChatID(), "name", name)

	esc := html.EscapeString(name)
	h.reply(ctx, req, fmt.Sprintf("📝 <b>Note saved!</b>\n\n📌 Name: <code>%s</code>\n📄 Content: %s\n\n"+
		"<i>Get it: <code>/get %s</code> or <code>#%s</code></i>", esc, html.EscapeString(body), esc, esc), content.MenuOnly())
	return nil
}

func (h noteHandler) get(ctx context.Context, req *Request) error {
	if len(req.Args) == 0 {
		return usage("<code>/get note_name</code>")
	}
	body, ok := h.deps.Notes.Get(req.ChatID(), noteName(req.Args[0]))
	if !ok {
		return notFound(fmt.Sprintf("<b>Note not found:</b> <code>%s</code>\nUse <code>/notes</code> to see all notes.",
			html.EscapeString(req.Args[0])))
	}
	h.sendNote(ctx, req.ChatID(), body)
	return nil
}

// sendNote posts stored content as-is, without a keyboard.
func (h noteHandler) sendNote(ctx context.Context, chatID int64, body string) {
	if _, err := h.deps.Client.SendMessage(ctx, chatID, body, platform.SendOptions{HTML: true}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send note", "error", err, "chat_id", chatID)
	}
}

func (h noteHandler) list(ctx context.Context, req *Request) error {
	names := h.deps.Notes.List(req.ChatID())
	if len(names) == 0 {
		h.reply(ctx, req, "📂 <b>No notes saved.</b>\nUse <code>/note name content</code> to save one.", content.MenuOnly())
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Saved Notes</b> (%d total)\n\n", len(names))
	for _, n := range names {
		fmt.Fprintf(&b, "📌 <code>#%s</code>\n", html.EscapeString(n))
	}
	b.WriteString("\n<i>Get any note: <code>/get name</code> or <code>#name</code></i>")
	h.reply(ctx, req, b.String(), content.MenuOnly())
	return nil
}

func (h noteHandler) remove(ctx context.Context, req *Request) error {
	if len(req.Args) == 0 {
		return usage("<code>/delnote name</code>")
	}
	name := noteName(req.Args[0])
	if !h.deps.Notes.Delete(req.ChatID(), name) {
		return notFound(fmt.Sprintf("No note named: <code>%s</code>", html.EscapeString(name)))
	}
	h.reply(ctx, req, fmt.Sprintf("🗑️ <b>Note deleted:</b> <code>%s</code>", html.EscapeString(name)), content.MenuOnly())
	return nil
}
