package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/edgard/keeperbot/internal/content"
)

// filterHandler manages keyword auto-replies.
type filterHandler struct {
	base
}

// afterFirst returns the text following the first argument with line breaks
// kept.
func afterFirst(req *Request) string {
	if len(req.Args) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(req.Rest, req.Args[0]))
}

func (h filterHandler) add(ctx context.Context, req *Request) error {
	response := afterFirst(req)
	if len(req.Args) == 0 || response == "" {
		return usage("<code>/filter keyword response text</code>\n\n" +
			"<i>The bot will auto-reply whenever anyone says the keyword.</i>")
	}
	keyword := strings.ToLower(req.Args[0])
	h.deps.Filters.Set(req.ChatID(), keyword, response)
	req.log.InfoContext(ctx, "Filter saved", "chat_id", req.ChatID(), "keyword", keyword)

	h.reply(ctx, req, fmt.Sprintf("✅ <b>Filter saved!</b>\n\n🔑 Keyword: <code>%s</code>\n💬 Response: %s",
		html.EscapeString(keyword), html.EscapeString(response)), content.MenuOnly())
	return nil
}

func (h filterHandler) remove(ctx context.Context, req *Request) error {
	if len(req.Args) == 0 {
		return usage("<code>/delfilter keyword</code>")
	}
	keyword := strings.ToLower(req.Args[0])
	if !h.deps.Filters.Delete(req.ChatID(), keyword) {
		return notFound(fmt.Sprintf("No filter found for: <code>%s</code>", html.EscapeString(keyword)))
	}
	h.reply(ctx, req, fmt.Sprintf("🗑️ <b>Filter deleted:</b> <code>%s</code>", html.EscapeString(keyword)), content.MenuOnly())
	return nil
}

func (h filterHandler) list(ctx context.Context, req *Request) error {
	entries := h.deps.Filters.List(req.ChatID())
	if len(entries) == 0 {
		h.reply(ctx, req, "📂 <b>No filters set.</b>\nUse <code>/filter keyword response</code> to add one.", content.MenuOnly())
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Active Filters</b> (%d total)\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "🔑 <code>%s</code> → %s\n", html.EscapeString(e.Keyword), html.EscapeString(e.Preview))
	}
	h.reply(ctx, req, strings.TrimRight(b.String(), "\n"), content.MenuOnly())
	return nil
}
