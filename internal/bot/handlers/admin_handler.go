package handlers

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

// MaxTitleLen is the platform limit for a custom administrator title.
const MaxTitleLen = 16

// adminHandler runs the administrator management commands.
type adminHandler struct {
	base
}

func checkTitle(title string) error {
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return invalid(fmt.Sprintf("<b>Title too long.</b> Custom titles are limited to %d characters.", MaxTitleLen))
	}
	return nil
}

func (h adminHandler) promote(ctx context.Context, req *Request) error {
	t, args, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("\n• Reply: <code>/promote [Title]</code>\n• By ID: <code>/promote 123456789 [Title]</code>")
	}
	title := strings.Join(args, " ")
	if err := checkTitle(title); err != nil {
		return err
	}

	if err := h.deps.Moderation.Promote(ctx, req.ChatID(), t.ID); err != nil {
		return failed("Promote", err, "Bot must be admin with promote rights.")
	}

	titleLine := ""
	if title != "" {
		if err := h.deps.Client.SetCustomTitle(ctx, req.ChatID(), t.ID, title); err != nil {
			return failed("Set title", err, "The user was promoted without a title.")
		}
		titleLine = "\n🏷️ <b>Title:</b> <i>" + html.EscapeString(title) + "</i>"
	}

	h.reply(ctx, req, fmt.Sprintf("⭐ <b>Promoted!</b>\n\n%s is now an administrator.%s",
		content.DisplayLink(t.ID, t.Name), titleLine), content.MenuOnly())
	return nil
}

func (h adminHandler) demote(ctx context.Context, req *Request) error {
	t, _, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("\n• Reply: <code>/demote</code>\n• By ID: <code>/demote 123456789</code>")
	}
	if err := h.deps.Moderation.Demote(ctx, req.ChatID(), t.ID); err != nil {
		return failed("Demote", err, "")
	}
	h.reply(ctx, req, fmt.Sprintf("🔽 <b>Demoted!</b>\n\n%s is no longer an administrator.",
		content.DisplayLink(t.ID, t.Name)), content.MenuOnly())
	return nil
}

func (h adminHandler) title(ctx context.Context, req *Request) error {
	t, args, ok := ResolveTarget(req.Msg, req.Args)
	title := strings.Join(args, " ")
	if !ok || title == "" {
		return usage("\n• Reply: <code>/title 🛡️ Guardian</code>\n• By ID: <code>/title 123456789 🛡️ Guardian</code>")
	}
	if err := checkTitle(title); err != nil {
		return err
	}
	if err := h.deps.Client.SetCustomTitle(ctx, req.ChatID(), t.ID, title); err != nil {
		return failed("Set title", err, "User must already be an admin.")
	}
	h.reply(ctx, req, fmt.Sprintf("🏷️ <b>Title set!</b>\n\n%s is now <i>%s</i>",
		content.DisplayLink(t.ID, t.Name), html.EscapeString(title)), content.MenuOnly())
	return nil
}

var statusLabels = map[platform.MemberStatus]string{
	platform.StatusCreator:       "👑 Creator",
	platform.StatusAdministrator: "⭐ Administrator",
	platform.StatusMember:        "👤 Member",
	platform.StatusRestricted:    "🔇 Restricted",
	platform.StatusLeft:          "🚪 Left",
	platform.StatusKicked:        "🔨 Banned",
}

const userInfoUsage = "\n• Reply to a message: <code>/userinfo</code>\n" +
	"• By ID: <code>/userinfo 123456789</code>\n" +
	"• By username: <code>/userinfo @username</code>"

// userInfo accepts a reply, a numeric id or a public @handle.
func (h adminHandler) userInfo(ctx context.Context, req *Request) error {
	var user platform.User
	switch {
	case req.Msg.ReplyTo != nil && req.Msg.ReplyTo.From != nil:
		user = *req.Msg.ReplyTo.From
	case len(req.Args) > 0 && strings.HasPrefix(req.Args[0], "@"):
		info, err := h.deps.Client.GetChat(ctx, req.Args[0])
		if err != nil {
			req.log.DebugContext(ctx, "Handle lookup failed", "handle", req.Args[0], "error", err)
			return notFound(fmt.Sprintf("Could not resolve <code>%s</code>.\n<i>Only works for public users/chats.</i>",
				html.EscapeString(req.Args[0])))
		}
		user = platform.User{ID: info.ID, FirstName: info.FirstName, LastName: info.LastName, Username: info.Username}
	case len(req.Args) > 0:
		id, err := strconv.ParseInt(req.Args[0], 10, 64)
		if err != nil || id <= 0 {
			return usage(userInfoUsage)
		}
		user = platform.User{ID: id}
	default:
		return usage(userInfoUsage)
	}

	member, err := h.deps.Client.GetChatMember(ctx, req.ChatID(), user.ID)
	if err != nil {
		return failed("Get user info", err, "User must be a member of this chat.")
	}
	if member.User.FirstName != "" {
		user = member.User
	}

	h.reply(ctx, req, renderUserInfo(user, member), platform.Grid{
		{platform.LinkButton("💬 Open chat", fmt.Sprintf("tg://user?id=%d", user.ID))},
		{content.MenuButton()},
	})
	return nil
}

func renderUserInfo(u platform.User, m platform.ChatMember) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.DisplayName()
	}
	status, ok := statusLabels[m.Status]
	if !ok {
		status = string(m.Status)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👤 <b>User Info</b>\n\n<b>Name:</b> %s\n<b>ID:</b> <code>%d</code>\n<b>Status:</b> %s",
		html.EscapeString(name), u.ID, status)
	if u.Username != "" {
		fmt.Fprintf(&b, "\n<b>Username:</b> @%s", html.EscapeString(u.Username))
	}
	if m.CustomTitle != "" {
		fmt.Fprintf(&b, "\n<b>Admin Title:</b> <i>%s</i>", html.EscapeString(m.CustomTitle))
	}
	if u.IsPremium {
		b.WriteString("\n<b>Premium:</b> 💎")
	}
	if u.IsBot {
		b.WriteString("\n<b>Type:</b> 🤖 Bot")
	}
	return b.String()
}
