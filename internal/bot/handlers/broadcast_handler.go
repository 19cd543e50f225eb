package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/markup"
	"github.com/edgard/keeperbot/internal/platform"
)

// broadcastHandler sends user-composed messages with button markup.
type broadcastHandler struct {
	base
}

type mediaInfo struct {
	command string
	label   string
	example string
	hint    string
}

var mediaKinds = map[platform.MediaKind]mediaInfo{
	platform.MediaPhoto:    {"img", "Photo", "https://i.imgur.com/abc.jpg", "Use a direct image URL (jpg/png/webp/gif)."},
	platform.MediaVideo:    {"vid", "Video", "https://url.to/video.mp4", "Use a direct MP4 URL."},
	platform.MediaAudio:    {"aud", "Audio", "https://url.to/audio.mp3", "Use a direct MP3 or M4A URL."},
	platform.MediaDocument: {"doc", "Document", "https://url.to/file.pdf", ""},
}

const sendUsage = "\n<pre>/send Your message here\n[Button 1 | https://url.com] [Button 2 | callback_data]\n[Button 3 | https://url2.com]</pre>\n\n" +
	"Same line = same row. Different lines = different rows."

func (h broadcastHandler) send(ctx context.Context, req *Request) error {
	if req.Rest == "" {
		return usage(sendUsage)
	}
	body, kb := markup.Parse(req.Rest)
	if body == "" {
		return invalid("Please add message text above the button lines.")
	}
	h.reply(ctx, req, body, kb)
	return nil
}

func (h broadcastHandler) post(ctx context.Context, req *Request) error {
	if req.Rest == "" {
		return usage("\n<pre>/post 📢 Announcement text\n[🌐 Website | https://example.com]</pre>")
	}
	body, kb := markup.Parse(req.Rest)
	if body == "" {
		return invalid("Please add post text above the button lines.")
	}
	h.reply(ctx, req, content.Post(body), kb)
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// media sends a file by URL. Caption lines may carry button markup.
func (h broadcastHandler) media(kind platform.MediaKind) CommandFunc {
	info := mediaKinds[kind]
	return func(ctx context.Context, req *Request) error {
		if len(req.Args) == 0 || !isHTTPURL(req.Args[0]) {
			return usage(fmt.Sprintf("<code>/%s %s [caption]</code>\n\nButton lines work in captions too.", info.command, info.example))
		}
		caption, kb := markup.Parse(afterFirst(req))
		err := h.deps.Client.SendMedia(ctx, req.ChatID(),
			platform.Media{Kind: kind, Source: req.Args[0], Caption: caption},
			platform.SendOptions{HTML: true, Keyboard: kb})
		if err != nil {
			return failed(info.label+" send", err, info.hint)
		}
		return nil
	}
}

func (h broadcastHandler) buttons(ctx context.Context, req *Request) error {
	cb := platform.CallbackButton
	h.reply(ctx, req, content.Buttons, platform.Grid{
		{cb("🔴 Red", "btn_color"), cb("🟡 Yellow", "btn_color"), cb("🟢 Green", "btn_color")},
		{cb("🔵 Blue", "btn_color"), cb("🟣 Purple", "btn_color"), cb("🟠 Orange", "btn_color")},
		{cb("⭐ Star", "btn_shape"), cb("💎 Diamond", "btn_shape"), cb("🎯 Target", "btn_shape")},
		{cb("🚨 Alert Popup", "alert_demo"), cb("📢 Toast Notif", "toast_demo")},
		{cb("🔔 Callback URL", "cb_url_demo"), cb("💬 Silent Toast", "notif_demo")},
		{platform.LinkButton("🐹 go-telegram/bot", content.LibraryURL), platform.LinkButton("📖 Bot API", content.APIDocsURL)},
		{cb("⬅️ Main Menu", content.MainMenu)},
	})
	return nil
}

func (h broadcastHandler) help(ctx context.Context, req *Request) error {
	h.reply(ctx, req, content.SendHelp, content.MenuOnly())
	return nil
}
