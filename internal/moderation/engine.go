// Package moderation holds the warning counter, the expiry parser and the
// membership actions built on the platform client.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/keeperbot/internal/platform"
)

// Muted denies every right a member can hold.
var Muted = platform.Permissions{}

// Unmuted restores the sending rights of a regular member.
var Unmuted = platform.Permissions{
	SendMessages:       true,
	SendAudios:         true,
	SendDocuments:      true,
	SendPhotos:         true,
	SendVideos:         true,
	SendVideoNotes:     true,
	SendVoiceNotes:     true,
	SendPolls:          true,
	SendOtherMessages:  true,
	AddWebPagePreviews: true,
	InviteUsers:        true,
}

// ReadOnlyChat is the chat-wide permission set applied by /ro.
var ReadOnlyChat = platform.Permissions{}

// OpenChat is the chat-wide permission set applied by /unro.
var OpenChat = platform.Permissions{
	SendMessages:       true,
	SendAudios:         true,
	SendDocuments:      true,
	SendPhotos:         true,
	SendVideos:         true,
	SendVideoNotes:     true,
	SendVoiceNotes:     true,
	SendPolls:          true,
	SendOtherMessages:  true,
	AddWebPagePreviews: true,
	InviteUsers:        true,
}

// FullAdmin is granted by /promote.
var FullAdmin = platform.AdminRights{
	ManageChat:       true,
	DeleteMessages:   true,
	ManageVideoChats: true,
	RestrictMembers:  true,
	PromoteMembers:   false,
	ChangeInfo:       true,
	InviteUsers:      true,
	PinMessages:      true,
	PostStories:      true,
	EditStories:      true,
	DeleteStories:    true,
}

// Engine issues moderation actions. It never retries and never touches
// store state; errors are returned as-is for the caller to report.
type Engine struct {
	client platform.Client
	logger *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(client platform.Client, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{client: client, logger: logger.With("component", "moderation")}
}

// Ban removes the user and revokes their messages. A zero until bans
// permanently.
func (e *Engine) Ban(ctx context.Context, chatID, userID int64, until time.Time) error {
	if err := e.client.BanMember(ctx, chatID, userID, until, true); err != nil {
		return err
	}
	e.logger.InfoContext(ctx, "User banned", "chat_id", chatID, "user_id", userID, "until", until)
	return nil
}

// Unban lifts a ban; users who are not banned are left in place.
func (e *Engine) Unban(ctx context.Context, chatID, userID int64) error {
	return e.client.UnbanMember(ctx, chatID, userID, true)
}

// Kick bans then immediately unbans, so the user can rejoin. The unban is
// only attempted after a successful ban.
func (e *Engine) Kick(ctx context.Context, chatID, userID int64) error {
	if err := e.client.BanMember(ctx, chatID, userID, time.Time{}, false); err != nil {
		return err
	}
	if err := e.client.UnbanMember(ctx, chatID, userID, true); err != nil {
		return fmt.Errorf("user removed but still banned: %w", err)
	}
	e.logger.InfoContext(ctx, "User kicked", "chat_id", chatID, "user_id", userID)
	return nil
}

// Mute denies every sending right, optionally until a point in time.
func (e *Engine) Mute(ctx context.Context, chatID, userID int64, until time.Time) error {
	return e.client.RestrictMember(ctx, chatID, userID, Muted, until)
}

// Unmute restores standard member rights.
func (e *Engine) Unmute(ctx context.Context, chatID, userID int64) error {
	return e.client.RestrictMember(ctx, chatID, userID, Unmuted, time.Time{})
}

func (e *Engine) Pin(ctx context.Context, chatID int64, messageID int) error {
	return e.client.PinMessage(ctx, chatID, messageID)
}

func (e *Engine) Unpin(ctx context.Context, chatID int64) error {
	return e.client.UnpinMessage(ctx, chatID)
}

// ReadOnly toggles chat-wide sending rights.
func (e *Engine) ReadOnly(ctx context.Context, chatID int64, on bool) error {
	perms := OpenChat
	if on {
		perms = ReadOnlyChat
	}
	return e.client.SetChatPermissions(ctx, chatID, perms)
}

func (e *Engine) Delete(ctx context.Context, chatID int64, messageID int) error {
	return e.client.DeleteMessage(ctx, chatID, messageID)
}

// Promote grants FullAdmin rights.
func (e *Engine) Promote(ctx context.Context, chatID, userID int64) error {
	return e.client.PromoteMember(ctx, chatID, userID, FullAdmin)
}

// Demote removes all administrator rights.
func (e *Engine) Demote(ctx context.Context, chatID, userID int64) error {
	return e.client.PromoteMember(ctx, chatID, userID, platform.AdminRights{})
}

// AutoBan is the ban issued when a user reaches WarnLimit.
func (e *Engine) AutoBan(ctx context.Context, chatID, userID int64) error {
	if err := e.client.BanMember(ctx, chatID, userID, time.Time{}, true); err != nil {
		e.logger.ErrorContext(ctx, "Auto-ban failed", "chat_id", chatID, "user_id", userID, "error", err)
		return err
	}
	e.logger.InfoContext(ctx, "User auto-banned", "chat_id", chatID, "user_id", userID)
	return nil
}
