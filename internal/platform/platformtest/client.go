// Package platformtest provides a recording platform.Client for tests.
package platformtest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edgard/keeperbot/internal/platform"
)

// Call is one recorded client invocation. Only the fields relevant to the
// method are set.
type Call struct {
	Method    string
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	Opts      platform.SendOptions
	Perms     platform.Permissions
	Rights    platform.AdminRights
	Until     time.Time
	Revoke    bool
	Answer    platform.CallbackAnswer
	Results   []platform.InlineResult
	Media     platform.Media
}

// Client records every call and answers with canned data. Set Fail to make
// a method return an error.
type Client struct {
	mu    sync.Mutex
	calls []Call

	Fail    map[string]error
	Members map[int64]platform.ChatMember
	Admins  []platform.ChatMember
	Chats   map[string]platform.ChatInfo
	Bot     platform.User

	nextMessageID int
}

// New returns an empty recording client.
func New() *Client {
	return &Client{
		Fail:          map[string]error{},
		Members:       map[int64]platform.ChatMember{},
		Chats:         map[string]platform.ChatInfo{},
		Bot:           platform.User{ID: 1, FirstName: "Keeper", Username: "keeperbot", IsBot: true},
		nextMessageID: 1000,
	}
}

// ErrRejected is a convenient platform failure for tests.
var ErrRejected = errors.New("Bad Request: not enough rights")

func (c *Client) record(call Call) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
	if err, ok := c.Fail[call.Method]; ok {
		return &platform.APIError{Method: call.Method, Err: err}
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Methods returns the recorded method names in order.
func (c *Client) Methods() []string {
	var out []string
	for _, call := range c.Calls() {
		out = append(out, call.Method)
	}
	return out
}

// Find returns the recorded calls of one method.
func (c *Client) Find(method string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// Sent returns the texts of every SendMessage call.
func (c *Client) Sent() []string {
	var out []string
	for _, call := range c.Find("SendMessage") {
		out = append(out, call.Text)
	}
	return out
}

func (c *Client) SendMessage(_ context.Context, chatID int64, text string, opts platform.SendOptions) (int, error) {
	if err := c.record(Call{Method: "SendMessage", ChatID: chatID, Text: text, Opts: opts}); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextMessageID++
	return c.nextMessageID, nil
}

func (c *Client) EditMessage(_ context.Context, chatID int64, messageID int, text string, opts platform.SendOptions) error {
	return c.record(Call{Method: "EditMessage", ChatID: chatID, MessageID: messageID, Text: text, Opts: opts})
}

func (c *Client) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	return c.record(Call{Method: "DeleteMessage", ChatID: chatID, MessageID: messageID})
}

func (c *Client) PinMessage(_ context.Context, chatID int64, messageID int) error {
	return c.record(Call{Method: "PinMessage", ChatID: chatID, MessageID: messageID})
}

func (c *Client) UnpinMessage(_ context.Context, chatID int64) error {
	return c.record(Call{Method: "UnpinMessage", ChatID: chatID})
}

func (c *Client) BanMember(_ context.Context, chatID, userID int64, until time.Time, revoke bool) error {
	return c.record(Call{Method: "BanMember", ChatID: chatID, UserID: userID, Until: until, Revoke: revoke})
}

func (c *Client) UnbanMember(_ context.Context, chatID, userID int64, _ bool) error {
	return c.record(Call{Method: "UnbanMember", ChatID: chatID, UserID: userID})
}

func (c *Client) RestrictMember(_ context.Context, chatID, userID int64, perms platform.Permissions, until time.Time) error {
	return c.record(Call{Method: "RestrictMember", ChatID: chatID, UserID: userID, Perms: perms, Until: until})
}

func (c *Client) SetChatPermissions(_ context.Context, chatID int64, perms platform.Permissions) error {
	return c.record(Call{Method: "SetChatPermissions", ChatID: chatID, Perms: perms})
}

func (c *Client) PromoteMember(_ context.Context, chatID, userID int64, rights platform.AdminRights) error {
	return c.record(Call{Method: "PromoteMember", ChatID: chatID, UserID: userID, Rights: rights})
}

func (c *Client) SetCustomTitle(_ context.Context, chatID, userID int64, title string) error {
	return c.record(Call{Method: "SetCustomTitle", ChatID: chatID, UserID: userID, Text: title})
}

func (c *Client) AnswerCallback(_ context.Context, callbackID string, answer platform.CallbackAnswer) error {
	return c.record(Call{Method: "AnswerCallback", Text: callbackID, Answer: answer})
}

func (c *Client) AnswerInlineQuery(_ context.Context, queryID string, results []platform.InlineResult) error {
	return c.record(Call{Method: "AnswerInlineQuery", Text: queryID, Results: results})
}

func (c *Client) GetChatMember(_ context.Context, chatID, userID int64) (platform.ChatMember, error) {
	if err := c.record(Call{Method: "GetChatMember", ChatID: chatID, UserID: userID}); err != nil {
		return platform.ChatMember{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.Members[userID]; ok {
		return m, nil
	}
	return platform.ChatMember{User: platform.User{ID: userID}, Status: platform.StatusMember}, nil
}

func (c *Client) GetChatAdministrators(_ context.Context, chatID int64) ([]platform.ChatMember, error) {
	if err := c.record(Call{Method: "GetChatAdministrators", ChatID: chatID}); err != nil {
		return nil, err
	}
	return c.Admins, nil
}

func (c *Client) GetChat(_ context.Context, handle string) (platform.ChatInfo, error) {
	if err := c.record(Call{Method: "GetChat", Text: handle}); err != nil {
		return platform.ChatInfo{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.Chats[handle]
	if !ok {
		return platform.ChatInfo{}, &platform.APIError{Method: "GetChat", Err: errors.New("Bad Request: chat not found")}
	}
	return info, nil
}

func (c *Client) GetMemberCount(_ context.Context, chatID int64) (int, error) {
	if err := c.record(Call{Method: "GetMemberCount", ChatID: chatID}); err != nil {
		return 0, err
	}
	return 42, nil
}

func (c *Client) ExportInviteLink(_ context.Context, chatID int64) (string, error) {
	if err := c.record(Call{Method: "ExportInviteLink", ChatID: chatID}); err != nil {
		return "", err
	}
	return "https://t.me/+invite", nil
}

func (c *Client) SendDice(_ context.Context, chatID int64, emoji string) error {
	return c.record(Call{Method: "SendDice", ChatID: chatID, Text: emoji})
}

func (c *Client) SendMedia(_ context.Context, chatID int64, media platform.Media, opts platform.SendOptions) error {
	return c.record(Call{Method: "SendMedia", ChatID: chatID, Media: media, Opts: opts})
}

func (c *Client) SendLocation(_ context.Context, chatID int64, _, _ float64) error {
	return c.record(Call{Method: "SendLocation", ChatID: chatID})
}

func (c *Client) SendVenue(_ context.Context, chatID int64, _, _ float64, title, _ string) error {
	return c.record(Call{Method: "SendVenue", ChatID: chatID, Text: title})
}

func (c *Client) SendContact(_ context.Context, chatID int64, phone, _, _ string) error {
	return c.record(Call{Method: "SendContact", ChatID: chatID, Text: phone})
}

func (c *Client) SendPoll(_ context.Context, chatID int64, question string, _ []string) error {
	return c.record(Call{Method: "SendPoll", ChatID: chatID, Text: question})
}

func (c *Client) ApproveJoinRequest(_ context.Context, chatID, userID int64) error {
	return c.record(Call{Method: "ApproveJoinRequest", ChatID: chatID, UserID: userID})
}

func (c *Client) SetCommands(_ context.Context, _ []platform.BotCommand) error {
	return c.record(Call{Method: "SetCommands"})
}

func (c *Client) DeleteCommands(context.Context) error {
	return c.record(Call{Method: "DeleteCommands"})
}

func (c *Client) GetCommands(context.Context) ([]platform.BotCommand, error) {
	if err := c.record(Call{Method: "GetCommands"}); err != nil {
		return nil, err
	}
	return []platform.BotCommand{{Command: "start", Description: "Start"}}, nil
}

func (c *Client) DeleteWebhook(context.Context) error {
	return c.record(Call{Method: "DeleteWebhook"})
}

func (c *Client) WebhookInfo(context.Context) (platform.WebhookInfo, error) {
	if err := c.record(Call{Method: "WebhookInfo"}); err != nil {
		return platform.WebhookInfo{}, err
	}
	return platform.WebhookInfo{}, nil
}

func (c *Client) Me(context.Context) (platform.User, error) {
	if err := c.record(Call{Method: "Me"}); err != nil {
		return platform.User{}, err
	}
	return c.Bot, nil
}

var _ platform.Client = (*Client)(nil)
