// Package platform defines the boundary between the bot core and the chat
// platform: the inbound event model and the outbound action client.
package platform

import (
	"context"
	"fmt"
	"time"
)

// ChatType mirrors the platform chat kinds.
type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSupergroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// User is a platform account.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	IsBot     bool
	IsPremium bool
}

// DisplayName returns the first name, falling back to the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "User"
}

// Chat is a conversation.
type Chat struct {
	ID       int64
	Type     ChatType
	Title    string
	Username string
}

// IsPrivate reports whether the chat is one-to-one.
func (c Chat) IsPrivate() bool { return c.Type == ChatPrivate }

// Attachment describes non-text message content.
type Attachment struct {
	Kind     string // sticker, photo, document, location, contact
	FileID   string
	Name     string
	MimeType string
	Emoji    string
	SetName  string
	Width    int
	Height   int
	Lat, Lon float64
	Phone    string
}

// Message is an inbound chat message.
type Message struct {
	ID         int
	Chat       Chat
	From       *User
	Date       time.Time
	Text       string
	ReplyTo    *Message
	Attachment *Attachment
}

// CallbackQuery is a button click.
type CallbackQuery struct {
	ID        string
	From      User
	ChatID    int64
	MessageID int
	Data      string
}

// InlineQuery is a query typed after the bot's @handle.
type InlineQuery struct {
	ID    string
	From  User
	Query string
}

// MemberStatus is a chat membership state.
type MemberStatus string

const (
	StatusCreator       MemberStatus = "creator"
	StatusAdministrator MemberStatus = "administrator"
	StatusMember        MemberStatus = "member"
	StatusRestricted    MemberStatus = "restricted"
	StatusLeft          MemberStatus = "left"
	StatusKicked        MemberStatus = "kicked"
)

// MembershipChange reports the bot's own membership changing in a chat.
type MembershipChange struct {
	Chat      Chat
	From      User
	NewStatus MemberStatus
}

// JoinRequest is a request to join a chat that requires approval.
type JoinRequest struct {
	Chat Chat
	From User
}

// Event is one inbound update. Exactly one payload field is set; Other
// carries a short name for update kinds the core only logs.
type Event struct {
	ID          int64
	Message     *Message
	Callback    *CallbackQuery
	InlineQuery *InlineQuery
	Membership  *MembershipChange
	JoinRequest *JoinRequest
	Other       string
}

// ButtonKind distinguishes callback buttons from link buttons.
type ButtonKind int

const (
	ButtonCallback ButtonKind = iota
	ButtonLink
)

func (k ButtonKind) String() string {
	if k == ButtonLink {
		return "link"
	}
	return "callback"
}

// Button is an inline keyboard button.
type Button struct {
	Label  string
	Target string
	Kind   ButtonKind
}

// CallbackButton builds a callback button.
func CallbackButton(label, data string) Button {
	return Button{Label: label, Target: data, Kind: ButtonCallback}
}

// LinkButton builds a link button.
func LinkButton(label, url string) Button {
	return Button{Label: label, Target: url, Kind: ButtonLink}
}

// Grid is an inline keyboard: rows of buttons.
type Grid [][]Button

// Row is a convenience constructor for a single-row grid.
func Row(buttons ...Button) Grid { return Grid{buttons} }

// Permissions is the set of member rights used by restrict and chat-wide
// permission calls.
type Permissions struct {
	SendMessages       bool
	SendAudios         bool
	SendDocuments      bool
	SendPhotos         bool
	SendVideos         bool
	SendVideoNotes     bool
	SendVoiceNotes     bool
	SendPolls          bool
	SendOtherMessages  bool
	AddWebPagePreviews bool
	ChangeInfo         bool
	InviteUsers        bool
	PinMessages        bool
	ManageTopics       bool
}

// AdminRights is the set of administrator rights used by promote.
type AdminRights struct {
	ManageChat       bool
	DeleteMessages   bool
	ManageVideoChats bool
	RestrictMembers  bool
	PromoteMembers   bool
	ChangeInfo       bool
	InviteUsers      bool
	PinMessages      bool
	PostStories      bool
	EditStories      bool
	DeleteStories    bool
}

// ChatMember is a user's membership in a chat.
type ChatMember struct {
	User        User
	Status      MemberStatus
	CustomTitle string
}

// ChatInfo is the subset of chat details the bot displays.
type ChatInfo struct {
	ID        int64
	Type      ChatType
	Title     string
	Username  string
	FirstName string
	LastName  string
}

// WebhookInfo is the current webhook registration.
type WebhookInfo struct {
	URL                string
	PendingUpdateCount int
	LastErrorMessage   string
}

// BotCommand is a command shown in the platform's command menu.
type BotCommand struct {
	Command     string
	Description string
}

// MediaKind selects the send method for SendMedia.
type MediaKind string

const (
	MediaPhoto     MediaKind = "photo"
	MediaVideo     MediaKind = "video"
	MediaAudio     MediaKind = "audio"
	MediaDocument  MediaKind = "document"
	MediaAnimation MediaKind = "animation"
)

// SendOptions are optional parameters shared by send and edit calls.
type SendOptions struct {
	HTML     bool
	Keyboard Grid
}

// Media is a file referenced by URL or file id.
type Media struct {
	Kind    MediaKind
	Source  string
	Caption string
}

// InlineResult is one article answer to an inline query.
type InlineResult struct {
	ID          string
	Title       string
	Description string
	Text        string
	Keyboard    Grid
}

// Callback answer parameters.
type CallbackAnswer struct {
	Text      string
	ShowAlert bool
	URL       string
}

// Client is the outbound action surface of the platform. Every method is an
// independent request; failures are returned as *APIError and are never
// retried by the caller.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts SendOptions) (int, error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, opts SendOptions) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	PinMessage(ctx context.Context, chatID int64, messageID int) error
	UnpinMessage(ctx context.Context, chatID int64) error

	BanMember(ctx context.Context, chatID, userID int64, until time.Time, revoke bool) error
	UnbanMember(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error
	RestrictMember(ctx context.Context, chatID, userID int64, perms Permissions, until time.Time) error
	SetChatPermissions(ctx context.Context, chatID int64, perms Permissions) error
	PromoteMember(ctx context.Context, chatID, userID int64, rights AdminRights) error
	SetCustomTitle(ctx context.Context, chatID, userID int64, title string) error

	AnswerCallback(ctx context.Context, callbackID string, answer CallbackAnswer) error
	AnswerInlineQuery(ctx context.Context, queryID string, results []InlineResult) error

	GetChatMember(ctx context.Context, chatID, userID int64) (ChatMember, error)
	GetChatAdministrators(ctx context.Context, chatID int64) ([]ChatMember, error)
	GetChat(ctx context.Context, handle string) (ChatInfo, error)
	GetMemberCount(ctx context.Context, chatID int64) (int, error)
	ExportInviteLink(ctx context.Context, chatID int64) (string, error)

	SendDice(ctx context.Context, chatID int64, emoji string) error
	SendMedia(ctx context.Context, chatID int64, media Media, opts SendOptions) error
	SendLocation(ctx context.Context, chatID int64, lat, lon float64) error
	SendVenue(ctx context.Context, chatID int64, lat, lon float64, title, address string) error
	SendContact(ctx context.Context, chatID int64, phone, firstName, lastName string) error
	SendPoll(ctx context.Context, chatID int64, question string, options []string) error
	ApproveJoinRequest(ctx context.Context, chatID, userID int64) error

	SetCommands(ctx context.Context, commands []BotCommand) error
	DeleteCommands(ctx context.Context) error
	GetCommands(ctx context.Context) ([]BotCommand, error)
	DeleteWebhook(ctx context.Context) error
	WebhookInfo(ctx context.Context) (WebhookInfo, error)
	Me(ctx context.Context) (User, error)
}

// APIError wraps a failed platform call.
type APIError struct {
	Method string
	Err    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }
