package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/edgard/keeperbot/internal/bot/handlers"
	"github.com/edgard/keeperbot/internal/config"
	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/filters"
	"github.com/edgard/keeperbot/internal/moderation"
	"github.com/edgard/keeperbot/internal/notes"
	"github.com/edgard/keeperbot/internal/platform"
	"github.com/edgard/keeperbot/internal/platform/platformtest"
)

const (
	groupID   int64 = -100123
	privateID int64 = 555
)

var (
	alice = platform.User{ID: 10, FirstName: "Alice", Username: "alice"}
	bob   = platform.User{ID: 20, FirstName: "Bob"}
)

func newDeps(t *testing.T) (handlers.HandlerDeps, *platformtest.Client) {
	t.Helper()
	client := platformtest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handlers.HandlerDeps{
		Logger:     logger,
		Config:     &config.Config{},
		Client:     client,
		Warns:      moderation.NewWarns(nil),
		Filters:    filters.New(nil),
		Notes:      notes.New(nil),
		Moderation: moderation.NewEngine(client, logger),
		Bot:        client.Bot,
	}, client
}

func newDispatcher(t *testing.T) (*handlers.Dispatcher, handlers.HandlerDeps, *platformtest.Client) {
	t.Helper()
	deps, client := newDeps(t)
	return handlers.NewDispatcher(deps), deps, client
}

func groupMsg(text string) *platform.Message {
	from := alice
	return &platform.Message{ID: 7, Chat: platform.Chat{ID: groupID, Type: platform.ChatSupergroup}, From: &from, Text: text}
}

func privateMsg(text string) *platform.Message {
	from := alice
	return &platform.Message{ID: 7, Chat: platform.Chat{ID: privateID, Type: platform.ChatPrivate}, From: &from, Text: text}
}

func replyTo(msg *platform.Message, author platform.User) *platform.Message {
	msg.ReplyTo = &platform.Message{ID: 3, Chat: msg.Chat, From: &author, Text: "spam"}
	return msg
}

func send(d *handlers.Dispatcher, msg *platform.Message) {
	d.Handle(context.Background(), platform.Event{ID: 1, Message: msg})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		event    platform.Event
		expected handlers.Kind
	}{
		{"message", platform.Event{Message: &platform.Message{}}, handlers.KindMessage},
		{"callback", platform.Event{Callback: &platform.CallbackQuery{}}, handlers.KindCallback},
		{"inline", platform.Event{InlineQuery: &platform.InlineQuery{}}, handlers.KindInlineQuery},
		{"membership", platform.Event{Membership: &platform.MembershipChange{}}, handlers.KindMembership},
		{"join request", platform.Event{JoinRequest: &platform.JoinRequest{}}, handlers.KindJoinRequest},
		{"other", platform.Event{Other: "poll"}, handlers.KindOther},
	}
	for _, tc := range testCases {
		if got := handlers.Classify(tc.event); got != tc.expected {
			t.Errorf("%s: Classify() = %v, want %v", tc.name, got, tc.expected)
		}
	}
}

func TestHashtagBeatsFilter(t *testing.T) {
	t.Parallel()
	d, deps, client := newDispatcher(t)

	deps.Notes.Save(groupID, "rules", "Be nice")
	deps.Filters.Set(groupID, "rules", "Filter reply")

	send(d, groupMsg("#rules please"))

	sent := client.Sent()
	if len(sent) != 1 || sent[0] != "Be nice" {
		t.Fatalf("sent = %q, want only the note", sent)
	}
	if kb := client.Find("SendMessage")[0].Opts.Keyboard; kb != nil {
		t.Errorf("note sent with keyboard %+v", kb)
	}
}

func TestFilterReplies(t *testing.T) {
	t.Parallel()
	d, deps, client := newDispatcher(t)
	deps.Filters.Set(groupID, "hello", "Hi there!")

	send(d, groupMsg("well HELLO everyone"))

	if sent := client.Sent(); len(sent) != 1 || sent[0] != "Hi there!" {
		t.Fatalf("sent = %q", sent)
	}
}

func TestRecognizedCommandSkipsFilters(t *testing.T) {
	t.Parallel()
	d, deps, client := newDispatcher(t)
	deps.Filters.Set(groupID, "hello", "Hi there!")

	send(d, groupMsg("/delfilter hello"))

	sent := client.Sent()
	if len(sent) != 1 || !strings.Contains(sent[0], "Filter deleted") {
		t.Fatalf("sent = %q, want the deletion notice", sent)
	}
	if len(deps.Filters.List(groupID)) != 0 {
		t.Error("filter still present")
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	t.Run("silent in groups", func(t *testing.T) {
		t.Parallel()
		d, _, client := newDispatcher(t)
		send(d, groupMsg("/xyz"))
		if calls := client.Calls(); len(calls) != 0 {
			t.Errorf("calls = %v, want none", client.Methods())
		}
	})

	t.Run("hint in private", func(t *testing.T) {
		t.Parallel()
		d, _, client := newDispatcher(t)
		send(d, privateMsg("/xyz"))
		sent := client.Sent()
		if len(sent) != 1 || !strings.Contains(sent[0], "Unknown command: <code>/xyz</code>") {
			t.Fatalf("sent = %q", sent)
		}
	})

	t.Run("other bot ignored", func(t *testing.T) {
		t.Parallel()
		d, _, client := newDispatcher(t)
		send(d, groupMsg("/ban@otherbot 20"))
		if len(client.Calls()) != 0 {
			t.Errorf("calls = %v, want none", client.Methods())
		}
	})
}

func TestPlainTextEchoOnlyInPrivate(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, groupMsg("just chatting"))
	if len(client.Calls()) != 0 {
		t.Fatalf("group text produced %v", client.Methods())
	}

	send(d, privateMsg("just chatting"))
	sent := client.Sent()
	if len(sent) != 1 || !strings.Contains(sent[0], "just chatting") {
		t.Fatalf("sent = %q", sent)
	}
}

func TestReplyTargetWins(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, replyTo(groupMsg("/ban 999 7d"), bob))

	bans := client.Find("BanMember")
	if len(bans) != 1 {
		t.Fatalf("bans = %d, want 1", len(bans))
	}
	if bans[0].UserID != bob.ID {
		t.Errorf("banned %d, want reply author %d", bans[0].UserID, bob.ID)
	}
	// "999" is not a duration, so the ban is permanent.
	if !bans[0].Until.IsZero() {
		t.Errorf("until = %v, want permanent", bans[0].Until)
	}
}

func TestBanByIDWithDuration(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, groupMsg("/ban 20 7d"))

	bans := client.Find("BanMember")
	if len(bans) != 1 || bans[0].UserID != 20 || bans[0].Until.IsZero() || !bans[0].Revoke {
		t.Fatalf("bans = %+v", bans)
	}
	if sent := client.Sent(); len(sent) != 1 || !strings.Contains(sent[0], "for <b>7d</b>") {
		t.Errorf("sent = %q", sent)
	}
}

func TestModerationWithoutTarget(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, groupMsg("/mute"))

	if n := len(client.Find("RestrictMember")); n != 0 {
		t.Errorf("restrict called %d times", n)
	}
	sent := client.Sent()
	if len(sent) != 1 || !strings.HasPrefix(sent[0], "⚠️ <b>Usage:</b>") {
		t.Errorf("sent = %q", sent)
	}
}

func TestWarnFlow(t *testing.T) {
	t.Parallel()
	d, deps, client := newDispatcher(t)

	for range 2 {
		send(d, replyTo(groupMsg("/warn"), bob))
	}
	if got := deps.Warns.Count(groupID, bob.ID); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
	if sent := client.Sent(); !strings.Contains(sent[1], "Warning 2/3") || !strings.Contains(sent[1], "⚠️⚠️▪️") {
		t.Errorf("second warn = %q", sent[1])
	}

	send(d, replyTo(groupMsg("/warn"), bob))

	if n := len(client.Find("BanMember")); n != 1 {
		t.Fatalf("bans = %d, want 1", n)
	}
	if got := deps.Warns.Count(groupID, bob.ID); got != 0 {
		t.Errorf("count after ban = %d, want 0", got)
	}
	sent := client.Sent()
	if last := sent[len(sent)-1]; !strings.Contains(last, "automatically <b>banned</b>") {
		t.Errorf("ban notice = %q", last)
	}
}

func TestWarnAutoBanFailureKeepsCounterConsumed(t *testing.T) {
	t.Parallel()
	d, deps, client := newDispatcher(t)
	client.Fail["BanMember"] = platformtest.ErrRejected

	for range 3 {
		send(d, replyTo(groupMsg("/warn"), bob))
	}

	if got := deps.Warns.Count(groupID, bob.ID); got != 0 {
		t.Errorf("count = %d, want 0 after threshold", got)
	}
	sent := client.Sent()
	if last := sent[len(sent)-1]; !strings.Contains(last, "Auto-ban failed") {
		t.Errorf("failure notice = %q", last)
	}
}

func TestUnwarnAndWarns(t *testing.T) {
	t.Parallel()
	d, deps, client := newDispatcher(t)
	deps.Warns.Warn(groupID, bob.ID)

	send(d, replyTo(groupMsg("/unwarn"), bob))
	send(d, replyTo(groupMsg("/unwarn"), bob))
	send(d, replyTo(groupMsg("/warns"), bob))

	sent := client.Sent()
	if !strings.Contains(sent[1], "Current warnings: <b>0/3</b>") {
		t.Errorf("unwarn below zero = %q", sent[1])
	}
	if !strings.Contains(sent[2], "<b>0/3</b>") || !strings.Contains(sent[2], "▪️▪️▪️") {
		t.Errorf("warns = %q", sent[2])
	}
}

func TestDeleteIsSilent(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, replyTo(groupMsg("/del"), bob))

	deletes := client.Find("DeleteMessage")
	if len(deletes) != 2 || deletes[0].MessageID != 7 || deletes[1].MessageID != 3 {
		t.Fatalf("deletes = %+v", deletes)
	}
	if len(client.Sent()) != 0 {
		t.Errorf("sent = %q, want nothing", client.Sent())
	}
}

func TestTitleTooLong(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, replyTo(groupMsg("/title this title is far too long"), bob))

	if n := len(client.Find("SetCustomTitle")); n != 0 {
		t.Errorf("SetCustomTitle called %d times", n)
	}
	sent := client.Sent()
	if len(sent) != 1 || !strings.Contains(sent[0], "Title too long") {
		t.Errorf("sent = %q", sent)
	}
}

func TestPromoteWithTitle(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, groupMsg("/promote 20 🛡️ Guardian"))

	if got := client.Methods(); len(got) != 3 || got[0] != "PromoteMember" || got[1] != "SetCustomTitle" {
		t.Fatalf("methods = %v", got)
	}
	if title := client.Find("SetCustomTitle")[0].Text; title != "🛡️ Guardian" {
		t.Errorf("title = %q", title)
	}
}

func TestUserInfoUnresolvedHandle(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, groupMsg("/whois @ghost"))

	sent := client.Sent()
	if len(sent) != 1 || !strings.Contains(sent[0], "Could not resolve <code>@ghost</code>") {
		t.Errorf("sent = %q", sent)
	}
}

func TestUserInfo(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)
	client.Members[bob.ID] = platform.ChatMember{User: bob, Status: platform.StatusAdministrator, CustomTitle: "Boss"}

	send(d, replyTo(groupMsg("/userinfo"), bob))

	call := client.Find("SendMessage")[0]
	for _, want := range []string{"👤 <b>User Info</b>", "⭐ Administrator", "Boss", "<code>20</code>"} {
		if !strings.Contains(call.Text, want) {
			t.Errorf("userinfo missing %q in %q", want, call.Text)
		}
	}
	if b := call.Opts.Keyboard[0][0]; b.Kind != platform.ButtonLink || b.Target != "tg://user?id=20" {
		t.Errorf("first button = %+v", b)
	}
}

func TestFilterAndNoteContentKeepsLines(t *testing.T) {
	t.Parallel()
	d, deps, _ := newDispatcher(t)

	send(d, groupMsg("/filter Hello line one\nline two"))
	send(d, groupMsg("/note rules first\nsecond"))

	if got, _ := deps.Filters.Match(groupID, "hello"); got != "line one\nline two" {
		t.Errorf("filter = %q", got)
	}
	if got, _ := deps.Notes.Get(groupID, "rules"); got != "first\nsecond" {
		t.Errorf("note = %q", got)
	}
}

func TestSavedContentIsEscapedInConfirmation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{"filter", "/filter price a<b & c", "💬 Response: a&lt;b &amp; c"},
		{"note", "/note rules x<y", "📄 Content: x&lt;y"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, _, client := newDispatcher(t)

			send(d, groupMsg(tc.text))

			sent := client.Sent()
			if len(sent) != 1 || !strings.Contains(sent[0], tc.expected) {
				t.Errorf("sent = %q, want confirmation containing %q", sent, tc.expected)
			}
		})
	}
}

func TestFilterReplyKeepsStoredText(t *testing.T) {
	t.Parallel()
	d, deps, client := newDispatcher(t)

	send(d, groupMsg("/filter price a<b & c"))
	if got, _ := deps.Filters.Match(groupID, "price"); got != "a<b & c" {
		t.Errorf("stored filter = %q", got)
	}

	send(d, groupMsg("what is the price?"))
	sent := client.Sent()
	if len(sent) != 2 || sent[1] != "a<b & c" {
		t.Errorf("sent = %q", sent)
	}
}

func TestNoteNotFound(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, groupMsg("/get missing"))

	sent := client.Sent()
	if len(sent) != 1 || !strings.HasPrefix(sent[0], "❓ <b>Note not found:</b>") {
		t.Errorf("sent = %q", sent)
	}
}

func TestSendWithButtons(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, privateMsg("/send Hello\n[Docs | https://example.com] [Ping | ping]"))

	calls := client.Find("SendMessage")
	if len(calls) != 1 || calls[0].Text != "Hello" {
		t.Fatalf("calls = %+v", calls)
	}
	row := calls[0].Opts.Keyboard[0]
	if len(row) != 2 || row[0].Kind != platform.ButtonLink || row[1].Kind != platform.ButtonCallback {
		t.Errorf("row = %+v", row)
	}
}

func TestMediaRequiresURL(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, privateMsg("/img not-a-url"))
	if n := len(client.Find("SendMedia")); n != 0 {
		t.Fatalf("SendMedia called %d times", n)
	}

	send(d, privateMsg("/img https://example.com/a.png Sunset"))
	media := client.Find("SendMedia")
	if len(media) != 1 || media[0].Media.Kind != platform.MediaPhoto || media[0].Media.Caption != "Sunset" {
		t.Errorf("media = %+v", media)
	}
}

func TestPlatformErrorIsReported(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)
	client.Fail["PinMessage"] = platformtest.ErrRejected

	send(d, replyTo(groupMsg("/pin"), bob))

	sent := client.Sent()
	if len(sent) != 1 || !strings.HasPrefix(sent[0], "❌ <b>Pin failed:</b>") || !strings.Contains(sent[0], "pin rights") {
		t.Errorf("sent = %q", sent)
	}
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()
	deps, client := newDeps(t)
	deps.Config.Telegram.AdminID = 99
	d := handlers.NewDispatcher(deps)

	send(d, privateMsg("/setcommands"))

	if n := len(client.Find("SetCommands")); n != 0 {
		t.Errorf("SetCommands called %d times for non-admin", n)
	}
	if sent := client.Sent(); len(sent) != 1 || !strings.Contains(sent[0], "Access denied") {
		t.Errorf("sent = %q", sent)
	}
}

func TestPingEditsPlaceholder(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	send(d, privateMsg("/ping"))

	edits := client.Find("EditMessage")
	if len(edits) != 1 || edits[0].MessageID != 1001 {
		t.Fatalf("edits = %+v", edits)
	}
	if strings.Contains(edits[0].Text, "Msg Delay") {
		t.Errorf("delay shown for zero message date: %q", edits[0].Text)
	}
}

func TestMembershipAndJoinRequest(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)
	chat := platform.Chat{ID: groupID, Type: platform.ChatSupergroup, Title: "Gophers"}
	ctx := context.Background()

	d.Handle(ctx, platform.Event{Membership: &platform.MembershipChange{Chat: chat, NewStatus: platform.StatusLeft}})
	d.Handle(ctx, platform.Event{Membership: &platform.MembershipChange{Chat: chat, NewStatus: platform.StatusAdministrator}})
	d.Handle(ctx, platform.Event{JoinRequest: &platform.JoinRequest{Chat: chat, From: bob}})

	if sent := client.Sent(); len(sent) != 1 || !strings.Contains(sent[0], "Gophers") {
		t.Errorf("sent = %q", sent)
	}
	if approvals := client.Find("ApproveJoinRequest"); len(approvals) != 1 || approvals[0].UserID != bob.ID {
		t.Errorf("approvals = %+v", approvals)
	}
}

func TestNonTextDescribedInPrivateOnly(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)
	sticker := &platform.Attachment{Kind: "sticker", FileID: "CAAD", Emoji: "🐹"}

	group := groupMsg("")
	group.Attachment = sticker
	send(d, group)
	if len(client.Calls()) != 0 {
		t.Fatalf("group sticker produced %v", client.Methods())
	}

	private := privateMsg("")
	private.Attachment = sticker
	send(d, private)
	if sent := client.Sent(); len(sent) != 1 || !strings.Contains(sent[0], "<code>CAAD</code>") {
		t.Errorf("sent = %q", sent)
	}
}

func TestInlineQuery(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	d.Handle(context.Background(), platform.Event{InlineQuery: &platform.InlineQuery{ID: "q1", Query: "joke"}})

	answers := client.Find("AnswerInlineQuery")
	if len(answers) != 1 || answers[0].Text != "q1" || len(answers[0].Results) != len(content.InlineResults("joke")) {
		t.Errorf("answers = %+v", answers)
	}
}
