package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

// Kind is the routing class of an event.
type Kind int

const (
	KindOther Kind = iota
	KindMessage
	KindCallback
	KindInlineQuery
	KindMembership
	KindJoinRequest
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindCallback:
		return "callback_query"
	case KindInlineQuery:
		return "inline_query"
	case KindMembership:
		return "my_chat_member"
	case KindJoinRequest:
		return "chat_join_request"
	}
	return "other"
}

// Classify returns the routing class of ev.
func Classify(ev platform.Event) Kind {
	switch {
	case ev.Message != nil:
		return KindMessage
	case ev.Callback != nil:
		return KindCallback
	case ev.InlineQuery != nil:
		return KindInlineQuery
	case ev.Membership != nil:
		return KindMembership
	case ev.JoinRequest != nil:
		return KindJoinRequest
	}
	return KindOther
}

// Dispatcher routes events to handlers. It holds no per-event state and is
// safe for concurrent use.
type Dispatcher struct {
	deps     HandlerDeps
	log      *slog.Logger
	commands map[Command]CommandFunc
	notes    noteHandler
}

// NewDispatcher builds the command table with its middleware applied.
func NewDispatcher(deps HandlerDeps) *Dispatcher {
	registered := RegisterAllCommands(deps)
	commands := make(map[Command]CommandFunc, len(registered))
	for cmd, rh := range registered {
		commands[cmd] = applyMiddleware(rh.Handler, rh.Middleware)
	}
	return &Dispatcher{
		deps:     deps,
		log:      deps.Logger.With("component", "dispatcher"),
		commands: commands,
		notes:    noteHandler{base{deps: deps}},
	}
}

// Handle processes one event. Failures are reported to the chat and logged;
// nothing is returned to the transport.
func (d *Dispatcher) Handle(ctx context.Context, ev platform.Event) {
	defer recoverPanic(ctx, d.log, ev.ID)

	kind := Classify(ev)
	switch kind {
	case KindMessage:
		d.handleMessage(ctx, ev.Message)
	case KindCallback:
		d.handleCallback(ctx, ev.Callback)
	case KindInlineQuery:
		d.handleInline(ctx, ev.InlineQuery)
	case KindMembership:
		d.handleMembership(ctx, ev.Membership)
	case KindJoinRequest:
		d.handleJoinRequest(ctx, ev.JoinRequest)
	default:
		d.log.InfoContext(ctx, "Ignoring update", "update_id", ev.ID, "type", ev.Other)
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *platform.Message) {
	chatID := msg.Chat.ID
	if msg.Text == "" {
		if msg.Attachment != nil && msg.Chat.IsPrivate() {
			d.describe(ctx, msg)
		}
		return
	}

	if body, ok := d.deps.Notes.Hashtag(chatID, msg.Text); ok {
		d.notes.sendNote(ctx, chatID, body)
		return
	}

	name, args, rest, isCommand := ParseCommand(msg.Text, d.deps.Bot.Username)
	cmd, known := Command(0), false
	if isCommand {
		cmd, known = LookupCommand(name)
	}

	// Commands this bot handles never trigger filters.
	if !known {
		if response, ok := d.deps.Filters.Match(chatID, msg.Text); ok {
			d.sendHTML(ctx, chatID, response, nil)
			return
		}
	}

	switch {
	case known:
		d.runCommand(ctx, &Request{Msg: msg, Command: cmd, Name: name, Args: args, Rest: rest})
	case isCommand:
		if msg.Chat.IsPrivate() {
			d.sendHTML(ctx, chatID, content.UnknownCommand("/"+name), content.MenuAndHelp())
		}
	case msg.Chat.IsPrivate():
		who := "there"
		if msg.From != nil {
			who = msg.From.DisplayName()
		}
		d.sendHTML(ctx, chatID, content.Echo(msg.Text, who), content.MenuAndHelp())
	}
}

// runCommand executes a command and renders its error, if any.
func (d *Dispatcher) runCommand(ctx context.Context, req *Request) {
	fn, ok := d.commands[req.Command]
	if !ok {
		d.log.ErrorContext(ctx, "No handler for command", "command", req.Command.String())
		return
	}
	req.log = d.deps.Logger.With("handler", req.Command.String(), "chat_id", req.ChatID())
	req.log.DebugContext(ctx, "Running command", "user_id", req.Sender().ID, "args", len(req.Args))

	if err := fn(ctx, req); err != nil {
		req.log.WarnContext(ctx, "Command failed", "error", err)
		d.sendHTML(ctx, req.ChatID(), FormatError(err), content.MenuOnly())
	}
}

func (d *Dispatcher) sendHTML(ctx context.Context, chatID int64, text string, kb platform.Grid) {
	if _, err := d.deps.Client.SendMessage(ctx, chatID, text, platform.SendOptions{HTML: true, Keyboard: kb}); err != nil {
		d.log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}
