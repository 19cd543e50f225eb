package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

// Request is one parsed command invocation.
type Request struct {
	Msg     *platform.Message
	Command Command
	// Name is the command as typed, without the slash or @mention.
	Name string
	Args []string
	// Rest is the text after the command token with line breaks kept.
	Rest string
	// EditID is set when the request comes from a button click; replies then
	// replace the clicked message instead of posting a new one.
	EditID int

	log *slog.Logger
}

// ChatID returns the chat the command was sent in.
func (r *Request) ChatID() int64 { return r.Msg.Chat.ID }

// Sender returns the command author, or the zero User for anonymous posts.
func (r *Request) Sender() platform.User {
	if r.Msg.From == nil {
		return platform.User{}
	}
	return *r.Msg.From
}

// CommandFunc handles one command. A returned error is rendered with
// FormatError and sent back to the chat.
type CommandFunc func(ctx context.Context, req *Request) error

// Middleware wraps a CommandFunc.
type Middleware func(CommandFunc) CommandFunc

// RegisteredHandler represents a command handler with its middleware.
type RegisteredHandler struct {
	Handler    CommandFunc
	Middleware []Middleware
}

// RegisterAllCommands initializes and returns the handler of every Command.
func RegisterAllCommands(deps HandlerDeps) map[Command]RegisteredHandler {
	b := base{deps: deps}
	info := infoHandler{b}
	mod := moderationHandler{b}
	adm := adminHandler{b}
	flt := filterHandler{b}
	nts := noteHandler{b}
	bc := broadcastHandler{b}
	sys := systemHandler{b}

	h := func(fn CommandFunc) RegisteredHandler { return RegisteredHandler{Handler: fn} }
	adminMiddleware := []Middleware{AdminOnly(deps)}

	handlers := map[Command]RegisteredHandler{
		CmdStart:      h(info.start),
		CmdMenu:       h(info.menu),
		CmdHelp:       h(info.help),
		CmdAbout:      h(info.page(content.About)),
		CmdLibrary:    h(info.page(content.Library)),
		CmdTextStyles: h(info.page(content.TextStyles)),
		CmdStats:      h(info.page(content.Stats)),
		CmdPing:       h(info.ping),

		CmdDice:       h(info.game("dice")),
		CmdDarts:      h(info.game("darts")),
		CmdBowling:    h(info.game("bowling")),
		CmdBasketball: h(info.game("basketball")),
		CmdFootball:   h(info.game("football")),
		CmdSlots:      h(info.game("slots")),
		CmdFact:       h(info.fact),
		CmdJoke:       h(info.joke),
		CmdMagic8:     h(info.magic8),
		CmdCoinFlip:   h(info.coinFlip),

		CmdPhoto:     h(info.photo),
		CmdAnimation: h(info.animation),
		CmdLocation:  h(info.location),
		CmdVenue:     h(info.venue),
		CmdContact:   h(info.contact),
		CmdPoll:      h(info.poll),

		CmdBotInfo:     h(info.botInfo),
		CmdWebhookInfo: h(info.webhookInfo),
		CmdMemberCount: h(info.memberCount),
		CmdAdmins:      h(info.admins),
		CmdInviteLink:  h(info.inviteLink),
		CmdMyCommands:  h(info.myCommands),
		CmdMyProfile:   h(info.myProfile),

		CmdPromote:  h(adm.promote),
		CmdDemote:   h(adm.demote),
		CmdTitle:    h(adm.title),
		CmdUserInfo: h(adm.userInfo),

		CmdModHelp:   h(mod.help),
		CmdBan:       h(mod.ban),
		CmdUnban:     h(mod.unban),
		CmdKick:      h(mod.kick),
		CmdMute:      h(mod.mute),
		CmdUnmute:    h(mod.unmute),
		CmdWarn:      h(mod.warn),
		CmdUnwarn:    h(mod.unwarn),
		CmdWarns:     h(mod.warns),
		CmdDelete:    h(mod.delete),
		CmdPin:       h(mod.pin),
		CmdUnpin:     h(mod.unpin),
		CmdReadOnly:  h(mod.readOnly(true)),
		CmdReadWrite: h(mod.readOnly(false)),

		CmdFilter:    h(flt.add),
		CmdDelFilter: h(flt.remove),
		CmdFilters:   h(flt.list),

		CmdNote:    h(nts.save),
		CmdGet:     h(nts.get),
		CmdNotes:   h(nts.list),
		CmdDelNote: h(nts.remove),

		CmdSend:     h(bc.send),
		CmdPost:     h(bc.post),
		CmdImage:    h(bc.media(platform.MediaPhoto)),
		CmdVideo:    h(bc.media(platform.MediaVideo)),
		CmdAudio:    h(bc.media(platform.MediaAudio)),
		CmdDocument: h(bc.media(platform.MediaDocument)),
		CmdButtons:  h(bc.buttons),
		CmdSendHelp: h(bc.help),

		CmdSetCommands:    {Handler: sys.setCommands, Middleware: adminMiddleware},
		CmdDeleteCommands: {Handler: sys.deleteCommands, Middleware: adminMiddleware},
		CmdDeleteWebhook:  {Handler: sys.deleteWebhook, Middleware: adminMiddleware},
	}

	deps.Logger.Debug("Initialized command handlers", "count", len(handlers))
	return handlers
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is the outermost.
func applyMiddleware(handler CommandFunc, mw []Middleware) CommandFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}
