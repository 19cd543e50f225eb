package handlers

import (
	"strings"
	"unicode"

	"github.com/edgard/keeperbot/internal/platform"
)

// Command identifies a recognized slash command. Aliases map to the same
// Command.
type Command int

const (
	CmdStart Command = iota + 1
	CmdMenu
	CmdHelp
	CmdAbout
	CmdLibrary
	CmdTextStyles
	CmdStats
	CmdPing

	CmdDice
	CmdDarts
	CmdBowling
	CmdBasketball
	CmdFootball
	CmdSlots
	CmdFact
	CmdJoke
	CmdMagic8
	CmdCoinFlip

	CmdPhoto
	CmdAnimation
	CmdLocation
	CmdVenue
	CmdContact
	CmdPoll

	CmdBotInfo
	CmdWebhookInfo
	CmdMemberCount
	CmdAdmins
	CmdInviteLink
	CmdMyCommands
	CmdMyProfile

	CmdPromote
	CmdDemote
	CmdTitle
	CmdUserInfo

	CmdModHelp
	CmdBan
	CmdUnban
	CmdKick
	CmdMute
	CmdUnmute
	CmdWarn
	CmdUnwarn
	CmdWarns
	CmdDelete
	CmdPin
	CmdUnpin
	CmdReadOnly
	CmdReadWrite

	CmdFilter
	CmdDelFilter
	CmdFilters

	CmdNote
	CmdGet
	CmdNotes
	CmdDelNote

	CmdSend
	CmdPost
	CmdImage
	CmdVideo
	CmdAudio
	CmdDocument
	CmdButtons
	CmdSendHelp

	CmdSetCommands
	CmdDeleteCommands
	CmdDeleteWebhook

	cmdCount
)

type commandInfo struct {
	cmd  Command
	name string
	// description is shown in the platform command menu; aliases leave it
	// empty.
	description string
}

var commandTable = []commandInfo{
	{CmdStart, "start", "🛡 Welcome & main menu"},
	{CmdHelp, "help", "📖 Show all commands"},
	{CmdAbout, "about", "ℹ️ About the bot"},
	{CmdMenu, "menu", "📋 Show main menu"},
	{CmdLibrary, "library", "📚 Library overview"},
	{CmdTextStyles, "textstyles", "✨ HTML formatting demo"},
	{CmdStats, "stats", "📊 Bot statistics"},
	{CmdPing, "ping", "🏓 Check bot latency"},

	{CmdDice, "dice", "🎲 Roll a dice"},
	{CmdDarts, "darts", "🎯 Throw darts"},
	{CmdBowling, "bowling", "🎳 Play bowling"},
	{CmdBasketball, "basketball", "🏀 Shoot hoops"},
	{CmdFootball, "football", "⚽ Kick the ball"},
	{CmdSlots, "slots", "🎰 Slot machine"},
	{CmdFact, "fact", "💡 Random Go fact"},
	{CmdJoke, "joke", "😂 Programmer joke"},
	{CmdMagic8, "magic8", "🔮 Magic 8-ball"},
	{CmdCoinFlip, "coinflip", "🪙 Flip a coin"},

	{CmdPhoto, "photo", "🖼 Photo demo"},
	{CmdAnimation, "animation", "🎬 Animation demo"},
	{CmdLocation, "location", "📍 Send a location"},
	{CmdVenue, "venue", "🏢 Send a venue"},
	{CmdContact, "contact", "📞 Send a contact"},
	{CmdPoll, "poll", "📊 Create a poll"},

	{CmdBotInfo, "botinfo", "🤖 Bot info"},
	{CmdWebhookInfo, "webhookinfo", "📡 Webhook status"},
	{CmdMemberCount, "membercount", "👥 Member count"},
	{CmdAdmins, "admins", "👑 List admins"},
	{CmdInviteLink, "invitelink", "🔗 Get invite link"},
	{CmdMyCommands, "mycommands", "📋 Show commands"},
	{CmdMyProfile, "myprofile", "👤 Your profile"},

	{CmdPromote, "promote", "⭐ Promote user [reply/id] [Title]"},
	{CmdDemote, "demote", "🔽 Demote user [reply/id]"},
	{CmdTitle, "title", "🏷️ Set admin title [reply/id] Title"},
	{CmdUserInfo, "userinfo", "👤 User info [reply/id/@user]"},
	{CmdUserInfo, "whois", "🔍 Same as /userinfo"},

	{CmdModHelp, "modhelp", "🛡️ Moderation help"},
	{CmdBan, "ban", "🔨 Ban user [duration]"},
	{CmdUnban, "unban", "✅ Unban user"},
	{CmdKick, "kick", "👢 Kick user"},
	{CmdMute, "mute", "🔇 Mute user [duration]"},
	{CmdUnmute, "unmute", "🔊 Unmute user"},
	{CmdWarn, "warn", "⚠️ Warn user, 3 warns ban"},
	{CmdUnwarn, "unwarn", "✅ Remove a warning"},
	{CmdWarns, "warns", "📋 Check warnings"},
	{CmdDelete, "delete", "🗑 Delete replied message"},
	{CmdDelete, "del", ""},
	{CmdPin, "pin", "📌 Pin replied message"},
	{CmdUnpin, "unpin", "📌 Unpin current message"},
	{CmdReadOnly, "ro", "🔇 Read-only mode on"},
	{CmdReadWrite, "unro", "🔊 Read-only mode off"},

	{CmdFilter, "filter", "🔑 Add keyword auto-reply"},
	{CmdDelFilter, "delfilter", "🗑 Delete a filter"},
	{CmdFilters, "filters", "📋 List active filters"},

	{CmdNote, "note", "📝 Save a note"},
	{CmdGet, "get", "📌 Get a saved note"},
	{CmdNotes, "notes", "📋 List saved notes"},
	{CmdDelNote, "delnote", "🗑 Delete a note"},

	{CmdSend, "send", "📨 Send message with buttons"},
	{CmdPost, "post", "📢 Framed post with buttons"},
	{CmdImage, "img", "🖼 Send photo from URL"},
	{CmdVideo, "vid", "🎬 Send video from URL"},
	{CmdAudio, "aud", "🎵 Send audio from URL"},
	{CmdDocument, "doc", "📁 Send document from URL"},
	{CmdButtons, "buttons", "🎨 Button showcase"},
	{CmdSendHelp, "sendhelp", "📡 /send and /post guide"},

	{CmdSetCommands, "setcommands", "⚙️ Register commands"},
	{CmdDeleteCommands, "deletecommands", "🗑 Delete commands"},
	{CmdDeleteWebhook, "deletewebhook", "🔌 Remove webhook"},
}

var (
	commandsByName = buildCommandIndex()
	commandNames   = buildCommandNames()
)

func buildCommandIndex() map[string]Command {
	m := make(map[string]Command, len(commandTable))
	for _, s := range commandTable {
		m[s.name] = s.cmd
	}
	return m
}

func buildCommandNames() map[Command]string {
	m := make(map[Command]string, len(commandTable))
	for _, s := range commandTable {
		if _, ok := m[s.cmd]; !ok {
			m[s.cmd] = s.name
		}
	}
	return m
}

// String returns the command's primary name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// LookupCommand maps a command name, without the slash, to its Command.
func LookupCommand(name string) (Command, bool) {
	c, ok := commandsByName[strings.ToLower(name)]
	return c, ok
}

// AllCommands returns every Command value.
func AllCommands() []Command {
	out := make([]Command, 0, cmdCount-1)
	for c := CmdStart; c < cmdCount; c++ {
		out = append(out, c)
	}
	return out
}

// BotCommands is the command menu registered with the platform.
func BotCommands() []platform.BotCommand {
	var out []platform.BotCommand
	for _, s := range commandTable {
		if s.description == "" {
			continue
		}
		out = append(out, platform.BotCommand{Command: s.name, Description: s.description})
	}
	return out
}

// ParseCommand splits "/name@bot arg1 arg2" into its parts. rest is the
// text after the command token with line breaks kept. ok is false when text
// is not a command or is addressed to a different bot.
func ParseCommand(text, botUsername string) (name string, args []string, rest string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", nil, "", false
	}

	token := text
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		token, rest = text[:i], strings.TrimSpace(text[i:])
	}

	name = strings.TrimPrefix(token, "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		mention := name[at+1:]
		name = name[:at]
		if botUsername != "" && !strings.EqualFold(mention, botUsername) {
			return "", nil, "", false
		}
	}
	if name == "" {
		return "", nil, "", false
	}
	return name, strings.Fields(rest), rest, true
}
