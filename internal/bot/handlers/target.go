package handlers

import (
	"strconv"

	"github.com/edgard/keeperbot/internal/platform"
)

// Target is the user a moderation or admin command acts on.
type Target struct {
	ID   int64
	Name string
}

// ResolveTarget picks the command's subject. The author of the replied-to
// message wins and leaves args untouched; otherwise a positive numeric first
// argument is taken as the user id and consumed.
func ResolveTarget(msg *platform.Message, args []string) (Target, []string, bool) {
	if msg.ReplyTo != nil && msg.ReplyTo.From != nil {
		u := msg.ReplyTo.From
		return Target{ID: u.ID, Name: u.DisplayName()}, args, true
	}
	if len(args) > 0 {
		if id, err := strconv.ParseInt(args[0], 10, 64); err == nil && id > 0 {
			return Target{ID: id, Name: args[0]}, args[1:], true
		}
	}
	return Target{}, args, false
}
