package handlers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/edgard/keeperbot/internal/bot/handlers"
	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

func click(d *handlers.Dispatcher, data string) {
	d.Handle(context.Background(), platform.Event{Callback: &platform.CallbackQuery{
		ID: "cb1", From: alice, ChatID: privateID, MessageID: 50, Data: data,
	}})
}

func TestCallbackAlwaysAnsweredOnce(t *testing.T) {
	t.Parallel()

	tokens := []string{"main_menu", "fun_menu", "dice", "alert_demo", "audio_info", "bot_details", "nope"}
	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			t.Parallel()
			d, _, client := newDispatcher(t)
			click(d, token)
			if n := len(client.Find("AnswerCallback")); n != 1 {
				t.Errorf("answered %d times, want 1", n)
			}
		})
	}
}

func TestCallbackAnswers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		token    string
		expected platform.CallbackAnswer
	}{
		{"alert_demo", platform.CallbackAnswer{Text: "🚨 This is a popup alert!", ShowAlert: true}},
		{"toast_demo", platform.CallbackAnswer{Text: "🍞 Toast: short notification, no popup."}},
		{"btn_shape", platform.CallbackAnswer{Text: "🎨 Pretty button clicked!"}},
		{"cb_url_demo", platform.CallbackAnswer{Text: "Opening KeeperBot on GitHub...", URL: content.RepoURL}},
		{"mystery", platform.CallbackAnswer{Text: "Unknown: mystery"}},
		{"dice", platform.CallbackAnswer{Text: "🎲 Rolling..."}},
	}
	for _, tc := range testCases {
		d, _, client := newDispatcher(t)
		click(d, tc.token)
		answers := client.Find("AnswerCallback")
		if len(answers) != 1 || answers[0].Answer != tc.expected {
			t.Errorf("%s: answers = %+v, want %+v", tc.token, answers, tc.expected)
		}
	}
}

func TestMenuCallbackEditsInPlace(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	click(d, content.FunMenu)

	edits := client.Find("EditMessage")
	if len(edits) != 1 || edits[0].MessageID != 50 || !strings.Contains(edits[0].Text, "Fun &amp; Games") {
		t.Fatalf("edits = %+v", edits)
	}
	if len(client.Sent()) != 0 {
		t.Errorf("menu click sent %q", client.Sent())
	}
}

func TestMenuCallbackFallsBackToSend(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)
	client.Fail["EditMessage"] = errTooOld

	click(d, content.MainMenu)

	if sent := client.Sent(); len(sent) != 1 || !strings.Contains(sent[0], "Welcome back, <b>Alice</b>") {
		t.Errorf("sent = %q", sent)
	}
}

func TestInfoPageHasBackButton(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	click(d, "countdown")

	edits := client.Find("EditMessage")
	if len(edits) != 1 {
		t.Fatalf("edits = %d", len(edits))
	}
	b := edits[0].Opts.Keyboard[0][0]
	if b.Target != content.ToolsMenu || b.Label != "⬅️ Tools" {
		t.Errorf("back button = %+v", b)
	}
}

func TestActionCallbackRunsCommand(t *testing.T) {
	t.Parallel()
	d, _, client := newDispatcher(t)

	click(d, "dice")

	if dice := client.Find("SendDice"); len(dice) != 1 || dice[0].Text != "🎲" || dice[0].ChatID != privateID {
		t.Errorf("dice = %+v", dice)
	}
}

func TestEveryMenuButtonIsHandled(t *testing.T) {
	t.Parallel()

	for _, menu := range []string{content.MainMenu, content.FunMenu, content.APIMenu, content.ToolsMenu, content.MediaMenu, content.AlertsMenu} {
		kb, _ := content.Keyboard(menu)
		for _, row := range kb {
			for _, b := range row {
				if b.Kind == platform.ButtonCallback && !handlers.IsCallbackToken(b.Target) {
					t.Errorf("%s: button %q has unhandled token %q", menu, b.Label, b.Target)
				}
			}
		}
	}
}
