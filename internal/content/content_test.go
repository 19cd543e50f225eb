package content_test

import (
	"strings"
	"testing"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

func TestMenusLeadBackToMain(t *testing.T) {
	t.Parallel()

	for _, token := range []string{content.FunMenu, content.APIMenu, content.ToolsMenu, content.MediaMenu, content.AlertsMenu} {
		t.Run(token, func(t *testing.T) {
			t.Parallel()
			text, kb, ok := content.Menu(token, "Ann")
			if !ok || text == "" {
				t.Fatalf("Menu(%q) missing", token)
			}
			last := kb[len(kb)-1]
			if len(last) != 1 || last[0].Target != content.MainMenu {
				t.Errorf("last row = %+v, want back to main menu", last)
			}
		})
	}

	if _, _, ok := content.Menu("nope", "Ann"); ok {
		t.Error("unknown token reported as a menu")
	}
}

func TestMainMenuEscapesName(t *testing.T) {
	t.Parallel()

	text, _, _ := content.Menu(content.MainMenu, "<Bob>")
	if !strings.Contains(text, "&lt;Bob&gt;") {
		t.Errorf("name not escaped: %q", text)
	}
}

func TestEcho(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{"I love golang", "Gopher spotted"},
		{"hey there", "Hey, Ann"},
		{"this is a thing", "💬 <code>this is a thing</code>"},
		{"help me", "Use /help"},
		{"thanks!", "You're welcome"},
		{"<b>", "💬 <code>&lt;b&gt;</code>"},
	}
	for _, tc := range testCases {
		if got := content.Echo(tc.input, "Ann"); !strings.Contains(got, tc.expected) {
			t.Errorf("Echo(%q) = %q, want it to contain %q", tc.input, got, tc.expected)
		}
	}
}

func TestInlineResults(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		query    string
		expected string
	}{
		{"", "m_send_message"},
		{"b.sendpoll", "m_send_poll"},
		{"ban", "m_ban_chat_member"},
		{"joke", "joke_err"},
		{"fact", "fact_origin"},
		{"install", "about_install"},
		{"zzzz", "m_send_message"},
	}
	for _, tc := range testCases {
		results := content.InlineResults(tc.query)
		if !hasID(results, tc.expected) {
			t.Errorf("InlineResults(%q) missing %q", tc.query, tc.expected)
		}
		for _, r := range results {
			if r.Text == "" || r.Title == "" {
				t.Errorf("InlineResults(%q) returned empty article %q", tc.query, r.ID)
			}
		}
	}
}

func TestGamesHaveEmoji(t *testing.T) {
	t.Parallel()

	kb, _ := content.Keyboard(content.FunMenu)
	for _, row := range kb {
		for _, b := range row {
			if _, isGame := content.Games[b.Target]; isGame && content.Games[b.Target].Emoji == "" {
				t.Errorf("game %q has no emoji", b.Target)
			}
		}
	}
}

func TestPostFrame(t *testing.T) {
	t.Parallel()

	got := content.Post("hi")
	if !strings.HasPrefix(got, content.PostFrame+"\n") || !strings.HasSuffix(got, "\n"+content.PostFrame) {
		t.Errorf("Post() = %q", got)
	}
}

func hasID(results []platform.InlineResult, id string) bool {
	for _, r := range results {
		if r.ID == id {
			return true
		}
	}
	return false
}
