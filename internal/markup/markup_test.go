package markup_test

import (
	"reflect"
	"testing"

	"github.com/edgard/keeperbot/internal/markup"
	"github.com/edgard/keeperbot/internal/platform"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantBody string
		wantGrid platform.Grid
	}{
		{
			name:     "body and one row",
			input:    "Hello\n[A | a] [B | https://x]\n",
			wantBody: "Hello",
			wantGrid: platform.Grid{{
				{Label: "A", Target: "a", Kind: platform.ButtonCallback},
				{Label: "B", Target: "https://x", Kind: platform.ButtonLink},
			}},
		},
		{
			name:     "no markup",
			input:    "  just text\nsecond line  ",
			wantBody: "just text\nsecond line",
		},
		{
			name:     "rows keep order",
			input:    "Title\n[One|1]\n[Two|tg://resolve?domain=x][Three|http://y]",
			wantBody: "Title",
			wantGrid: platform.Grid{
				{{Label: "One", Target: "1", Kind: platform.ButtonCallback}},
				{
					{Label: "Two", Target: "tg://resolve?domain=x", Kind: platform.ButtonLink},
					{Label: "Three", Target: "http://y", Kind: platform.ButtonLink},
				},
			},
		},
		{
			name:     "malformed groups skipped",
			input:    "Body\n[NoPipe] [|empty label] [empty target|] [Ok|ok]",
			wantBody: "Body",
			wantGrid: platform.Grid{{{Label: "Ok", Target: "ok", Kind: platform.ButtonCallback}}},
		},
		{
			name:     "row with nothing valid is dropped",
			input:    "Body\n[ | ] [x|]",
			wantBody: "Body",
		},
		{
			name:     "unclosed group stops the line",
			input:    "[A|a] [B|b",
			wantGrid: platform.Grid{{{Label: "A", Target: "a", Kind: platform.ButtonCallback}}},
		},
		{
			name:     "prose with all three characters is markup",
			input:    "keep\nuse [x] or a|b",
			wantBody: "keep",
		},
		{
			name:     "body lines between markup",
			input:    "top\n[A|a]\nbottom",
			wantBody: "top\nbottom",
			wantGrid: platform.Grid{{{Label: "A", Target: "a", Kind: platform.ButtonCallback}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			body, grid := markup.Parse(tt.input)
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if !reflect.DeepEqual(grid, tt.wantGrid) {
				t.Errorf("grid = %+v, want %+v", grid, tt.wantGrid)
			}
		})
	}
}

func TestIsMarkupLine(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"[a|b]":       true,
		"]|[":         true,
		"[a b]":       false,
		"a|b":         false,
		"plain words": false,
	}
	for line, want := range tests {
		if got := markup.IsMarkupLine(line); got != want {
			t.Errorf("IsMarkupLine(%q) = %v, want %v", line, got, want)
		}
	}
}
