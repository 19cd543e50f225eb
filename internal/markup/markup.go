// Package markup parses the button mini-language used by the broadcast
// commands. A message body is followed by lines of bracketed groups:
//
//	Hello everyone
//	[Docs | https://example.com] [Ping | ping]
//
// Each line of groups becomes one keyboard row.
package markup

import (
	"strings"

	"github.com/edgard/keeperbot/internal/platform"
)

var linkPrefixes = []string{"http://", "https://", "tg://"}

// IsMarkupLine reports whether line holds button definitions. The test is
// purely lexical: any line containing '[', '|' and ']' counts, so a prose
// line that happens to use all three characters is taken as markup and
// dropped from the body.
func IsMarkupLine(line string) bool {
	return strings.Contains(line, "[") &&
		strings.Contains(line, "|") &&
		strings.Contains(line, "]")
}

// IsLink reports whether a button target opens a URL instead of sending a
// callback.
func IsLink(target string) bool {
	for _, p := range linkPrefixes {
		if strings.HasPrefix(target, p) {
			return true
		}
	}
	return false
}

// Parse splits text into its body and button grid. Malformed groups are
// skipped; rows with no valid buttons are dropped.
func Parse(text string) (string, platform.Grid) {
	var body []string
	var grid platform.Grid
	for _, line := range strings.Split(text, "\n") {
		if !IsMarkupLine(line) {
			body = append(body, line)
			continue
		}
		if row := parseRow(line); len(row) > 0 {
			grid = append(grid, row)
		}
	}
	return strings.TrimSpace(strings.Join(body, "\n")), grid
}

func parseRow(line string) []platform.Button {
	var row []platform.Button
	rest := line
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			break
		}
		rest = rest[open+1:]
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			// unclosed group ends the line
			break
		}
		group := rest[:end]
		rest = rest[end+1:]
		if b, ok := parseButton(group); ok {
			row = append(row, b)
		}
	}
	return row
}

func parseButton(group string) (platform.Button, bool) {
	label, target, ok := strings.Cut(group, "|")
	if !ok {
		return platform.Button{}, false
	}
	label = strings.TrimSpace(label)
	target = strings.TrimSpace(target)
	if label == "" || target == "" {
		return platform.Button{}, false
	}
	if IsLink(target) {
		return platform.LinkButton(label, target), true
	}
	return platform.CallbackButton(label, target), true
}
