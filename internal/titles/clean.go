package titles

import (
	"html"
	"regexp"
	"strings"

	"github.com/pfrederiksen/cinema-times/internal/showing"
)

// tagPattern maps a parenthetical annotation pattern to a tag type.
// Patterns are matched against the content of each parenthetical group.
type tagPattern struct {
	re      *regexp.Regexp
	tagType string
}

var tagPatterns = []tagPattern{
	{regexp.MustCompile(`(?i)^\d+(?:st|nd|rd|th) Anniversary`), "anniversary"},
	{regexp.MustCompile(`(?i)Anniversary`), "anniversary"},
	{regexp.MustCompile(`(?i)^(?:Re-Issue|Rerelease)$`), "rerelease"},
	{regexp.MustCompile(`(?i)^4K Re-release$`), "remaster"},
	{regexp.MustCompile(`(?i)^(?:Dubbed|Subbed|Subtitled)$`), "language"},
	{regexp.MustCompile(`(?i)^Uncut$`), "version"},
	{regexp.MustCompile(`(?i)^Double Bill`), "collection"},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Clean strips all parenthetical groups from a raw title, returning the
// normalized title and any recognized annotations as typed tags.
// Nested and repeated groups are all removed.
func Clean(raw string) (string, []showing.Tag) {
	title := html.UnescapeString(raw)

	var tags []showing.Tag

	// Special-case format prefixes that are not parenthesized
	if strings.HasPrefix(title, "NT Live: ") {
		tags = append(tags, showing.Tag{Type: "format", Text: "NT Live"})
		title = strings.TrimPrefix(title, "NT Live: ")
	}

	title, groups := stripParentheticals(title)
	for _, g := range groups {
		if tag, ok := classify(g); ok {
			tags = append(tags, tag)
		}
	}

	title = whitespaceRe.ReplaceAllString(title, " ")
	return strings.TrimSpace(title), tags
}

// CleanTitle is Clean without the tag bookkeeping, for callers that only
// need the lookup key.
func CleanTitle(raw string) string {
	title, _ := Clean(raw)
	return title
}

// classify matches a parenthetical group's content against the known
// annotation patterns
func classify(content string) (showing.Tag, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return showing.Tag{}, false
	}
	for _, p := range tagPatterns {
		if p.re.MatchString(content) {
			return showing.Tag{Type: p.tagType, Text: content}, true
		}
	}
	return showing.Tag{}, false
}

// stripParentheticals removes every balanced parenthetical group from s,
// tracking nesting depth so nested groups are removed whole. The content of
// each top-level group is returned for tag classification. An unmatched
// closing parenthesis is dropped.
func stripParentheticals(s string) (string, []string) {
	var out strings.Builder
	var group strings.Builder
	var groups []string
	depth := 0

	for _, r := range s {
		switch {
		case r == '(':
			if depth > 0 {
				group.WriteRune(r)
			}
			depth++
		case r == ')':
			if depth > 0 {
				depth--
				if depth == 0 {
					groups = append(groups, group.String())
					group.Reset()
				} else {
					group.WriteRune(r)
				}
			}
		case depth > 0:
			group.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}

	// Unterminated group: treat what we collected as a group anyway
	if depth > 0 && group.Len() > 0 {
		groups = append(groups, group.String())
	}

	return out.String(), groups
}
