package commitmsg

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/errors"
)

// Style selects which family of prefixes is prepended to commit messages.
type Style string

const (
	StyleEmoji     Style = "emoji"
	StyleShortcode Style = "shortcode"
	StyleTag       Style = "tag"
)

// Styles lists every supported style in display order.
func Styles() []Style {
	return []Style{StyleEmoji, StyleShortcode, StyleTag}
}

func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleEmoji:
		return StyleEmoji, nil
	case StyleShortcode:
		return StyleShortcode, nil
	case StyleTag:
		return StyleTag, nil
	default:
		return "", errors.ErrInvalidStyle.WithContext("style", s)
	}
}

// Entry maps one conventional commit type to its display prefix.
type Entry struct {
	Type   string
	Prefix string
}

// StyleTable is an immutable, ordered commit type -> prefix mapping.
type StyleTable struct {
	style   Style
	entries []Entry
	index   map[string]string
}

func newStyleTable(style Style, prefixes []string) StyleTable {
	entries := make([]Entry, len(commitTypes))
	index := make(map[string]string, len(commitTypes))
	for i, typ := range commitTypes {
		entries[i] = Entry{Type: typ, Prefix: prefixes[i]}
		index[typ] = prefixes[i]
	}
	return StyleTable{style: style, entries: entries, index: index}
}

func (t StyleTable) Style() Style {
	return t.style
}

// Lookup returns the prefix for a commit type.
func (t StyleTable) Lookup(commitType string) (string, bool) {
	prefix, ok := t.index[commitType]
	return prefix, ok
}

// Entries returns a copy of the table in its fixed order.
func (t StyleTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// TableFor returns the built-in table for style.
func TableFor(style Style) (StyleTable, error) {
	switch style {
	case StyleEmoji:
		return emojiTable, nil
	case StyleShortcode:
		return shortcodeTable, nil
	case StyleTag:
		return tagTable, nil
	default:
		return StyleTable{}, errors.ErrInvalidStyle.WithContext("style", string(style))
	}
}

// MustTableFor is TableFor for styles known to be valid.
func MustTableFor(style Style) StyleTable {
	table, err := TableFor(style)
	if err != nil {
		panic(fmt.Sprintf("commitmsg: %v", err))
	}
	return table
}

var commitTypes = []string{
	"feat", "fix", "chore", "docs", "refactor", "test", "style",
	"perf", "build", "ci", "breaking", "hotfix", "wip", "release",
}

var (
	emojiTable = newStyleTable(StyleEmoji, []string{
		"🚀", "🐛", "🔧", "📝", "♻️", "✅", "🎨",
		"⚡", "📦", "⚙️", "💥", "🔥", "🚧", "🔖",
	})

	shortcodeTable = newStyleTable(StyleShortcode, []string{
		":rocket:", ":bug:", ":wrench:", ":memo:", ":recycle:", ":white_check_mark:", ":art:",
		":zap:", ":package:", ":gear:", ":boom:", ":fire:", ":construction:", ":bookmark:",
	})

	tagTable = newStyleTable(StyleTag, bracketTags(commitTypes))
)

func bracketTags(types []string) []string {
	tags := make([]string, len(types))
	for i, typ := range types {
		tags[i] = "[" + typ + "]"
	}
	return tags
}
