package commitmsg

import (
	"os"
	"strings"
	"unicode"

	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/regex"
)

// Outcome records which branch of the annotation rule a message took.
type Outcome int

const (
	// Prefixed means a prefix was prepended.
	Prefixed Outcome = iota
	// AlreadyPrefixed means the message starts with a bracket tag, a
	// shortcode or an emoji and was left alone.
	AlreadyPrefixed
	// NoType means no leading lowercase token was found.
	NoType
	// UnknownType means the leading token is not in the style table.
	UnknownType
)

func (o Outcome) String() string {
	switch o {
	case Prefixed:
		return "prefixed"
	case AlreadyPrefixed:
		return "already_prefixed"
	case NoType:
		return "no_type"
	case UnknownType:
		return "unknown_type"
	default:
		return "unknown"
	}
}

// Result is the outcome of annotating one commit message.
type Result struct {
	Original string
	Message  string
	Type     string
	Prefix   string
	Outcome  Outcome
}

// Changed reports whether Message differs from Original.
func (r Result) Changed() bool {
	return r.Outcome == Prefixed
}

// HasPrefix reports whether message already starts with a recognised prefix
// form: a [bracket] tag, a :shortcode: followed by a space, or any rune with
// the Emoji property.
func HasPrefix(message string) bool {
	return regex.AnnotatedPrefix.MatchString(message) || startsWithEmoji(message)
}

// Annotate applies the annotation rule to message. Every miss leaves the
// message untouched; it never fails.
func Annotate(message string, table StyleTable) Result {
	trimmed := strings.TrimFunc(message, isJSSpace)
	result := Result{Original: message, Message: message}

	if HasPrefix(trimmed) {
		result.Outcome = AlreadyPrefixed
		return result
	}

	match := regex.CommitType.FindStringSubmatch(trimmed)
	if match == nil {
		result.Outcome = NoType
		return result
	}
	result.Type = match[1]

	prefix, ok := table.Lookup(result.Type)
	if !ok {
		result.Outcome = UnknownType
		return result
	}

	result.Prefix = prefix
	result.Message = prefix + " " + trimmed
	result.Outcome = Prefixed
	return result
}

// isJSSpace matches the characters String.prototype.trim removes: Unicode
// white space and line terminators plus U+FEFF, but not U+0085.
func isJSSpace(r rune) bool {
	if r == '\ufeff' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// AnnotateFile annotates the commit message stored at path and rewrites the
// file, replacing its contents, only when a prefix was added.
func AnnotateFile(path string, table StyleTable) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.ErrReadCommitMessage.WithError(err).WithContext("path", path)
	}

	result := Annotate(string(data), table)
	if !result.Changed() {
		return result, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return result, errors.ErrWriteCommitMessage.WithError(err).WithContext("path", path)
	}

	if err := os.WriteFile(path, []byte(result.Message), info.Mode().Perm()); err != nil {
		return result, errors.ErrWriteCommitMessage.WithError(err).WithContext("path", path)
	}

	return result, nil
}
