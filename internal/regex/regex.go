package regex

import "regexp"

var (
	// Commit message annotation. The emoji alternative of the "already
	// annotated" test lives in commitmsg because RE2 has no \p{Emoji}.
	AnnotatedPrefix = regexp.MustCompile(`^(\[[a-z]+\]|:[a-z0-9_+-]+: )`)
	CommitType      = regexp.MustCompile(`^([a-z][a-z0-9_-]*)`)
	Shortcode       = regexp.MustCompile(`^:[a-z0-9_+-]+:$`)
	BracketTag      = regexp.MustCompile(`^\[[a-z]+\]$`)
)
