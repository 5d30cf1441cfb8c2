// Package query derives the facets of the launcher's raw input text.
package query

import "strings"

// DefaultFileAliases are the slash tokens that mean "search files".
var DefaultFileAliases = []string{"files", "file", "find"}

// Query is the parsed view of the current input text.
type Query struct {
	Text          string
	IsSlash       bool
	Token         string // text after "/" up to the first whitespace
	Arg           string // trimmed remainder after the token
	IsFileCommand bool
}

// Parse splits text into its facets. aliases defaults to DefaultFileAliases
// when empty.
func Parse(text string, aliases ...string) Query {
	q := Query{Text: text}
	if !strings.HasPrefix(text, "/") {
		return q
	}
	q.IsSlash = true
	rest := text[1:]
	if i := strings.IndexFunc(rest, isSpace); i >= 0 {
		q.Token = rest[:i]
		q.Arg = strings.TrimSpace(rest[i:])
	} else {
		q.Token = rest
	}
	if len(aliases) == 0 {
		aliases = DefaultFileAliases
	}
	for _, a := range aliases {
		if strings.EqualFold(q.Token, a) {
			q.IsFileCommand = true
			break
		}
	}
	return q
}

// IsEmpty reports whether the input is blank.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}

// SearchTerm returns the text the remote search should receive. Slash input
// only searches when it is a file command with an argument; every other
// slash command suppresses search.
func (q Query) SearchTerm() (string, bool) {
	if !q.IsSlash {
		t := strings.TrimSpace(q.Text)
		return t, t != ""
	}
	if q.IsFileCommand && q.Arg != "" {
		return q.Arg, true
	}
	return "", false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
