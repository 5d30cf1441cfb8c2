// Package catalog matches input text against the session's command catalog.
package catalog

import (
	"strings"

	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/query"
)

// DefaultSuggestions is how many commands an empty input shows.
const DefaultSuggestions = 5

// Filter returns the catalog entries matching the input, in catalog order.
// It never mutates cmds and always returns a fresh slice.
//
//   - empty, non-slash: the first DefaultSuggestions non-Spotify commands
//   - "/" alone: every slash command
//   - "/tok": slash commands whose id, title or keyword contains tok
//   - text: non-Spotify commands whose title, description, keyword or
//     category contains the text
func Filter(cmds []client.Command, text string, isSlash bool, token string) []client.Command {
	out := []client.Command{}
	needle := strings.ToLower(strings.TrimSpace(text))

	switch {
	case isSlash && token == "":
		for _, c := range cmds {
			if c.HandlerType == client.HandlerSlashCommand {
				out = append(out, c)
			}
		}

	case isSlash:
		tok := strings.ToLower(token)
		for _, c := range cmds {
			if c.HandlerType != client.HandlerSlashCommand {
				continue
			}
			if contains(c.ID, tok) || contains(c.Title, tok) || anyContains(c.Keywords, tok) {
				out = append(out, c)
			}
		}

	case needle == "":
		for _, c := range cmds {
			if len(out) == DefaultSuggestions {
				break
			}
			if c.HandlerType != client.HandlerSpotifyControl {
				out = append(out, c)
			}
		}

	default:
		for _, c := range cmds {
			if c.HandlerType == client.HandlerSpotifyControl {
				continue
			}
			if contains(c.Title, needle) || contains(c.Description, needle) ||
				anyContains(c.Keywords, needle) || contains(c.Category, needle) {
				out = append(out, c)
			}
		}
	}
	return out
}

// FilterQuery is Filter driven by a parsed query.
func FilterQuery(cmds []client.Command, q query.Query) []client.Command {
	return Filter(cmds, q.Text, q.IsSlash, q.Token)
}

func contains(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func anyContains(ss []string, lowerNeedle string) bool {
	for _, s := range ss {
		if contains(s, lowerNeedle) {
			return true
		}
	}
	return false
}
