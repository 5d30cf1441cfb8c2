// Package nav merges command and file results into one navigable list and
// tracks the highlighted entry.
package nav

import (
	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/query"
)

// Kind tags a navigation item.
type Kind int

const (
	KindCommand Kind = iota
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Item is one entry of the merged list. Exactly one of Command or File is
// meaningful, as given by Kind.
type Item struct {
	Kind    Kind
	Command client.Command
	File    client.SearchResultItem
}

// Key identifies the item within its group.
func (it Item) Key() string {
	if it.Kind == KindFile {
		return it.File.FilePath
	}
	return it.Command.ID
}

// Mode selects which groups a merge emits and in what order.
type Mode int

const (
	CommandsThenFiles Mode = iota
	FilesOnly
	CommandsOnly
)

func (m Mode) String() string {
	switch m {
	case CommandsThenFiles:
		return "commands+files"
	case FilesOnly:
		return "files"
	case CommandsOnly:
		return "commands"
	default:
		return "unknown"
	}
}

// Variant is the host surface flavour.
type Variant string

const (
	VariantOverlay  Variant = "overlay"
	VariantLauncher Variant = "launcher"
)

// ModeFor picks the merge mode for a parsed query.
func ModeFor(q query.Query, v Variant) Mode {
	if q.IsSlash {
		if q.IsFileCommand {
			if _, ok := q.SearchTerm(); ok {
				return FilesOnly
			}
		}
		return CommandsOnly
	}
	if q.IsEmpty() {
		return CommandsOnly
	}
	if v == VariantLauncher {
		return FilesOnly
	}
	return CommandsThenFiles
}

// Merge builds the navigable list. Groups may be reordered or dropped but
// items keep their order within a group. commandCap limits the command group
// in CommandsThenFiles mode; zero or less means no cap.
func Merge(commands []client.Command, files []client.SearchResultItem, mode Mode, commandCap int) []Item {
	out := make([]Item, 0, len(commands)+len(files))
	addCommands := func(limit int) {
		for i, c := range commands {
			if limit > 0 && i == limit {
				break
			}
			out = append(out, Item{Kind: KindCommand, Command: c})
		}
	}
	addFiles := func() {
		for _, f := range files {
			out = append(out, Item{Kind: KindFile, File: f})
		}
	}

	switch mode {
	case FilesOnly:
		addFiles()
	case CommandsOnly:
		addCommands(0)
	default:
		addCommands(commandCap)
		addFiles()
	}
	return out
}
