// Package msg defines the tea.Msg types dispatched within the launcher.
// It imports only leaf packages (client wire types, config) so model and
// app can both depend on it.
package msg

import (
	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/config"
)

// -- Query dispatch --

// QueryDebounced is posted by the debounce gate once input has settled.
type QueryDebounced struct {
	Gen  uint64
	Text string
}

// SearchResult from GET /api/universal-search. Gen is the tracker generation
// the request was issued under.
type SearchResult struct {
	Gen   uint64
	Query string
	Items []client.SearchResultItem
	Err   error
}

// CatalogLoaded from GET /api/commands.
type CatalogLoaded struct {
	Commands []client.Command
	Err      error
}

// -- User input --

// CommandInvoked is emitted when a system or Spotify command is chosen.
// The dispatcher decides whether it is a local effect or an endpoint call.
type CommandInvoked struct {
	Command client.Command
}

// EndpointResult from POST <command.endpoint>.
type EndpointResult struct {
	CommandID string
	Err       error
}

// -- Files --

// OpenResult after opening or revealing a file.
type OpenResult struct {
	Path     string
	External bool
	Err      error
}

// CopyResult after copying a file path to the clipboard.
type CopyResult struct {
	Path string
	Err  error
}

// -- Settings --

// ConfigReloaded when config.toml changes on disk.
type ConfigReloaded struct {
	Config config.Config
	Err    error
}

// SettingsSaved after the settings overlay is confirmed.
type SettingsSaved struct {
	Config config.Config
	Err    error
}

// -- UI events --

// TickMsg for periodic timer updates.
type TickMsg struct{}

// ToggleSurface shows or hides the overlay surface, as Ctrl+K does.
type ToggleSurface struct{}
