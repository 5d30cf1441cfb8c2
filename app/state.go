package app

// State is the coarse UI state that picks the layout and key handler.
type State int

const (
	StateHidden       State = iota // overlay surface closed
	StateSearch                    // typing a query, browsing results
	StateCommandInput              // capturing a slash command argument
	StateSettings                  // settings overlay open
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateSearch:
		return "search"
	case StateCommandInput:
		return "command_input"
	case StateSettings:
		return "settings"
	default:
		return "unknown"
	}
}
