package client

import (
	"encoding/json"
	"strings"
)

// HandlerType says who executes a catalog command.
type HandlerType string

const (
	HandlerAgent          HandlerType = "agent"
	HandlerSystem         HandlerType = "system"
	HandlerSpotifyControl HandlerType = "spotify_control"
	HandlerSlashCommand   HandlerType = "slash_command"
)

// UnmarshalJSON accepts both camelCase and snake_case spellings.
func (h *HandlerType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*h = HandlerType(snake(s))
	return nil
}

// CommandType distinguishes one-step commands from ones that need an argument.
type CommandType string

const (
	CommandImmediate CommandType = "immediate"
	CommandWithInput CommandType = "with_input"
)

// UnmarshalJSON accepts both camelCase and snake_case spellings.
func (c *CommandType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = CommandType(snake(s))
	return nil
}

// snake converts "slashCommand" to "slash_command". Already snake-cased
// values pass through unchanged.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Command from GET /api/commands.
type Command struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Icon        string      `json:"icon,omitempty"`
	Keywords    []string    `json:"keywords,omitempty"`
	HandlerType HandlerType `json:"handler_type"`
	Endpoint    string      `json:"endpoint,omitempty"`
	CommandType CommandType `json:"command_type,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
}

// UnmarshalJSON also reads the camelCase field names the web client uses.
func (c *Command) UnmarshalJSON(data []byte) error {
	type plain Command
	var raw struct {
		plain
		HandlerTypeCamel *HandlerType `json:"handlerType"`
		CommandTypeCamel *CommandType `json:"commandType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Command(raw.plain)
	if c.HandlerType == "" && raw.HandlerTypeCamel != nil {
		c.HandlerType = *raw.HandlerTypeCamel
	}
	if c.CommandType == "" && raw.CommandTypeCamel != nil {
		c.CommandType = *raw.CommandTypeCamel
	}
	return nil
}

// NeedsInput reports whether choosing the command opens argument capture.
func (c Command) NeedsInput() bool {
	return c.HandlerType == HandlerSlashCommand && c.CommandType == CommandWithInput
}

// ResultType of a search hit.
type ResultType string

const (
	ResultDocument ResultType = "document"
	ResultImage    ResultType = "image"
)

// SearchResultItem from GET /api/universal-search. FilePath is the unique key.
type SearchResultItem struct {
	ResultType       ResultType     `json:"result_type"`
	FilePath         string         `json:"file_path"`
	FileName         string         `json:"file_name"`
	FileType         string         `json:"file_type"`
	PageNumber       *int           `json:"page_number,omitempty"`
	TotalPages       *int           `json:"total_pages,omitempty"`
	SimilarityScore  float64        `json:"similarity_score"`
	Snippet          string         `json:"snippet"`
	HighlightOffsets [][2]int       `json:"highlight_offsets,omitempty"`
	Breadcrumb       string         `json:"breadcrumb"`
	ThumbnailURL     string         `json:"thumbnail_url,omitempty"`
	PreviewURL       string         `json:"preview_url,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// MessageType tags a server-pushed chat event.
type MessageType string

const (
	MsgUser                MessageType = "user"
	MsgAssistant           MessageType = "assistant"
	MsgStatus              MessageType = "status"
	MsgPlan                MessageType = "plan"
	MsgBlueskyNotification MessageType = "bluesky_notification"
	MsgAPIDocsDrift        MessageType = "apidocs_drift"
	MsgSystem              MessageType = "system"
	MsgError               MessageType = "error"
)

// PlanStep is one step of an agent execution plan as sent on the wire.
type PlanStep struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Status string `json:"status,omitempty"`
}

// UnmarshalJSON tolerates numeric step ids.
func (s *PlanStep) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     json.RawMessage `json:"id"`
		Action string          `json:"action"`
		Status string          `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Action = raw.Action
	s.Status = raw.Status
	s.ID = strings.Trim(string(raw.ID), `"`)
	return nil
}

// Message is one event on the /ws/chat stream. Only the fields relevant to
// the message type are populated.
type Message struct {
	Type            MessageType        `json:"type"`
	Message         string             `json:"message,omitempty"`
	Status          string             `json:"status,omitempty"`
	Goal            string             `json:"goal,omitempty"`
	Steps           []PlanStep         `json:"steps,omitempty"`
	ActiveStepID    string             `json:"active_step_id,omitempty"`
	Files           []SearchResultItem `json:"files,omitempty"`
	Documents       []SearchResultItem `json:"documents,omitempty"`
	CompletionEvent map[string]any     `json:"completion_event,omitempty"`
	Timestamp       string             `json:"timestamp,omitempty"`
}

// HasText reports whether the message carries non-blank text.
func (m Message) HasText() bool {
	return strings.TrimSpace(m.Message) != ""
}

// RevealRequest for POST /api/reveal-file.
type RevealRequest struct {
	Path string `json:"path"`
}

// EndpointRequest is posted to a command's own endpoint.
type EndpointRequest struct {
	CommandID string `json:"command_id"`
}

// TranscribeResponse from POST /api/transcribe.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
