// Package app is the root bubbletea model. It is the single dispatcher that
// turns keystrokes and backend events into calls on the query, search,
// navigation, view-state and conversation engines.
package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/maghams62/launcher/catalog"
	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/config"
	"github.com/maghams62/launcher/conversation"
	"github.com/maghams62/launcher/debounce"
	"github.com/maghams62/launcher/markdown"
	"github.com/maghams62/launcher/model"
	"github.com/maghams62/launcher/msg"
	"github.com/maghams62/launcher/nav"
	"github.com/maghams62/launcher/query"
	"github.com/maghams62/launcher/router"
	"github.com/maghams62/launcher/search"
	"github.com/maghams62/launcher/style"
	"github.com/maghams62/launcher/viewstate"
)

// Backend is the slice of the HTTP client the launcher calls directly.
type Backend interface {
	ListCommands(ctx context.Context) ([]client.Command, error)
	PostEndpoint(ctx context.Context, endpoint, commandID string) error
}

// Stream is the chat connection.
type Stream interface {
	Send(text string) (string, error)
	ListenCmd(p client.Sender) tea.Cmd
	ReconnectListenCmd(p client.Sender) tea.Cmd
	Close()
	IsClosed() bool
}

// Opener opens and reveals files.
type Opener interface {
	Open(ctx context.Context, path string) error
	Reveal(ctx context.Context, path string) error
}

// Deps are the collaborators the launcher is built from. Nil optional
// fields get defaults.
type Deps struct {
	Config     config.Config
	ProfileDir string
	Version    string
	Log        *zap.Logger

	Backend  Backend
	Searcher search.Searcher
	Stream   Stream
	Opener   Opener
	Router   router.Router

	// Reloads delivers config file changes. Optional.
	Reloads <-chan config.Reload
	// Clipboard copies text. Optional.
	Clipboard func(string) error
	// AfterFunc replaces the debounce timer. Optional.
	AfterFunc debounce.AfterFunc
}

// ProgramReady hands the running program to the model so background
// goroutines can post messages.
type ProgramReady struct{ Program client.Sender }

// relay forwards messages to the program once it is known. The debounce gate
// is created before the program, so it fires through this.
type relay struct {
	mu sync.Mutex
	p  client.Sender
}

func (r *relay) set(p client.Sender) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

// Send posts m to the program, dropping it if none is attached yet.
func (r *relay) Send(m tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(m)
	}
}

// Model is the root launcher model.
type Model struct {
	header   model.HeaderModel
	input    model.InputModel
	results  model.ResultsModel
	preview  model.PreviewModel
	chat     model.ChatModel
	plan     model.PlanModel
	activity model.ActivityModel
	status   model.StatusModel
	toasts   model.ToastsModel
	settings model.SettingsModel

	cfg        config.Config
	profileDir string
	variant    nav.Variant
	log        *zap.Logger
	keys       KeyMap

	backend   Backend
	searcher  search.Searcher
	stream    Stream
	opener    Opener
	router    router.Router
	reloads   <-chan config.Reload
	clipboard func(string) error

	relay   *relay
	gate    *debounce.Gate
	tracker *search.Tracker
	catalog *catalog.Store
	index   *nav.Index
	vs      *viewstate.Machine
	events  *conversation.Log

	open         bool
	text         string
	term         string
	q            query.Query
	matches      []client.Command
	folded       conversation.Result
	pending      []localTurn
	notes        []localTurn
	reconnecting bool
	width        int
	height       int
}

// New builds the launcher from deps.
func New(d Deps) Model {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	rt := d.Router
	if rt == nil {
		rt = router.NewLocal()
	}
	clip := d.Clipboard
	if clip == nil {
		clip = func(string) error { return nil }
	}

	r := &relay{}
	opts := []debounce.Option{debounce.WithWindow(d.Config.Debounce())}
	if d.AfterFunc != nil {
		opts = append(opts, debounce.WithAfterFunc(d.AfterFunc))
	}
	gate := debounce.New(func(dp debounce.Dispatch) {
		r.Send(msg.QueryDebounced{Gen: dp.Gen, Text: dp.Text})
	}, opts...)

	input := model.NewInput()
	input.Focus()

	m := Model{
		header:   model.NewHeader(d.Version),
		input:    input,
		results:  model.NewResults(),
		preview:  model.NewPreview(),
		chat:     model.NewChat(80, 10),
		plan:     model.NewPlan(),
		activity: model.NewActivity(),
		status:   model.NewStatus(),
		toasts:   model.NewToasts(),
		settings: model.NewSettings(),

		profileDir: d.ProfileDir,
		log:        log,
		keys:       DefaultKeyMap(),

		backend:   d.Backend,
		searcher:  d.Searcher,
		stream:    d.Stream,
		opener:    d.Opener,
		router:    rt,
		reloads:   d.Reloads,
		clipboard: clip,

		relay:   r,
		gate:    gate,
		tracker: search.NewTracker(log.Named("search")),
		catalog: catalog.NewStore(log.Named("catalog")),
		index:   nav.NewIndex(),
		vs:      viewstate.New(),
		events:  conversation.NewLog(),

		open:   true,
		width:  80,
		height: 24,
	}
	m.applyConfig(d.Config)
	m.rebuild()
	return m
}

// Init loads the catalog and starts the timers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCatalog(), m.tickCmd(), m.activity.Tick(), tea.WindowSize()}
	if m.reloads != nil {
		cmds = append(cmds, waitReload(m.reloads))
	}
	return tea.Batch(cmds...)
}

// Update is the single dispatcher.
func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case ProgramReady:
		m.relay.set(v.Program)
		if m.stream != nil && !m.stream.IsClosed() {
			return m, m.stream.ListenCmd(m.relay)
		}
		return m, nil

	// -- query dispatch --

	case msg.QueryDebounced:
		return m.handleDebounced(v)

	case msg.SearchResult:
		if m.tracker.Apply(v.Gen, v.Items, v.Err) {
			m.rebuild()
		}
		m.activity.SetSearching(m.loading())
		m.results.SetLoading(m.loading())
		return m, nil

	case msg.CatalogLoaded:
		return m.handleCatalog(v)

	// -- commands and files --

	case msg.CommandInvoked:
		return m.handleInvoked(v.Command)

	case msg.EndpointResult:
		if v.Err != nil {
			m.log.Warn("command endpoint failed", zap.String("command", v.CommandID), zap.Error(v.Err))
			m.toasts.Add("/"+v.CommandID+" failed: "+v.Err.Error(), model.ToastError)
		} else {
			m.toasts.Add("/"+v.CommandID+" done", model.ToastInfo)
		}
		return m, nil

	case msg.OpenResult:
		if v.Err != nil {
			m.log.Warn("open failed", zap.String("path", v.Path), zap.Bool("external", v.External), zap.Error(v.Err))
			m.toasts.Add("Could not open "+v.Path, model.ToastError)
		}
		return m, nil

	case msg.CopyResult:
		if v.Err != nil {
			m.toasts.Add("Copy failed: "+v.Err.Error(), model.ToastError)
		} else {
			m.toasts.Add("Copied "+v.Path, model.ToastInfo)
		}
		return m, nil

	// -- settings --

	case model.SettingsChoice:
		m.vs.CloseSettings()
		return m, m.saveSettings(v.Config)

	case msg.SettingsSaved:
		if v.Err != nil {
			m.log.Error("save settings", zap.Error(v.Err))
			m.toasts.Add("Settings not saved: "+v.Err.Error(), model.ToastError)
			return m, nil
		}
		m.applyConfig(v.Config)
		m.rebuild()
		m.refold()
		m.toasts.Add("Settings saved", model.ToastInfo)
		return m, nil

	case msg.ConfigReloaded:
		return m.handleReload(v)

	// -- chat stream --

	case client.StreamConnectedEvent:
		m.reconnecting = false
		m.status.SetConnected(true)
		return m, nil

	case client.StreamDisconnectedEvent:
		return m.handleDisconnect(v)

	case client.StreamReconnectingEvent:
		m.status.SetReconnecting(v.Attempt)
		return m, nil

	case client.StreamAuthFailedEvent:
		m.reconnecting = false
		m.status.SetAuthFailed()
		m.activity.StopWaiting()
		m.toasts.Add("Chat rejected the token. Set "+config.EnvToken+" and restart.", model.ToastError)
		return m, nil

	case client.StreamParseWarning:
		m.log.Warn("chat frame", zap.String("detail", v.Message))
		return m, nil

	case client.ChatEvent:
		switch v.Message.Type {
		case client.MsgUser:
			// The echo replaces the oldest locally shown turn.
			if len(m.pending) > 0 {
				m.pending = m.pending[1:]
			}
		case client.MsgAssistant, client.MsgError:
			m.activity.StopWaiting()
		}
		m.record(v.Message)
		return m, nil

	// -- UI --

	case msg.ToggleSurface:
		m.toggleSurface()
		return m, nil

	case msg.TickMsg:
		m.toasts.Tick()
		return m, m.tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(v)
		return m, cmd
	}
	return m, nil
}

// State returns the coarse UI state.
func (m Model) State() State {
	switch {
	case m.vs.SettingsOpen():
		return StateSettings
	case !m.open:
		return StateHidden
	case m.vs.InCommandInput():
		return StateCommandInput
	default:
		return StateSearch
	}
}

// Shutdown releases the stream and pending timers.
func (m Model) Shutdown() {
	m.gate.Cancel()
	m.tracker.Clear()
	if m.stream != nil {
		m.stream.Close()
	}
}

// -- configuration --

func (m *Model) applyConfig(cfg config.Config) {
	if cfg.Token == "" {
		cfg.Token = m.cfg.Token
	}
	m.cfg = cfg
	m.variant = nav.Variant(cfg.Variant)
	if m.variant != nav.VariantLauncher {
		m.variant = nav.VariantOverlay
	}
	m.gate.SetWindow(cfg.Debounce())
	if !style.ApplyName(cfg.Theme) && cfg.Theme != "plain" {
		m.log.Warn("unknown theme", zap.String("theme", cfg.Theme))
	}
	markdown.SetStyle(cfg.Theme)
	m.header.SetVariant(m.variant)
	m.header.SetBackend(cfg.BackendURL)
	if m.variant == nav.VariantLauncher {
		m.open = true
	}
}

func (m Model) handleReload(v msg.ConfigReloaded) (Model, tea.Cmd) {
	next := waitReload(m.reloads)
	if v.Err != nil {
		m.log.Warn("config reload", zap.Error(v.Err))
		m.toasts.Add("config.toml: "+v.Err.Error(), model.ToastWarning)
		return m, next
	}
	m.applyConfig(v.Config)
	m.rebuild()
	m.refold()
	m.log.Info("config reloaded", zap.String("variant", string(m.variant)), zap.Int("debounce_ms", m.cfg.DebounceMS))
	return m, next
}

// -- conversation --

// localTurn is a line shown in the conversation that did not come from the
// stream: a sent message still waiting for its echo, or a local reply.
type localTurn struct {
	at  int // events.Len() when it was made
	msg client.Message
}

// record appends a stream event to the log and refolds. Only the stream
// handler calls it.
func (m *Model) record(ev client.Message) {
	m.events.Append(ev)
	m.refold()
}

// showPending displays text as the user's turn until the server echoes it.
func (m *Model) showPending(text string) {
	m.pending = append(m.pending, localTurn{at: m.events.Len(), msg: client.Message{Type: client.MsgUser, Message: text}})
	m.refold()
}

// showNote displays a local reply without touching the log.
func (m *Model) showNote(text string) {
	m.notes = append(m.notes, localTurn{at: m.events.Len(), msg: client.Message{Type: client.MsgSystem, Message: text}})
	m.refold()
}

func (m *Model) refold() {
	m.folded = conversation.Fold(m.events.Visible())
	pairs := withLocal(m.folded.Pairs, m.events.Cutoff(), m.pending, m.notes)
	if m.cfg.HistoryTurns > 0 {
		pairs = conversation.Trim(pairs, m.cfg.HistoryTurns)
	}
	m.chat.SetPairs(pairs)
	m.plan.SetPlan(m.folded.Plan)
	m.status.SetPlanActive(m.plan.Active())
	m.layout()
}

// withLocal places local turns among the folded pairs by the log position
// they were made at. A pending user turn fills the next reply that has no
// user half, which is how an unechoed send pairs with its answer.
func withLocal(pairs []conversation.Pair, cutoff int, pending, notes []localTurn) []conversation.Pair {
	if len(pending) == 0 && len(notes) == 0 {
		return pairs
	}
	locals := make([]localTurn, 0, len(pending)+len(notes))
	locals = append(locals, pending...)
	locals = append(locals, notes...)
	sort.SliceStable(locals, func(i, j int) bool { return locals[i].at < locals[j].at })

	out := make([]conversation.Pair, 0, len(pairs)+len(locals))
	i := 0
	for _, lt := range locals {
		at := lt.at - cutoff
		if at < 0 {
			continue
		}
		for i < len(pairs) && pairs[i].Index < at {
			out = append(out, pairs[i])
			i++
		}
		m := lt.msg
		switch {
		case m.Type != client.MsgUser:
			out = append(out, conversation.Pair{Notice: &m, Index: at})
		case i < len(pairs) && pairs[i].User == nil && !pairs[i].IsNotice():
			p := pairs[i]
			p.User = &m
			out = append(out, p)
			i++
		default:
			out = append(out, conversation.Pair{User: &m, Index: at})
		}
	}
	return append(out, pairs[i:]...)
}

// -- query pipeline --

// onInputChanged reacts to an edit of the primary input.
func (m *Model) onInputChanged() {
	text := m.input.Value()
	if text == m.text {
		return
	}
	m.text = text

	if m.vs.InCommandInput() {
		m.vs.SetArg(text)
		return
	}

	m.q = query.Parse(text, m.cfg.FileAliases...)
	term, ok := m.q.SearchTerm()
	if !ok || nav.ModeFor(m.q, m.variant) == nav.CommandsOnly {
		term = ""
	}
	if term != m.term {
		// Results for the previous term are stale as soon as it changes.
		m.term = term
		m.tracker.Clear()
		m.gate.OnQueryChange(term)
	}
	m.rebuild()
}

func (m Model) handleDebounced(v msg.QueryDebounced) (Model, tea.Cmd) {
	if !m.gate.IsCurrent(v.Gen) || v.Text != m.term {
		m.log.Debug("stale dispatch dropped", zap.Uint64("gen", v.Gen))
		return m, nil
	}
	if m.searcher == nil {
		return m, nil
	}
	gen, ctx := m.tracker.Begin(v.Text)
	m.activity.SetSearching(true)
	m.results.SetLoading(true)
	return m, searchCmd(ctx, m.searcher, gen, v.Text, m.cfg.SearchLimit)
}

// rebuild merges the current command matches and file results into the
// navigation index.
func (m *Model) rebuild() {
	m.matches = catalog.FilterQuery(m.catalog.All(), m.q)
	mode := nav.ModeFor(m.q, m.variant)
	items := nav.Merge(m.matches, m.tracker.Results(), mode, m.cfg.CommandCap)
	m.index.Set(items, m.text)
	m.results.Set(m.index.Items(), m.index.Cursor())
	m.results.SetLoading(m.loading())
	m.activity.SetSearching(m.loading())
	m.status.SetResults(m.index.Len())
	m.syncPreview()
	m.layout()
}

func (m Model) loading() bool {
	return m.gate.Pending() || m.tracker.Loading()
}

func (m *Model) syncPreview() {
	if !m.vs.PreviewOpen() {
		m.preview.SetItem(nil)
		return
	}
	it, ok := m.index.Selected()
	if !ok || it.Kind != nav.KindFile {
		m.vs.ClosePreview()
		m.preview.SetItem(nil)
		return
	}
	m.preview.SetItem(&it.File)
}

func (m Model) handleCatalog(v msg.CatalogLoaded) (Model, tea.Cmd) {
	if v.Err != nil {
		m.log.Warn("catalog load failed", zap.Error(v.Err))
		m.toasts.Add("Commands unavailable: "+v.Err.Error(), model.ToastWarning)
		return m, nil
	}
	m.catalog.Set(v.Commands)
	var ids []string
	for _, c := range v.Commands {
		if c.HandlerType == client.HandlerSlashCommand {
			ids = append(ids, c.ID)
		}
	}
	m.input.SetCommands(ids)
	m.header.SetCommandCount(len(v.Commands))
	m.rebuild()
	return m, nil
}

// -- surface --

func (m *Model) toggleSurface() {
	if m.variant == nav.VariantLauncher {
		return
	}
	if m.open {
		m.closeSurface()
		return
	}
	m.open = true
	m.layout()
}

// closeSurface drops every piece of ephemeral query state. The catalog,
// conversation and settings draft survive.
func (m *Model) closeSurface() {
	m.gate.Cancel()
	m.tracker.Clear()
	m.vs.Reset()
	m.input.ExitCommand()
	m.input.Reset()
	m.text = ""
	m.term = ""
	m.q = query.Query{}
	m.activity.SetSearching(false)
	m.rebuild()
	if m.variant == nav.VariantOverlay {
		m.open = false
	}
	m.layout()
}

// -- layout --

func (m *Model) layout() {
	w := m.width
	m.input.SetWidth(w)
	m.results.SetWidth(w)
	m.preview.SetWidth(w)
	m.plan.SetWidth(w)
	m.status.SetWidth(w)
	m.settings.SetWidth(w)
	m.chat.SetSize(w, m.chatHeight())
	m.status.SetMode(m.State().String())
	m.status.SetHints(m.hints())
}

func (m Model) chatHeight() int {
	reserved := 4 // header, input, status, spacing
	if m.open {
		reserved += countLines(m.results.View())
		if m.vs.PreviewOpen() {
			reserved += countLines(m.preview.View())
		}
	}
	if m.plan.IsVisible() {
		reserved += countLines(m.plan.View())
	}
	if m.activity.Active() {
		reserved++
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) hints() string {
	k := m.keys
	switch m.State() {
	case StateHidden:
		return hint(k.ToggleSurface, k.Quit)
	case StateSettings:
		return hint(k.Escape)
	case StateCommandInput:
		return hint(k.Submit, k.Escape)
	}
	if m.vs.Focus() == viewstate.FocusResults {
		return hint(k.Submit, k.OpenExternal, k.Preview, k.CopyPath)
	}
	return hint(k.Submit, k.Down, k.Tab, k.Settings)
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// View renders the launcher.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.header.View())

	switch m.State() {
	case StateHidden:
		sections = append(sections, m.chat.View())
	case StateSettings:
		sections = append(sections, m.settings.View())
	default:
		sections = append(sections, m.input.View())
		if rv := m.results.View(); rv != "" && !m.vs.InCommandInput() {
			sections = append(sections, rv)
		}
		if m.vs.PreviewOpen() {
			sections = append(sections, m.preview.View())
		}
		if pv := m.plan.View(); pv != "" {
			sections = append(sections, pv)
		}
		sections = append(sections, m.chat.View())
	}

	if av := m.activity.View(); av != "" {
		sections = append(sections, av)
	}
	if m.toasts.HasToasts() {
		sections = append(sections, m.toasts.View(m.width))
	}
	sections = append(sections, m.status.View())
	return strings.Join(sections, "\n")
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return msg.TickMsg{} })
}
