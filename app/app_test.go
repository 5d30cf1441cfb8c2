package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/config"
	"github.com/maghams62/launcher/debounce"
	"github.com/maghams62/launcher/msg"
	"github.com/maghams62/launcher/nav"
	"github.com/maghams62/launcher/router"
	"github.com/maghams62/launcher/viewstate"
)

// -- fakes --

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) after(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) live() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

type sink struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *sink) Send(m tea.Msg) {
	s.mu.Lock()
	s.msgs = append(s.msgs, m)
	s.mu.Unlock()
}

func (s *sink) drain() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.msgs
	s.msgs = nil
	return out
}

type searchCall struct {
	Query string
	Limit int
}

type fakeSearcher struct {
	mu    sync.Mutex
	calls []searchCall
	hits  map[string][]client.SearchResultItem
}

func (f *fakeSearcher) Search(ctx context.Context, q string, limit int) ([]client.SearchResultItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, searchCall{q, limit})
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.hits[q], nil
}

type fakeStream struct {
	mu         sync.Mutex
	sent       []string
	down       bool
	closed     bool
	reconnects int
}

func (f *fakeStream) Send(text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return "", client.ErrNotConnected
	}
	f.sent = append(f.sent, text)
	return fmt.Sprintf("m%d", len(f.sent)), nil
}

func (f *fakeStream) ListenCmd(client.Sender) tea.Cmd { return nil }

func (f *fakeStream) ReconnectListenCmd(client.Sender) tea.Cmd {
	f.reconnects++
	return func() tea.Msg { return nil }
}

func (f *fakeStream) Close()         { f.closed = true }
func (f *fakeStream) IsClosed() bool { return f.closed }

type fakeBackend struct {
	mu     sync.Mutex
	posted []string
}

func (f *fakeBackend) ListCommands(context.Context) ([]client.Command, error) {
	return testCatalog, nil
}

func (f *fakeBackend) PostEndpoint(_ context.Context, endpoint, id string) error {
	f.mu.Lock()
	f.posted = append(f.posted, endpoint+" "+id)
	f.mu.Unlock()
	return nil
}

type fakeOpener struct {
	opened, revealed []string
}

func (f *fakeOpener) Open(_ context.Context, p string) error {
	f.opened = append(f.opened, p)
	return nil
}

func (f *fakeOpener) Reveal(_ context.Context, p string) error {
	f.revealed = append(f.revealed, p)
	return nil
}

var testCatalog = []client.Command{
	{ID: "weather", Title: "Weather", Description: "Forecast for a city", Category: "info",
		HandlerType: client.HandlerSlashCommand, CommandType: client.CommandWithInput, Placeholder: "City"},
	{ID: "stocks", Title: "Stocks", Description: "Market snapshot", Category: "finance",
		HandlerType: client.HandlerSlashCommand, CommandType: client.CommandImmediate},
	{ID: "files", Title: "Files", Description: "Search documents", Category: "search",
		HandlerType: client.HandlerSlashCommand, CommandType: client.CommandWithInput},
	{ID: "clear", Title: "Clear conversation", Description: "Wipe the chat", Category: "system",
		HandlerType: client.HandlerSystem},
	{ID: "pause", Title: "Pause music", Category: "media",
		HandlerType: client.HandlerSpotifyControl, Endpoint: "/api/spotify/pause"},
	{ID: "summarize", Title: "Summarize my day", Description: "Daily digest", Category: "agent",
		HandlerType: client.HandlerAgent},
}

func hits(paths ...string) []client.SearchResultItem {
	out := make([]client.SearchResultItem, len(paths))
	for i, p := range paths {
		out[i] = client.SearchResultItem{FilePath: p, FileName: p, SimilarityScore: 0.8}
	}
	return out
}

// -- harness --

type harness struct {
	t        *testing.T
	m        Model
	clock    *fakeClock
	sink     *sink
	searcher *fakeSearcher
	stream   *fakeStream
	backend  *fakeBackend
	opener   *fakeOpener
	copied   []string
}

func newHarness(t *testing.T, variant string) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		clock:    &fakeClock{},
		sink:     &sink{},
		searcher: &fakeSearcher{hits: map[string][]client.SearchResultItem{}},
		stream:   &fakeStream{},
		backend:  &fakeBackend{},
		opener:   &fakeOpener{},
	}
	cfg := config.Defaults()
	cfg.Variant = variant
	h.m = New(Deps{
		Config:     cfg,
		ProfileDir: t.TempDir(),
		Backend:    h.backend,
		Searcher:   h.searcher,
		Stream:     h.stream,
		Opener:     h.opener,
		AfterFunc:  h.clock.after,
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	})
	h.send(ProgramReady{Program: h.sink})
	h.send(msg.CatalogLoaded{Commands: testCatalog})
	return h
}

// send delivers m and returns the command Update produced.
func (h *harness) send(m tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(m)
	h.m = next.(Model)
	return cmd
}

// run executes cmd and feeds its result back, following the chain.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		out := cmd()
		if out == nil {
			return
		}
		cmd = h.send(out)
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) press(k tea.KeyType) tea.Cmd {
	h.t.Helper()
	return h.send(tea.KeyMsg{Type: k})
}

// settle fires the pending debounce timer and completes the search it starts.
func (h *harness) settle() {
	h.t.Helper()
	live := h.clock.live()
	require.NotEmpty(h.t, live, "no pending debounce")
	last := live[len(live)-1]
	last.stopped = true
	last.f()
	for _, m := range h.sink.drain() {
		h.run(h.send(m))
	}
}

func itemKinds(items []nav.Item) (cmds, files int) {
	for _, it := range items {
		if it.Kind == nav.KindFile {
			files++
		} else {
			cmds++
		}
	}
	return
}

// -- end-to-end scenarios --

func TestTypingSearchesOnceAfterWindow(t *testing.T) {
	h := newHarness(t, "overlay")
	h.searcher.hits["hello"] = hits("a.pdf", "b.pdf", "c.pdf")

	for _, s := range []string{"h", "e", "l", "l", "o"} {
		h.typeText(s)
	}
	live := h.clock.live()
	require.Len(t, live, 1)
	assert.Equal(t, 200*time.Millisecond, live[0].d)
	assert.Empty(t, h.searcher.calls)

	h.settle()

	assert.Equal(t, []searchCall{{"hello", 10}}, h.searcher.calls)
	cmds, files := itemKinds(h.m.index.Items())
	assert.Equal(t, 0, cmds)
	assert.Equal(t, 3, files)
	assert.Equal(t, 0, h.m.index.Cursor())
}

func TestFileCommandSearchesItsArgument(t *testing.T) {
	h := newHarness(t, "overlay")
	h.searcher.hits["budget"] = hits("budget.xlsx")

	h.typeText("/files budget")
	h.settle()

	assert.Equal(t, []searchCall{{"budget", 10}}, h.searcher.calls)
	require.Equal(t, 1, h.m.index.Len())
	it, _ := h.m.index.Selected()
	assert.Equal(t, "budget.xlsx", it.Key())
}

func TestNonFileSlashCommandSuppressesSearch(t *testing.T) {
	h := newHarness(t, "launcher")

	h.typeText("/weather paris")
	assert.Empty(t, h.clock.live())

	// A dispatch that was already in flight is ignored.
	cmd := h.send(msg.QueryDebounced{Gen: 1, Text: "paris"})
	assert.Nil(t, cmd)
	assert.Empty(t, h.searcher.calls)

	_, files := itemKinds(h.m.index.Items())
	assert.Zero(t, files)
}

func TestChoosingWithInputCommandEntersCommandInput(t *testing.T) {
	h := newHarness(t, "overlay")

	h.typeText("/weath")
	require.Equal(t, 1, h.m.index.Len())
	h.press(tea.KeyDown)
	assert.Equal(t, viewstate.FocusResults, h.m.vs.Focus())
	h.press(tea.KeyEnter)

	require.Equal(t, viewstate.ModeCommandInput, h.m.vs.Mode())
	assert.Equal(t, StateCommandInput, h.m.State())

	h.typeText("Paris")
	assert.Equal(t, "Paris", h.m.vs.Arg())

	h.press(tea.KeyEsc)
	assert.Equal(t, viewstate.ModeSearch, h.m.vs.Mode())
	assert.Empty(t, h.m.vs.Arg())
	assert.True(t, h.m.open, "first escape only leaves command_input")
}

func TestCommandInputSubmitsSlashLine(t *testing.T) {
	h := newHarness(t, "overlay")

	h.typeText("/weather")
	h.press(tea.KeyEnter)
	require.True(t, h.m.vs.InCommandInput())

	h.press(tea.KeyEnter)
	assert.True(t, h.m.vs.InCommandInput(), "blank argument keeps capturing")
	assert.Empty(t, h.stream.sent)

	h.typeText("Paris")
	h.press(tea.KeyEnter)
	assert.Equal(t, []string{"/weather Paris"}, h.stream.sent)
	assert.Equal(t, viewstate.ModeSearch, h.m.vs.Mode())
	pairs := h.m.chat.Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, "/weather Paris", pairs[0].User.Message)
	assert.Zero(t, h.m.events.Len(), "the log waits for the server")
}

func TestConversationFoldsStreamEvents(t *testing.T) {
	h := newHarness(t, "overlay")

	h.typeText("hi")
	h.press(tea.KeyEnter)
	require.Equal(t, []string{"hi"}, h.stream.sent)
	assert.True(t, h.m.activity.Waiting())

	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgUser, Message: "hi"}})
	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgStatus, Status: "executing", Goal: "Plan X"}})
	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgAssistant, Message: "done"}})

	require.Len(t, h.m.folded.Pairs, 1)
	require.Len(t, h.m.chat.Pairs(), 1)
	assert.Empty(t, h.m.pending)
	p := h.m.folded.Pairs[0]
	assert.Equal(t, "hi", p.User.Message)
	assert.Len(t, p.Statuses, 1)
	assert.Equal(t, "done", p.Assistant.Message)
	require.NotNil(t, h.m.folded.Plan)
	assert.Equal(t, "Plan X", h.m.folded.Plan.Goal)
	assert.False(t, h.m.activity.Waiting())
}

func TestEchoedUserTurnIsShownOnce(t *testing.T) {
	h := newHarness(t, "overlay")

	h.typeText("hi")
	h.press(tea.KeyEnter)
	require.Len(t, h.m.chat.Pairs(), 1, "shown before the echo")

	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgUser, Message: "hi"}})
	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgAssistant, Message: "hello"}})

	pairs := h.m.chat.Pairs()
	require.Len(t, pairs, 1)
	require.Len(t, h.m.folded.Pairs, 1)
	require.NotNil(t, pairs[0].User)
	require.NotNil(t, pairs[0].Assistant)
	assert.Equal(t, "hi", pairs[0].User.Message)
	assert.Equal(t, "hello", pairs[0].Assistant.Message)
	assert.Empty(t, h.m.pending)
	assert.Equal(t, 2, h.m.events.Len())
}

func TestUnechoedSendPairsWithReply(t *testing.T) {
	h := newHarness(t, "overlay")

	h.typeText("hi")
	h.press(tea.KeyEnter)
	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgAssistant, Message: "hello"}})

	pairs := h.m.chat.Pairs()
	require.Len(t, pairs, 1)
	require.NotNil(t, pairs[0].User)
	assert.Equal(t, "hi", pairs[0].User.Message)
	assert.Equal(t, "hello", pairs[0].Assistant.Message)
	assert.Equal(t, 1, h.m.events.Len(), "only the reply is logged")
}

// -- router --

func TestRouterClearHidesHistory(t *testing.T) {
	h := newHarness(t, "overlay")
	h.typeText("hi")
	h.press(tea.KeyEnter)
	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgUser, Message: "hi"}})
	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgAssistant, Message: "hello"}})
	require.Len(t, h.m.folded.Pairs, 1)

	h.typeText("Clear!")
	h.press(tea.KeyEnter)

	assert.Empty(t, h.m.folded.Pairs)
	assert.Empty(t, h.m.chat.Pairs())
	assert.Equal(t, []string{"hi"}, h.stream.sent, "handled text is not forwarded")
	assert.Equal(t, 2, h.m.events.Len(), "history itself is kept")
}

func TestRouterReplyStaysOutOfLog(t *testing.T) {
	h := newHarness(t, "overlay")
	h.typeText("help")
	h.press(tea.KeyEnter)

	assert.Empty(t, h.stream.sent)
	assert.Zero(t, h.m.events.Len())
	pairs := h.m.chat.Pairs()
	require.Len(t, pairs, 1)
	require.True(t, pairs[0].IsNotice())
	assert.Contains(t, pairs[0].Notice.Message, "Enter to send")
}

func TestRouterStopCancelsActivePlan(t *testing.T) {
	h := newHarness(t, "overlay")
	h.send(client.ChatEvent{Message: client.Message{
		Type: client.MsgPlan, Goal: "Book a trip", Status: "executing",
		Steps: []client.PlanStep{{ID: "1", Action: "search flights", Status: "running"}},
	}})
	require.True(t, h.m.plan.Active())

	h.typeText("stop")
	h.press(tea.KeyEnter)

	assert.Equal(t, []string{router.StopCommand}, h.stream.sent)
	assert.False(t, h.m.plan.IsVisible())
}

func TestStopWithoutPlanIsForwarded(t *testing.T) {
	h := newHarness(t, "overlay")
	h.typeText("stop")
	h.press(tea.KeyEnter)
	assert.Equal(t, []string{"stop"}, h.stream.sent)
}

func TestSendWhileDisconnectedKeepsLogClean(t *testing.T) {
	h := newHarness(t, "overlay")
	h.stream.down = true

	h.typeText("hello")
	h.press(tea.KeyEnter)

	assert.Empty(t, h.m.chat.Pairs())
	assert.Contains(t, h.m.toasts.Messages(), "Not connected. Message not sent.")
}

// -- navigation and files --

func TestEnterRevealsAndAltEnterOpens(t *testing.T) {
	h := newHarness(t, "launcher")
	h.searcher.hits["report"] = hits("q1.pdf", "q2.pdf")
	h.typeText("report")
	h.settle()

	h.press(tea.KeyDown)
	it, ok := h.m.index.Selected()
	require.True(t, ok)
	assert.Equal(t, "q2.pdf", it.Key())

	h.run(h.press(tea.KeyEnter))
	assert.Equal(t, []string{"q2.pdf"}, h.opener.revealed)

	h.run(h.send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true}))
	assert.Equal(t, []string{"q2.pdf"}, h.opener.opened)

	h.run(h.press(tea.KeyCtrlY))
	assert.Equal(t, []string{"q2.pdf"}, h.copied)
}

func TestArrowsWrap(t *testing.T) {
	h := newHarness(t, "launcher")
	h.searcher.hits["x"] = hits("1", "2", "3")
	h.typeText("x")
	h.settle()

	h.press(tea.KeyUp)
	assert.Equal(t, 2, h.m.index.Cursor())
	h.press(tea.KeyDown)
	assert.Equal(t, 0, h.m.index.Cursor())
}

func TestQueryChangeResetsSelectionAndDropsStaleFiles(t *testing.T) {
	h := newHarness(t, "launcher")
	h.searcher.hits["rep"] = hits("1", "2", "3")
	h.typeText("rep")
	h.settle()
	h.press(tea.KeyDown)
	require.Equal(t, 1, h.m.index.Cursor())

	h.typeText("o")
	assert.Equal(t, 0, h.m.index.Len(), "results for the old term are gone")
	assert.Equal(t, viewstate.FocusInput, h.m.vs.Focus())
}

func TestEscapePriorityAndSurfaceClose(t *testing.T) {
	h := newHarness(t, "overlay")
	h.searcher.hits["notes"] = hits("notes.md")
	h.typeText("notes")
	h.settle()

	h.press(tea.KeyDown)
	h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, h.m.vs.PreviewOpen())
	assert.Equal(t, "notes.md", h.m.preview.Path())

	h.press(tea.KeyEsc)
	assert.False(t, h.m.vs.PreviewOpen())
	assert.Equal(t, StateSearch, h.m.State())

	h.press(tea.KeyEsc)
	assert.Equal(t, StateHidden, h.m.State())
	_, files := itemKinds(h.m.index.Items())
	assert.Zero(t, files)
	assert.Empty(t, h.m.input.Value())
	assert.False(t, h.m.gate.Pending())
}

func TestClosingSurfaceDiscardsInFlightSearch(t *testing.T) {
	h := newHarness(t, "overlay")
	h.searcher.hits["late"] = hits("late.txt")
	h.typeText("late")

	live := h.clock.live()
	require.Len(t, live, 1)
	live[0].f()
	msgs := h.sink.drain()
	require.Len(t, msgs, 1)
	searchCmd := h.send(msgs[0])
	require.NotNil(t, searchCmd)

	h.press(tea.KeyCtrlK)
	require.Equal(t, StateHidden, h.m.State())

	res := searchCmd()
	h.send(res)
	h.press(tea.KeyCtrlK)
	_, files := itemKinds(h.m.index.Items())
	assert.Zero(t, files)
}

func TestBlankingQueryStopsSearchIndicator(t *testing.T) {
	h := newHarness(t, "overlay")
	h.typeText("late")

	live := h.clock.live()
	require.Len(t, live, 1)
	live[0].f()
	msgs := h.sink.drain()
	require.Len(t, msgs, 1)
	searchCmd := h.send(msgs[0])
	require.NotNil(t, searchCmd)
	require.True(t, h.m.activity.Active())

	for i := 0; i < 4; i++ {
		h.press(tea.KeyBackspace)
	}
	require.Empty(t, h.m.input.Value())
	assert.False(t, h.m.loading())
	assert.False(t, h.m.activity.Active(), "indicator clears before the search returns")

	h.send(searchCmd())
	assert.False(t, h.m.activity.Active())
}

func TestLauncherVariantIgnoresToggle(t *testing.T) {
	h := newHarness(t, "launcher")
	h.press(tea.KeyCtrlK)
	assert.Equal(t, StateSearch, h.m.State())
	h.send(msg.ToggleSurface{})
	assert.Equal(t, StateSearch, h.m.State())
}

// -- commands --

func TestSystemCommandsRunLocallyOrPost(t *testing.T) {
	h := newHarness(t, "overlay")

	h.run(h.send(msg.CommandInvoked{Command: testCatalog[4]}))
	assert.Equal(t, []string{"/api/spotify/pause pause"}, h.backend.posted)
	assert.Contains(t, h.m.toasts.Messages(), "/pause done")

	h.send(client.ChatEvent{Message: client.Message{Type: client.MsgUser, Message: "old"}})
	h.typeText("clear conv")
	h.press(tea.KeyDown)
	h.run(h.press(tea.KeyEnter))
	assert.Empty(t, h.m.folded.Pairs)
}

func TestAgentCommandSendsTitle(t *testing.T) {
	h := newHarness(t, "overlay")
	h.typeText("digest")
	h.press(tea.KeyDown)
	h.press(tea.KeyEnter)
	assert.Equal(t, []string{"Summarize my day"}, h.stream.sent)
	assert.Empty(t, h.m.input.Value())
}

func TestTabCompletesHighlightedSlashCommand(t *testing.T) {
	h := newHarness(t, "overlay")
	h.typeText("/sto")
	h.press(tea.KeyDown)
	h.press(tea.KeyTab)
	assert.Equal(t, "/stocks ", h.m.input.Value())
	assert.Equal(t, viewstate.FocusInput, h.m.vs.Focus())
}

// -- settings --

func TestSettingsDraftSurvivesEscapeAndSaves(t *testing.T) {
	h := newHarness(t, "overlay")

	h.press(tea.KeyCtrlS)
	require.Equal(t, StateSettings, h.m.State())
	h.press(tea.KeyRight)
	h.press(tea.KeyEsc)
	assert.Equal(t, StateSearch, h.m.State())

	h.press(tea.KeyCtrlS)
	assert.Equal(t, 225, h.m.settings.Draft().DebounceMS)

	h.run(h.press(tea.KeyEnter))
	assert.Equal(t, StateSearch, h.m.State())
	assert.Equal(t, 225, h.m.cfg.DebounceMS)

	saved, err := config.Load(h.m.profileDir)
	require.NoError(t, err)
	assert.Equal(t, 225, saved.DebounceMS)
}

func TestSettingsShowWhileSurfaceHidden(t *testing.T) {
	h := newHarness(t, "overlay")
	h.press(tea.KeyCtrlS)
	h.press(tea.KeyCtrlK)

	require.False(t, h.m.open)
	assert.Equal(t, StateSettings, h.m.State())
	assert.Contains(t, h.m.View(), "Settings")

	h.press(tea.KeyEsc)
	assert.Equal(t, StateHidden, h.m.State())
}

func TestConfigReloadAppliesVariant(t *testing.T) {
	h := newHarness(t, "overlay")
	cfg := config.Defaults()
	cfg.Variant = "launcher"
	h.send(msg.ConfigReloaded{Config: cfg})
	assert.Equal(t, nav.VariantLauncher, h.m.variant)

	h.send(msg.ConfigReloaded{Err: errors.New("bad toml")})
	assert.Equal(t, nav.VariantLauncher, h.m.variant)
	assert.NotEmpty(t, h.m.toasts.Messages())
}

// -- stream lifecycle --

func TestDroppedStreamReconnectsThenGivesUp(t *testing.T) {
	h := newHarness(t, "overlay")
	h.send(client.StreamConnectedEvent{SessionID: "s"})
	assert.True(t, h.m.status.Connected())

	cmd := h.send(client.StreamDisconnectedEvent{Err: fmt.Errorf("%w: eof", client.ErrDropped)})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, h.stream.reconnects)
	assert.False(t, h.m.status.Connected())
	assert.Zero(t, h.m.events.Len(), "connection changes are not logged")

	h.send(client.StreamReconnectingEvent{Attempt: 3})
	cmd = h.send(client.StreamDisconnectedEvent{Err: errors.New("gave up")})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, h.stream.reconnects)
	assert.Contains(t, h.m.toasts.Messages(), "Chat disconnected")
}

func TestQuitClosesStream(t *testing.T) {
	h := newHarness(t, "overlay")
	cmd := h.press(tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.True(t, h.stream.closed)
}

func TestViewRendersEachState(t *testing.T) {
	h := newHarness(t, "overlay")
	assert.Contains(t, h.m.View(), "Commands")

	h.press(tea.KeyCtrlS)
	assert.Contains(t, h.m.View(), "Settings")

	h.press(tea.KeyEsc)
	h.press(tea.KeyEsc)
	assert.Contains(t, h.m.View(), "ctrl+k")
}
