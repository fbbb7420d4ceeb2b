package suggest

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/iw2rmb/autotab/internal/logx"
	"github.com/iw2rmb/autotab/overlay"
	"github.com/iw2rmb/autotab/pagectx"
	"github.com/iw2rmb/autotab/provider"
	"github.com/iw2rmb/autotab/settings"
	"github.com/iw2rmb/autotab/surface"
)

var errNoProvider = errors.New("no completion provider configured")

// Clock tells the time. Tests replace it to control the pause check.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// PageFunc returns the page shown around target and the row target sits on.
type PageFunc func(target any) (page pagectx.Page, fieldRow int)

// Config configures an Engine. Only Provider is required.
type Config struct {
	Provider  provider.Provider
	Settings  *settings.Store
	Registry  *surface.Registry
	Extractor *pagectx.Extractor
	Page      PageFunc
	KeyMap    *KeyMap
	Styles    *overlay.Styles
	Clock     Clock
	Logger    *log.Logger
}

// Engine drives one Session per surface.
type Engine struct {
	provider  provider.Provider
	settings  *settings.Store
	registry  *surface.Registry
	extractor *pagectx.Extractor
	page      PageFunc
	keys      KeyMap
	styles    *overlay.Styles
	clock     Clock
	log       *log.Logger

	sessions map[any]*Session
	focused  any

	// Sequence numbers are shared by all sessions so that a message for a
	// torn-down session never matches its replacement.
	timerSeq uint64
	reqSeq   uint64
}

func New(cfg Config) *Engine {
	e := &Engine{
		provider:  cfg.Provider,
		settings:  cfg.Settings,
		registry:  cfg.Registry,
		extractor: cfg.Extractor,
		page:      cfg.Page,
		keys:      DefaultKeyMap(),
		styles:    cfg.Styles,
		clock:     cfg.Clock,
		log:       logx.OrDiscard(cfg.Logger).WithPrefix("suggest"),
		sessions:  map[any]*Session{},
	}
	if cfg.KeyMap != nil {
		e.keys = *cfg.KeyMap
	}
	if e.provider == nil {
		e.provider = provider.Func(func(context.Context, provider.Request) (provider.Result, error) {
			return provider.Result{}, &provider.ConfigError{Backend: "autotab", Err: errNoProvider}
		})
	}
	if e.settings == nil {
		e.settings = settings.NewStore(settings.Defaults())
	}
	if e.registry == nil {
		e.registry = surface.NewRegistry(e.Notify)
	}
	if e.extractor == nil {
		e.extractor = &pagectx.Extractor{Logger: e.log}
	}
	if e.clock == nil {
		e.clock = ClockFunc(time.Now)
	}
	return e
}

// Registry returns the adapter registry used to resolve targets.
func (e *Engine) Registry() *surface.Registry { return e.registry }

// KeyMap returns the active key bindings.
func (e *Engine) KeyMap() KeyMap { return e.keys }

// Session is the lifecycle of one surface.
type Session struct {
	id   string
	key  any
	surf surface.Surface
	view *overlay.Renderer

	state    State
	timer    uint64
	inflight uint64
	loading  uint64

	hasTyped    bool
	lastInputAt time.Time
	acceptedAt  time.Time

	sug *Suggestion
}

func (s *Session) ID() string                  { return s.id }
func (s *Session) State() State                { return s.state }
func (s *Session) Surface() surface.Surface    { return s.surf }
func (s *Session) Renderer() *overlay.Renderer { return s.view }
func (s *Session) AcceptedAt() time.Time       { return s.acceptedAt }

// Suggestion returns the live suggestion, or nil.
func (s *Session) Suggestion() *Suggestion { return s.sug }

// HasTypedSinceCompletion reports whether the user typed since the last
// acceptance or dismissal.
func (s *Session) HasTypedSinceCompletion() bool { return s.hasTyped }

type debounceMsg struct {
	target any
	seq    uint64
}

type completionMsg struct {
	target any
	seq    uint64
	origin surface.Snapshot
	res    provider.Result
	err    error
}

type errorExpiredMsg struct {
	target any
	token  uint64
}

func keyable(target any) bool {
	t := reflect.TypeOf(target)
	return t != nil && t.Comparable()
}

// Session returns the session of target, or nil.
func (e *Engine) Session(target any) *Session {
	if !keyable(target) {
		return nil
	}
	return e.sessions[target]
}

// open returns the session of target, creating it when an adapter supports
// target.
func (e *Engine) open(target any) *Session {
	if s := e.Session(target); s != nil {
		return s
	}
	if !keyable(target) {
		return nil
	}
	surf, err := e.registry.Resolve(target)
	if err != nil {
		e.log.Debug("ignoring target", "err", err)
		return nil
	}
	set := e.settings.Get()
	hints := e.keys.Hints()
	s := &Session{
		id:       uuid.NewString(),
		key:      target,
		surf:     surf,
		view:     overlay.NewRenderer(overlay.Config{Mode: modeOf(set), Styles: e.styles, Hints: &hints}),
		hasTyped: true,
	}
	e.sessions[target] = s
	e.log.Debug("session opened", "session", s.id, "kind", surf.Kind())
	return s
}

// Focus makes target the focused surface, tearing down the previously
// focused one. It reports false when no adapter supports target.
func (e *Engine) Focus(target any) bool {
	if cur := e.Session(e.focused); cur != nil && cur.key == target {
		return true
	}
	e.Blur()
	s := e.open(target)
	if s == nil {
		return false
	}
	e.focused = s.key
	return true
}

// Focused returns the focused target, or nil.
func (e *Engine) Focused() any { return e.focused }

// Blur tears down the focused session: its overlay, timer and in-flight
// request are dropped.
func (e *Engine) Blur() {
	if s := e.Session(e.focused); s != nil {
		e.teardown(s)
	}
	e.focused = nil
}

// Forget tears down the session of target, focused or not.
func (e *Engine) Forget(target any) {
	s := e.Session(target)
	if s == nil {
		return
	}
	if s.key == e.focused {
		e.focused = nil
	}
	e.teardown(s)
}

func (e *Engine) teardown(s *Session) {
	e.drop(s)
	e.cancel(s)
	s.view.Remove()
	s.view.ClearStatus()
	delete(e.sessions, s.key)
	e.log.Debug("session closed", "session", s.id)
}

// State returns the state of target's session, Idle when there is none.
func (e *Engine) State(target any) State {
	if s := e.Session(target); s != nil {
		return s.state
	}
	return Idle
}

// Pending returns the live suggestion for target, or nil.
func (e *Engine) Pending(target any) *Suggestion {
	if s := e.Session(target); s != nil {
		return s.sug
	}
	return nil
}

// Notify is a surface.Notifier. Programmatic changes are fed to Input so the
// shown suggestion follows them.
func (e *Engine) Notify(ev surface.ChangeEvent) {
	if ev.Source != surface.SourceProgrammatic {
		return
	}
	e.Input(InputEvent{Target: ev.Target, Kind: InputProgrammatic})
}

// Input handles a change to the text of ev.Target. The returned command
// starts the debounce timer when a new completion should be requested.
func (e *Engine) Input(ev InputEvent) tea.Cmd {
	var s *Session
	if ev.Kind.User() {
		s = e.open(ev.Target)
	} else {
		s = e.Session(ev.Target)
	}
	if s == nil {
		return nil
	}

	set := e.settings.Get()
	if ev.Kind.User() {
		s.hasTyped = true
		s.lastInputAt = e.clock.Now()
		if st, ok := s.view.Status(); ok && st.Kind == overlay.StatusError {
			s.view.ClearStatus()
		}
	}

	snap := s.surf.Read()
	if s.sug != nil {
		m := s.sug.Match(snap, set.MatchPolicy)
		if m.Live() {
			e.present(s, snap, m, set)
			return nil
		}
		e.log.Debug("suggestion left", "session", s.id, "exhausted", m.Exhausted(), "kind", ev.Kind)
		e.drop(s)
	}

	if !ev.Kind.User() {
		return nil
	}
	if !set.Enabled || strings.TrimSpace(snap.Text) == "" || !s.hasTyped {
		e.cancel(s)
		return nil
	}

	e.cancel(s)
	e.timerSeq++
	s.timer = e.timerSeq
	s.state = AwaitingDebounce

	target, seq := s.key, s.timer
	return tea.Tick(set.Debounce(), func(time.Time) tea.Msg {
		return debounceMsg{target: target, seq: seq}
	})
}

// Update handles the engine's own messages: debounce timers, provider
// results and error expiry. Other messages are ignored.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		s := e.Session(msg.target)
		if s == nil || s.timer != msg.seq || s.state != AwaitingDebounce {
			return nil
		}
		s.timer = 0
		return e.request(s)

	case completionMsg:
		return e.complete(msg)

	case errorExpiredMsg:
		if s := e.Session(msg.target); s != nil {
			s.view.ClearStatusIf(msg.token)
		}
	}
	return nil
}

func (e *Engine) request(s *Session) tea.Cmd {
	set := e.settings.Get()
	if set.WaitForPause && e.clock.Now().Sub(s.lastInputAt) < set.Debounce() {
		e.log.Debug("still typing, skipping request", "session", s.id)
		s.state = Idle
		return nil
	}

	snap := s.surf.Read()
	if !set.Enabled || strings.TrimSpace(snap.Text) == "" {
		s.state = Idle
		return nil
	}

	req := provider.Request{
		Text:        snap.Text,
		Cursor:      snap.Cursor,
		Context:     e.context(s, snap),
		Temperature: set.ModelTemperature,
	}

	e.reqSeq++
	s.inflight = e.reqSeq
	s.state = RequestInFlight
	if set.ShowLoading {
		s.loading = s.view.SetStatus(overlay.Loading())
	}
	e.log.Debug("requesting completion", "session", s.id, "seq", s.inflight, "cursor", snap.Cursor)

	p, timeout, target, seq := e.provider, set.Timeout(), s.key, s.inflight
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(context.Background(), timeout)
		}
		defer cancel()
		res, err := p.Complete(ctx, req)
		return completionMsg{target: target, seq: seq, origin: snap, res: res, err: err}
	}
}

func (e *Engine) context(s *Session, snap surface.Snapshot) pagectx.Snapshot {
	var (
		page pagectx.Page
		row  int
	)
	if e.page != nil {
		page, row = e.page(s.key)
	}
	caretRow, _, _ := surface.Caret(snap)
	return e.extractor.Extract(page, surface.Describe(s.surf), row+caretRow)
}

func (e *Engine) complete(msg completionMsg) tea.Cmd {
	s := e.Session(msg.target)
	if s == nil || s.inflight == 0 || msg.seq != s.inflight || s.state != RequestInFlight {
		e.log.Debug("dropping stale completion", "seq", msg.seq)
		return nil
	}
	s.inflight = 0
	e.clearLoading(s)
	s.state = Idle

	if msg.err != nil {
		return e.fail(s, msg.err)
	}
	text := strings.TrimRightFunc(msg.res.Completion, unicode.IsSpace)
	if strings.TrimSpace(text) == "" {
		e.log.Debug("empty completion", "session", s.id)
		return nil
	}

	set := e.settings.Get()
	lastWord := strings.TrimSpace(msg.res.LastWord)
	e.drop(s)
	s.sug = &Suggestion{
		ID:           uuid.NewString(),
		Text:         text,
		LastWord:     lastWord,
		Alternatives: FilterAlternatives(text, lastWord, msg.res.Alternatives),
		Confidence:   msg.res.Confidence,
		Origin:       msg.origin,
	}
	s.state = SuggestionActive

	snap := s.surf.Read()
	m := s.sug.Match(snap, set.MatchPolicy)
	if !m.Live() {
		e.log.Debug("completion already passed", "session", s.id)
		e.drop(s)
		return nil
	}
	e.log.Debug("suggestion shown", "session", s.id, "suggestion", s.sug.ID, "alternatives", len(s.sug.Alternatives))
	e.present(s, snap, m, set)
	return nil
}

func (e *Engine) fail(s *Session, err error) tea.Cmd {
	if provider.IsConfigError(err) {
		e.log.Warn("completion provider misconfigured", "session", s.id, "err", err)
		s.view.SetStatus(overlay.Error(err.Error(), true))
		return nil
	}
	e.log.Warn("completion request failed", "session", s.id, "err", err)
	token := s.view.SetStatus(overlay.Error(err.Error(), false))
	target := s.key
	return tea.Tick(e.settings.Get().ErrorTTL(), func(time.Time) tea.Msg {
		return errorExpiredMsg{target: target, token: token}
	})
}

// present shows m, refreshing the current overlay when there is one.
func (e *Engine) present(s *Session, snap surface.Snapshot, m Match, set settings.Settings) {
	s.view.SetMode(modeOf(set))
	c := overlay.Content{Remaining: m.Remaining}
	if !set.UseGhostText {
		c.Alternatives = make([]string, len(s.sug.Alternatives))
		for i := range s.sug.Alternatives {
			c.Alternatives[i] = s.sug.AlternativeRemaining(snap, i, set.MatchPolicy)
		}
	}
	if s.view.Update(c) {
		return
	}
	target := s.key
	s.view.Show(c, func(msg tea.KeyMsg) (bool, tea.Cmd) {
		return e.onKey(target, msg)
	})
}

// drop destroys the suggestion and its overlay.
func (e *Engine) drop(s *Session) {
	s.view.Remove()
	s.sug = nil
	if s.state == SuggestionActive {
		s.state = Idle
	}
}

// cancel invalidates the debounce timer and the in-flight request.
func (e *Engine) cancel(s *Session) {
	s.timer = 0
	s.inflight = 0
	e.clearLoading(s)
	if s.state == AwaitingDebounce || s.state == RequestInFlight {
		s.state = Idle
	}
}

func (e *Engine) clearLoading(s *Session) {
	if s.loading != 0 {
		s.view.ClearStatusIf(s.loading)
		s.loading = 0
	}
}

// HandleKey routes a key press to the focused session. It reports whether the
// key was consumed; Enter is never consumed.
func (e *Engine) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	s := e.Session(e.focused)
	if s == nil {
		return false, nil
	}
	if msg.Type == tea.KeyEnter {
		e.dismiss(s, ReasonEnter)
		return false, nil
	}
	return s.view.Keys().Dispatch(msg)
}

func (e *Engine) onKey(target any, msg tea.KeyMsg) (bool, tea.Cmd) {
	s := e.Session(target)
	if s == nil || s.sug == nil {
		return false, nil
	}
	set := e.settings.Get()

	switch {
	case key.Matches(msg, e.keys.Accept):
		e.commit(s, s.sug.Accept(s.surf.Read(), set.MatchPolicy))
		return true, nil
	case key.Matches(msg, e.keys.AcceptWord):
		e.acceptWord(s, set)
		return true, nil
	case key.Matches(msg, e.keys.Dismiss):
		e.dismiss(s, ReasonEscape)
		return true, nil
	}

	if set.UseGhostText {
		return false, nil
	}
	for i, b := range e.keys.Alternatives {
		if !key.Matches(msg, b) {
			continue
		}
		ed, ok := s.sug.AcceptAlternative(s.surf.Read(), i, set.MatchPolicy)
		if !ok {
			return false, nil
		}
		e.commit(s, ed)
		return true, nil
	}
	return false, nil
}

// commit writes an accepted edit and ends the suggestion.
func (e *Engine) commit(s *Session, ed Edit) {
	e.log.Debug("accepted", "session", s.id, "inserted", ed.Inserted)
	s.hasTyped = false
	s.acceptedAt = e.clock.Now()
	e.drop(s)
	e.cancel(s)
	if err := s.surf.Write(ed.Text, ed.Cursor); err != nil {
		e.log.Warn("writing accepted text", "session", s.id, "err", err)
	}
}

func (e *Engine) acceptWord(s *Session, set settings.Settings) {
	ed, next := s.sug.AcceptWord(s.surf.Read(), set.MatchPolicy)
	if next == nil {
		e.commit(s, ed)
		return
	}
	e.log.Debug("accepted word", "session", s.id, "inserted", ed.Inserted)
	s.hasTyped = false
	s.acceptedAt = e.clock.Now()
	e.cancel(s)
	s.sug = next
	s.state = SuggestionActive
	if err := s.surf.Write(ed.Text, ed.Cursor); err != nil {
		e.log.Warn("writing accepted word", "session", s.id, "err", err)
	}

	snap := s.surf.Read()
	if m := s.sug.Match(snap, set.MatchPolicy); m.Live() {
		e.present(s, snap, m, set)
		return
	}
	e.drop(s)
}

// Dismiss ends the focused session's suggestion. Enter, navigation and
// submit leave it alone while the user is typing mid-word through it.
// Escape and blur always dismiss, typing through or not. It reports whether
// the suggestion state was reset.
func (e *Engine) Dismiss(r Reason) bool {
	s := e.Session(e.focused)
	if s == nil {
		return false
	}
	if r == ReasonBlur {
		e.Blur()
		return true
	}
	return e.dismiss(s, r)
}

// Navigate dismisses for a click on a button or link.
func (e *Engine) Navigate() bool { return e.Dismiss(ReasonNavigate) }

// Submit dismisses for a form submission.
func (e *Engine) Submit() bool { return e.Dismiss(ReasonSubmit) }

func (e *Engine) dismiss(s *Session, r Reason) bool {
	set := e.settings.Get()
	if r.yields() && s.sug != nil && typingThrough(s.sug, s.surf.Read(), set.MatchPolicy) {
		e.log.Debug("dismissal ignored while typing suggestion", "session", s.id, "reason", r)
		return false
	}
	if s.sug != nil {
		e.log.Debug("dismissed", "session", s.id, "reason", r)
	}
	e.drop(s)
	e.cancel(s)
	s.hasTyped = false
	return true
}

// typingThrough reports whether the user has typed into the suggestion and
// is mid-word on it.
func typingThrough(sug *Suggestion, snap surface.Snapshot, policy string) bool {
	if snap == sug.Origin || !ProgressOf(snap).IsPartialWord {
		return false
	}
	return sug.Match(snap, policy).Live()
}

// View draws the focused session's overlays over base.
func (e *Engine) View(base string, f overlay.Frame) string {
	s := e.Session(e.focused)
	if s == nil {
		return base
	}
	row, _, before := surface.Caret(s.surf.Read())
	f.Caret = overlay.Caret{Row: row, Before: before}
	return s.view.Render(base, f)
}

func modeOf(set settings.Settings) overlay.Mode {
	if set.UseGhostText {
		return overlay.ModeGhost
	}
	return overlay.ModeTooltip
}
