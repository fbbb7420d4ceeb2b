package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iw2rmb/autotab/buffer"
	"github.com/iw2rmb/autotab/internal/logx"
	"github.com/iw2rmb/autotab/overlay"
	"github.com/iw2rmb/autotab/pagectx"
	"github.com/iw2rmb/autotab/provider"
	"github.com/iw2rmb/autotab/settings"
	"github.com/iw2rmb/autotab/suggest"
	"github.com/iw2rmb/autotab/surface"
)

const (
	demoTitle       = "Compose a message"
	demoDescription = "Type in any field; suggestions appear after a pause."
	messageHeight   = 5
	notesHeight     = 4
)

func newDemoCmd(g *globalFlags) *cobra.Command {
	var ghost bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an interactive form with inline suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("demo needs an interactive terminal")
			}
			path, err := g.settingsPath()
			if err != nil {
				return err
			}
			s, err := settings.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ghost") {
				s.UseGhostText = ghost
			}
			logger, closer, err := g.logger()
			if err != nil {
				return err
			}
			defer closer.Close()

			ext := &pagectx.Extractor{Logger: logger}
			hook, err := contextHook(path, s)
			if err != nil {
				return err
			}
			if hook != nil {
				defer hook.Close()
				ext.Hook = hook
			}

			st := settings.NewStore(s)
			cancel := st.Subscribe(func(s settings.Settings) {
				logger.Info("settings changed", "provider", s.Provider, "enabled", s.Enabled, "ghost", s.UseGhostText)
			})
			defer cancel()
			if err := settings.Watch(cmd.Context(), path, st, logger); err != nil {
				logger.Warn("settings reload disabled", "path", path, "err", err)
			}

			m := newDemoModel(st, newProviders(logger).dynamic(st), ext, logger)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run demo: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ghost, "ghost", false, "show ghost text instead of a tooltip")
	return cmd
}

type demoStyles struct {
	title  lipgloss.Style
	desc   lipgloss.Style
	label  lipgloss.Style
	active lipgloss.Style
	cursor lipgloss.Style
	help   lipgloss.Style
}

func newDemoStyles() demoStyles {
	return demoStyles{
		title:  lipgloss.NewStyle().Bold(true),
		desc:   lipgloss.NewStyle().Faint(true),
		label:  lipgloss.NewStyle().Faint(true),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"}),
		cursor: lipgloss.NewStyle().Reverse(true),
		help:   lipgloss.NewStyle().Faint(true),
	}
}

// field is one labelled control of the form.
type field struct {
	label  string
	target any
	height int
}

type demoModel struct {
	subject *textinput.Model
	message *textarea.Model
	notes   *buffer.Buffer

	fields []field
	focus  int

	engine *suggest.Engine
	styles demoStyles
	log    *log.Logger

	width, height int
	submitted     string
}

func newDemoModel(st *settings.Store, p provider.Provider, ext *pagectx.Extractor, logger *log.Logger) *demoModel {
	subject := textinput.New()
	subject.Prompt = ""
	subject.Placeholder = "What is this about?"

	message := textarea.New()
	message.Prompt = ""
	message.ShowLineNumbers = false
	message.Placeholder = "Write your message"
	message.SetHeight(messageHeight)

	m := &demoModel{
		subject: &subject,
		message: &message,
		notes:   buffer.New("", buffer.Options{HistoryLimit: 200}),
		styles:  newDemoStyles(),
		log:     logx.OrDiscard(logger),
	}
	m.fields = []field{
		{label: "Subject", target: m.subject, height: 1},
		{label: "Message", target: m.message, height: messageHeight},
		{label: "Notes", target: m.notes, height: notesHeight},
	}

	m.engine = suggest.New(suggest.Config{
		Provider:  p,
		Settings:  st,
		Extractor: ext,
		Page:      m.page,
		Logger:    logger,
	})
	reg := m.engine.Registry()
	reg.Describe(m.subject, surface.FieldInfo{Label: "Subject", Name: "subject", Placeholder: subject.Placeholder, Type: "text"})
	reg.Describe(m.message, surface.FieldInfo{Label: "Message", Name: "message", Placeholder: message.Placeholder, Type: "textarea"})
	reg.Describe(m.notes, surface.FieldInfo{Label: "Notes", Name: "notes"})

	m.setFocus(0)
	return m
}

func (m *demoModel) Init() tea.Cmd { return textinput.Blink }

func (m *demoModel) setFocus(i int) {
	n := len(m.fields)
	m.focus = ((i % n) + n) % n
	m.subject.Blur()
	m.message.Blur()
	switch m.fields[m.focus].target {
	case m.subject:
		m.subject.Focus()
	case m.message:
		m.message.Focus()
	}
	m.engine.Focus(m.fields[m.focus].target)
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := m.engine.Update(msg); cmd != nil {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := max(msg.Width-2, 10)
		m.subject.Width = w
		m.message.SetWidth(w)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if ok, cmd := m.engine.HandleKey(msg); ok {
			return m, cmd
		}
		switch msg.String() {
		case "tab":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+s":
			m.engine.Submit()
			m.submitted = strings.TrimSpace(m.subject.Value())
			m.log.Info("form submitted", "subject", m.submitted)
			return m, nil
		}
		return m, m.forward(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	*m.subject, cmd = m.subject.Update(msg)
	cmds = append(cmds, cmd)
	*m.message, cmd = m.message.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// forward sends a key to the focused field and reports the resulting change
// to the engine.
func (m *demoModel) forward(msg tea.KeyMsg) tea.Cmd {
	target := m.fields[m.focus].target
	s, err := m.engine.Registry().Resolve(target)
	if err != nil {
		return nil
	}
	before := s.Read()

	var cmd tea.Cmd
	switch target {
	case m.subject:
		*m.subject, cmd = m.subject.Update(msg)
	case m.message:
		*m.message, cmd = m.message.Update(msg)
	case m.notes:
		editBuffer(m.notes, msg)
	}

	after := s.Read()
	switch {
	case after.Text != before.Text:
		kind, ok := suggest.KindOf(msg)
		if !ok {
			kind = suggest.InputInsertText
		}
		return tea.Batch(cmd, m.engine.Input(suggest.InputEvent{Target: target, Kind: kind}))
	case after.Cursor != before.Cursor:
		m.engine.Navigate()
	}
	return cmd
}

// editBuffer applies a key press to the notes buffer.
func editBuffer(b *buffer.Buffer, msg tea.KeyMsg) {
	switch msg.String() {
	case "left":
		b.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft})
	case "right":
		b.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight})
	case "alt+left", "ctrl+left":
		b.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case "alt+right", "ctrl+right":
		b.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case "up":
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case "down":
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})
	case "home", "ctrl+a":
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case "end", "ctrl+e":
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case "backspace":
		b.DeleteBackward()
	case "delete":
		b.DeleteForward()
	case "enter":
		b.InsertNewline()
	case "ctrl+z":
		b.Undo()
	case "ctrl+y":
		b.Redo()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			b.InsertText(string(msg.Runes))
		}
	}
}

// layout is the position of every line of the form. Page context and
// overlay placement are both derived from it.
type layout struct {
	lines []string
	rows  map[any]int
}

func (m *demoModel) layout(render bool) layout {
	l := layout{rows: map[any]int{}}
	add := func(s ...string) { l.lines = append(l.lines, s...) }

	if render {
		add(m.styles.title.Render(demoTitle), m.styles.desc.Render(demoDescription))
	} else {
		add(demoTitle, demoDescription)
	}
	for i, f := range m.fields {
		add("")
		label := f.label
		if render {
			if i == m.focus {
				label = m.styles.active.Render(label)
			} else {
				label = m.styles.label.Render(label)
			}
		}
		add(label)
		l.rows[f.target] = len(l.lines)
		add(padLines(m.fieldLines(f, render), f.height)...)
	}
	return l
}

func (m *demoModel) fieldLines(f field, render bool) []string {
	switch f.target {
	case m.subject:
		if render {
			return []string{m.subject.View()}
		}
		return []string{m.subject.Value()}
	case m.message:
		if render {
			return strings.Split(m.message.View(), "\n")
		}
		return strings.Split(m.message.Value(), "\n")
	case m.notes:
		if render {
			return m.renderNotes()
		}
		return strings.Split(m.notes.Text(), "\n")
	}
	return nil
}

func (m *demoModel) renderNotes() []string {
	cur := m.notes.Cursor()
	focused := m.fields[m.focus].target == m.notes
	out := make([]string, 0, m.notes.LineCount())
	for row := 0; row < m.notes.LineCount(); row++ {
		line := m.notes.Line(row)
		if !focused || row != cur.Row {
			out = append(out, line)
			continue
		}
		r := []rune(line)
		col := min(cur.Col, len(r))
		under, rest := " ", ""
		if col < len(r) {
			under, rest = string(r[col]), string(r[col+1:])
		}
		out = append(out, string(r[:col])+m.styles.cursor.Render(under)+rest)
	}
	return out
}

func padLines(lines []string, n int) []string {
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

// page is the engine's PageFunc.
func (m *demoModel) page(target any) (pagectx.Page, int) {
	l := m.layout(false)
	row, ok := l.rows[target]
	if !ok {
		row = -1
	}
	return pagectx.Page{Title: demoTitle, Description: demoDescription, Lines: l.lines}, row
}

func (m *demoModel) View() string {
	l := m.layout(true)
	f := m.fields[m.focus]

	status := m.engine.State(f.target).String()
	if m.submitted != "" {
		status += " · submitted " + fmt.Sprintf("%q", m.submitted)
	}
	help := m.styles.help.Render("tab/shift+tab switch field · ctrl+s submit · ctrl+c quit · " + status)
	base := strings.Join(append(l.lines, "", help), "\n")

	frame := overlay.Frame{
		Viewport: overlay.Size{Width: m.width, Height: m.height},
		Field:    overlay.Rect{X: 0, Y: l.rows[f.target], Width: max(m.width, 1), Height: f.height},
		Metrics:  overlay.Metrics{CursorCells: 1, ScrollY: m.scrollY(f)},
	}
	return m.engine.View(base, frame)
}

// scrollY is how many rows of f are scrolled above its visible area.
func (m *demoModel) scrollY(f field) int {
	switch f.target {
	case m.message:
		return max(m.message.Line()-f.height+1, 0)
	case m.notes:
		return max(m.notes.LineCount()-f.height, 0)
	}
	return 0
}
