// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front end: a four-field search
// form above a results pane with one tab per record category.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/trait-explorer/internal/display"
	"github.com/pdiddy/trait-explorer/internal/form"
	"github.com/pdiddy/trait-explorer/internal/lifecycle"
	"github.com/pdiddy/trait-explorer/internal/notify"
	"github.com/pdiddy/trait-explorer/internal/query"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

const (
	title    = "Gene Trait Explorer"
	subtitle = "Discover genes, QTLs, and markers associated with specific traits across various crops and geographies"

	failedMessage = "The search could not be completed. Adjust the parameters and press enter to try again."
	helpLine      = "tab/shift+tab: move • enter: search • ←/→ or 1-3: switch results • esc: quit"
)

// Input field order.
const (
	fieldCrop = iota
	fieldVariety
	fieldTrait
	fieldGeography
	fieldCount

	// focusResults is the focus index of the results pane.
	focusResults = fieldCount
)

var fieldLabels = [fieldCount]string{"Crop", "Variety", "Trait", "Geography"}

var fieldPlaceholders = [fieldCount]string{
	"e.g. Rice, Wheat, Maize",
	"e.g. IR64, Basmati",
	"e.g. Drought tolerance, Salt tolerance",
	"e.g. South Asia, Sub-Saharan Africa",
}

// searchDoneMsg reports that the request for ticket finished; applied is
// false when a newer request superseded it.
type searchDoneMsg struct {
	ticket  lifecycle.Ticket
	applied bool
}

// session is shared by every copy of Model. The form callback records the
// ticket of an accepted submission here.
type session struct {
	ticket  lifecycle.Ticket
	started bool
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	spinner  lipgloss.Style
	info     lipgloss.Style
	alert    lipgloss.Style
	help     lipgloss.Style
	failed   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		label:    lipgloss.NewStyle().Width(11),
		focused:  lipgloss.NewStyle().Width(11).Foreground(lipgloss.Color("#8BC34A")).Bold(true),
		spinner:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		info:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		alert:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		failed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}

// Model is the bubbletea model for the explorer.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	inputs   [fieldCount]textinput.Model
	focus    int
	spinner  spinner.Model
	viewport viewport.Model
	results  display.Styles
	styles   styles
	tab      display.Tab

	form     *form.Form
	ctrl     *lifecycle.Controller
	session  *session
	notes    *notify.Recorder
	quitting bool
}

// New builds a model that searches svc. Notifications are shown in the
// status line and also forwarded to n, which may be nil.
func New(ctx context.Context, svc query.Service, n notify.Notifier) Model {
	ctx, cancel := context.WithCancel(ctx)

	notes := &notify.Recorder{}
	notifier := notify.Multi(notes, n)
	ctrl := lifecycle.New(svc, notifier, nil)
	sess := &session{}
	f := form.New(func(p types.SearchParams) {
		sess.ticket = ctrl.Begin(p)
		sess.started = true
	}, notifier)

	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.Prompt = "│ "
		ti.CharLimit = 120
		ti.Width = 48
		inputs[i] = ti
	}
	inputs[fieldCrop].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	st := defaultStyles()
	sp.Style = st.spinner

	return Model{
		ctx:      ctx,
		cancel:   cancel,
		inputs:   inputs,
		spinner:  sp,
		viewport: viewport.New(80, 16),
		results:  display.NewStyles(lipgloss.DefaultRenderer()),
		styles:   st,
		form:     f,
		ctrl:     ctrl,
		session:  sess,
		notes:    notes,
	}
}

// Controller exposes the lifecycle controller driving the model.
func (m Model) Controller() *lifecycle.Controller { return m.ctrl }

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, search completions, and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		if h := msg.Height - 16; h > 3 {
			m.viewport.Height = h
		}
		m.refreshResults()
		return m, nil

	case searchDoneMsg:
		if msg.applied && m.ctrl.Snapshot().State == lifecycle.Loaded {
			m.tab = display.Genes
			m.setFocus(focusResults)
		}
		m.refreshResults()
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	case "tab", "down":
		if msg.String() == "down" && m.focus == focusResults {
			break
		}
		m.setFocus((m.focus + 1) % (fieldCount + 1))
		return m, nil
	case "shift+tab", "up":
		if msg.String() == "up" && m.focus == focusResults {
			break
		}
		m.setFocus((m.focus + fieldCount) % (fieldCount + 1))
		return m, nil
	case "enter":
		return m.submit()
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.Snapshot().State != lifecycle.Loaded {
		return m, nil
	}
	switch msg.String() {
	case "right", "l":
		m.tab = m.tab.Next()
	case "left", "h":
		m.tab = m.tab.Prev()
	case "1":
		m.tab = display.Genes
	case "2":
		m.tab = display.QTLs
	case "3":
		m.tab = display.Markers
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.refreshResults()
	return m, nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= fieldCount {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit hands the field values to the form. An accepted submission starts
// the spinner and a search command for the new ticket.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.form.SetParams(m.params())
	m.session.started = false
	if err := m.form.Submit(m.ctrl.IsLoading()); err != nil || !m.session.started {
		return m, nil
	}
	m.refreshResults()
	return m, tea.Batch(m.spinner.Tick, m.search(m.session.ticket))
}

// search runs the query for t off the update loop.
func (m Model) search(t lifecycle.Ticket) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return searchDoneMsg{ticket: t, applied: ctrl.Execute(ctx, t)}
	}
}

func (m Model) params() types.SearchParams {
	return types.SearchParams{
		Crop:      m.inputs[fieldCrop].Value(),
		Variety:   m.inputs[fieldVariety].Value(),
		Trait:     m.inputs[fieldTrait].Value(),
		Geography: m.inputs[fieldGeography].Value(),
	}
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// refreshResults loads the selected category into the viewport.
func (m *Model) refreshResults() {
	snap := m.ctrl.Snapshot()
	if !snap.HasResult {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.results.Category(snap.Result, m.tab))
	m.viewport.GotoTop()
}

// View renders the form, the state-dependent body, and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(title) + "\n")
	b.WriteString(m.styles.subtitle.Render(subtitle) + "\n\n")

	for i, in := range m.inputs {
		label := m.styles.label
		if i == m.focus {
			label = m.styles.focused
		}
		b.WriteString(label.Render(fieldLabels[i]) + in.View() + "\n")
	}
	b.WriteString("\n")

	snap := m.ctrl.Snapshot()
	switch snap.State {
	case lifecycle.Idle:
		b.WriteString(display.IdleMessage + "\n")
	case lifecycle.Loading:
		b.WriteString(m.spinner.View() + " " + display.LoadingMessage + "\n")
	case lifecycle.Failed:
		b.WriteString(m.styles.failed.Render(failedMessage) + "\n")
	case lifecycle.Loaded:
		b.WriteString(m.results.Header(snap.Result) + "\n\n")
		b.WriteString(m.results.TabBar(snap.Result, m.tab) + "\n\n")
		b.WriteString(m.viewport.View() + "\n")
	}

	b.WriteString("\n" + m.statusLine() + "\n")
	b.WriteString(m.styles.help.Render(helpLine))
	return b.String()
}

func (m Model) statusLine() string {
	n, ok := m.notes.Last()
	if !ok {
		return ""
	}
	if n.Category.Severity() == notify.SeverityInfo {
		return m.styles.info.Render(n.String())
	}
	return m.styles.alert.Render(n.String())
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, svc query.Service, n notify.Notifier) error {
	m := New(ctx, svc, n)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	m.cancel()
	return err
}
