// Package tui provides a Bubble Tea terminal user interface for discography-sync.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/discography-sync/internal/config"
	"github.com/handiism/discography-sync/internal/discography"
	"github.com/handiism/discography-sync/internal/model"
	"github.com/handiism/discography-sync/internal/resolve"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	yearStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	releaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateSyncing
	StateComplete
	StateError
)

// maxLogs is the number of progress lines kept on screen.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   resolve.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	data      model.DiscographyData
	err       error

	// Sync context
	ctx    context.Context
	cancel context.CancelFunc

	// Pipeline reference, polled for image progress
	pipeline *discography.Pipeline
	events   chan resolve.ProgressEvent
	run      int

	// Image progress
	resolvedImages int32
	failedImages   int32
	totalImages    int32
	receivedBytes  int64

	// Options
	skipImages bool
	verbose    bool

	// Result view scroll position
	offset int

	width  int
	height int
}

// NewModel creates a new TUI model. The input is prefilled with the
// configured source.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "Spreadsheet id, 2PACX-... published id or CSV URL"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	switch {
	case settings.CSVURL != "":
		ti.SetValue(settings.CSVURL)
	case settings.SpreadsheetID != "":
		ti.SetValue(settings.SpreadsheetID)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		height:    24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every pipeline progress event.
	ProgressMsg struct {
		Event resolve.ProgressEvent
	}

	// SyncDoneMsg is sent when the pipeline run returns.
	SyncDoneMsg struct {
		Run  int
		Data model.DiscographyData
		Err  error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateSyncing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.events = make(chan resolve.ProgressEvent, 64)
				pipeline, err := m.newPipeline()
				if err != nil {
					m.state = StateError
					m.err = err
					return m, nil
				}
				m.state = StateSyncing
				m.pipeline = pipeline
				m.run++
				return m, tea.Batch(m.startSync(), waitForEvent(m.events), m.spinner.Tick, m.tickProgress())
			}

		// Option toggles must not reach the text input: it binds tab to
		// suggestions and ctrl+v to paste.
		case "tab":
			if m.state == StateInput {
				m.skipImages = !m.skipImages
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "up", "k":
			if m.state == StateComplete && m.offset > 0 {
				m.offset--
			}

		case "down", "j":
			if m.state == StateComplete && m.offset < m.maxOffset() {
				m.offset++
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new sync
				m.state = StateInput
				m.logs = nil
				m.data = nil
				m.err = nil
				m.offset = 0
				m.resolvedImages = 0
				m.failedImages = 0
				m.totalImages = 0
				m.receivedBytes = 0
				m.pipeline = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.events))
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == resolve.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case SyncDoneMsg:
		if msg.Run != m.run || m.state != StateSyncing {
			// A cancelled or replaced run finished late.
			break
		}
		m.pollProgress()
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.data = msg.Data
		}

	case TickMsg:
		if m.pipeline != nil && m.state == StateSyncing {
			m.pollProgress()

			var percent float64
			if m.totalImages > 0 {
				percent = float64(m.resolvedImages+m.failedImages) / float64(m.totalImages)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) pollProgress() {
	if m.pipeline == nil {
		return
	}
	resolved, failed, total, bytes := m.pipeline.Resolver().Progress()
	m.resolvedImages = resolved
	m.failedImages = failed
	m.totalImages = total
	m.receivedBytes = bytes
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent relays the next pipeline event into the update loop.
func waitForEvent(events <-chan resolve.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("💿 Discography Sync"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Sync a discography sheet and its cover art"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateSyncing:
		b.WriteString(m.viewSyncing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter spreadsheet:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	skipCheck := "[ ]"
	if m.skipImages {
		skipCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Skip cover art downloads (tab)\n", skipCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Cache directory: %s", m.settings.CacheDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSyncing() string {
	var b strings.Builder

	if m.totalImages == 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Fetching discography..."))
		b.WriteString("\n\n")
	} else {
		var percent float64
		if m.totalImages > 0 {
			percent = float64(m.resolvedImages+m.failedImages) / float64(m.totalImages)
		}
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString("\n")

		b.WriteString(infoStyle.Render(fmt.Sprintf(
			"Images: %d/%d | Failed: %d | Downloaded: %.2f MB",
			m.resolvedImages,
			m.totalImages,
			m.failedImages,
			float64(m.receivedBytes)/1024/1024,
		)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Sync Complete!\n\n"+
			"Releases: %d\n"+
			"Years: %d\n"+
			"Images: %d/%d cached",
		m.data.Count(),
		len(m.data),
		m.resolvedImages,
		m.totalImages,
	))
	b.WriteString(box)
	b.WriteString("\n\n")

	lines := resultLines(m.data)
	end := m.offset + m.visibleLines()
	if end > len(lines) {
		end = len(lines)
	}
	for _, line := range lines[m.offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case resolve.LevelError:
			style = errorStyle
			prefix = "✗"
		case resolve.LevelWarning:
			style = warningStyle
			prefix = "!"
		case resolve.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case resolve.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// resultLines renders the discography newest year first, one line per
// heading and per release.
func resultLines(data model.DiscographyData) []string {
	var lines []string
	for _, year := range data.Years() {
		lines = append(lines, yearStyle.Render(year))
		for _, item := range data[year] {
			line := fmt.Sprintf("  ♪ %s", item.Title)
			if item.Type != "" {
				line += " · " + item.Type
			}
			if item.Description != "" {
				line += " (" + item.Description + ")"
			}
			lines = append(lines, releaseStyle.Render(line))
		}
	}
	return lines
}

func (m Model) visibleLines() int {
	// header, summary box and footer
	n := m.height - 16
	if n < 5 {
		n = 5
	}
	return n
}

func (m Model) maxOffset() int {
	n := len(resultLines(m.data)) - m.visibleLines()
	if n < 0 {
		return 0
	}
	return n
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: sync • tab: skip images • ctrl+v: verbose • esc: quit"
	case StateSyncing:
		return "esc: cancel"
	case StateComplete:
		return "↑/↓: scroll • r: new sync • q: quit"
	case StateError:
		return "r: new sync • q: quit"
	}
	return ""
}

// newPipeline builds a pipeline for the entered source. Its progress
// events are forwarded to m.events.
func (m Model) newPipeline() (*discography.Pipeline, error) {
	ctx := m.ctx
	events := m.events

	settings := *m.settings
	settings.SpreadsheetID = strings.TrimSpace(m.textInput.Value())
	settings.CSVURL = ""

	opts := []discography.Option{
		discography.WithLogger(zap.NewNop()),
		discography.WithProgress(func(event resolve.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		}),
	}
	if m.skipImages {
		opts = append(opts, discography.WithFileStore(nil))
	}

	return discography.New(ctx, &settings, opts...)
}

// startSync runs the pipeline in background.
func (m Model) startSync() tea.Cmd {
	ctx := m.ctx
	pipeline := m.pipeline
	events := m.events
	run := m.run
	return func() tea.Msg {
		// Every event is sent before Run returns.
		defer close(events)
		data, err := pipeline.Run(ctx)
		return SyncDoneMsg{Run: run, Data: data, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	m := NewModel(settings)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
