package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/nbvault/nbvault/internal/queue"
)

const (
	logsPanelHeight = 8
	maxKeptLogs     = 500

	fallbackWidth  = 80
	fallbackHeight = 24
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for the title bar.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2F6FED"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2F6FED"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// errorStyle defines the style for render failure notices.
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED2F2F"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// QueueProgressMsg is a [tea.Msg] containing [queue.Progress] information.
type QueueProgressMsg struct {
	t          time.Time
	exportData queue.Progress
}

// initSizeMsg is a [tea.Msg] sent once at startup; it sizes the model with
// fallback dimensions when the terminal has not reported its size (e.g. a
// non-interactive output). A real [tea.WindowSizeMsg] always takes priority.
type initSizeMsg struct{}

// PreviewFrameMsg is a [tea.Msg] carrying freshly rendered preview content.
type PreviewFrameMsg struct {
	Content string
}

// PreviewFailedMsg is a [tea.Msg] signaling a failed preview render.
type PreviewFailedMsg struct {
	Err error
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler    *Handler
	queueManager *queue.Manager
	title        string

	exportData     queue.Progress
	exportProgress progress.Model

	previewViewport viewport.Model
	previewContent  string
	renderErr       error

	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, title string, queueManager *queue.Manager, cancel context.CancelFunc) TeaModel {
	exportProgress := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(80),
	)

	previewViewport := viewport.New(80, 20)
	logsViewport := viewport.New(80, logsPanelHeight)

	return TeaModel{
		uiHandler:       uiHandler,
		queueManager:    queueManager,
		title:           title,
		exportData:      queue.Progress{},
		exportProgress:  exportProgress,
		previewViewport: previewViewport,
		logsViewport:    logsViewport,
		logs:            make([]string, 0, maxKeptLogs),
		cancel:          cancel,
		ready:           false,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		updateQueueProgress(m.queueManager),
		func() tea.Msg { return initSizeMsg{} },
	)
}

// updateQueueProgress produces a [tea.Cmd] for later scheduling in a
// [tea.Program]. When executed, a [QueueProgressMsg] with the export queue's
// [queue.Progress] is returned.
func updateQueueProgress(q *queue.Manager) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { //nolint:mnd
		return QueueProgressMsg{
			t:          t,
			exportData: q.Progress(),
		}
	})
}

// Update is the principal message handling method of the model. It sets the
// internal state of the model, for later rendering.
//
//nolint:mnd
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		innerWidth := max(m.width-4, 20)
		m.exportProgress.Width = innerWidth

		m.previewViewport.Width = innerWidth
		m.previewViewport.Height = max(m.height-logsPanelHeight-8, 5)
		m.logsViewport.Width = innerWidth
		m.logsViewport.Height = logsPanelHeight

		if !m.ready {
			m.ready = true
			m.uiHandler.Ready.Store(true)
		}

	case initSizeMsg:
		if !m.ready {
			return m.Update(tea.WindowSizeMsg{Width: fallbackWidth, Height: fallbackHeight})
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit

		case "q":
			return m, tea.Quit

		case "r":
			m.uiHandler.requestReload()

		default:
			m.previewViewport, cmd = m.previewViewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case logMsg:
		m.logs = append(m.logs, strings.TrimRight(string(msg), "\n"))
		if len(m.logs) > maxKeptLogs {
			m.logs = m.logs[len(m.logs)-maxKeptLogs:]
		}
		m.logsViewport.SetContent(strings.Join(m.logs, "\n"))
		m.logsViewport.GotoBottom()

	case QueueProgressMsg:
		m.exportData = msg.exportData
		cmds = append(cmds, updateQueueProgress(m.queueManager))

	case PreviewFrameMsg:
		m.previewContent = msg.Content
		m.renderErr = nil
		m.previewViewport.SetContent(m.previewContent)

	case PreviewFailedMsg:
		m.renderErr = msg.Err

	default:
		m.previewViewport, cmd = m.previewViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View is the principal rendering method of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(" nbvault: " + m.title + " "))
	b.WriteString("\n")

	if m.previewContent != "" || m.exportData.TotalItems == 0 {
		b.WriteString(borderStyle.Render(m.previewViewport.View()))
		b.WriteString("\n")
	}

	if m.renderErr != nil {
		b.WriteString(errorStyle.Render("Render failed; showing last good content. See logs."))
		b.WriteString("\n")
	}

	if m.exportData.TotalItems > 0 {
		b.WriteString(borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.exportProgress.ViewAs(m.exportData.ProgressPct/100), //nolint:mnd
			infoStyle.Render(m.exportSummary()),
		)))
		b.WriteString("\n")
	}

	b.WriteString(borderStyle.Render(m.logsViewport.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ scroll • r reload • q quit"))

	return b.String()
}

// exportSummary produces the one-line counters below the export progress
// bar.
func (m TeaModel) exportSummary() string {
	summary := fmt.Sprintf("%d/%d exported • %d skipped",
		m.exportData.SuccessItems,
		m.exportData.TotalItems,
		m.exportData.SkippedItems,
	)

	if !m.exportData.StartTime.IsZero() {
		summary += " • started " + humanize.Time(m.exportData.StartTime)
	}

	return summary
}
