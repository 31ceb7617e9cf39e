package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nconklindev/pwrzones/internal/config"
	"github.com/nconklindev/pwrzones/internal/export"
	"github.com/nconklindev/pwrzones/internal/roster"
	"github.com/nconklindev/pwrzones/internal/state"
	"github.com/nconklindev/pwrzones/internal/types"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type screen int

const (
	statePaste screen = iota
	stateRoster
	stateFilePicker
	stateExporting
	stateComplete
	stateError
)

// Deps are the collaborators the TUI needs.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	Zones  []types.ZoneDefinition
	Store  *state.Store
}

type Model struct {
	state        screen
	cfg          *config.Config
	logger       *zap.Logger
	opts         roster.Options
	store        *state.Store
	input        textarea.Model
	viewport     viewport.Model
	filepicker   filepicker.Model
	selectedFile string
	selected     int
	offsets      []int
	status       string
	result       *types.ExportResult
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan exportResultMsg
}

type exportResultMsg struct {
	result *types.ExportResult
	err    error
}

type exportCompleteMsg struct {
	result *types.ExportResult
	err    error
}

type clipboardMsg struct {
	text string
	err  error
}

type copiedMsg struct {
	name string
	err  error
}

type fileLoadedMsg struct {
	table types.Table
	ok    bool
	err   error
}

type progressMsg float64

type waitForProgressMsg struct{}

func InitialModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := deps.Store
	if store == nil {
		store = state.NewStore()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste spreadsheet rows with Name, FTP, Phone, Email headers"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(6)
	ta.Focus()

	fp := filepicker.New()
	fp.AllowedTypes = roster.AllowedExtensions
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	prog := progress.New(progress.WithGradient("#FF8C42", "#FF9F5A"))

	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{
			Message: config.MessageConfig{Body: config.DefaultCoachMessage},
			Export:  config.ExportConfig{Dir: "."},
		}
	}

	return Model{
		state:  statePaste,
		cfg:    cfg,
		logger: logger,
		opts: roster.Options{
			Zones:     deps.Zones,
			StrictFTP: cfg.Roster.StrictFTP,
			Logger:    logger,
		},
		store:      store,
		input:      ta,
		viewport:   viewport.New(80, 20),
		filepicker: fp,
		progress:   prog,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.input.SetWidth(max(msg.Width-4, 20))

		// Title, status line and help text
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-7, 5)

		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)

		m.refreshRoster()
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case statePaste:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				if m.store.Len() > 0 {
					m.state = stateRoster
					m.input.Blur()
				}
				return m, nil
			case "ctrl+v":
				return m, readClipboard
			case "ctrl+o":
				m.state = stateFilePicker
				return m, m.filepicker.Init()
			case "ctrl+s":
				return m.applyText(m.input.Value(), "typed")
			}

			if msg.Paste {
				text := string(msg.Runes)
				m.input.SetValue(text)
				return m.applyText(text, "paste")
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stateRoster:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "p":
				m.state = statePaste
				m.status = ""
				m.input.Reset()
				return m, m.input.Focus()
			case "o":
				m.state = stateFilePicker
				return m, m.filepicker.Init()
			case "left", "h", "shift+tab":
				if m.selected > 0 {
					m.selected--
					m.refreshRoster()
				}
				return m, nil
			case "right", "l", "tab":
				if m.selected < m.store.Len()-1 {
					m.selected++
					m.refreshRoster()
				}
				return m, nil
			case "c":
				if p, ok := m.store.Participant(m.selected); ok {
					return m, copySummary(p, m.cfg.Message.Body)
				}
				return m, nil
			case "e":
				if m.store.Len() == 0 {
					return m, nil
				}
				m.state = stateExporting
				return m.exportRoster()
			}

			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "p":
				m.state = statePaste
				return m, m.input.Focus()
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			m.err = nil
			if m.store.Len() > 0 {
				m.state = stateRoster
				return m, nil
			}
			m.state = statePaste
			return m, m.input.Focus()
		}

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("Failed to read clipboard", zap.Error(msg.err))
			m.status = "Could not read the clipboard: " + msg.err.Error()
			return m, nil
		}
		m.input.SetValue(msg.text)
		return m.applyText(msg.text, "clipboard")

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("Failed to copy summary", zap.Error(msg.err))
			m.status = msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Copied %s's zones to the clipboard", msg.name)
		}
		return m, nil

	case fileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		if !msg.ok {
			m.status = fmt.Sprintf("%s has no rows", filepath.Base(m.selectedFile))
			return m.backFromPicker()
		}
		return m.applyTable(msg.table, filepath.Base(m.selectedFile))

	case exportCompleteMsg:
		if msg.err != nil {
			m.logger.Error("Export failed", zap.Error(msg.err))
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.logger.Info("Exported roster",
			zap.String("file", msg.result.OutputFile),
			zap.Int("participants", msg.result.Participants))
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateExporting {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, loadFile(path)
		}

		return m, cmd
	}

	if m.state == statePaste {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyText rebuilds the roster from pasted text. Blank text leaves the
// current roster in place.
func (m Model) applyText(text, source string) (Model, tea.Cmd) {
	table, ok := roster.ParseTable(text)
	if !ok {
		m.status = "Nothing to read, roster unchanged"
		return m, nil
	}
	return m.applyTable(table, source)
}

func (m Model) applyTable(table types.Table, source string) (Model, tea.Cmd) {
	participants, err := roster.Build(table, m.opts)
	if err != nil {
		m.err = err
		m.state = stateError
		return m, nil
	}

	snap := m.store.Publish(participants)
	m.logger.Info("Published roster",
		zap.String("batch", snap.ID.String()),
		zap.String("source", source),
		zap.Int("header_row", table.HeaderRow+1),
		zap.Int("rows", len(table.Rows)),
		zap.Int("participants", len(participants)))

	m.selected = 0
	m.status = fmt.Sprintf("%d athlete(s) from %s", len(participants), source)
	if table.HeaderRow > 0 {
		m.status += fmt.Sprintf(" (headers on row %d)", table.HeaderRow+1)
	}
	m.state = stateRoster
	m.input.Blur()
	m.refreshRoster()
	return m, nil
}

func (m Model) backFromPicker() (Model, tea.Cmd) {
	if m.store.Len() > 0 {
		m.state = stateRoster
		return m, nil
	}
	m.state = statePaste
	return m, m.input.Focus()
}

func (m *Model) links() *Links {
	return &Links{Message: m.cfg.Message.Body, Subject: m.cfg.Message.Subject}
}

// refreshRoster re-renders the cards and scrolls the selected one into view.
func (m *Model) refreshRoster() {
	snap := m.store.Current()
	content, offsets := RenderRoster(snap.Participants, m.selected, m.links())
	m.offsets = offsets
	m.viewport.SetContent(content)

	if m.selected < len(offsets) {
		m.viewport.SetYOffset(offsets[m.selected])
	}
}

func readClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	return clipboardMsg{text: text, err: err}
}

func copySummary(p types.Participant, message string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{name: p.Name, err: export.CopySummary(p, message)}
	}
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		table, ok, err := roster.ReadFile(path)
		return fileLoadedMsg{table: table, ok: ok, err: err}
	}
}

func (m Model) exportRoster() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan exportResultMsg, 1)

	participants := m.store.Current().Participants
	outputFile := filepath.Join(m.cfg.Export.Dir, fmt.Sprintf("pwrzones-%s.xlsx", time.Now().Format("20060102-150405")))

	progressChan := m.progressChan
	resultChan := m.resultChan

	cmd := tea.Batch(
		func() tea.Msg {
			go func() {
				result, err := export.Workbook(participants, outputFile, progressChan)
				resultChan <- exportResultMsg{result: result, err: err}

				close(progressChan)
				close(resultChan)
			}()

			return waitForProgressMsg{}
		},
		m.progress.SetPercent(0),
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan exportResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return exportCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case statePaste:
		return m.viewPaste()
	case stateRoster:
		return m.viewRoster()
	case stateFilePicker:
		return m.viewFilePicker()
	case stateExporting:
		return m.viewExporting()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewPaste() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("⚡ PWR Zones"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Paste spreadsheet rows with Name, FTP, Phone (or Cell) and Email headers"))
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")

	if m.status != "" {
		s.WriteString(SubtitleStyle.Render(m.status))
		s.WriteString("\n")
	}

	help := "paste or ctrl+v: read clipboard • ctrl+s: use typed text • ctrl+o: open file • ctrl+c: quit"
	if m.store.Len() > 0 {
		help += " • esc: back to roster"
	}
	s.WriteString(HelpStyle.Render(help))

	return s.String()
}

func (m Model) viewRoster() string {
	var s strings.Builder

	n := m.store.Len()
	title := "⚡ Results"
	if n > 0 {
		title = fmt.Sprintf("⚡ Results (%d/%d)", m.selected+1, n)
	}
	s.WriteString(TitleStyle.Render(title))
	s.WriteString("\n")

	if n == 0 {
		s.WriteString(SubtitleStyle.Render("No rows had both a name and an FTP"))
		s.WriteString("\n")
	} else {
		s.WriteString(m.viewport.View())
		s.WriteString("\n")
	}

	if m.status != "" {
		s.WriteString(SuccessStyle.Render(m.status))
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("←/→: select • ↑/↓: scroll • c: copy zones • e: export xlsx • p: paste again • o: open file • q: quit"))

	return s.String()
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("⚡ Open Roster"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a TSV, CSV or XLSX file with Name and FTP columns"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("p: back to paste • q: quit"))

	return s.String()
}

func (m Model) viewExporting() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("⚡ Exporting..."))
	s.WriteString("\n\n")
	s.WriteString("Writing zones workbook...")
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Export Complete!"))
	s.WriteString("\n\n")

	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	outputPath := m.result.OutputFile
	if len(outputPath) > maxPathLen {
		outputPath = "..." + outputPath[len(outputPath)-maxPathLen+3:]
	}

	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Output: %s\n", outputPath)))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Athletes: %d\n", m.result.Participants))
	s.WriteString(fmt.Sprintf("Zones: %s\n", strings.Join(m.result.Zones, ", ")))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to return • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to return • q: quit"))

	return BoxStyle.Render(s.String())
}
