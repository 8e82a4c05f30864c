// Package historyui provides the Bubble Tea history browser.
package historyui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/delvin02/decision-maker/internal/history"
	"github.com/delvin02/decision-maker/internal/model"
	"github.com/delvin02/decision-maker/internal/store"
)

const (
	tabDecisions = iota
	tabFrequencies
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store *store.Store
	cfg   model.HistoryConfig

	report history.Report
	errMsg string

	tabs      []string
	activeTab int

	decTable table.Model
	freqView viewport.Model

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, cfg model.HistoryConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Decisions", "Frequencies"},
	}
	m.decTable = buildDecisionTable(nil, 0, 1)
	m.freqView = viewport.New(0, 0)
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabDecisions {
				m.decTable.GotoTop()
			} else {
				m.freqView.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabDecisions {
				m.decTable.GotoBottom()
			} else {
				m.freqView.GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabDecisions {
				var cmd tea.Cmd
				m.decTable, cmd = m.decTable.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.freqView, cmd = m.freqView.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	if m.activeTab == tabDecisions {
		m.decTable.Focus()
	} else {
		m.decTable.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := history.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load history: %v", err)
		return
	}
	m.errMsg = ""
	m.report = report
	m.updateLayout()
}

func (m *Model) updateLayout() {
	_, bodyHeight, _ := m.layoutHeights()
	m.decTable = buildDecisionTable(m.report.Records, m.width, bodyHeight)
	m.decTable.Focus()
	m.freqView.Width = m.width
	m.freqView.Height = bodyHeight
	m.freqView.SetContent(m.renderFrequencies())
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	if len(m.report.Records) == 0 {
		return "No decisions recorded yet."
	}
	if m.activeTab == tabDecisions {
		return m.decTable.View()
	}
	return m.freqView.View()
}

func (m *Model) renderFrequencies() string {
	var buf bytes.Buffer
	if err := history.RenderFrequencies(&buf, m.report); err != nil {
		return "Failed to render frequencies."
	}
	if err := history.RenderActivity(&buf, m.report); err != nil {
		return "Failed to render frequencies."
	}
	if buf.Len() == 0 {
		return "No wheel decisions yet."
	}
	return buf.String()
}

func (m *Model) renderFooter() string {
	help := footerStyle.Render("←/→ tabs · j/k scroll · q quit")
	if m.errMsg == "" {
		return help
	}
	return errorStyle.Render(m.errMsg) + "\n" + help
}

func buildDecisionTable(records []model.DecisionRecord, width, height int) table.Model {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Mode", Width: 5},
		{Title: "Result", Width: 28},
		{Title: "Category", Width: 8},
		{Title: "Weight", Width: 9},
	}
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		category := string(rec.Category)
		weight := fmt.Sprintf("%d/%d", rec.Weight, rec.TotalWeight)
		if rec.Mode != model.ModeWheel {
			category = "-"
			weight = "-"
		}
		rows = append(rows, table.Row{
			rec.DecidedAt.Local().Format("2006-01-02 15:04"),
			rec.Mode,
			rec.Label,
			category,
			weight,
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(decisionTableStyles())
	return t
}

func decisionTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
