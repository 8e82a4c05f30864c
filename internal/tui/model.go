// Package tui provides the Bubble Tea wheel interface.
package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/delvin02/decision-maker/internal/engine"
	"github.com/delvin02/decision-maker/internal/model"
	"github.com/delvin02/decision-maker/internal/registry"
	"github.com/delvin02/decision-maker/internal/store"
)

const spinFrameInterval = 80 * time.Millisecond

type mode int

const (
	modeIdle mode = iota
	modeAdding
	modeSpinning
)

type spinTickMsg struct {
	seq int
}

type noticeClearMsg struct {
	seq int
}

// Model implements the Bubble Tea wheel UI.
type Model struct {
	config model.Config
	reg    *registry.Registry
	eng    *engine.Engine
	store  *store.Store

	width  int
	height int

	mode   mode
	cursor int
	form   addForm

	rotation float64
	segments []model.Segment
	eligible []model.ChoiceItem

	spinSeq    int
	spinStart  time.Time
	spinFrom   float64
	spinTarget float64
	result     *model.SelectionResult

	notice    string
	noticeErr bool
	noticeSeq int
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pointerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	excludedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A")).Strikethrough(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#95D16A")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	shareStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// palette is the cyclic segment color set; items take color i mod size.
var palette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#4FC1E9")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#ED5565")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#A0D468")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCE54")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#AC92EC")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FC6E51")),
}

// NewModel constructs a wheel TUI model. The store may be nil, in which case
// decisions are not recorded.
func NewModel(cfg model.Config, reg *registry.Registry, eng *engine.Engine, st *store.Store) *Model {
	m := &Model{
		config: cfg,
		reg:    reg,
		eng:    eng,
		store:  st,
	}
	m.form = newAddForm(cfg.DefaultWeight)
	m.refreshWheel()
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
		return m, nil
	case spinTickMsg:
		if msg.seq != m.spinSeq || m.mode != modeSpinning {
			// Stale timer from a finished spin.
			return m, nil
		}
		return m.advanceSpin()
	case noticeClearMsg:
		if msg.seq != m.noticeSeq {
			return m, nil
		}
		m.notice = ""
		m.noticeErr = false
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdding:
			return m.updateAdding(msg)
		case modeSpinning:
			// Trigger and edits are disabled while a spin is pending.
			return m, nil
		default:
			return m.updateIdle(msg)
		}
	}
	return m, nil
}

func (m *Model) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		m.mode = modeAdding
		m.form.reset(m.config.DefaultWeight)
		return m, m.form.focusFirst()
	case "d":
		m.removeSelected()
		return m, nil
	case "f":
		m.config.Fairness = !m.config.Fairness
		m.refreshWheel()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.reg.Count()-1 {
			m.cursor++
		}
		return m, nil
	case "enter", "s":
		return m.startSpin()
	}
	return m, nil
}

func (m *Model) removeSelected() {
	items := m.reg.Items()
	if len(items) == 0 || m.cursor >= len(items) {
		return
	}
	m.reg.Remove(items[m.cursor].ID)
	if m.cursor >= m.reg.Count() && m.cursor > 0 {
		m.cursor--
	}
	m.refreshWheel()
}

func (m *Model) excludeCategory() model.Category {
	if !m.config.Fairness {
		return ""
	}
	return m.config.ExcludeGroup
}

// refreshWheel recomputes the eligible set and its segments after any
// registry or fairness change. Not called while a spin is in flight, so the
// wheel a spin was computed against stays frozen until it lands.
func (m *Model) refreshWheel() {
	m.eligible = m.reg.Eligible(m.excludeCategory())
	m.segments = engine.Segments(m.eligible)
}

func (m *Model) startSpin() (tea.Model, tea.Cmd) {
	result, err := m.eng.Decide(m.reg.Items(), m.excludeCategory())
	if err != nil {
		return m, m.showNotice(err.Error(), true)
	}
	m.refreshWheel()
	m.result = &result
	m.mode = modeSpinning
	m.spinSeq++
	m.spinStart = time.Now()
	m.spinFrom = math.Mod(m.rotation, 360)
	m.spinTarget = engine.TargetRotation(result.Segment, m.config.FullSpins)
	return m, m.spinTick()
}

func (m *Model) spinTick() tea.Cmd {
	seq := m.spinSeq
	return tea.Tick(spinFrameInterval, func(time.Time) tea.Msg {
		return spinTickMsg{seq: seq}
	})
}

func (m *Model) advanceSpin() (tea.Model, tea.Cmd) {
	elapsed := time.Since(m.spinStart)
	progress := float64(elapsed) / float64(m.config.SpinDuration)
	if progress >= 1 {
		return m.finishSpin()
	}
	m.rotation = m.spinFrom + (m.spinTarget-m.spinFrom)*easeOutCubic(progress)
	return m, m.spinTick()
}

func (m *Model) finishSpin() (tea.Model, tea.Cmd) {
	m.rotation = m.spinTarget
	m.mode = modeIdle
	result := m.result
	m.recordDecision(result)
	return m, m.showNotice(fmt.Sprintf("The wheel says: %s", result.Item.Label), false)
}

func (m *Model) recordDecision(result *model.SelectionResult) {
	if m.store == nil || result == nil {
		return
	}
	rec := model.DecisionRecord{
		DecidedAt:   time.Now(),
		Mode:        model.ModeWheel,
		Label:       result.Item.Label,
		Category:    result.Item.Category,
		Weight:      result.Item.Weight,
		TotalWeight: eligibleWeight(m.eligible),
		Eligible:    len(m.eligible),
		Rotation:    m.spinTarget,
	}
	if _, err := m.store.InsertDecision(context.Background(), rec); err != nil {
		logErrf("failed to save decision: %v\n", err)
	}
}

// showNotice replaces the current notice and schedules its auto-clear. The
// sequence bump cancels any clear still pending for the previous notice.
func (m *Model) showNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(m.config.NoticeDuration, func(time.Time) tea.Msg {
		return noticeClearMsg{seq: seq}
	})
}

func easeOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}

func eligibleWeight(items []model.ChoiceItem) int {
	total := 0
	for _, item := range items {
		total += item.Weight
	}
	return total
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
