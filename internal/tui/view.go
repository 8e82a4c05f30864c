package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/delvin02/decision-maker/internal/model"
)

const (
	maxLabelWidth = 24
	shareBarWidth = 20
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Decision Wheel"))
	b.WriteString("\n\n")
	if m.mode == modeAdding {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderWheel())
	}
	b.WriteString("\n")
	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())

	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderWheel() string {
	items := m.reg.Items()
	if len(items) == 0 {
		return footerStyle.Render("No items yet. Press 'a' to add one.")
	}

	pointer := m.pointerIndex()
	total := eligibleWeight(m.eligible)

	var lines []string
	eligibleIdx := 0
	for i, item := range items {
		cursor := " "
		if i == m.cursor && m.mode == modeIdle {
			cursor = cursorStyle.Render(">")
		}
		label := runewidth.Truncate(item.Label, maxLabelWidth, "…")
		label = runewidth.FillRight(label, maxLabelWidth)

		if m.isExcluded(item) {
			lines = append(lines, fmt.Sprintf("%s %s %s", cursor,
				excludedStyle.Render(label),
				shareStyle.Render(fmt.Sprintf("(%s, excluded)", item.Category))))
			continue
		}

		colorIndex := eligibleIdx % m.paletteSize()
		style := palette[colorIndex%len(palette)]
		share := float64(item.Weight) / float64(total)
		bar := strings.Repeat("█", barCells(share))
		marker := "  "
		if eligibleIdx == pointer {
			marker = pointerStyle.Render("◀ ")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s%s %s", cursor,
			style.Render(label),
			style.Render(bar),
			marker,
			shareStyle.Render(fmt.Sprintf("%2.0f%% · w%d · %s", share*100, item.Weight, item.Category))))
		eligibleIdx++
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderForm() string {
	category := fmt.Sprintf("Category: < %s >", m.form.category())
	if m.form.focus == fieldCategory {
		category = cursorStyle.Render(category)
	}
	lines := []string{
		m.form.label.View(),
		m.form.weight.View(),
		category,
	}
	if m.form.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.form.errMsg))
	}
	lines = append(lines, footerStyle.Render("enter add · tab next field · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	fairness := "off"
	if m.config.Fairness {
		fairness = fmt.Sprintf("on (%s excluded)", m.config.ExcludeGroup)
	}
	status := fmt.Sprintf("%d items · weight %d · fairness %s", m.reg.Count(), m.reg.TotalWeight(), fairness)
	help := "a add · d remove · f fairness · enter spin · q quit"
	if m.mode == modeSpinning {
		help = "spinning..."
	}
	return footerStyle.Render(status + "\n" + help)
}

// pointerIndex returns the index within the eligible set of the segment
// currently under the fixed top pointer, or -1 when the wheel is empty.
func (m *Model) pointerIndex() int {
	if len(m.segments) == 0 {
		return -1
	}
	angle := math.Mod(360-math.Mod(m.rotation, 360), 360)
	for i, seg := range m.segments {
		if angle >= seg.Start && angle < seg.End {
			return i
		}
	}
	return len(m.segments) - 1
}

func (m *Model) isExcluded(item model.ChoiceItem) bool {
	exclude := m.excludeCategory()
	return exclude != "" && item.Category == exclude
}

func (m *Model) paletteSize() int {
	if m.config.PaletteSize > 0 && m.config.PaletteSize <= len(palette) {
		return m.config.PaletteSize
	}
	return len(palette)
}

func barCells(share float64) int {
	cells := int(math.Round(share * shareBarWidth))
	if cells < 1 {
		cells = 1
	}
	return cells
}
