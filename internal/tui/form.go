package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/delvin02/decision-maker/internal/model"
)

const (
	fieldLabel = iota
	fieldWeight
	fieldCategory
	fieldCount
)

type addForm struct {
	label    textinput.Model
	weight   textinput.Model
	catIndex int
	focus    int
	errMsg   string
}

func newAddForm(defaultWeight int) addForm {
	form := addForm{
		label:  newFormInput("Label: ", "walk the dog"),
		weight: newFormInput("Weight: ", ""),
	}
	form.reset(defaultWeight)
	return form
}

func newFormInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 64
	return input
}

func (f *addForm) reset(defaultWeight int) {
	f.label.SetValue("")
	f.weight.SetValue(strconv.Itoa(defaultWeight))
	f.catIndex = 0
	f.focus = fieldLabel
	f.errMsg = ""
	f.label.Blur()
	f.weight.Blur()
}

func (f *addForm) focusFirst() tea.Cmd {
	f.focus = fieldLabel
	return f.label.Focus()
}

func (f *addForm) moveFocus(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.label.Blur()
	f.weight.Blur()
	switch f.focus {
	case fieldLabel:
		return f.label.Focus()
	case fieldWeight:
		return f.weight.Focus()
	}
	return nil
}

func (f *addForm) cycleCategory(delta int) {
	count := len(model.Categories)
	f.catIndex = (f.catIndex + delta + count) % count
}

func (f *addForm) category() model.Category {
	return model.Categories[f.catIndex]
}

func (m *Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeIdle
		return m, nil
	case "tab", "down":
		return m, m.form.moveFocus(1)
	case "shift+tab", "up":
		return m, m.form.moveFocus(-1)
	case "left", "right":
		if m.form.focus == fieldCategory {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.form.cycleCategory(delta)
			return m, nil
		}
	case "enter":
		return m.submitForm()
	}
	var cmd tea.Cmd
	switch m.form.focus {
	case fieldLabel:
		m.form.label, cmd = m.form.label.Update(msg)
	case fieldWeight:
		m.form.weight, cmd = m.form.weight.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	weightText := strings.TrimSpace(m.form.weight.Value())
	weight, err := strconv.Atoi(weightText)
	if err != nil {
		m.form.errMsg = "weight must be a number"
		return m, nil
	}
	if _, err := m.reg.Add(m.form.label.Value(), weight, m.form.category()); err != nil {
		m.form.errMsg = err.Error()
		return m, nil
	}
	m.mode = modeIdle
	m.cursor = m.reg.Count() - 1
	m.refreshWheel()
	return m, nil
}
