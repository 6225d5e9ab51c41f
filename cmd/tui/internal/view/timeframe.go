package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

// Timeframe represents a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeThisYear
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeLastWeek:
		return "Last Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeThisYear:
		return "This Year"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// Period resolves a predefined timeframe relative to now. Weeks are ISO weeks.
func (t Timeframe) Period(now time.Time) report.Period {
	switch t {
	case TimeframeThisWeek:
		year, week := now.ISOWeek()
		return report.WeekPeriod(year, week)
	case TimeframeLastWeek:
		year, week := now.AddDate(0, 0, -7).ISOWeek()
		return report.WeekPeriod(year, week)
	case TimeframeThisMonth:
		return report.MonthPeriod(now.Year(), now.Month())
	case TimeframeLastMonth:
		last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return report.MonthPeriod(last.Year(), last.Month())
	case TimeframeThisYear:
		return report.YearPeriod(now.Year())
	}

	return report.Period{}
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
// Period is the zero value when All is true.
type TimeframeSelectedMsg struct {
	Label  string
	Period report.Period
	All    bool
}

// Filter turns the selection into a list filter.
func (m TimeframeSelectedMsg) Filter() expense.ListFilter {
	if m.All {
		return expense.ListFilter{}
	}

	from, to := m.Period.From, m.Period.To

	return expense.ListFilter{From: &from, To: &to}
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	minFrame Timeframe
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

// NewTimeframePicker creates a picker starting from the given minimum timeframe.
func NewTimeframePicker(minFrame Timeframe) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   minFrame,
		minFrame:   minFrame,
		now:        time.Now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(msg)
		case timeframeStateCustom:
			return m.updateCustom(msg)
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > m.minFrame {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		switch m.selected {
		case TimeframeCustom:
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		case TimeframeAll:
			return m, selected(TimeframeSelectedMsg{Label: m.selected.String(), All: true})
		}

		p := m.selected.Period(m.now())

		return m, selected(TimeframeSelectedMsg{Label: m.selected.String(), Period: p})
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink

	case "enter":
		now := m.now()

		start, err := expense.ParseDate(expense.ResolveDate(m.startInput.Value(), now))
		if err != nil {
			m.err = fmt.Errorf("start: %w", err)
			return m, nil
		}

		end, err := expense.ParseDate(expense.ResolveDate(m.endInput.Value(), now))
		if err != nil {
			m.err = fmt.Errorf("end: %w", err)
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil
		}

		m.err = nil
		p := report.DayRange(start, end)

		return m, selected(TimeframeSelectedMsg{Label: p.String(), Period: p})

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Timeframe:\n\n"
	for i := m.minFrame; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = m.minFrame
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
