package view

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

type reportState int

const (
	reportStateTimeframe reportState = iota
	reportStateResult
)

// ReportModel shows per-category totals and shares for a timeframe.
type ReportModel struct {
	session *Session

	state           reportState
	timeframePicker TimeframePicker

	label string
	lines []report.CategoryTotal
	count map[string]int
	total int64
}

func NewReportModel(session *Session) ReportModel {
	return ReportModel{
		session:         session,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
	}
}

func (m ReportModel) Title() string { return "Spending Report" }

func (m ReportModel) ShortHelp() string {
	if m.state == reportStateResult {
		return "Esc: pick another timeframe"
	}

	return "Esc: back | Enter: select"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.label = msg.Label
		if !msg.All {
			m.label = fmt.Sprintf("%s (%s)", msg.Label, msg.Period)
		}

		return m, m.loadCmd(msg.Filter())

	case reportLoadedMsg:
		m.lines = report.Breakdown(msg.records)
		m.count = map[string]int{}
		m.total = 0

		for _, g := range report.GroupByCategory(msg.records) {
			m.count[g.Category] = len(g.Entries)
			m.total += g.Total
		}

		m.state = reportStateResult

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == reportStateResult {
				m.state = reportStateTimeframe
				m.timeframePicker.Reset()

				return m, nil
			}

			if m.timeframePicker.IsSelecting() {
				return m, Back
			}
		}
	}

	if m.state != reportStateTimeframe {
		return m, nil
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ReportModel) View() string {
	if m.state == reportStateTimeframe {
		return paddedStyle.Render(m.timeframePicker.View())
	}

	header := lipgloss.NewStyle().Bold(true).Render(m.label)

	if len(m.lines) == 0 {
		return paddedStyle.Render(header + "\n\nNo expenses in this period.")
	}

	rows := make([][]string, len(m.lines))
	for i, l := range m.lines {
		rows[i] = []string{
			l.Category,
			strconv.Itoa(m.count[l.Category]),
			expense.FormatAmount(l.Total),
			l.Percentage.StringFixed(2) + "%",
		}
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Category", "Entries", "Total", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Foreground(lipgloss.Color("205"))
			}

			if col > 0 {
				return cell.Align(lipgloss.Right)
			}

			return cell
		})

	footer := fmt.Sprintf("Total: %s", expense.FormatAmount(m.total))

	return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", t.Render(), okStyle.Render(footer)))
}

type reportLoadedMsg struct {
	records []expense.Expense
}

func (m ReportModel) loadCmd(filter expense.ListFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		return reportLoadedMsg{records: m.session.List(ctx, filter)}
	}
}
