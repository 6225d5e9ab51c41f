package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/export"
)

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type exportTarget struct {
	path string
	kind string
}

type ExportModel struct {
	session *Session

	state           exportState
	err             error
	timeframePicker TimeframePicker

	filter expense.ListFilter
	label  string

	form    *huh.Form
	target  *exportTarget
	spinner spinner.Model
	summary string
}

func NewExportModel(session *Session) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		session:         session,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
		target:          &exportTarget{path: "expenses-export.csv", kind: string(export.KindRecords)},
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Export Expenses" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.filter = tfMsg.Filter()
		m.label = tfMsg.Label
		m.form = m.buildTargetForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.target))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func (m ExportModel) buildTargetForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Table").
				Options(
					huh.NewOption("Expense records", string(export.KindRecords)),
					huh.NewOption("Category breakdown", string(export.KindBreakdown)),
				).
				Value(&m.target.kind),

			huh.NewInput().
				Key("path").
				Title("Output File").
				Description("Parent directories are created if needed").
				Placeholder("expenses-export.csv").
				Value(&m.target.path).
				Validate(func(s string) error {
					if s == "" || s == "-" {
						return fmt.Errorf("enter a file path")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return paddedStyle.Render(m.timeframePicker.View())

	case exportStatePath:
		return paddedStyle.Render(fmt.Sprintf("Exporting %s\n\n%s", activeStyle(m.label), m.form.View()))

	case exportStateExporting:
		return paddedStyle.Render(fmt.Sprintf("%s Writing %s...", m.spinner.View(), m.target.path))

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return paddedStyle.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := okStyle.Render(fmt.Sprintf("Wrote %s export to %s", m.target.kind, m.target.path))

	return paddedStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd(target exportTarget) tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		kind, err := export.ParseKind(target.kind)
		if err != nil {
			return exportResultMsg{err: err}
		}

		ctx, cancel := opCtx()
		defer cancel()

		body, err := m.session.Export(ctx, filter, kind, target.path)

		return exportResultMsg{body: body, err: err}
	}
}
