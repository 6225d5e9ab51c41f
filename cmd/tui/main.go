package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendlog/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendlog/internal/config"
	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/storage"
)

const logFile = "spendlog-tui.log"

type model struct {
	session *view.Session

	currentView View
	screen      view.View
}

type View int

const (
	ViewMenu View = iota
	ViewAdd
	ViewList
	ViewReport
	ViewExport
	ViewImport
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewAdd:
		m.screen = view.NewAddModel(m.session)
	case ViewList:
		m.screen = view.NewListModel(m.session)
	case ViewReport:
		m.screen = view.NewReportModel(m.session)
	case ViewExport:
		m.screen = view.NewExportModel(m.session)
	case ViewImport:
		m.screen = view.NewImportModel(m.session)
	default:
		return m, nil
	}

	m.currentView = v

	return m, m.screen.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewAdd)
			case "2":
				return m.open(ViewList)
			case "3":
				return m.open(ViewReport)
			case "4":
				return m.open(ViewExport)
			case "5":
				return m.open(ViewImport)
			}

			return m, nil
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	next, cmd := m.screen.Update(msg)
	if s, ok := next.(view.View); ok {
		m.screen = s
	}

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.screen == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"spendlog\n\n" +
				"1. Add Expense\n" +
				"2. List Expenses\n" +
				"3. Spending Report\n" +
				"4. Export Expenses\n" +
				"5. Import Expenses\n\n" +
				"q. Quit",
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(1, 1, 0).Render(titleStyle.Render(m.screen.Title())),
		m.screen.View(),
		helpStyle.Render(m.screen.ShortHelp()),
	)
}

// setupLogging sends logs to a file, since the terminal belongs to the UI.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))

	return f, nil
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("SPENDLOG_CONFIG"))
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logs, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logs.Close()

	ctx := context.Background()

	repo, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeStore()

	expenses := expense.NewService(repo)
	if err := expenses.Open(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(model{session: view.NewSession(expenses)}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
