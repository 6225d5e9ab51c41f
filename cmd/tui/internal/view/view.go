package view

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/export"
	"github.com/MrJamesThe3rd/spendlog/internal/importer"
)

const opTimeout = 30 * time.Second

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	paddedStyle = lipgloss.NewStyle().Padding(1)
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// opCtx returns a context with a standard timeout for storage operations.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Session gives the views access to the services. Tea commands run on their
// own goroutines, so every call holds the lock.
type Session struct {
	mu       sync.Mutex
	expenses *expense.Service
	exports  *export.Service
	imports  *importer.Service
}

func NewSession(expenses *expense.Service) *Session {
	return &Session{
		expenses: expenses,
		exports:  export.NewService(expenses),
		imports:  importer.NewService(),
	}
}

func (s *Session) Create(ctx context.Context, p expense.CreateParams) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expenses.Create(ctx, p)
}

func (s *Session) Update(ctx context.Context, id int64, p expense.CreateParams) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expenses.Update(ctx, id, p)
}

func (s *Session) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expenses.Delete(ctx, id)
}

func (s *Session) List(ctx context.Context, filter expense.ListFilter) []expense.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expenses.List(ctx, filter)
}

// Export writes the file and returns a plain listing of the exported expenses.
func (s *Session) Export(ctx context.Context, filter expense.ListFilter, kind export.Kind, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.exports.Export(ctx, filter, kind, path, io.Discard); err != nil {
		return "", err
	}

	return s.exports.Text(s.expenses.List(ctx, filter)), nil
}

// Import parses the file and adds its rows, all or nothing.
func (s *Session) Import(ctx context.Context, format importer.Format, r io.Reader) ([]expense.Expense, error) {
	rows, err := s.imports.Import(format, r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expenses.ImportRows(ctx, rows)
}
