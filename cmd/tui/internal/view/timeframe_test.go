package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeframe_Period(t *testing.T) {
	now := time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		tf   Timeframe
		want report.Period
	}{
		{TimeframeThisWeek, report.Period{From: day(2024, 1, 15), To: day(2024, 1, 21)}},
		{TimeframeLastWeek, report.Period{From: day(2024, 1, 8), To: day(2024, 1, 14)}},
		{TimeframeThisMonth, report.Period{From: day(2024, 1, 1), To: day(2024, 1, 31)}},
		{TimeframeLastMonth, report.Period{From: day(2023, 12, 1), To: day(2023, 12, 31)}},
		{TimeframeThisYear, report.Period{From: day(2024, 1, 1), To: day(2024, 12, 31)}},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tf.Period(now))
		})
	}
}

func TestTimeframeSelectedMsg_Filter(t *testing.T) {
	all := TimeframeSelectedMsg{All: true}.Filter()
	assert.Nil(t, all.From)
	assert.Nil(t, all.To)

	p := report.MonthPeriod(2024, time.February)
	f := TimeframeSelectedMsg{Period: p}.Filter()

	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, day(2024, 2, 1), *f.From)
	assert.Equal(t, day(2024, 2, 29), *f.To)
}

func pick(t *testing.T, m TimeframePicker, keys ...tea.KeyMsg) (TimeframePicker, TimeframeSelectedMsg) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}

	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)

	return m, msg
}

func TestTimeframePicker_Select(t *testing.T) {
	m := NewTimeframePicker(TimeframeThisMonth)
	m.now = func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) }

	_, msg := pick(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Last Month", msg.Label)
	assert.False(t, msg.All)
	assert.Equal(t, report.MonthPeriod(2024, time.February), msg.Period)
}

func TestTimeframePicker_SelectAll(t *testing.T) {
	m := NewTimeframePicker(TimeframeAll)

	_, msg := pick(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, msg.All)
}

func TestTimeframePicker_Custom(t *testing.T) {
	m := NewTimeframePicker(TimeframeCustom)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.IsSelecting())

	m.startInput.SetValue("2024-01-05")
	m.endInput.SetValue("2024-01-20")

	_, msg := pick(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, report.Period{From: day(2024, 1, 5), To: day(2024, 1, 20)}, msg.Period)
	assert.Equal(t, "2024-01-05..2024-01-20", msg.Label)
}

func TestTimeframePicker_CustomErrors(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    string
	}{
		{"bad start", "05/01/2024", "2024-01-20", "start"},
		{"bad end", "2024-01-05", "", "end"},
		{"reversed", "2024-01-20", "2024-01-05", "before start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTimeframePicker(TimeframeCustom)
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

			m.startInput.SetValue(tt.start)
			m.endInput.SetValue(tt.end)

			m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

			assert.Nil(t, cmd)
			require.Error(t, m.err)
			assert.Contains(t, m.err.Error(), tt.wantErr)
		})
	}
}
