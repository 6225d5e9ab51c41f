package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/export"
	"github.com/MrJamesThe3rd/spendlog/internal/importer"
)

func TestService_Import(t *testing.T) {
	s := importer.NewService()

	rows, err := s.Import(importer.FormatJSONL, strings.NewReader(`{"category":"Food","item":"bread","amount":2.5,"date":"2024-03-01"}`+"\n"))
	require.NoError(t, err)
	assert.Equal(t, []expense.Row{{Date: "2024-03-01", Category: "Food", Amount: "2.5", Note: "bread"}}, rows)

	_, err = s.Import("xlsx", strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown import format")
}

func TestService_ImportMarksBadInput(t *testing.T) {
	tests := []struct {
		name    string
		format  importer.Format
		content string
	}{
		{"MalformedJSONLine", importer.FormatJSONL, "{oops\n"},
		{"UnknownHeader", importer.FormatCSV, "when,what\n2024-01-01,x\n"},
		{"UnknownFormat", "xlsx", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewService().Import(tt.format, strings.NewReader(tt.content))

			require.ErrorIs(t, err, importer.ErrInvalidInput)
			assert.NotErrorIs(t, err, expense.ErrCorruptData)
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, importer.FormatCSV, importer.FormatFor("out/records.CSV"))
	assert.Equal(t, importer.FormatJSONL, importer.FormatFor("expense.txt"))
	assert.Equal(t, importer.FormatJSONL, importer.FormatFor("backup.jsonl"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFor("noext"))
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	source := expense.NewMockRepository(ctrl)
	source.EXPECT().Load(gomock.Any()).Return(expense.State{}, nil)
	source.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	from := expense.NewService(source)
	require.NoError(t, from.Open(ctx))

	for _, p := range []expense.CreateParams{
		{Amount: "10.00", Category: "Food", Date: "2024-01-05"},
		{Amount: "5.50", Category: "Food", Date: "2024-01-20", Note: "lunch; \"quoted\", too"},
		{Amount: "20.00", Category: "Travel", Date: "2024-02-01"},
	} {
		_, err := from.Create(ctx, p)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, export.RecordRows(from.Snapshot())))

	rows, err := importer.NewService().Import(importer.FormatCSV, &buf)
	require.NoError(t, err)

	target := expense.NewMockRepository(ctrl)
	target.EXPECT().Load(gomock.Any()).Return(expense.State{}, nil)
	target.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	to := expense.NewService(target)
	require.NoError(t, to.Open(ctx))

	imported, err := to.ImportRows(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, from.Snapshot(), imported)
}
