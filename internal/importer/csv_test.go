package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/importer"
)

func TestCSVParser_Parse(t *testing.T) {
	type testCase struct {
		name    string
		content string
		want    []expense.Row
		wantErr error
	}

	tests := []testCase{
		{
			name: "RecordsExport",
			content: "id,date,category,amount,note\n" +
				"1,2024-01-05,food,10.00,\n" +
				"3,2024-02-01,travel,20.00,\"paris, again\"\n",
			want: []expense.Row{
				{ID: "1", Date: "2024-01-05", Category: "food", Amount: "10.00"},
				{ID: "3", Date: "2024-02-01", Category: "travel", Amount: "20.00", Note: "paris, again"},
			},
		},
		{
			name:    "Empty File",
			content: "",
		},
		{
			name:    "Header Only",
			content: "id,date,category,amount,note\n",
		},
		{
			name:    "Different Column Order Without ID",
			content: "Amount,Note,Category,Date\n4.20,flat white,Coffee,2024-05-01\n",
			want: []expense.Row{
				{Date: "2024-05-01", Category: "Coffee", Amount: "4.20", Note: "flat white"},
			},
		},
		{
			name:    "Semicolon Spreadsheet",
			content: "Data;Categoria;Descrição;Montante\n30-01-2026;Casa;Renda;1.234,56\n",
			want: []expense.Row{
				{Date: "2026-01-30", Category: "Casa", Amount: "1234.56", Note: "Renda"},
			},
		},
		{
			name:    "Semicolon Decimal Comma",
			content: "date;category;amount\n2024-01-01;food;12,5\n",
			want:    []expense.Row{{Date: "2024-01-01", Category: "food", Amount: "12.5"}},
		},
		{
			name:    "Semicolon Decimal Point",
			content: "date;category;amount\n2024-01-01;food;12.50\n",
			want:    []expense.Row{{Date: "2024-01-01", Category: "food", Amount: "12.50"}},
		},
		{
			name:    "Semicolon Mixed Separators",
			content: "date;category;amount\n2024-01-01;food;3,00\n2024-01-02;rent;1,234.56\n",
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name:    "Missing Amount Column",
			content: "id,date,category,note\n1,2024-01-01,food,x\n",
			wantErr: importer.ErrNoHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.NewCSVParser().Parse(strings.NewReader(tt.content))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSVParser_RaggedRow(t *testing.T) {
	content := "id,date,category,amount,note\n1,2024-01-01,food,1.00,\n2,2024-01-02,food\n"

	_, err := importer.NewCSVParser().Parse(strings.NewReader(content))
	assert.ErrorContains(t, err, "wrong number of fields")
}

func TestCSVParser_MixedSeparatorsNamesRow(t *testing.T) {
	content := "date;category;amount\n2024-01-01;food;3,00\n2024-01-02;rent;1,234.56\n"

	_, err := importer.NewCSVParser().Parse(strings.NewReader(content))
	assert.ErrorContains(t, err, "row 2")
}

func TestCSVParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "date,category,amount,note\n2024-02-10,Café,3.10,crème\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	got, err := importer.NewCSVParser().Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0].Category)
	assert.Equal(t, "crème", got[0].Note)
}
