package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a workbook with one sheet per entry of sheets, in
// order. Cell values are written with SetCellValue so numbers keep their type.
func writeWorkbook(t *testing.T, sheets []string, cells map[string]map[string]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for ref, v := range cells[name] {
			require.NoError(t, f.SetCellValue(name, ref, v))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoad_NameScore(t *testing.T) {
	path := writeWorkbook(t, []string{"Sheet1"}, map[string]map[string]any{
		"Sheet1": {
			"A1": "Name", "B1": "Score",
			"A2": "Ann", "B2": 9,
			"A3": "Bo",
		},
	})

	tbl, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Score"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Nil(t, tbl.Rows[1]["Score"])

	assert.Equal(t, [][]string{{"Ann", "9"}, {"Bo", ""}}, Normalize(tbl).Records())
}

func TestLoad_FirstSheetByDefault(t *testing.T) {
	path := writeWorkbook(t, []string{"Summary", "Data"}, map[string]map[string]any{
		"Summary": {"A1": "Total", "A2": "3"},
		"Data":    {"A1": "Item", "A2": "x"},
	})

	tbl, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Total"}, tbl.Columns)
}

func TestLoad_SheetSelection(t *testing.T) {
	path := writeWorkbook(t, []string{"Summary", "Data"}, map[string]map[string]any{
		"Summary": {"A1": "Total"},
		"Data":    {"A1": "Item", "A2": "x"},
	})

	for _, sel := range []string{"Data", "data", " DATA ", "1"} {
		t.Run(sel, func(t *testing.T) {
			tbl, err := Load(path, Options{Sheet: sel})
			require.NoError(t, err)
			assert.Equal(t, []string{"Item"}, tbl.Columns)
		})
	}

	_, err := Load(path, Options{Sheet: "Missing"})
	require.ErrorIs(t, err, ErrSheetNotFound)
	assert.Contains(t, err.Error(), "Summary, Data")

	_, err = Load(path, Options{Sheet: "2"})
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestLoad_Range(t *testing.T) {
	path := writeWorkbook(t, []string{"Report", "Data"}, map[string]map[string]any{
		"Report": {"A1": "ignored"},
		"Data": {
			"A1": "Report title",
			"B3": "Item", "C3": "Qty", "D3": "outside",
			"B4": "bolt", "C4": 4,
			"B5": "nut",
		},
	})

	tbl, err := Load(path, Options{Range: "Data!B3:C5"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Qty"}, tbl.Columns)
	assert.Equal(t, [][]string{{"bolt", "4"}, {"nut", ""}}, tbl.Records())

	tbl, err = Load(path, Options{Sheet: "Data", Range: "B3:C4"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"bolt", "4"}}, tbl.Records())

	_, err = Load(path, Options{Sheet: "Report", Range: "Data!B3:C5"})
	assert.ErrorContains(t, err, "conflicts")

	_, err = Load(path, Options{Range: "not a range"})
	assert.ErrorContains(t, err, "--range")
}

func TestLoad_Raw(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Amount"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 1234.5))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", style))
	path := filepath.Join(t.TempDir(), "fmt.xlsx")
	require.NoError(t, f.SaveAs(path))

	formatted, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1234.50"}}, formatted.Records())

	raw, err := Load(path, Options{Raw: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1234.5"}}, raw.Records())
}

func TestLoad_InputErrors(t *testing.T) {
	dir := t.TempDir()

	ole2 := filepath.Join(dir, "legacy.xls")
	require.NoError(t, os.WriteFile(ole2, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0, 0}, 0o644))

	corrupt := filepath.Join(dir, "corrupt.xlsx")
	require.NoError(t, os.WriteFile(corrupt, []byte("this is not a workbook"), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.xlsx"), ErrNotFound},
		{"legacy binary workbook", ole2, ErrUnsupportedFormat},
		{"corrupt file", corrupt, ErrUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, Options{})
			assert.ErrorIs(t, err, tt.want)

			_, err = Sheets(tt.path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSheets(t *testing.T) {
	path := writeWorkbook(t, []string{"Summary", "Data", "Notes"}, nil)

	names, err := Sheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summary", "Data", "Notes"}, names)
}

func TestResolveSheet_EmptyWorkbook(t *testing.T) {
	_, err := resolveSheet(nil, "")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestErrSheetNotFound_IsUnreadable(t *testing.T) {
	_, err := resolveSheet([]string{"Data"}, "Other")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoad_LogsEffectiveRange(t *testing.T) {
	orig := log.Logger
	t.Cleanup(func() { log.Logger = orig })
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	path := writeWorkbook(t, []string{"Q1 Report"}, map[string]map[string]any{
		"Q1 Report": {"B3": "Item", "B4": "bolt"},
	})

	_, err := Load(path, Options{Range: "'Q1 Report'!$c$5:b3"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"range":"'Q1 Report'!B3:C5"`)
	assert.Contains(t, buf.String(), `"sheet":"Q1 Report"`)
}
