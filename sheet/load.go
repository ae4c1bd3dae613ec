package sheet

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/sheetpub/sheetpub/internal"
)

var (
	// ErrNotFound indicates the input file does not exist.
	ErrNotFound = errors.New("spreadsheet not found")

	// ErrUnsupportedFormat indicates a workbook format that cannot be parsed,
	// such as legacy binary .xls.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrUnreadable indicates the file could not be opened or parsed.
	ErrUnreadable = errors.New("unreadable spreadsheet")

	// ErrSheetNotFound indicates the requested worksheet does not exist. It
	// matches ErrUnreadable.
	ErrSheetNotFound = fmt.Errorf("%w: worksheet not found", ErrUnreadable)
)

// Options selects what Load reads.
type Options struct {
	// Sheet is a worksheet name or zero-based index. Empty selects the first
	// worksheet.
	Sheet string
	// Range optionally limits the table to a block such as "A1:F20" or
	// "Data!A1:F20".
	Range string
	// Raw reads unformatted cell values instead of the displayed text.
	Raw bool
}

// Load reads one worksheet of the spreadsheet at path into a table.
func Load(path string, opts Options) (Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Table{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Table{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	var block *internal.Range
	if opts.Range != "" {
		r, err := internal.ParseRange(opts.Range)
		if err != nil {
			return Table{}, fmt.Errorf("--range: %w", err)
		}
		block = &r
	}

	f, err := open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	selector := opts.Sheet
	if block != nil && block.Sheet != "" {
		if selector != "" && selector != block.Sheet {
			return Table{}, fmt.Errorf("--sheet %q conflicts with range sheet %q", selector, block.Sheet)
		}
		selector = block.Sheet
	}

	name, err := resolveSheet(f.GetSheetList(), selector)
	if err != nil {
		return Table{}, err
	}

	grid, err := f.GetRows(name, excelize.Options{RawCellValue: opts.Raw})
	if err != nil {
		return Table{}, fmt.Errorf("%w: reading sheet %q: %w", ErrUnreadable, name, err)
	}
	if block != nil {
		grid = crop(grid, block.StartRow, block.StartCol, block.EndRow, block.EndCol)
	}

	t := fromGrid(grid)
	ev := log.Debug().
		Str("path", path).
		Str("sheet", name)
	if block != nil {
		ev = ev.Stringer("range", block)
	}
	ev.Int("columns", len(t.Columns)).
		Int("rows", len(t.Rows)).
		Msg("loaded worksheet")
	return t, nil
}

// Sheets lists the worksheet names of the spreadsheet at path, in workbook
// order.
func Sheets(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

func open(path string) (*excelize.File, error) {
	format, err := internal.DetectExcelFormat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if format == internal.ExcelFormatOLE2 {
		return nil, fmt.Errorf("%w: %s is a legacy binary (OLE2) workbook; save it as .xlsx", ErrUnsupportedFormat, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	return f, nil
}

// resolveSheet picks a worksheet by exact name, then by case-insensitive
// name, then by zero-based index.
func resolveSheet(names []string, selector string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("%w: workbook has no worksheets", ErrSheetNotFound)
	}
	if selector == "" {
		return names[0], nil
	}

	for _, name := range names {
		if name == selector {
			return name, nil
		}
	}
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(selector)) {
			return name, nil
		}
	}
	if i, err := strconv.Atoi(selector); err == nil && i >= 0 && i < len(names) {
		return names[i], nil
	}

	return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, selector, strings.Join(names, ", "))
}
