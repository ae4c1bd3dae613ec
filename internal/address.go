package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// cellRefRe matches a cell reference like A1, $B$2, AA100
var cellRefRe = regexp.MustCompile(`^\$?([A-Z]+)\$?(\d+)$`)

// Range is a rectangular block of cells, 1-indexed and inclusive.
type Range struct {
	Sheet    string
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// ParseRange parses an address like "Sheet1!A1:Z50", "'My Sheet'!B2" or
// "A1:F20". The sheet is empty when the address is not sheet-qualified.
func ParseRange(address string) (Range, error) {
	var r Range

	rangePart := address
	if sheetPart, rest, hasSheet := cutSheet(address); hasSheet {
		r.Sheet = sheetPart
		rangePart = rest
	}
	if strings.TrimSpace(rangePart) == "" {
		return Range{}, fmt.Errorf("address has no cell range, got %q", address)
	}

	// Split range into from:to
	fromRef, toRef, hasColon := strings.Cut(rangePart, ":")
	if !hasColon {
		toRef = fromRef // single cell
	}

	var err error
	r.StartCol, r.StartRow, err = parseRef(fromRef)
	if err != nil {
		return Range{}, fmt.Errorf("invalid start of range %q: %w", fromRef, err)
	}
	r.EndCol, r.EndRow, err = parseRef(toRef)
	if err != nil {
		return Range{}, fmt.Errorf("invalid end of range %q: %w", toRef, err)
	}

	// Normalize order
	if r.StartRow > r.EndRow {
		r.StartRow, r.EndRow = r.EndRow, r.StartRow
	}
	if r.StartCol > r.EndCol {
		r.StartCol, r.EndCol = r.EndCol, r.StartCol
	}

	return r, nil
}

// String formats the range as "Sheet1!A1:Z50", or "A1:Z50" without a sheet.
func (r Range) String() string {
	from := ColToLetter(r.StartCol) + strconv.Itoa(r.StartRow)
	to := ColToLetter(r.EndCol) + strconv.Itoa(r.EndRow)
	cells := from
	if from != to {
		cells = from + ":" + to
	}
	if r.Sheet == "" {
		return cells
	}
	if strings.ContainsAny(r.Sheet, " !'") {
		return "'" + strings.ReplaceAll(r.Sheet, "'", "''") + "'!" + cells
	}
	return r.Sheet + "!" + cells
}

// ColToLetter converts a 1-indexed column number to Excel letter(s)
func ColToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// cutSheet splits "Sheet!A1" on the last '!' outside quotes and unquotes the
// sheet name ('' is an escaped quote).
func cutSheet(address string) (sheet, rest string, ok bool) {
	i := strings.LastIndex(address, "!")
	if i < 0 {
		return "", address, false
	}
	sheet = address[:i]
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet, address[i+1:], true
}

func parseRef(ref string) (col, row int, err error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	m := cellRefRe.FindStringSubmatch(strings.ToUpper(ref))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	col = letterToCol(m[1])
	row, _ = strconv.Atoi(m[2])
	if row < 1 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	return col, row, nil
}

func letterToCol(letters string) int {
	col := 0
	for _, c := range letters {
		col = col*26 + int(c-'A'+1)
	}
	return col
}
