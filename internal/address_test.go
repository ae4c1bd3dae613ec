package internal

import (
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input                              string
		sheet                              string
		startRow, startCol, endRow, endCol int
		wantErr                            bool
	}{
		{"Sheet1!A1:Z50", "Sheet1", 1, 1, 50, 26, false},
		{"Sheet1!A1:B2", "Sheet1", 1, 1, 2, 2, false},
		{"Sheet1!A1", "Sheet1", 1, 1, 1, 1, false},
		{"'My Sheet'!C3:D4", "My Sheet", 3, 3, 4, 4, false},
		{"'Bob''s'!A1:B1", "Bob's", 1, 1, 1, 2, false},
		{"Sheet1!$A$1:$B$2", "Sheet1", 1, 1, 2, 2, false},
		{"a1:c10", "", 1, 1, 10, 3, false},
		// reversed range should normalize
		{"Sheet1!B2:A1", "Sheet1", 1, 1, 2, 2, false},
		{"Sheet1!", "", 0, 0, 0, 0, true},
		{"A0:B2", "", 0, 0, 0, 0, true},
		{"1A:B2", "", 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if r.Sheet != tt.sheet || r.StartRow != tt.startRow || r.StartCol != tt.startCol || r.EndRow != tt.endRow || r.EndCol != tt.endCol {
				t.Errorf("ParseRange(%q) = %+v, want (%q, %d, %d, %d, %d)",
					tt.input, r,
					tt.sheet, tt.startRow, tt.startCol, tt.endRow, tt.endCol)
			}
		})
	}
}

func TestColToLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{702, "ZZ"},
	}
	for _, tt := range tests {
		if got := ColToLetter(tt.col); got != tt.want {
			t.Errorf("ColToLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestRangeString(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{Range{Sheet: "Sheet1", StartRow: 1, StartCol: 1, EndRow: 50, EndCol: 26}, "Sheet1!A1:Z50"},
		{Range{Sheet: "Sheet1", StartRow: 5, StartCol: 3, EndRow: 5, EndCol: 3}, "Sheet1!C5"},
		{Range{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: 2}, "A1:B2"},
		{Range{Sheet: "My Sheet", StartRow: 1, StartCol: 1, EndRow: 1, EndCol: 1}, "'My Sheet'!A1"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Range.String() = %q, want %q", got, tt.want)
		}
	}
}
