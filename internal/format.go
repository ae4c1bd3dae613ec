package internal

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExcelFormat represents the detected binary format of an Excel file.
type ExcelFormat int

const (
	ExcelFormatUnknown ExcelFormat = iota
	ExcelFormatOLE2                // Binary .xls (magic: d0cf11e0a1b11ae1)
	ExcelFormatOOXML               // ZIP-based .xlsx (magic: 504b0304)
)

func (f ExcelFormat) String() string {
	switch f {
	case ExcelFormatOLE2:
		return "OLE2"
	case ExcelFormatOOXML:
		return "OOXML"
	default:
		return "unknown"
	}
}

// DetectExcelFormat reads the first bytes of a file and returns the detected format.
func DetectExcelFormat(filePath string) (ExcelFormat, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ExcelFormatUnknown, err
	}
	defer f.Close()

	buf := make([]byte, 8)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return ExcelFormatUnknown, err
	}
	if n < 4 {
		return ExcelFormatUnknown, nil
	}

	// OLE2 Compound Document: d0 cf 11 e0 (full signature: d0cf11e0a1b11ae1)
	if buf[0] == 0xd0 && buf[1] == 0xcf && buf[2] == 0x11 && buf[3] == 0xe0 {
		return ExcelFormatOLE2, nil
	}

	// ZIP (OOXML): PK\x03\x04
	if buf[0] == 0x50 && buf[1] == 0x4b && buf[2] == 0x03 && buf[3] == 0x04 {
		return ExcelFormatOOXML, nil
	}

	return ExcelFormatUnknown, nil
}

// ExtensionMismatch reports whether a .xls/.xlsx file's content disagrees
// with its extension, and the extension the content calls for.
func ExtensionMismatch(filePath string) (want string, mismatch bool, err error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".xls" && ext != ".xlsx" {
		return "", false, nil
	}

	format, err := DetectExcelFormat(filePath)
	if err != nil {
		return "", false, err
	}

	switch {
	case ext == ".xls" && format == ExcelFormatOOXML:
		return ".xlsx", true, nil
	case ext == ".xlsx" && format == ExcelFormatOLE2:
		return ".xls", true, nil
	default:
		return "", false, nil
	}
}
