package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx/.xlsm nor .xls.
type ErrUnsupportedFormat struct {
	Ext string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported file format: %s (use .xlsx or .xls)", e.Ext)
}

// Read opens the spreadsheet at path and returns its first worksheet.
func Read(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".xls":
		return readXLS(path)
	default:
		return nil, &ErrUnsupportedFormat{Ext: ext}
	}
}
