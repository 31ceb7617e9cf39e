package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/pwrzones/internal/types"

	"github.com/xuri/excelize/v2"
)

const RowDetectionLimit = 10

var ErrUnsupportedFile = errors.New("unsupported file type")

// AllowedExtensions lists the roster files ReadFile understands.
var AllowedExtensions = []string{".tsv", ".txt", ".csv", ".xlsx"}

// ReadFile loads a roster table from disk. ok is false when the file holds no rows.
func ReadFile(filePath string) (table types.Table, ok bool, err error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".tsv", ".txt":
		return readTSVData(filePath)
	case ".csv":
		return readCSVData(filePath)
	case ".xlsx":
		return readXLSXData(filePath)
	default:
		return types.Table{}, false, fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}
}

func readTSVData(filePath string) (types.Table, bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return types.Table{}, false, err
	}

	table, ok := ParseTable(string(data))
	return table, ok, nil
}

func readCSVData(filePath string) (types.Table, bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return types.Table{}, false, err
	}
	defer file.Close()

	// A leading BOM would otherwise break a quoted first header
	br := bufio.NewReader(file)
	if lead, err := br.Peek(len(byteOrderMark)); err == nil && bytes.Equal(lead, []byte(byteOrderMark)) {
		if _, err := br.Discard(len(byteOrderMark)); err != nil {
			return types.Table{}, false, err
		}
	}

	reader := csv.NewReader(br)
	// Spreadsheet exports often leave trailing rows short.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return types.Table{}, false, err
	}

	if len(records) == 0 {
		return types.Table{}, false, nil
	}

	return types.Table{
		Headers: records[0],
		Rows:    records[1:],
	}, true, nil
}

func readXLSXData(filePath string) (types.Table, bool, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return types.Table{}, false, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return types.Table{}, false, err
	}

	if len(rows) == 0 {
		return types.Table{}, false, nil
	}

	// Class sheets often carry a title or date above the roster
	headerRowIdx := findHeaderRow(rows)
	if headerRowIdx == -1 {
		return types.Table{}, false, fmt.Errorf("could not find header row in %s", filepath.Base(filePath))
	}

	return types.Table{
		Headers:   rows[headerRowIdx],
		Rows:      rows[headerRowIdx+1:],
		HeaderRow: headerRowIdx,
	}, true, nil
}

// findHeaderRow picks the row with the most non-empty cells among the first
// 20, considering only rows that have at least two cells and some letters.
func findHeaderRow(rows [][]string) int {
	maxNonEmpty := 0
	headerIdx := -1

	searchLimit := len(rows)
	if searchLimit > RowDetectionLimit*2 {
		searchLimit = RowDetectionLimit * 2
	}

	for i := 0; i < searchLimit; i++ {
		nonEmptyCount := 0
		hasText := false

		for _, cell := range rows[i] {
			trimmed := strings.TrimSpace(cell)
			if trimmed != "" {
				nonEmptyCount++
				if containsLetters(trimmed) {
					hasText = true
				}
			}
		}

		if nonEmptyCount >= 2 && hasText && nonEmptyCount > maxNonEmpty {
			maxNonEmpty = nonEmptyCount
			headerIdx = i
		}
	}

	return headerIdx
}

func containsLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
