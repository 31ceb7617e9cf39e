package roster

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/nconklindev/pwrzones/internal/types"
)

// NotFound is returned by FindColumn when no search term matches a header.
const NotFound = -1

var ErrInvalidHeaders = errors.New("invalid headers")

var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

// byteOrderMark leads text saved as "CSV UTF-8" or "Unicode Text" by Excel.
const byteOrderMark = "\ufeff"

// ParseTable splits pasted spreadsheet text into rows of tab-separated cells.
// The first row becomes the header row. ok is false when the text holds no
// rows at all; callers should leave their current roster alone in that case.
//
// There is no quoting: a tab inside a value is read as a cell boundary.
func ParseTable(text string) (table types.Table, ok bool) {
	text = strings.TrimSpace(strings.TrimPrefix(text, byteOrderMark))
	if text == "" {
		return types.Table{}, false
	}

	lines := lineBreak.Split(text, -1)
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(line, "\t"))
	}

	return types.Table{
		Headers: rows[0],
		Rows:    rows[1:],
	}, true
}

// FindColumn returns the index of the first search term present in headers.
// Headers are compared lower-cased and trimmed of spaces and byte-order marks; terms are expected in that
// form already. Terms are tried in order, so earlier terms win even when a
// later term sits further left. A match in column 0 is a match.
func FindColumn(searchTerms []string, headers []string) (int, error) {
	if headers == nil {
		return NotFound, ErrInvalidHeaders
	}

	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = normalizeHeader(header)
	}

	for _, term := range searchTerms {
		for i, header := range normalized {
			if header == term {
				return i, nil
			}
		}
	}

	return NotFound, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimFunc(header, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}))
}

// cell returns row[col], or "" when the column is unresolved or the row is short.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
