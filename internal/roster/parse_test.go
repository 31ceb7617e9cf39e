package roster

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedHeaders []string
		expectedRows    [][]string
	}{
		{
			name:            "Unix line endings",
			input:           "Name\tFTP\nAna\t250\nBob\t200",
			expectedHeaders: []string{"Name", "FTP"},
			expectedRows:    [][]string{{"Ana", "250"}, {"Bob", "200"}},
		},
		{
			name:            "Windows line endings",
			input:           "Name\tFTP\r\nAna\t250\r\n",
			expectedHeaders: []string{"Name", "FTP"},
			expectedRows:    [][]string{{"Ana", "250"}},
		},
		{
			name:            "Bare carriage returns",
			input:           "Name\tFTP\rAna\t250\rBob\t200",
			expectedHeaders: []string{"Name", "FTP"},
			expectedRows:    [][]string{{"Ana", "250"}, {"Bob", "200"}},
		},
		{
			name:            "Surrounding whitespace trimmed",
			input:           "\n\n  Name\tFTP\nAna\t250\n\n  ",
			expectedHeaders: []string{"Name", "FTP"},
			expectedRows:    [][]string{{"Ana", "250"}},
		},
		{
			name:            "Empty cells kept",
			input:           "Name\tFTP\tPhone\nBob\t\t555-000-0000",
			expectedHeaders: []string{"Name", "FTP", "Phone"},
			expectedRows:    [][]string{{"Bob", "", "555-000-0000"}},
		},
		{
			name:            "Leading byte-order mark dropped",
			input:           "\ufeffName\tFTP\nAna\t250",
			expectedHeaders: []string{"Name", "FTP"},
			expectedRows:    [][]string{{"Ana", "250"}},
		},
		{
			name:            "Header only",
			input:           "Name\tFTP",
			expectedHeaders: []string{"Name", "FTP"},
			expectedRows:    [][]string{},
		},
		{
			name:            "Commas are not delimiters",
			input:           "Name\tFTP\n\"Smith, Ana\"\t250",
			expectedHeaders: []string{"Name", "FTP"},
			expectedRows:    [][]string{{"\"Smith, Ana\"", "250"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTable(tt.input)
			if !ok {
				t.Fatalf("ParseTable(%q) reported no data", tt.input)
			}
			if diff := cmp.Diff(tt.expectedHeaders, got.Headers); diff != "" {
				t.Errorf("headers mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.expectedRows, got.Rows); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTableNoData(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\r\n\t \n", "\ufeff", "\ufeff\n "} {
		if _, ok := ParseTable(input); ok {
			t.Errorf("ParseTable(%q) ok = true; want false", input)
		}
	}
}

func TestFindColumn(t *testing.T) {
	tests := []struct {
		name     string
		terms    []string
		headers  []string
		expected int
	}{
		{"Exact match", []string{"ftp"}, []string{"name", "ftp", "phone"}, 1},
		{"Case and whitespace insensitive", []string{"ftp"}, []string{" Name ", " FTP\t", "Phone"}, 1},
		{"Match in first column", []string{"name"}, []string{"Name", "FTP"}, 0},
		{"First synonym wins", []string{"phone", "cell"}, []string{"Cell", "Name", "Phone"}, 2},
		{"Falls back to later synonym", []string{"phone", "cell"}, []string{"Name", "Cell"}, 1},
		{"Synonym at column zero", []string{"phone", "cell"}, []string{"Cell", "Name"}, 0},
		{"Byte-order mark on first header", []string{"name"}, []string{"\ufeffName", "FTP"}, 0},
		{"Not found", []string{"email"}, []string{"Name", "FTP"}, NotFound},
		{"Empty header row", []string{"name"}, []string{}, NotFound},
		{"Partial header does not match", []string{"name"}, []string{"Full Name"}, NotFound},
		{"Duplicate header uses leftmost", []string{"ftp"}, []string{"FTP", "Name", "ftp"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindColumn(tt.terms, tt.headers)
			if err != nil {
				t.Fatalf("FindColumn() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("FindColumn(%v, %q) = %d; want %d", tt.terms, tt.headers, got, tt.expected)
			}
		})
	}
}

func TestFindColumnNormalizedHeadersMatch(t *testing.T) {
	messy := []string{" Name ", "FTP", "Phone"}
	clean := []string{"name", "ftp", "phone"}

	for _, terms := range [][]string{NameTerms, FTPTerms, PhoneTerms, EmailTerms} {
		a, errA := FindColumn(terms, messy)
		b, errB := FindColumn(terms, clean)
		if errA != nil || errB != nil {
			t.Fatalf("FindColumn(%v) errors: %v, %v", terms, errA, errB)
		}
		if a != b {
			t.Errorf("FindColumn(%v): messy = %d, clean = %d", terms, a, b)
		}
	}
}

func TestFindColumnMissingHeaders(t *testing.T) {
	got, err := FindColumn(NameTerms, nil)
	if !errors.Is(err, ErrInvalidHeaders) {
		t.Errorf("FindColumn(nil) error = %v; want ErrInvalidHeaders", err)
	}
	if got != NotFound {
		t.Errorf("FindColumn(nil) = %d; want NotFound", got)
	}
}
