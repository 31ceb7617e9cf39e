package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadFile_TSV(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "class.tsv")

	if err := os.WriteFile(inputFile, []byte("Name\tFTP\r\nAna\t250\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, ok, err := ReadFile(inputFile)
	if err != nil || !ok {
		t.Fatalf("ReadFile() = ok %v, err %v", ok, err)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "Ana" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestReadFile_EmptyTSV(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "empty.txt")

	if err := os.WriteFile(inputFile, []byte("\n  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := ReadFile(inputFile)
	if err != nil || ok {
		t.Errorf("ReadFile(empty) = ok %v, err %v; want no data", ok, err)
	}
}

func TestReadFile_CSV(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "class.csv")

	f, err := os.Create(inputFile)
	if err != nil {
		t.Fatal(err)
	}
	w := csv.NewWriter(f)
	w.WriteAll([][]string{
		{"Name", "FTP", "Phone"},
		{"Smith, Ana", "250", "555-123-4567"},
		{"Bob", "200"},
	})
	f.Close()

	table, ok, err := ReadFile(inputFile)
	if err != nil || !ok {
		t.Fatalf("ReadFile() = ok %v, err %v", ok, err)
	}

	participants, err := Build(table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(participants) != 2 {
		t.Fatalf("Build() returned %d participants; want 2", len(participants))
	}
	if participants[0].Name != "Smith, Ana" {
		t.Errorf("Name = %q; want quoted CSV field unwrapped", participants[0].Name)
	}
	if participants[1].Phone != "" {
		t.Errorf("Phone = %q; want empty for short row", participants[1].Phone)
	}
}

func TestReadFile_CSVWithByteOrderMark(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"Bare header", "\ufeffName,FTP\nAna,250\n"},
		{"Quoted header", "\ufeff\"Name\",FTP\nAna,250\n"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputFile := filepath.Join(tmpDir, fmt.Sprintf("bom%d.csv", i))
			if err := os.WriteFile(inputFile, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			table, ok, err := ReadFile(inputFile)
			if err != nil || !ok {
				t.Fatalf("ReadFile() = ok %v, err %v", ok, err)
			}
			if table.Headers[0] != "Name" {
				t.Errorf("Headers[0] = %q; want %q", table.Headers[0], "Name")
			}

			participants, err := Build(table, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if len(participants) != 1 || participants[0].Name != "Ana" {
				t.Errorf("participants = %+v; want Ana", participants)
			}
		})
	}
}

func TestReadFile_XLSX(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "class.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Tuesday PWR")
	f.SetSheetRow(sheet, "A3", &[]any{"Name", "FTP", "Email"})
	f.SetSheetRow(sheet, "A4", &[]any{"Ana", 250, "ana@example.com"})
	f.SetSheetRow(sheet, "A5", &[]any{"Bob", 190})
	if err := f.SaveAs(inputFile); err != nil {
		t.Fatal(err)
	}
	f.Close()

	table, ok, err := ReadFile(inputFile)
	if err != nil || !ok {
		t.Fatalf("ReadFile() = ok %v, err %v", ok, err)
	}
	if table.HeaderRow != 2 {
		t.Errorf("HeaderRow = %d; want 2", table.HeaderRow)
	}

	participants, err := Build(table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(participants) != 2 || participants[0].FTP != "250" || participants[0].Email != "ana@example.com" {
		t.Errorf("participants = %+v", participants)
	}
}

func TestReadFile_Unsupported(t *testing.T) {
	_, _, err := ReadFile("roster.pdf")
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("ReadFile(.pdf) error = %v; want ErrUnsupportedFile", err)
	}
}

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected int
	}{
		{"First row", [][]string{{"Name", "FTP"}, {"Ana", "250"}}, 0},
		{"Title above header", [][]string{{"Tuesday class"}, {}, {"Name", "FTP", "Cell"}, {"Ana", "250"}}, 2},
		{"Numbers only", [][]string{{"1", "2"}, {"3", "4"}}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findHeaderRow(tt.rows); got != tt.expected {
				t.Errorf("findHeaderRow() = %d; want %d", got, tt.expected)
			}
		})
	}
}
