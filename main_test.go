package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestZonesCmd(t *testing.T) {
	out, _, err := execute(t, newZonesCmd(), "", "200")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "0w - 110w")
	assert.Contains(t, lines[3], "95% - 105%")
	assert.Contains(t, lines[4], "210w - 240w")
}

func TestZonesCmdRejectsBadFTP(t *testing.T) {
	for _, arg := range []string{"abc", "0", "-5", "NaN", "Inf", "+Inf"} {
		_, _, err := execute(t, newZonesCmd(), "", arg)
		assert.Error(t, err, "zones %s", arg)
	}
}

func TestRosterCmdJSON(t *testing.T) {
	stdin := "Name\tFTP\tPhone\nAna\t250\t555-123-4567\nBob\t\t555-000-0000\n"

	out, _, err := execute(t, newRosterCmd(), stdin, "--json")
	require.NoError(t, err)

	var got []struct {
		Name  string `json:"name"`
		FTP   string `json:"ftp"`
		Phone string `json:"phone"`
		Index int    `json:"index"`
		Zones []struct {
			MinWatts *float64 `json:"min_watts"`
			MaxWatts *float64 `json:"max_watts"`
		} `json:"zones"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "250", got[0].FTP)
	assert.Equal(t, 0, got[0].Index)
	require.Len(t, got[0].Zones, 5)
	assert.Equal(t, 300.0, *got[0].Zones[4].MaxWatts)
}

func TestRosterCmdStrict(t *testing.T) {
	stdin := "Name\tFTP\nAna\tn/a\nBob\t200\n"

	out, _, err := execute(t, newRosterCmd(), stdin, "--json", "--strict")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ana")
	assert.Contains(t, out, "Bob")
}

func TestRosterCmdEmptyInput(t *testing.T) {
	out, errOut, err := execute(t, newRosterCmd(), "  \n ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No rows to read")
}

func TestExportCmd(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "class.xlsx")

	out, _, err := execute(t, newExportCmd(), "name\tftp\nAna\t200\n", "-o", outputFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 athlete(s)")

	f, err := excelize.OpenFile(outputFile)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Roster", "E2")
	require.NoError(t, err)
	assert.Equal(t, "0w - 110w", value)
}
