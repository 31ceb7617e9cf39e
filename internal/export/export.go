package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/nconklindev/pwrzones/internal/types"

	"github.com/atotto/clipboard"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Roster"

// ZoneColors maps zone style classes to fill colours.
var ZoneColors = map[string]string{
	"ftp-zone1": "#9CA3AF",
	"ftp-zone2": "#3B82F6",
	"ftp-zone3": "#22C55E",
	"ftp-zone4": "#F59E0B",
	"ftp-zone5": "#EF4444",
}

// ZoneColor returns the fill colour for a style class, grey when unknown.
func ZoneColor(styleClass string) string {
	if c, ok := ZoneColors[styleClass]; ok {
		return c
	}
	return "#6B7280"
}

// FormatWatts renders a rounded wattage, "?" when it is not a number.
func FormatWatts(w float64) string {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return "?"
	}
	return fmt.Sprintf("%.0fw", w)
}

func FormatRange(r types.ZoneRange) string {
	return FormatWatts(r.MinWatts) + " - " + FormatWatts(r.MaxWatts)
}

func FormatPct(z types.ZoneDefinition) string {
	return fmt.Sprintf("%g%% - %g%%", z.MinPct, z.MaxPct)
}

// Workbook writes one row per participant to an XLSX file at outputFile.
// Zone columns follow the zones of the first participant.
func Workbook(participants []types.Participant, outputFile string, progressChan chan<- float64) (*types.ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	var zoneDefs []types.ZoneDefinition
	if len(participants) > 0 {
		for _, r := range participants[0].Zones {
			zoneDefs = append(zoneDefs, r.Zone)
		}
	}

	headers := []any{"Name", "FTP", "Phone", "Email"}
	var zoneNames []string
	for _, z := range zoneDefs {
		headers = append(headers, fmt.Sprintf("%s (%s)", z.Name, FormatPct(z)))
		zoneNames = append(zoneNames, z.Name)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, err
	}

	if err := styleHeader(f, len(headers), zoneDefs); err != nil {
		return nil, err
	}

	total := len(participants)
	for i, p := range participants {
		if progressChan != nil && total > 0 {
			select {
			case progressChan <- float64(i) / float64(total):
			default:
			}
		}

		row := []any{p.Name, ftpValue(p), p.Phone, p.Email}
		for _, r := range p.Zones {
			row = append(row, FormatRange(r))
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return nil, err
	}
	if len(headers) > 2 {
		last, _ := excelize.ColumnNumberToName(len(headers))
		if err := f.SetColWidth(SheetName, "C", last, 18); err != nil {
			return nil, err
		}
	}

	if err := f.SaveAs(outputFile); err != nil {
		return nil, err
	}

	if progressChan != nil {
		select {
		case progressChan <- 1:
		default:
		}
	}

	return &types.ExportResult{
		OutputFile:   outputFile,
		Participants: total,
		Zones:        zoneNames,
	}, nil
}

// ftpValue writes numeric FTPs as numbers so the sheet can compute with them.
func ftpValue(p types.Participant) any {
	if p.HasUsableFTP() {
		return p.Watts
	}
	return p.FTP
}

func styleHeader(f *excelize.File, columns int, zoneDefs []types.ZoneDefinition) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(columns, 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return err
	}

	for i, z := range zoneDefs {
		style, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{ZoneColor(z.StyleClass)}},
		})
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(5+i, 1)
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return err
		}
	}

	return nil
}

// Summary renders a participant's zones and the coach message as plain text.
func Summary(p types.Participant, message string) string {
	var s strings.Builder

	s.WriteString(p.Name)
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("FTP: %s watts\n\n", strings.TrimSpace(p.FTP)))

	for _, r := range p.Zones {
		s.WriteString(fmt.Sprintf("%-8s %-12s %s\n", r.Zone.Name, FormatPct(r.Zone), FormatRange(r)))
	}

	if message != "" {
		s.WriteString("\n")
		s.WriteString(message)
		s.WriteString("\n")
	}

	return s.String()
}

// CopySummary puts Summary(p, message) on the system clipboard.
func CopySummary(p types.Participant, message string) error {
	if err := clipboard.WriteAll(Summary(p, message)); err != nil {
		return fmt.Errorf("copy summary for %s: %w", p.Name, err)
	}
	return nil
}
