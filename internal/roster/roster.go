package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nconklindev/pwrzones/internal/types"
	"github.com/nconklindev/pwrzones/internal/zones"

	"go.uber.org/zap"
)

// Header synonyms, in priority order.
var (
	NameTerms  = []string{"name"}
	FTPTerms   = []string{"ftp"}
	PhoneTerms = []string{"phone", "cell"}
	EmailTerms = []string{"email"}
)

type Options struct {
	// Zones defaults to zones.Default() when empty.
	Zones []types.ZoneDefinition

	// StrictFTP drops rows whose FTP is not a positive number instead of
	// passing them through with degenerate zones.
	StrictFTP bool

	Logger *zap.Logger
}

type columns struct {
	name, ftp, phone, email int
}

func resolveColumns(headers []string) (columns, error) {
	var cols columns
	var err error

	if cols.name, err = FindColumn(NameTerms, headers); err != nil {
		return cols, fmt.Errorf("resolve name column: %w", err)
	}
	if cols.ftp, err = FindColumn(FTPTerms, headers); err != nil {
		return cols, fmt.Errorf("resolve ftp column: %w", err)
	}
	if cols.phone, err = FindColumn(PhoneTerms, headers); err != nil {
		return cols, fmt.Errorf("resolve phone column: %w", err)
	}
	if cols.email, err = FindColumn(EmailTerms, headers); err != nil {
		return cols, fmt.Errorf("resolve email column: %w", err)
	}

	return cols, nil
}

// Keep reports whether a row carries the fields every participant needs.
// Only empty or absent cells are missing; a cell of spaces counts as present.
func Keep(name, ftp string) bool {
	return name != "" && ftp != ""
}

// ParseWatts converts an FTP cell to watts. Cells that are not numbers give NaN.
func ParseWatts(ftp string) float64 {
	watts, err := strconv.ParseFloat(strings.TrimSpace(ftp), 64)
	if err != nil {
		return math.NaN()
	}
	return watts
}

// Build turns the data rows of table into participants. Rows without a name
// or FTP are skipped without complaint; indices count kept rows only.
func Build(table types.Table, opts Options) ([]types.Participant, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defs := opts.Zones
	if len(defs) == 0 {
		defs = zones.Default()
	}

	cols, err := resolveColumns(table.Headers)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved columns",
		zap.Int("header_row", table.HeaderRow+1),
		zap.Int("name", cols.name),
		zap.Int("ftp", cols.ftp),
		zap.Int("phone", cols.phone),
		zap.Int("email", cols.email))

	participants := make([]types.Participant, 0, len(table.Rows))
	dropped := 0

	for rowIdx, row := range table.Rows {
		name := cell(row, cols.name)
		ftp := cell(row, cols.ftp)

		if !Keep(name, ftp) {
			dropped++
			logger.Debug("Skipping row without name or ftp", zap.Int("row", table.SourceLine(rowIdx)))
			continue
		}

		watts := ParseWatts(ftp)
		p := types.Participant{
			Name:  name,
			FTP:   ftp,
			Watts: watts,
			Phone: cell(row, cols.phone),
			Email: cell(row, cols.email),
		}

		if opts.StrictFTP && !p.HasUsableFTP() {
			dropped++
			logger.Debug("Skipping row with unusable ftp", zap.Int("row", table.SourceLine(rowIdx)), zap.String("ftp", ftp))
			continue
		}

		p.Index = len(participants)
		p.Zones = zones.Compute(watts, defs)
		participants = append(participants, p)
	}

	logger.Info("Built roster",
		zap.Int("participants", len(participants)),
		zap.Int("dropped", dropped))

	return participants, nil
}

// FromText parses pasted text and builds participants from it. ok is false
// when the text is empty, in which case nothing should be replaced.
func FromText(text string, opts Options) (participants []types.Participant, ok bool, err error) {
	table, ok := ParseTable(text)
	if !ok {
		return nil, false, nil
	}

	participants, err = Build(table, opts)
	if err != nil {
		return nil, true, err
	}
	return participants, true, nil
}
