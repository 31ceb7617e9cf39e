package zones

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/nconklindev/pwrzones/internal/types"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTable = errors.New("invalid zone table")

// Default returns the five-zone table coaches use for power classes.
func Default() []types.ZoneDefinition {
	return []types.ZoneDefinition{
		{Name: "Zone 1", MinPct: 0, MaxPct: 55, StyleClass: "ftp-zone1"},
		{Name: "Zone 2", MinPct: 55, MaxPct: 75, StyleClass: "ftp-zone2"},
		{Name: "Zone 3", MinPct: 75, MaxPct: 95, StyleClass: "ftp-zone3"},
		{Name: "Zone 4", MinPct: 95, MaxPct: 105, StyleClass: "ftp-zone4"},
		{Name: "Zone 5", MinPct: 105, MaxPct: 120, StyleClass: "ftp-zone5"},
	}
}

// Compute resolves every zone to watts for the given FTP. Each bound is
// rounded on its own, half away from zero. A NaN ftp yields NaN bounds.
func Compute(ftp float64, defs []types.ZoneDefinition) []types.ZoneRange {
	ranges := make([]types.ZoneRange, 0, len(defs))
	for _, zone := range defs {
		ranges = append(ranges, types.ZoneRange{
			Zone:     zone,
			MinWatts: math.Round(zone.MinPct * 0.01 * ftp),
			MaxWatts: math.Round(zone.MaxPct * 0.01 * ftp),
		})
	}
	return ranges
}

// Validate checks that defs cover a contiguous band starting at 0%.
func Validate(defs []types.ZoneDefinition) error {
	if len(defs) == 0 {
		return fmt.Errorf("%w: no zones", ErrInvalidTable)
	}
	if defs[0].MinPct != 0 {
		return fmt.Errorf("%w: %s starts at %g%%, want 0%%", ErrInvalidTable, defs[0].Name, defs[0].MinPct)
	}

	for i, zone := range defs {
		if zone.Name == "" {
			return fmt.Errorf("%w: zone %d has no name", ErrInvalidTable, i+1)
		}
		if zone.MinPct < 0 || zone.MinPct >= zone.MaxPct {
			return fmt.Errorf("%w: %s range %g-%g%% is not increasing", ErrInvalidTable, zone.Name, zone.MinPct, zone.MaxPct)
		}
		if i > 0 && defs[i-1].MaxPct != zone.MinPct {
			return fmt.Errorf("%w: gap between %s (%g%%) and %s (%g%%)",
				ErrInvalidTable, defs[i-1].Name, defs[i-1].MaxPct, zone.Name, zone.MinPct)
		}
	}

	return nil
}

// LoadFile reads a YAML zone table. An empty path returns the default table.
func LoadFile(path string) ([]types.ZoneDefinition, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone table: %w", err)
	}

	var defs []types.ZoneDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse zone table %s: %w", path, err)
	}

	if err := Validate(defs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return defs, nil
}
