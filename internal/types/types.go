package types

import (
	"encoding/json"
	"math"
)

// ZoneDefinition is one percentage-of-FTP band. MinPct is inclusive, MaxPct exclusive.
type ZoneDefinition struct {
	Name       string  `yaml:"name" json:"name"`
	MinPct     float64 `yaml:"min_pct" json:"min_pct"`
	MaxPct     float64 `yaml:"max_pct" json:"max_pct"`
	StyleClass string  `yaml:"style_class" json:"style_class"`
}

// ZoneRange is a ZoneDefinition resolved to watts for one athlete.
type ZoneRange struct {
	Zone     ZoneDefinition `json:"zone"`
	MinWatts float64        `json:"min_watts"`
	MaxWatts float64        `json:"max_watts"`
}

// MarshalJSON writes non-finite watts as null.
func (r ZoneRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Zone     ZoneDefinition `json:"zone"`
		MinWatts *float64       `json:"min_watts"`
		MaxWatts *float64       `json:"max_watts"`
	}{r.Zone, finite(r.MinWatts), finite(r.MaxWatts)})
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

type Participant struct {
	Name  string      `json:"name"`
	FTP   string      `json:"ftp"`
	Watts float64     `json:"-"`
	Phone string      `json:"phone,omitempty"`
	Email string      `json:"email,omitempty"`
	Index int         `json:"index"`
	Zones []ZoneRange `json:"zones"`
}

// HasUsableFTP reports whether the FTP cell parsed to a finite positive number.
func (p Participant) HasUsableFTP() bool {
	return p.Watts > 0 && !math.IsInf(p.Watts, 1)
}

// Table is a header row plus the data rows below it. HeaderRow is the
// 0-based source row the headers came from; files may carry titles above it.
type Table struct {
	Headers   []string
	Rows      [][]string
	HeaderRow int
}

// SourceLine returns the 1-based source row of data row rowIdx.
func (t Table) SourceLine(rowIdx int) int {
	return t.HeaderRow + rowIdx + 2
}

type ExportResult struct {
	OutputFile   string
	Participants int
	Zones        []string
}
