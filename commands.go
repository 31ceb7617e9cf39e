package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"

	"github.com/nconklindev/pwrzones/internal/config"
	"github.com/nconklindev/pwrzones/internal/export"
	"github.com/nconklindev/pwrzones/internal/logging"
	"github.com/nconklindev/pwrzones/internal/roster"
	"github.com/nconklindev/pwrzones/internal/types"
	"github.com/nconklindev/pwrzones/internal/ui"
	"github.com/nconklindev/pwrzones/internal/zones"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env bundles what every subcommand loads before doing work.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	zones  []types.ZoneDefinition
}

func setup() (*env, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	defs, err := zones.LoadFile(cfg.Zones.File)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, zones: defs}, nil
}

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones <ftp>",
		Short: "Print the power zones for one FTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			ftp, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(ftp) || math.IsInf(ftp, 0) || ftp <= 0 {
				return fmt.Errorf("FTP must be a positive number of watts, got %q", args[0])
			}

			out := cmd.OutOrStdout()
			for _, r := range zones.Compute(ftp, e.zones) {
				fmt.Fprintf(out, "%-8s %-12s %s\n", r.Zone.Name, export.FormatPct(r.Zone), export.FormatRange(r))
			}
			return nil
		},
	}
}

func newRosterCmd() *cobra.Command {
	var asJSON, strict bool

	cmd := &cobra.Command{
		Use:   "roster [file]",
		Short: "Print zone cards for a roster file or rows piped on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			participants, ok, err := loadRoster(cmd, args, e.options(strict))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "No rows to read")
				return nil
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(participants)
			}

			content, _ := ui.RenderRoster(participants, -1, nil)
			fmt.Fprint(out, content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print participants as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Drop rows whose FTP is not a positive number")
	return cmd
}

func newExportCmd() *cobra.Command {
	var outputPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write a roster's zones to an XLSX workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			participants, ok, err := loadRoster(cmd, args, e.options(strict))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no rows to export")
			}

			if outputPath == "" {
				outputPath = filepath.Join(e.cfg.Export.Dir, "pwrzones.xlsx")
			}

			result, err := export.Workbook(participants, outputPath, nil)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			e.logger.Info("Exported roster",
				zap.String("file", result.OutputFile),
				zap.Int("participants", result.Participants))

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d athlete(s) to %s\n", result.Participants, result.OutputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: $EXPORT_DIR/pwrzones.xlsx)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Drop rows whose FTP is not a positive number")
	return cmd
}

func (e *env) options(strict bool) roster.Options {
	return roster.Options{
		Zones:     e.zones,
		StrictFTP: strict || e.cfg.Roster.StrictFTP,
		Logger:    e.logger,
	}
}

// loadRoster reads the roster from the file in args, or stdin when there is none.
func loadRoster(cmd *cobra.Command, args []string, opts roster.Options) ([]types.Participant, bool, error) {
	var table types.Table
	var ok bool

	if len(args) == 1 {
		var err error
		table, ok, err = roster.ReadFile(args[0])
		if err != nil {
			return nil, false, err
		}
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, false, fmt.Errorf("read stdin: %w", err)
		}
		table, ok = roster.ParseTable(string(data))
	}

	if !ok {
		return nil, false, nil
	}

	participants, err := roster.Build(table, opts)
	if err != nil {
		return nil, true, err
	}
	return participants, true, nil
}
