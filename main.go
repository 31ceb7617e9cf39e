package main

import (
	"fmt"
	"os"

	"github.com/nconklindev/pwrzones/internal/config"
	"github.com/nconklindev/pwrzones/internal/logging"
	"github.com/nconklindev/pwrzones/internal/state"
	"github.com/nconklindev/pwrzones/internal/ui"
	"github.com/nconklindev/pwrzones/internal/zones"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pwrzones",
		Short: "Turn a pasted class roster into FTP power zones",
		Long: `pwrzones reads spreadsheet rows with Name, FTP, Phone and Email columns
and shows each athlete's five power zones.

Run without arguments to start the interactive paste screen.`,
		Version:       fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runInteractive,
	}
	rootCmd.SetVersionTemplate("pwrzones {{.Version}}\n")

	rootCmd.AddCommand(newZonesCmd(), newRosterCmd(), newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.NewInteractive(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	defs, err := zones.LoadFile(cfg.Zones.File)
	if err != nil {
		return err
	}

	logger.Info("Starting interactive session", zap.Stringer("config", cfg))

	model := ui.InitialModel(ui.Deps{
		Config: cfg,
		Logger: logger,
		Zones:  defs,
		Store:  state.NewStore(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
