// Package main provides the CLI entrypoint for decide.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/delvin02/decision-maker/internal/config"
	"github.com/delvin02/decision-maker/internal/engine"
	"github.com/delvin02/decision-maker/internal/history"
	"github.com/delvin02/decision-maker/internal/historyui"
	"github.com/delvin02/decision-maker/internal/model"
	"github.com/delvin02/decision-maker/internal/registry"
	"github.com/delvin02/decision-maker/internal/store"
	"github.com/delvin02/decision-maker/internal/tui"
)

const (
	defaultWeight        = 5
	defaultSpinSeconds   = 5.0
	defaultNoticeSeconds = 3.0
	defaultFullSpins     = engine.DefaultFullSpins
	defaultExcludeGroup  = string(model.CategoryWork)
	defaultPaletteSize   = 6
)

var (
	wheelWeight        int
	wheelSpinSeconds   float64
	wheelNoticeSeconds float64
	wheelFullSpins     int
	wheelFairness      bool
	wheelExcludeGroup  string
	wheelPaletteSize   int
	wheelNoHistory     bool

	flipNoHistory bool

	historyMode  string
	historySince string
	historyLast  int
	historyPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "decide",
		Short:         "TUI decision wheel",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runWheelCmd,
	}

	rootCmd.Flags().IntVar(&wheelWeight, "weight", defaultWeight, "default weight for new items (1-1000)")
	rootCmd.Flags().Float64Var(&wheelSpinSeconds, "spin-seconds", defaultSpinSeconds, "spin animation duration in seconds")
	rootCmd.Flags().Float64Var(&wheelNoticeSeconds, "notice-seconds", defaultNoticeSeconds, "result notice duration in seconds")
	rootCmd.Flags().IntVar(&wheelFullSpins, "full-spins", defaultFullSpins, "extra full turns per spin")
	rootCmd.Flags().BoolVar(&wheelFairness, "fairness", false, "start with the fairness filter enabled")
	rootCmd.Flags().StringVar(&wheelExcludeGroup, "exclude-group", defaultExcludeGroup, "category excluded by the fairness filter")
	rootCmd.Flags().IntVar(&wheelPaletteSize, "palette-size", defaultPaletteSize, "number of cyclic segment colors")
	rootCmd.Flags().BoolVar(&wheelNoHistory, "no-history", false, "do not record decisions")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newFlipCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runWheelCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "weight", &wheelWeight, fileCfg.Wheel.DefaultWeight)
	applyFloatConfig(cmd, "spin-seconds", &wheelSpinSeconds, fileCfg.Wheel.SpinSeconds)
	applyFloatConfig(cmd, "notice-seconds", &wheelNoticeSeconds, fileCfg.Wheel.NoticeSeconds)
	applyIntConfig(cmd, "full-spins", &wheelFullSpins, fileCfg.Wheel.FullSpins)
	applyBoolConfig(cmd, "fairness", &wheelFairness, fileCfg.Wheel.Fairness)
	applyStringConfig(cmd, "exclude-group", &wheelExcludeGroup, fileCfg.Wheel.ExcludeGroup)
	applyIntConfig(cmd, "palette-size", &wheelPaletteSize, fileCfg.Wheel.PaletteSize)

	cfg := model.Config{
		DefaultWeight:  wheelWeight,
		SpinDuration:   time.Duration(wheelSpinSeconds * float64(time.Second)),
		NoticeDuration: time.Duration(wheelNoticeSeconds * float64(time.Second)),
		FullSpins:      wheelFullSpins,
		Fairness:       wheelFairness,
		ExcludeGroup:   model.Category(wheelExcludeGroup),
		PaletteSize:    wheelPaletteSize,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st := openHistoryStore(wheelNoHistory)
	if st != nil {
		defer closeStore(st)
	}

	reg := registry.New()
	eng := engine.New()
	wheelModel := tui.NewModel(cfg, reg, eng, st)
	program := tea.NewProgram(wheelModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newFlipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flip <topic>",
		Short: "Flip a yes/no decision for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFlipCmd,
	}
	cmd.Flags().BoolVar(&flipNoHistory, "no-history", false, "do not record the flip")
	return cmd
}

func runFlipCmd(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	eng := engine.New()
	verdict, err := eng.Flip(topic)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), verdict); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	st := openHistoryStore(flipNoHistory)
	if st == nil {
		return nil
	}
	defer closeStore(st)
	rec := model.DecisionRecord{
		DecidedAt: time.Now(),
		Mode:      model.ModeFlip,
		Label:     verdict,
	}
	if _, err := st.InsertDecision(context.Background(), rec); err != nil {
		logErrf("failed to save flip: %v\n", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded decisions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "filter by mode (wheel or flip)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N decisions")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print the report without the TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyMode != "" && historyMode != model.ModeWheel && historyMode != model.ModeFlip {
		return fmt.Errorf("--mode must be %q or %q", model.ModeWheel, model.ModeFlip)
	}

	cfg := model.HistoryConfig{
		Mode:  historyMode,
		Since: sinceTime,
		Last:  historyLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	if historyPlain {
		report, err := history.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return history.RenderReport(cmd.OutOrStdout(), report)
	}

	historyModel := historyui.NewModel(st, cfg)
	program := tea.NewProgram(historyModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// openHistoryStore opens the decision history database. Failures are
// reported but never block a decision.
func openHistoryStore(disabled bool) *store.Store {
	if disabled {
		return nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return nil
	}
	return st
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# decide configuration
# Uncomment a value to enable it. CLI flags override config values.

[wheel]
# default-weight = %d    # Default weight for new items (1-1000)
# spin-seconds = %.1f    # Spin animation duration in seconds
# notice-seconds = %.1f  # Result notice duration in seconds
# full-spins = %d        # Extra full turns per spin
# fairness = false      # Start with the fairness filter enabled
# exclude-group = %q # Category excluded by the fairness filter
# palette-size = %d      # Number of cyclic segment colors
`,
		defaultWeight,
		defaultSpinSeconds,
		defaultNoticeSeconds,
		defaultFullSpins,
		defaultExcludeGroup,
		defaultPaletteSize,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DefaultWeight < model.MinWeight || cfg.DefaultWeight > model.MaxWeight {
		return fmt.Errorf("--weight must be between %d and %d", model.MinWeight, model.MaxWeight)
	}
	if cfg.SpinDuration <= 0 {
		return fmt.Errorf("--spin-seconds must be > 0")
	}
	if cfg.NoticeDuration <= 0 {
		return fmt.Errorf("--notice-seconds must be > 0")
	}
	if cfg.FullSpins <= 0 {
		return fmt.Errorf("--full-spins must be > 0")
	}
	if !cfg.ExcludeGroup.Valid() {
		return fmt.Errorf("--exclude-group must be one of: %s", categoryNames())
	}
	if cfg.PaletteSize <= 0 {
		return fmt.Errorf("--palette-size must be > 0")
	}
	return nil
}

func categoryNames() string {
	names := make([]string, 0, len(model.Categories))
	for _, category := range model.Categories {
		names = append(names, string(category))
	}
	return strings.Join(names, ", ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
