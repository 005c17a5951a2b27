// Package main provides the CLI entrypoint for typemaster.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typemaster/internal/catalog"
	"github.com/verte-zerg/typemaster/internal/config"
	"github.com/verte-zerg/typemaster/internal/logging"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/particles"
	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/tui"
)

const (
	defaultLevel    = 1
	defaultLogLevel = "info"
)

var (
	gameLevel       int
	gameCatalog     string
	gameLogFile     string
	gameLogLevel    string
	gameNoMouse     bool
	gameNoParticles bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typemaster",
		Short:         "Timed typing practice in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	rootCmd.Flags().IntVar(&gameLevel, "level", defaultLevel, "level to select on start")
	rootCmd.Flags().StringVar(&gameCatalog, "catalog", "", "path to a TOML level catalog")
	rootCmd.Flags().StringVar(&gameLogFile, "log-file", "", "write JSON logs to this file")
	rootCmd.Flags().StringVar(&gameLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&gameNoMouse, "no-mouse", false, "disable clicking the on-screen keyboard")
	rootCmd.Flags().BoolVar(&gameNoParticles, "no-particles", false, "disable the background animation")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newCatalogCmd())

	return rootCmd
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg, cat); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("typemaster needs an interactive terminal")
	}

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close run journal: %v\n", cerr)
		}
	}()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctrl := session.New(cat,
		session.WithRand(rnd),
		session.WithLogger(logger.With().Str("component", "session").Logger()),
		session.WithOnFinish(tui.RecordAttempts(st, logger)),
	)
	if err := ctrl.Select(cfg.StartLevel); err != nil {
		return fmt.Errorf("--level: %w", err)
	}

	var field *particles.Field
	if cfg.Particles {
		field = particles.New(particles.DefaultCount, rnd)
	}

	logger.Info().
		Int("levels", cat.Len()).
		Int("start_level", cfg.StartLevel).
		Bool("mouse", cfg.Mouse).
		Msg("game starting")

	gameModel := tui.NewModel(cfg, ctrl, st, field, logger.With().Str("component", "tui").Logger())
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(gameModel, opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return printRunSummary(cmd, st, logger)
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "level", &gameLevel, fileCfg.Game.Level)
	applyStringConfig(cmd, "catalog", &gameCatalog, fileCfg.Game.Catalog)
	applyStringConfig(cmd, "log-file", &gameLogFile, fileCfg.Game.LogFile)
	applyStringConfig(cmd, "log-level", &gameLogLevel, fileCfg.Game.LogLevel)
	applyNegatedBoolConfig(cmd, "no-mouse", &gameNoMouse, fileCfg.Game.Mouse)
	applyNegatedBoolConfig(cmd, "no-particles", &gameNoParticles, fileCfg.Game.Particles)

	return model.Config{
		StartLevel:  gameLevel,
		CatalogPath: gameCatalog,
		LogFile:     gameLogFile,
		LogLevel:    gameLogLevel,
		Mouse:       !gameNoMouse,
		Particles:   !gameNoParticles,
	}, nil
}

// loadCatalog reads path if given, then the default catalog file if present,
// and falls back to the built-in levels.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		path = config.DefaultCatalogPath()
		if !config.FileExists(path) {
			return catalog.Default(), nil
		}
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

func validateConfig(cfg model.Config, cat *catalog.Catalog) error {
	if cfg.StartLevel < 1 || cfg.StartLevel > cat.Last() {
		return fmt.Errorf("--level must be between 1 and %d", cat.Last())
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func printRunSummary(cmd *cobra.Command, st *store.Store, logger zerolog.Logger) error {
	attempts, err := st.ListAttempts(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("failed to list attempts")
		return fmt.Errorf("failed to read run journal: %w", err)
	}
	width := 0
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}
	if err := stats.RenderRunSummary(cmd.OutOrStdout(), attempts, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List catalog levels",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
	cmd.Flags().StringVar(&gameCatalog, "catalog", "", "path to a TOML level catalog")
	return cmd
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "catalog", &gameCatalog, fileCfg.Game.Catalog)
	cat, err := loadCatalog(gameCatalog)
	if err != nil {
		return err
	}
	if err := stats.RenderLevels(cmd.OutOrStdout(), cat.Levels()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the built-in catalog as TOML",
		Long: fmt.Sprintf("Print the built-in catalog as TOML. Save it to %s to customise levels.",
			config.DefaultCatalogPath()),
		Args: cobra.NoArgs,
		RunE: runCatalogCmd,
	}
}

func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	if err := catalog.Encode(cmd.OutOrStdout(), catalog.Default()); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
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

// applyNegatedBoolConfig maps an enabling config key onto a --no-* flag.
func applyNegatedBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = !*value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typemaster configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# level = %d              # Level selected on start
# catalog = ""           # TOML level catalog (default %s if present)
# log-file = %q
# log-level = %q       # debug, info, warn, error
# mouse = true           # Click keys on the on-screen keyboard
# particles = true       # Background animation
`,
		defaultLevel,
		config.DefaultCatalogPath(),
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
