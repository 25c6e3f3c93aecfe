// Package cli wires the detective command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tatianab/detective-quest/internal/config"
	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/logging"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/observability"
)

type app struct {
	cfg *config.Config
}

// NewRootCommand builds the detective command with every subcommand.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "detective",
		Short: "Explore a mansion, collect clues and accuse a suspect",
		Long: `Detective Quest walks a mansion laid out as a binary map. Each room may
hold a clue; clues point to suspects. Explore with e (left), d (right),
b (back) and s (stop), then name the culprit. An accusation is supported
when at least two collected clues point to the accused.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}
	rootCmd.PersistentFlags().String("case", "", "Case YAML file (default: the built-in mansion)")
	rootCmd.PersistentFlags().String("variant", config.VariantFull, "Game variant: full|classic")
	rootCmd.PersistentFlags().Int("max-undo", config.DefaultMaxUndo, "How many rooms back can remember")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to debug.log")
	rootCmd.PersistentFlags().Bool("narrate", false, "Describe rooms with Gemini (needs GEMINI_API_KEY)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the full-screen terminal UI",
		Args:  cobra.NoArgs,
		RunE:  a.runPlay,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Play line by line on stdin/stdout (scriptable)",
		Args:  cobra.NoArgs,
		RunE:  a.runConsole,
	}

	rootCmd.AddCommand(playCmd, runCmd, newCaseCommand(a))
	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the environment, then lets explicitly set flags win.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("case") {
		cfg.CasePath, _ = flags.GetString("case")
	}
	if flags.Changed("variant") {
		cfg.Variant, _ = flags.GetString("variant")
	}
	if flags.Changed("max-undo") {
		cfg.MaxUndo, _ = flags.GetInt("max-undo")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("narrate") {
		cfg.Narrate, _ = flags.GetBool("narrate")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// newEngine opens the case, the debug log, tracing and the optional
// narrator. The returned cleanup closes them in reverse order.
func (a *app) newEngine(ctx context.Context, stderr io.Writer) (*engine.Engine, func(), error) {
	c, err := models.LoadCase(a.cfg.CasePath)
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog, err := logging.Open(a.cfg.Debug, a.cfg.DebugLog)
	if err != nil {
		return nil, nil, fmt.Errorf("opening debug log: %w", err)
	}

	tp, err := observability.InitTracing(ctx, observability.LoadConfigFromEnv())
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	opts := engine.Options{
		SupportsUndo: a.cfg.SupportsUndo(),
		MaxUndo:      a.cfg.MaxUndo,
		Logger:       logger,
		Tracer:       tp.Tracer("detective-quest/engine"),
	}
	if a.cfg.Narrate {
		n, err := engine.NewGeminiNarrator(ctx, a.cfg.GeminiAPIKey)
		if err != nil {
			tp.Shutdown(ctx)
			closeLog()
			return nil, nil, fmt.Errorf("creating narrator: %w", err)
		}
		opts.Narrator = n
	}

	eng, err := engine.NewEngine(c, opts)
	if err != nil {
		if opts.Narrator != nil {
			opts.Narrator.Close()
		}
		tp.Shutdown(ctx)
		closeLog()
		return nil, nil, err
	}

	cleanup := func() {
		if err := eng.Close(); err != nil {
			logger.Warn("closing engine", "error", err)
		}
		if err := tp.Shutdown(ctx); err != nil {
			fmt.Fprintf(stderr, "Error flushing traces: %v\n", err)
		}
		closeLog()
	}
	return eng, cleanup, nil
}
