package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hopper/internal/core"
	"github.com/vovakirdan/hopper/internal/games/runner"
	"github.com/vovakirdan/hopper/internal/logging"
	"github.com/vovakirdan/hopper/internal/platform/tui"
	"github.com/vovakirdan/hopper/internal/replay"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal.

Controls:
  Space/Up/Click - Jump (or start a run)
  Esc/P          - End the run; on the end screen, back to the title
  R/Enter        - Restart (after game over)
  ?              - More keys
  Q/Ctrl+C       - Quit

Every session is recorded to the replay database unless --db is empty.

Difficulty options:
  easy   - Slower start, gentle ramp
  normal - Default speed and ramp
  hard   - Faster start, steep ramp
  fixed  - No ramp, speed stays at the config's initial speed

Examples:
  hopper play
  hopper play --difficulty easy
  hopper play --seed 42 --config ./my-runner.yaml
  hopper play --log-file hopper.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is busy with the game)")
}

func runPlay(_ *cobra.Command, _ []string) {
	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "hopper")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	w, h := tui.FitViewport(runnerCfg, width, height)
	rec, err := replay.NewRecorder(runnerCfg, cfg.Seed, w, h,
		runner.WithNotifier(logging.Lifecycle(logger)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		rec.SaveTo(store, func(err error) {
			logger.Warn("could not save replay", "error", err)
		})
	}

	final, runErr := tui.Run(rec, cfg)

	if err := rec.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if final.Best() > 0 {
		fmt.Printf("Best score this session: %d\n", final.Best())
	}
	if store != nil && !rec.Empty() {
		fmt.Printf("Replay saved: hopper replay %s\n", rec.Journal().ID)
	}
}
