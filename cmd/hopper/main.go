// hopper is a jump-and-dodge runner for the terminal, SSH and the browser.
//
// Usage:
//
//	hopper play              - Play in this terminal
//	hopper serve             - Start SSH server for remote play
//	hopper web               - Start the browser version
//	hopper replays           - Browse recorded replays
//	hopper replay <id>       - Watch a recorded replay
//	hopper config            - Print the effective game config
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--config <path>        - Game config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--db <path>            - Replay database (default: ~/.hopper/replays.db)
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hopper/internal/config"
	"github.com/vovakirdan/hopper/internal/logging"
	"github.com/vovakirdan/hopper/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hopper",
	Short: "Hopper - jump over obstacles in your terminal or browser",
	Long: `Hopper is an endless runner: a ball jumps over obstacles that scroll
in ever faster from the right. Every obstacle that leaves the screen is a point;
touching one ends the run.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start the browser version
  replays  - Browse recorded replays
  replay   - Watch a recorded replay
  config   - Print the effective game config

Examples:
  hopper play
  hopper play --difficulty hard
  hopper serve --ssh :2222
  hopper web --addr :8080
  hopper replay 5b0e3c52-...`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hopper/replays.db", "Path to replay database (empty = no replays)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadRunnerConfig loads the game config and applies the difficulty flag.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(w, prefix, level), nil
}

// openStore opens the replay database. An empty --db disables replays.
func openStore() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, nil
	}
	return storage.Open(flagDBPath)
}
