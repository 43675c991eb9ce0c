package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hopper/internal/core"
	"github.com/vovakirdan/hopper/internal/games/runner"
	"github.com/vovakirdan/hopper/internal/platform/tui"
	"github.com/vovakirdan/hopper/internal/replay"
	"github.com/vovakirdan/hopper/internal/storage"
)

var (
	flagLimit int
	flagFinal bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded replays",
	Long: `List the recorded replays, newest first.

In a terminal this opens an interactive browser: Enter watches the selected
replay, D deletes it. When the output is not a terminal the list is printed.

Examples:
  hopper replays
  hopper replays --limit 5 | cat`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch a recorded replay",
	Long: `Re-simulate a recorded replay and play it back in the terminal.

With --final, or when the output is not a terminal, only the last frame is
printed.

Examples:
  hopper replay 5b0e3c52-2f7e-4d6c-9a51-2b7f0c4e9d11
  hopper replay 5b0e3c52-2f7e-4d6c-9a51-2b7f0c4e9d11 --final`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to list")
	replayCmd.Flags().BoolVar(&flagFinal, "final", false, "Print only the final frame")
}

func mustOpenStore() *storage.Store {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	if store == nil {
		fmt.Fprintln(os.Stderr, "Error: replays are disabled (--db is empty)")
		os.Exit(1)
	}
	return store
}

func terminalSize() (int, int, bool) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24, true
	}
	return w, h, true
}

func runReplays(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	width, height, interactive := terminalSize()
	if !interactive {
		printJournals(store)
		return
	}

	id, err := tui.RunJournals(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if id != "" {
		watch(store, id, width, height)
	}
}

func printJournals(store *storage.Store) {
	infos, err := store.ListJournals(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(infos) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hopper play' to record one!")
		return
	}

	fmt.Printf("  %-36s  %-8s  %-10s  %s\n", "ID", "Ticks", "Size", "Date")
	fmt.Printf("  %-36s  %-8s  %-10s  %s\n", "--", "-----", "----", "----")
	for _, info := range infos {
		row := tui.JournalRow(info)
		fmt.Printf("  %-36s  %-8s  %-10s  %s\n", row[0], row[1], row[2], row[3])
	}
}

func runReplay(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	width, height, interactive := terminalSize()
	if flagFinal || !interactive {
		printFinal(store, args[0])
		return
	}
	watch(store, args[0], width, height)
}

// load re-simulates a stored journal, collecting every tick's snapshot
// when frames is not nil.
func load(store *storage.Store, id string, frames *[]runner.Snapshot) runner.Snapshot {
	j, err := store.LoadJournal(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var collect func(runner.Snapshot)
	if frames != nil {
		collect = func(s runner.Snapshot) { *frames = append(*frames, s) }
	}
	final, err := replay.Play(j, collect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying %s: %v\n", id, err)
		os.Exit(1)
	}
	return final
}

func watch(store *storage.Store, id string, width, height int) {
	var frames []runner.Snapshot
	load(store, id, &frames)

	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: flagFPS}
	if err := tui.RunPlayback(frames, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printFinal(store *storage.Store, id string) {
	final := load(store, id, nil)

	cols := int(final.Width / runner.DefaultScale.X)
	rows := int(final.Height / runner.DefaultScale.Y)
	screen := core.NewScreen(cols, rows)
	final.Render(screen, runner.DefaultScale)

	for y := range screen.Height() {
		fmt.Println(strings.TrimRight(screen.Row(y), " "))
	}
	fmt.Printf("\nState: %s  Score: %d  Frames: %d\n", final.State, final.Score, final.Frame)
}
