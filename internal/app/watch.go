package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/ingest"
	"github.com/blackwell-systems/basketlift/internal/miner"
	"github.com/blackwell-systems/basketlift/internal/output"
	"github.com/blackwell-systems/basketlift/internal/watcher"
)

var watchTop int

var watchCmd = &cobra.Command{
	Use:   "watch <csv>",
	Short: "Re-mine association rules whenever the export file changes",
	Long: `Watch a transaction export file and re-run the full pipeline
(import, aggregate, score, rank) each time it changes. Every pass is a
complete recompute of the snapshot; nothing is updated incrementally.

Runs in the foreground until interrupted.`,
	Example: `  basketlift watch orders.csv
  basketlift watch orders.csv --top 10`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchTop, "top", 10, "rules to show per pass (0 = all)")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	thresholds, err := config.LoadDefault()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	remine := func() error {
		n, err := ingest.Import(st, path)
		if err != nil {
			return err
		}

		result, err := miner.New(st).Mine(thresholds, watchTop)
		if err != nil {
			return err
		}

		fmt.Printf("[%s] %d rows, %d orders\n",
			time.Now().Format("15:04:05"), n, result.TotalOrders)
		fmt.Print(output.RenderRuleTable(result.Rules, false))
		fmt.Println()
		return nil
	}

	// First pass immediately so the watch starts from current contents.
	if err := remine(); err != nil {
		return err
	}

	w, err := watcher.New(path, watcher.DefaultDebounce, remine)
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	fmt.Println("\nStopping watch.")
	return nil
}
