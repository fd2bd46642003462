package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/miner"
	"github.com/blackwell-systems/basketlift/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the loaded dataset",
	Long: `Display order, item and row counts for the loaded transaction
snapshot, together with the basket-size distribution. The distribution is
the thing to look at before choosing a basket-size window for mining:
single-item orders contribute no pairs, and very large baskets contribute
quadratically many.`,
	Example: `  basketlift stats`,
	RunE: runStats,
}

func init() {
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := miner.New(st).Stats()
	if err != nil {
		return err
	}

	if stats.Orders == 0 {
		fmt.Println("No transactions loaded. Run 'basketlift load <csv>' first.")
		return nil
	}

	fmt.Print(output.RenderStats(stats))
	return nil
}
