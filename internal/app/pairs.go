package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/miner"
	"github.com/blackwell-systems/basketlift/internal/output"
)

var (
	pairsMinBasket  int
	pairsMaxBasket  int
	pairsTop        int
	pairsByCategory bool
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Show raw pair co-occurrence counts",
	Long: `Show how many distinct orders contain each product pair, without
scoring. This is the intermediate view the rule scores are built from.

With --by-category the grouping key is the product category instead of the
product id: every order containing two or more distinct categories counts
one co-occurrence per category pair. The category view is count-only; no
support, confidence or lift is derived for it.`,
	Example: `  # Most common product pairs
  basketlift pairs --top 20

  # Pairs from mid-size baskets only
  basketlift pairs --min-basket 2 --max-basket 10

  # Category-level co-occurrence
  basketlift pairs --by-category`,
	RunE: runPairs,
}

func init() {
	pairsCmd.Flags().IntVar(&pairsMinBasket, "min-basket", 2, "smallest basket size to count pairs from")
	pairsCmd.Flags().IntVar(&pairsMaxBasket, "max-basket", 0, "largest basket size to count pairs from (0 = unbounded)")
	pairsCmd.Flags().IntVar(&pairsTop, "top", 0, "limit output to the top N pairs (0 = all)")
	pairsCmd.Flags().BoolVar(&pairsByCategory, "by-category", false, "count category pairs instead of product pairs")

	RootCmd.AddCommand(pairsCmd)
}

func runPairs(cmd *cobra.Command, args []string) error {
	if pairsMaxBasket > 0 && pairsMinBasket > pairsMaxBasket {
		return fmt.Errorf("invalid basket window: min %d > max %d", pairsMinBasket, pairsMaxBasket)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	m := miner.New(st)

	var (
		pairs  []miner.PairCount
		orders int
		label  = "Product"
	)
	if pairsByCategory {
		pairs, orders, err = m.CategoryPairCounts()
		label = "Category"
	} else {
		pairs, orders, err = m.PairCounts(pairsMinBasket, pairsMaxBasket)
	}
	if err != nil {
		return err
	}

	if pairsTop > 0 && len(pairs) > pairsTop {
		pairs = pairs[:pairsTop]
	}

	fmt.Print(output.RenderPairTable(pairs, orders, label))
	fmt.Printf("\n%d pairs across %d orders\n", len(pairs), orders)

	return nil
}
