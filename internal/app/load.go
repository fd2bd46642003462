package app

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/ingest"
)

var loadCmd = &cobra.Command{
	Use:   "load <csv>",
	Short: "Import a transaction CSV into the database",
	Long: `Import a point-of-sale transaction export. The file must have a header
row with an order_id column and an item column (item_id, pizza_id or
product_id are accepted). A category column is optional and feeds the
category-pair view; a quantity column is optional and does not affect pair
counts (an order either contains an item or it does not).

Loading replaces the current dataset: the engine is a pure function of one
input snapshot.`,
	Example: `  # Import an export
  basketlift load orders.csv

  # Import into an explicit database
  basketlift load orders.csv --db /tmp/demo.db`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	RootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := ingest.Import(st, args[0])
	if err != nil {
		return err
	}

	orders, err := st.OrderCount()
	if err != nil {
		return err
	}
	items, err := st.ItemCount()
	if err != nil {
		return err
	}

	fmt.Printf("Imported %s rows: %s orders, %s distinct items\n",
		humanize.Comma(int64(n)),
		humanize.Comma(int64(orders)),
		humanize.Comma(int64(items)))

	return nil
}
