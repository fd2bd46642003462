package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/miner"
	"github.com/blackwell-systems/basketlift/internal/output"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved mining runs",
	Long: `List mining runs saved with 'basketlift rules --save', newest first.
Saved runs are reports: the rules they hold were derived from the dataset
at save time and can always be recomputed.`,
	Example: `  # List saved runs
  basketlift runs

  # Show the rules of one run
  basketlift runs show 2f1c...`,
	RunE: runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the rules of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRunTable(runs))
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(args[0])
	if err != nil {
		return err
	}

	saved, err := st.RunRules(run.ID)
	if err != nil {
		return err
	}

	rules := make([]miner.ScoredRule, 0, len(saved))
	for _, r := range saved {
		rules = append(rules, miner.ScoredRule{
			Product1:   r.Product1,
			Product2:   r.Product2,
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		})
	}

	fmt.Printf("Run %s (saved %s)\n\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Print(output.RenderRuleTable(rules, false))

	return nil
}
