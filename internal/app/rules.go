package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/miner"
	"github.com/blackwell-systems/basketlift/internal/output"
	"github.com/blackwell-systems/basketlift/internal/store"
)

var (
	rulesMinSupport    float64
	rulesMinConfidence float64
	rulesMinLift       float64
	rulesMinBasket     int
	rulesMaxBasket     int
	rulesTop           int
	rulesBoth          bool
	rulesSave          bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Mine association rules from the loaded transactions",
	Long: `Mine product-pair association rules and rank them.

Each rule scores one unordered pair of products:
  - support:    fraction of all orders containing both products
  - confidence: fraction of orders with product 1 that also have product 2
  - lift:       observed co-occurrence vs. what independence predicts
                (1.0 = independent, above 1 = positive association)

Rules pass when support and confidence meet their thresholds (inclusive)
and lift exceeds its threshold (strict). Output is ranked by support, then
lift. Threshold defaults come from thresholds.yaml in the config directory
when present; flags override the file.`,
	Example: `  # Default thresholds (support 0.05, confidence 0.3, lift 1.0)
  basketlift rules

  # Focus on mid-size baskets, strongest ten rules
  basketlift rules --min-basket 2 --max-basket 10 --top 10

  # Show both confidence directions
  basketlift rules --both-directions

  # Persist this run for later comparison
  basketlift rules --save`,
	RunE: runRules,
}

func init() {
	def := config.Default()
	rulesCmd.Flags().Float64Var(&rulesMinSupport, "min-support", def.MinSupport, "minimum support (inclusive)")
	rulesCmd.Flags().Float64Var(&rulesMinConfidence, "min-confidence", def.MinConfidence, "minimum confidence (inclusive)")
	rulesCmd.Flags().Float64Var(&rulesMinLift, "min-lift", def.MinLift, "minimum lift (strict)")
	rulesCmd.Flags().IntVar(&rulesMinBasket, "min-basket", def.MinBasketSize, "smallest basket size to mine pairs from")
	rulesCmd.Flags().IntVar(&rulesMaxBasket, "max-basket", def.MaxBasketSize, "largest basket size to mine pairs from (0 = unbounded)")
	rulesCmd.Flags().IntVar(&rulesTop, "top", def.TopN, "limit output to the top N rules (0 = all)")
	rulesCmd.Flags().BoolVar(&rulesBoth, "both-directions", false, "show confidence for both rule directions")
	rulesCmd.Flags().BoolVar(&rulesSave, "save", false, "persist this run and its rules in the database")

	RootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	thresholds, err := resolveThresholds(cmd)
	if err != nil {
		return err
	}
	limit := thresholds.TopN
	if cmd.Flags().Changed("top") {
		limit = rulesTop
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := miner.New(st).Mine(thresholds, limit)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRuleTable(result.Rules, rulesBoth))
	fmt.Printf("\n%d rules from %d orders (%d distinct items)\n",
		len(result.Rules), result.TotalOrders, result.TotalItems)
	if result.Skipped > 0 {
		fmt.Printf("Warning: %d rules skipped due to inconsistent counts\n", result.Skipped)
	}

	if rulesSave {
		id, err := saveRun(st, thresholds, result)
		if err != nil {
			return err
		}
		fmt.Printf("Saved run %s\n", id)
	}

	return nil
}

// resolveThresholds layers command-line flags over the config file values.
// Flags that were not set on the command line keep the file (or default)
// value.
func resolveThresholds(cmd *cobra.Command) (config.Thresholds, error) {
	thresholds, err := config.LoadDefault()
	if err != nil {
		return thresholds, err
	}

	if cmd.Flags().Changed("min-support") {
		thresholds.MinSupport = rulesMinSupport
	}
	if cmd.Flags().Changed("min-confidence") {
		thresholds.MinConfidence = rulesMinConfidence
	}
	if cmd.Flags().Changed("min-lift") {
		thresholds.MinLift = rulesMinLift
	}
	if cmd.Flags().Changed("min-basket") {
		thresholds.MinBasketSize = rulesMinBasket
	}
	if cmd.Flags().Changed("max-basket") {
		thresholds.MaxBasketSize = rulesMaxBasket
	}

	if err := thresholds.Validate(); err != nil {
		return thresholds, err
	}

	return thresholds, nil
}

// saveRun persists a mining result under a fresh run id.
func saveRun(st *store.Store, t config.Thresholds, result *miner.Result) (string, error) {
	run := &store.Run{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now(),
		MinSupport:    t.MinSupport,
		MinConfidence: t.MinConfidence,
		MinLift:       t.MinLift,
		MinBasket:     t.MinBasketSize,
		MaxBasket:     t.MaxBasketSize,
		RuleCount:     len(result.Rules),
	}

	rules := make([]store.RunRule, 0, len(result.Rules))
	for _, r := range result.Rules {
		rules = append(rules, store.RunRule{
			RunID:      run.ID,
			Product1:   r.Product1,
			Product2:   r.Product2,
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		})
	}

	if err := st.SaveRun(run, rules); err != nil {
		return "", err
	}

	return run.ID, nil
}
