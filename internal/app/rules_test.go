package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/miner"
	"github.com/blackwell-systems/basketlift/internal/store"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	// Point the global --db flag at a throwaway database and keep config
	// lookups away from the real user config dir.
	dbPath = filepath.Join(t.TempDir(), "test.db")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { dbPath = "" })
}

func TestResolveThresholds_FlagsOverrideDefaults(t *testing.T) {
	setupTestDB(t)

	cmd := rulesCmd
	if err := cmd.Flags().Set("min-support", "0.2"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	defer cmd.Flags().Set("min-support", "0.05")
	rulesMinSupport = 0.2

	thresholds, err := resolveThresholds(cmd)
	if err != nil {
		t.Fatalf("resolveThresholds failed: %v", err)
	}

	if thresholds.MinSupport != 0.2 {
		t.Errorf("expected flag value 0.2, got %v", thresholds.MinSupport)
	}
	// Untouched flags keep defaults.
	if thresholds.MinConfidence != 0.3 {
		t.Errorf("expected default 0.3, got %v", thresholds.MinConfidence)
	}
}

func TestSaveRun_PersistsRules(t *testing.T) {
	setupTestDB(t)

	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer st.Close()

	result := &miner.Result{
		Rules: []miner.ScoredRule{
			{Product1: "a", Product2: "b", Support: 0.5, Confidence: 0.8, Lift: 1.6},
		},
	}

	id, err := saveRun(st, config.Default(), result)
	if err != nil {
		t.Fatalf("saveRun failed: %v", err)
	}

	rules, err := st.RunRules(id)
	if err != nil {
		t.Fatalf("RunRules failed: %v", err)
	}
	if len(rules) != 1 || rules[0].Product1 != "a" {
		t.Errorf("expected saved rule round-trip, got %+v", rules)
	}

	run, err := st.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.RuleCount != 1 {
		t.Errorf("expected rule count 1, got %d", run.RuleCount)
	}
}

func TestRunRules_EmptyDatabaseSurfacesEmptyDataset(t *testing.T) {
	setupTestDB(t)

	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer st.Close()

	_, err = miner.New(st).Mine(config.Default(), 0)
	if !errors.Is(err, miner.ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset from empty database, got %v", err)
	}
}

func TestOpenStore_CreatesSchema(t *testing.T) {
	setupTestDB(t)

	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer st.Close()

	// Schema exists: inserting works immediately.
	err = st.InsertTransactions([]store.TransactionRow{{OrderID: "O1", ItemID: "a"}})
	if err != nil {
		t.Errorf("expected usable schema after openStore, got %v", err)
	}
}
