package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Transaction operations

// InsertTransactions inserts a batch of transaction rows inside a single
// SQL transaction.
func (s *Store) InsertTransactions(rows []TransactionRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (order_id, item_id, category, quantity)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		qty := row.Quantity
		if qty <= 0 {
			qty = 1
		}
		if _, err := stmt.Exec(row.OrderID, row.ItemID, row.Category, qty); err != nil {
			return fmt.Errorf("failed to insert transaction for order %s: %w", row.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}

	return nil
}

// ReplaceTransactions replaces the full transaction log with the given rows.
// Used by load and watch: the engine is a pure function of its input
// snapshot, so a reload always starts from a clean table.
func (s *Store) ReplaceTransactions(rows []TransactionRow) error {
	if _, err := s.db.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return s.InsertTransactions(rows)
}

// TransactionRows returns every transaction row in the store.
func (s *Store) TransactionRows() ([]TransactionRow, error) {
	query := `
		SELECT order_id, item_id, category, quantity
		FROM transactions
		ORDER BY order_id, item_id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []TransactionRow
	for rows.Next() {
		var row TransactionRow
		if err := rows.Scan(&row.OrderID, &row.ItemID, &row.Category, &row.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return out, nil
}

// OrderCount returns the number of distinct orders in the store.
func (s *Store) OrderCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(DISTINCT order_id) FROM transactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// ItemCount returns the number of distinct items in the store.
func (s *Store) ItemCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(DISTINCT item_id) FROM transactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// RowCount returns the total number of raw transaction rows.
func (s *Store) RowCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}

// Run operations

// SaveRun persists a mining run and its rules atomically.
func (s *Store) SaveRun(run *Run, rules []RunRule) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, min_support, min_confidence, min_lift, min_basket, max_basket, rule_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
		run.MinSupport,
		run.MinConfidence,
		run.MinLift,
		run.MinBasket,
		run.MaxBasket,
		run.RuleCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_rules (run_id, product1, product2, support, confidence, lift)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rule insert: %w", err)
	}
	defer stmt.Close()

	for _, rule := range rules {
		if _, err := stmt.Exec(run.ID, rule.Product1, rule.Product2, rule.Support, rule.Confidence, rule.Lift); err != nil {
			return fmt.Errorf("failed to insert rule %s/%s: %w", rule.Product1, rule.Product2, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}

	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	query := `
		SELECT id, created_at, min_support, min_confidence, min_lift, min_basket, max_basket, rule_count
		FROM runs
		WHERE id = ?
	`

	var run Run
	var createdAt string

	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&createdAt,
		&run.MinSupport,
		&run.MinConfidence,
		&run.MinLift,
		&run.MinBasket,
		&run.MaxBasket,
		&run.RuleCount,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %s: %w", id, err)
	}

	return &run, nil
}

// ListRuns returns all saved runs ordered by creation time (newest first).
func (s *Store) ListRuns() ([]*Run, error) {
	query := `
		SELECT id, created_at, min_support, min_confidence, min_lift, min_basket, max_basket, rule_count
		FROM runs
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt string

		err := rows.Scan(
			&run.ID,
			&createdAt,
			&run.MinSupport,
			&run.MinConfidence,
			&run.MinLift,
			&run.MinBasket,
			&run.MaxBasket,
			&run.RuleCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for run %s: %w", run.ID, err)
		}

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// RunRules returns the rules persisted with a run, in saved order.
func (s *Store) RunRules(runID string) ([]RunRule, error) {
	query := `
		SELECT run_id, product1, product2, support, confidence, lift
		FROM run_rules
		WHERE run_id = ?
		ORDER BY rowid
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules for run %s: %w", runID, err)
	}
	defer rows.Close()

	var rules []RunRule
	for rows.Next() {
		var rule RunRule
		if err := rows.Scan(&rule.RunID, &rule.Product1, &rule.Product2, &rule.Support, &rule.Confidence, &rule.Lift); err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules for run %s: %w", runID, err)
	}

	return rules, nil
}
