// Package ingest loads point-of-sale transaction exports into the store.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/blackwell-systems/basketlift/internal/store"
)

// Column headers recognized in transaction exports. Matching is
// case-insensitive; item_id also accepts pizza_id for compatibility with
// the original point-of-sale export.
var (
	orderColumns    = []string{"order_id"}
	itemColumns     = []string{"item_id", "pizza_id", "product_id"}
	categoryColumns = []string{"category"}
	quantityColumns = []string{"quantity", "qty"}
)

// LoadCSV parses a transaction CSV into rows. The first record is a header;
// column order is free and extra columns are ignored. order_id and an item
// column are required, category and quantity are optional (quantity
// defaults to 1). Rows with a blank order or item id are skipped.
func LoadCSV(path string) ([]store.TransactionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; columns resolved by index

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	orderIdx := findColumn(header, orderColumns)
	itemIdx := findColumn(header, itemColumns)
	categoryIdx := findColumn(header, categoryColumns)
	quantityIdx := findColumn(header, quantityColumns)

	if orderIdx < 0 {
		return nil, fmt.Errorf("%s: no order_id column in header", path)
	}
	if itemIdx < 0 {
		return nil, fmt.Errorf("%s: no item_id column in header (accepted: %s)",
			path, strings.Join(itemColumns, ", "))
	}

	var rows []store.TransactionRow
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s line %d: %w", path, line+1, err)
		}
		line++

		row := store.TransactionRow{
			OrderID:  field(record, orderIdx),
			ItemID:   field(record, itemIdx),
			Category: field(record, categoryIdx),
			Quantity: 1,
		}

		if row.OrderID == "" || row.ItemID == "" {
			continue
		}

		if q := field(record, quantityIdx); q != "" {
			qty, err := strconv.Atoi(q)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: invalid quantity %q", path, line, q)
			}
			if qty < 1 {
				qty = 1
			}
			row.Quantity = qty
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// Import loads a transaction CSV and replaces the store's current dataset
// with it. Returns the number of rows imported.
func Import(st *store.Store, path string) (int, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return 0, err
	}

	if err := st.ReplaceTransactions(rows); err != nil {
		return 0, fmt.Errorf("failed to store transactions: %w", err)
	}

	return len(rows), nil
}

// findColumn returns the index of the first header matching any accepted
// name, or -1.
func findColumn(header, accepted []string) int {
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, want := range accepted {
			if name == want {
				return i
			}
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
