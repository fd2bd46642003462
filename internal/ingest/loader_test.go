package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/basketlift/internal/store"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test csv: %v", err)
	}
	return path
}

func TestLoadCSV_Basic(t *testing.T) {
	path := writeCSV(t, "order_id,item_id,category,quantity\nO1,hawaiian,classic,1\nO1,pepperoni,classic,2\n")

	rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].OrderID != "O1" || rows[0].ItemID != "hawaiian" || rows[0].Category != "classic" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", rows[1].Quantity)
	}
}

func TestLoadCSV_PizzaIDAlias(t *testing.T) {
	// The original point-of-sale export names the item column pizza_id.
	path := writeCSV(t, "order_id,pizza_id,category\n1,bbq_ckn,chicken\n")

	rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ItemID != "bbq_ckn" {
		t.Errorf("expected pizza_id mapped to item id, got %+v", rows)
	}
}

func TestLoadCSV_ColumnOrderFree(t *testing.T) {
	path := writeCSV(t, "category,quantity,item_id,order_id,extra\nclassic,1,hawaiian,O1,ignored\n")

	rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(rows) != 1 || rows[0].OrderID != "O1" || rows[0].ItemID != "hawaiian" {
		t.Errorf("header mapping failed: %+v", rows)
	}
}

func TestLoadCSV_OptionalColumns(t *testing.T) {
	path := writeCSV(t, "order_id,item_id\nO1,hawaiian\n")

	rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if rows[0].Category != "" {
		t.Errorf("expected empty category, got %q", rows[0].Category)
	}
	if rows[0].Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", rows[0].Quantity)
	}
}

func TestLoadCSV_SkipsBlankIDs(t *testing.T) {
	path := writeCSV(t, "order_id,item_id\nO1,hawaiian\n,orphan\nO2,\n")

	rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected blank-id rows skipped, got %d rows", len(rows))
	}
}

func TestLoadCSV_MissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, "order_id,color\nO1,red\n")

	if _, err := LoadCSV(path); err == nil {
		t.Error("expected error for missing item column")
	}
}

func TestLoadCSV_InvalidQuantity(t *testing.T) {
	path := writeCSV(t, "order_id,item_id,quantity\nO1,hawaiian,lots\n")

	if _, err := LoadCSV(path); err == nil {
		t.Error("expected error for non-numeric quantity")
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	if _, err := LoadCSV(path); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestImport_ReplacesDataset(t *testing.T) {
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()
	if err := s.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	first := writeCSV(t, "order_id,item_id\nO1,a\nO1,b\n")
	if _, err := Import(s, first); err != nil {
		t.Fatalf("first Import failed: %v", err)
	}

	second := writeCSV(t, "order_id,item_id\nX1,c\n")
	n, err := Import(s, second)
	if err != nil {
		t.Fatalf("second Import failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row imported, got %d", n)
	}

	rows, err := s.TransactionRows()
	if err != nil {
		t.Fatalf("TransactionRows failed: %v", err)
	}
	if len(rows) != 1 || rows[0].OrderID != "X1" {
		t.Errorf("expected dataset replaced, got %+v", rows)
	}
}
