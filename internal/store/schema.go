package store

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    category TEXT,
    quantity INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    min_support REAL NOT NULL,
    min_confidence REAL NOT NULL,
    min_lift REAL NOT NULL,
    min_basket INTEGER NOT NULL,
    max_basket INTEGER NOT NULL,
    rule_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_rules (
    run_id TEXT NOT NULL,
    product1 TEXT NOT NULL,
    product2 TEXT NOT NULL,
    support REAL NOT NULL,
    confidence REAL NOT NULL,
    lift REAL NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transactions_order ON transactions(order_id);
CREATE INDEX IF NOT EXISTS idx_transactions_item ON transactions(item_id);
CREATE INDEX IF NOT EXISTS idx_run_rules_run ON run_rules(run_id);
`
