package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: groups must be created BEFORE tables that reference it.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_meta (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    creator TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    paused INTEGER NOT NULL DEFAULT 0,
    member_count INTEGER NOT NULL DEFAULT 0,
    expense_count INTEGER NOT NULL DEFAULT 0,
    settlement_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id INTEGER NOT NULL,
    address TEXT NOT NULL,
    nickname TEXT NOT NULL,
    member_index INTEGER NOT NULL,
    active INTEGER NOT NULL,
    total_owed INTEGER NOT NULL DEFAULT 0,
    total_owing INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (group_id, address),
    UNIQUE (group_id, member_index),
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS balances (
    group_id INTEGER NOT NULL,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK (amount > 0),
    PRIMARY KEY (group_id, debtor, creditor),
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS expenses (
    group_id INTEGER NOT NULL,
    id INTEGER NOT NULL,
    description TEXT NOT NULL,
    total_amount INTEGER NOT NULL,
    payer TEXT NOT NULL,
    receipt_hash TEXT NOT NULL DEFAULT '',
    timestamp INTEGER NOT NULL,
    PRIMARY KEY (group_id, id),
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS expense_shares (
    group_id INTEGER NOT NULL,
    expense_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    participant TEXT NOT NULL,
    share INTEGER NOT NULL,
    PRIMARY KEY (group_id, expense_id, position),
    FOREIGN KEY (group_id, expense_id) REFERENCES expenses(group_id, id)
);

CREATE TABLE IF NOT EXISTS settlements (
    group_id INTEGER NOT NULL,
    id INTEGER NOT NULL,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount INTEGER NOT NULL,
    timestamp INTEGER NOT NULL,
    PRIMARY KEY (group_id, id),
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS accounts (
    address TEXT PRIMARY KEY,
    balance INTEGER NOT NULL CHECK (balance >= 0)
);

CREATE TABLE IF NOT EXISTS receipts (
    tx_id TEXT PRIMARY KEY,
    op TEXT NOT NULL,
    caller TEXT NOT NULL,
    group_id INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    result_id INTEGER NOT NULL DEFAULT 0,
    error_code TEXT NOT NULL DEFAULT '',
    error_message TEXT NOT NULL DEFAULT '',
    height INTEGER NOT NULL DEFAULT 0,
    submitted_at INTEGER NOT NULL,
    confirmed_at INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_group_members_address ON group_members(address);
CREATE INDEX IF NOT EXISTS idx_balances_debtor ON balances(group_id, debtor);
CREATE INDEX IF NOT EXISTS idx_receipts_status ON receipts(status);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
