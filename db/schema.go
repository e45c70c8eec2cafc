// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	address TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	consent INTEGER NOT NULL,
	bedrooms TEXT,
	bathrooms TEXT,
	basement TEXT,
	basement_status TEXT,
	selling_timeline TEXT,
	property_type TEXT,
	unit_number TEXT,
	created_at DATETIME NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
CREATE INDEX IF NOT EXISTS idx_leads_selling_timeline ON leads(selling_timeline);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
