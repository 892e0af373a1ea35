package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string, seedDemo bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if seedDemo {
		// Dev-only demo orders so /update_order can be exercised immediately.
		if err := seedDemoOrders(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS orders(
  order_number TEXT PRIMARY KEY,
  customer_name TEXT,
  customer_email TEXT,
  status TEXT NOT NULL DEFAULT 'NEW',
  tracking_number TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`
	_, err := db.Exec(schema)
	return err
}

// seedDemoOrders inserts a few orders if none exist (idempotent).
func seedDemoOrders(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo orders")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO orders(order_number, customer_name, customer_email, status) VALUES
	  ('123','Alice Doe','alice@example.com','NEW'),
	  ('124','Bob Ray','bob@example.com','NEW'),
	  ('125','Cara Lin','cara@example.com','PACKED')`)
	return tx.Commit()
}
