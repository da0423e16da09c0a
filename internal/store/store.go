// Package store provides the optional SQLite-backed catalog source. The
// server loads one consistent snapshot from it at startup; the discovery core
// itself never touches the database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/mpocar/dealer-finder/pkg/models"
)

// SQLiteStore holds the deal catalog in a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at the given path and applies
// recommended pragmas for WAL mode, foreign keys, and performance.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection. WAL enables concurrent readers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	// Apply recommended pragmas (modernc.org/sqlite requires SQL statements, not DSN params).
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA cache_size=-20000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// EnsureSchema creates the deals table if it does not exist yet.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS deals (
			id                   TEXT PRIMARY KEY,
			title                TEXT NOT NULL,
			description          TEXT NOT NULL,
			original_price       REAL NOT NULL,
			discount_price       REAL NOT NULL,
			discount_percentage  REAL NOT NULL,
			category             TEXT NOT NULL,
			subcategory          TEXT NOT NULL,
			tags                 TEXT NOT NULL,
			location             TEXT NOT NULL,
			merchant_name        TEXT NOT NULL,
			merchant_rating      REAL NOT NULL,
			quantity_sold        INTEGER NOT NULL,
			expiry_date          DATETIME NOT NULL,
			featured_deal        INTEGER NOT NULL,
			image_url            TEXT NOT NULL DEFAULT '',
			redemption_locations TEXT NOT NULL DEFAULT '[]',
			fine_print           TEXT NOT NULL DEFAULT '',
			review_count         INTEGER NOT NULL,
			average_rating       REAL NOT NULL,
			available_quantity   INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create deals table: %w", err)
	}
	return nil
}

// Tx executes fn within a database transaction. The transaction is
// committed if fn returns nil, rolled back otherwise.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// dealColumns is the shared column list for deal queries.
const dealColumns = `id, title, description, original_price, discount_price,
	discount_percentage, category, subcategory, tags, location, merchant_name,
	merchant_rating, quantity_sold, expiry_date, featured_deal, image_url,
	redemption_locations, fine_print, review_count, average_rating, available_quantity`

// LoadDeals returns the full catalog in insertion order.
func (s *SQLiteStore) LoadDeals(ctx context.Context) ([]models.Deal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+dealColumns+" FROM deals ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query deals: %w", err)
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deals: %w", err)
	}
	return deals, nil
}

// ReplaceDeals transactionally replaces the entire catalog with the given
// deals, preserving their order. Used by the seeder.
func (s *SQLiteStore) ReplaceDeals(ctx context.Context, deals []models.Deal) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM deals"); err != nil {
			return fmt.Errorf("clear deals: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO deals (`+dealColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, d := range deals {
			tags, err := json.Marshal(d.Tags)
			if err != nil {
				return fmt.Errorf("marshal tags for %s: %w", d.ID, err)
			}
			location, err := json.Marshal(d.Location)
			if err != nil {
				return fmt.Errorf("marshal location for %s: %w", d.ID, err)
			}
			redemption, err := json.Marshal(d.RedemptionLocations)
			if err != nil {
				return fmt.Errorf("marshal redemption locations for %s: %w", d.ID, err)
			}

			if _, err := stmt.ExecContext(ctx,
				d.ID, d.Title, d.Description, d.OriginalPrice, d.DiscountPrice,
				d.DiscountPercentage, d.Category, d.Subcategory, string(tags),
				string(location), d.MerchantName, d.MerchantRating, d.QuantitySold,
				d.ExpiryDate.UTC().Format(time.RFC3339), boolToInt(d.FeaturedDeal),
				d.ImageURL, string(redemption), d.FinePrint, d.ReviewCount,
				d.AverageRating, d.AvailableQuantity,
			); err != nil {
				return fmt.Errorf("insert deal %s: %w", d.ID, err)
			}
		}
		return nil
	})
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanDeal(rows *sql.Rows) (models.Deal, error) {
	var (
		d          models.Deal
		tags       string
		location   string
		redemption string
		expiry     string
		featured   int
	)
	if err := rows.Scan(
		&d.ID, &d.Title, &d.Description, &d.OriginalPrice, &d.DiscountPrice,
		&d.DiscountPercentage, &d.Category, &d.Subcategory, &tags, &location,
		&d.MerchantName, &d.MerchantRating, &d.QuantitySold, &expiry, &featured,
		&d.ImageURL, &redemption, &d.FinePrint, &d.ReviewCount,
		&d.AverageRating, &d.AvailableQuantity,
	); err != nil {
		return models.Deal{}, fmt.Errorf("scan deal: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
		return models.Deal{}, fmt.Errorf("unmarshal tags for %s: %w", d.ID, err)
	}
	if err := json.Unmarshal([]byte(location), &d.Location); err != nil {
		return models.Deal{}, fmt.Errorf("unmarshal location for %s: %w", d.ID, err)
	}
	if err := json.Unmarshal([]byte(redemption), &d.RedemptionLocations); err != nil {
		return models.Deal{}, fmt.Errorf("unmarshal redemption locations for %s: %w", d.ID, err)
	}

	t, err := time.Parse(time.RFC3339, expiry)
	if err != nil {
		return models.Deal{}, fmt.Errorf("parse expiry for %s: %w", d.ID, err)
	}
	d.ExpiryDate = t

	d.FeaturedDeal = featured != 0
	return d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
