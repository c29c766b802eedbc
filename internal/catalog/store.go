// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists product candidates and ingredient signals in a
// SQLite catalog and serves them to the engine as immutable, versioned
// in-memory snapshots. The engine never touches the database directly; it
// sees only the read-only snapshot for its request.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grocery-engine/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the product catalog SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the catalog database at
// catalogDir/catalog.db, creating the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			ingredient TEXT NOT NULL,
			title TEXT,
			brand TEXT,
			price REAL NOT NULL,
			size REAL NOT NULL,
			unit_price REAL NOT NULL,
			unit TEXT,
			organic INTEGER NOT NULL DEFAULT 0,
			in_stock INTEGER NOT NULL DEFAULT 1,
			recalled INTEGER NOT NULL DEFAULT 0,
			attributes TEXT,
			stores TEXT,
			metadata TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_ingredient ON products(ingredient)`,
		`CREATE TABLE IF NOT EXISTS safety_signals (
			ingredient TEXT PRIMARY KEY,
			risk TEXT NOT NULL,
			recall_direct INTEGER NOT NULL DEFAULT 0,
			advisory TEXT NOT NULL DEFAULT 'none',
			confidence TEXT NOT NULL DEFAULT 'low',
			data_gap INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS seasonality_signals (
			ingredient TEXT PRIMARY KEY,
			in_season INTEGER NOT NULL DEFAULT 0,
			peak_season INTEGER NOT NULL DEFAULT 0,
			locally_available INTEGER NOT NULL DEFAULT 0,
			data_gap INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Fixture is the on-disk YAML form of a full catalog: a version tag,
// product listings, and per-ingredient signals.
type Fixture struct {
	Version     string                             `yaml:"version"`
	Products    []types.ProductCandidate           `yaml:"products"`
	Safety      map[string]types.SafetySignal      `yaml:"safety"`
	Seasonality map[string]types.SeasonalitySignal `yaml:"seasonality"`
}

// ReadFixture loads a catalog fixture from a YAML file.
func ReadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

// Ingest replaces the catalog contents with a fixture. The whole load
// runs in one transaction so a failed ingest leaves the previous catalog
// intact. Progress goes to w.
func (s *Store) Ingest(ctx context.Context, f *Fixture, w io.Writer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning ingest transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"products", "safety_signals", "seasonality_signals", "catalog_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, p := range f.Products {
		attrs, _ := json.Marshal(p.Attributes)
		stores, _ := json.Marshal(p.Stores)
		meta, _ := json.Marshal(p.Metadata)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products
			 (id, ingredient, title, brand, price, size, unit_price, unit, organic, in_stock, recalled, attributes, stores, metadata)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Ingredient, p.Title, p.Brand, p.Price, p.Size, p.UnitPrice, p.Unit,
			p.Organic, p.InStock, p.Recalled, string(attrs), string(stores), string(meta))
		if err != nil {
			return fmt.Errorf("inserting product %s: %w", p.ID, err)
		}
	}

	for ing, sig := range f.Safety {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO safety_signals (ingredient, risk, recall_direct, advisory, confidence, data_gap)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ing, string(sig.Risk), sig.Recall.DirectMatch, string(sig.Recall.CategoryAdvisory),
			string(sig.Recall.Confidence), sig.Recall.DataGap)
		if err != nil {
			return fmt.Errorf("inserting safety signal for %s: %w", ing, err)
		}
	}

	for ing, sig := range f.Seasonality {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO seasonality_signals (ingredient, in_season, peak_season, locally_available, data_gap)
			 VALUES (?, ?, ?, ?, ?)`,
			ing, sig.InSeason, sig.PeakSeason, sig.LocallyAvailable, sig.DataGap)
		if err != nil {
			return fmt.Errorf("inserting seasonality signal for %s: %w", ing, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, value) VALUES ('version', ?)`, f.Version); err != nil {
		return fmt.Errorf("recording catalog version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ingest: %w", err)
	}

	fmt.Fprintf(w, "Ingested catalog %s: %d products, %d safety signals, %d seasonality signals\n",
		f.Version, len(f.Products), len(f.Safety), len(f.Seasonality))
	return nil
}
