package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cafeassist/backend/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
PRAGMA foreign_keys = ON;
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	price       REAL NOT NULL DEFAULT 0,
	category    TEXT,
	description TEXT
);
CREATE TABLE IF NOT EXISTS labels (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS product_labels (
	product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	label_id   INTEGER NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
	PRIMARY KEY (product_id, label_id)
);
CREATE TABLE IF NOT EXISTS notifications (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	category   TEXT,
	message    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Store is a sqlite-backed product catalog
type Store struct {
	db *sql.DB
}

var (
	_ domain.ProductRepository      = (*Store)(nil)
	_ domain.NotificationRepository = (*Store)(nil)
)

// Open opens the sqlite database at dsn (":memory:" for an in-memory catalog)
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wraps an existing database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the catalog tables if they do not exist
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

// ListProducts returns every product with its labels, ordered by id
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, price, category, description FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	index := make(map[int64]int)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		index[p.ID] = len(products)
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	labelRows, err := s.db.QueryContext(ctx, `
		SELECT pl.product_id, l.name
		FROM product_labels pl JOIN labels l ON l.id = pl.label_id
		ORDER BY pl.product_id, l.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer labelRows.Close()

	for labelRows.Next() {
		var productID int64
		var name string
		if err := labelRows.Scan(&productID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Labels = append(products[i].Labels, name)
		}
	}
	if err := labelRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return products, nil
}

// GetProduct returns a single product with its labels
func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, price, category, description FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	labels, err := s.productLabels(ctx, id)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		p.Labels = labels
	}
	return p, nil
}

// CreateProduct inserts a product and links its labels, creating labels
// that do not exist yet. It returns the new product id.
func (s *Store) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	if product == nil || strings.TrimSpace(product.Name) == "" {
		return 0, domain.ErrInvalidRequest
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO products (name, price, category, description) VALUES (?, ?, ?, ?)`,
		product.Name, product.Price, product.Category, product.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read product id: %w", err)
	}

	if err := linkLabels(ctx, tx, id, product.Labels); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit product: %w", err)
	}

	product.ID = id
	return id, nil
}

// UpdateProduct replaces a product's fields and its label set
func (s *Store) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if product == nil || strings.TrimSpace(product.Name) == "" {
		return domain.ErrInvalidRequest
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, category = ?, description = ? WHERE id = ?`,
		product.Name, product.Price, product.Category, product.Description, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if err := requireRow(res, domain.ErrProductNotFound); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_labels WHERE product_id = ?`, product.ID); err != nil {
		return fmt.Errorf("failed to clear product labels: %w", err)
	}
	if err := linkLabels(ctx, tx, product.ID, product.Labels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product and its label links
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_labels WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete product labels: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if err := requireRow(res, domain.ErrProductNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// linkLabels attaches labels to a product, creating label names that do not exist yet
func linkLabels(ctx context.Context, tx *sql.Tx, productID int64, labels []string) error {
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO labels (name) VALUES (?)`, label); err != nil {
			return fmt.Errorf("failed to insert label %q: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO product_labels (product_id, label_id)
			SELECT ?, id FROM labels WHERE name = ?`, productID, label); err != nil {
			return fmt.Errorf("failed to link label %q: %w", label, err)
		}
	}
	return nil
}

// requireRow returns notFound when the statement touched no rows
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// AddLabel registers a label name; existing names are ignored
func (s *Store) AddLabel(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidRequest
	}
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO labels (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("failed to insert label: %w", err)
	}
	return nil
}

// Labels returns every registered label name in order
func (s *Store) Labels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM labels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountProducts returns the number of products in the catalog
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

func (s *Store) productLabels(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.name FROM product_labels pl JOIN labels l ON l.id = pl.label_id
		WHERE pl.product_id = ? ORDER BY l.name`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product labels: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, name)
	}
	return labels, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct reads one products row. NULL category or description become
// empty strings so malformed rows simply match nothing.
func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p           domain.Product
		price       sql.NullFloat64
		category    sql.NullString
		description sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &category, &description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Price = price.Float64
	p.Category = category.String
	p.Description = description.String
	p.Labels = []string{}
	return &p, nil
}
