package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leadgen-engine/internal/domain"
)

var ErrNotFound = errors.New("not found")

func InsertProduct(db *sql.DB, p domain.Product) error {
	personas, _ := json.Marshal(orEmpty(p.Metadata.TargetPersonas))
	industries, _ := json.Marshal(orEmpty(p.Metadata.Industries))
	regions, _ := json.Marshal(orEmpty(p.Metadata.Regions))

	_, err := db.Exec(`
INSERT INTO products
  (id, name, description, target_personas, industries, regions,
   company_size, budget_range, lead_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		p.ID, p.Name, p.Description,
		string(personas), string(industries), string(regions),
		p.Metadata.CompanySize, p.Metadata.BudgetRange,
		p.LeadCount,
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func GetProduct(db *sql.DB, id string) (domain.Product, error) {
	row := db.QueryRow(`
SELECT id, name, description, target_personas, industries, regions,
       company_size, budget_range, lead_count, created_at, updated_at
FROM products WHERE id = ?;`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

func ListProducts(db *sql.DB) ([]domain.Product, error) {
	rows, err := db.Query(`
SELECT id, name, description, target_personas, industries, regions,
       company_size, budget_range, lead_count, created_at, updated_at
FROM products ORDER BY created_at DESC;`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0, 8)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func UpdateProduct(db *sql.DB, p domain.Product) error {
	personas, _ := json.Marshal(orEmpty(p.Metadata.TargetPersonas))
	industries, _ := json.Marshal(orEmpty(p.Metadata.Industries))
	regions, _ := json.Marshal(orEmpty(p.Metadata.Regions))

	res, err := db.Exec(`
UPDATE products SET
  name = ?, description = ?, target_personas = ?, industries = ?,
  regions = ?, company_size = ?, budget_range = ?, updated_at = ?
WHERE id = ?;`,
		p.Name, p.Description,
		string(personas), string(industries), string(regions),
		p.Metadata.CompanySize, p.Metadata.BudgetRange,
		time.Now().UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteProduct(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM products WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// BumpProductLeadCount keeps the denormalized counter in step with
// saved leads. Missing product is not an error: ad-hoc runs carry no
// product id.
func BumpProductLeadCount(db *sql.DB, id string) error {
	if id == "" {
		return nil
	}
	_, err := db.Exec(`
UPDATE products SET lead_count = lead_count + 1, updated_at = ? WHERE id = ?;`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("bump product lead count: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var personas, industries, regions, createdAt, updatedAt string

	if err := row.Scan(
		&p.ID, &p.Name, &p.Description,
		&personas, &industries, &regions,
		&p.Metadata.CompanySize, &p.Metadata.BudgetRange,
		&p.LeadCount, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("scan product: %w", err)
	}

	_ = json.Unmarshal([]byte(personas), &p.Metadata.TargetPersonas)
	_ = json.Unmarshal([]byte(industries), &p.Metadata.Industries)
	_ = json.Unmarshal([]byte(regions), &p.Metadata.Regions)

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		p.UpdatedAt = t
	}
	return p, nil
}
