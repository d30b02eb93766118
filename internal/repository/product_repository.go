package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/haein-dev/c2c-market/internal/model"
)

// ProductRepo reads the standard product (SKU) catalog.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// Autocomplete returns up to five SKUs whose product code contains q,
// case-insensitive, ordered by code.
func (r *ProductRepo) Autocomplete(ctx context.Context, q string) ([]model.StandardProduct, error) {
	const sqlQ = `SELECT std_id, product_code, brand_name, model_name, specs
	              FROM standard_product
	              WHERE product_code ILIKE $1
	              ORDER BY product_code
	              LIMIT 5`
	rows, err := r.db.QueryContext(ctx, sqlQ, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("can't query products: %w", err)
	}
	defer rows.Close()

	out := make([]model.StandardProduct, 0, 5)
	for rows.Next() {
		var p model.StandardProduct
		var specsRaw []byte
		if err := rows.Scan(&p.ID, &p.ProductCode, &p.BrandName, &p.ModelName, &specsRaw); err != nil {
			return nil, fmt.Errorf("can't scan product: %w", err)
		}
		if len(specsRaw) > 0 {
			if err := json.Unmarshal(specsRaw, &p.Specs); err != nil {
				return nil, fmt.Errorf("can't decode specs: %w", err)
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
