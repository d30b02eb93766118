package model

// StandardProduct is a canonical catalog entry (SKU) for a product
// model, independent of any specific listing. Specs is a free-form
// attribute map stored as JSONB.
type StandardProduct struct {
	ID          int64          // standard_product.std_id
	ProductCode string         // standard_product.product_code
	BrandName   string         // standard_product.brand_name
	ModelName   string         // standard_product.model_name
	Specs       map[string]any // standard_product.specs (JSONB)
	CategoryID  *int64         // standard_product.category_id (nullable)
}
