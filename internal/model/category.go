package model

// Category is a node in the self-referential category tree. Root
// categories have a nil parent. The stored data forms a forest (no
// cycles) and is read-only at runtime; listing under a parent category
// implicitly includes all of its descendants.
type Category struct {
	ID       int64  // category.category_id
	Name     string // category.category_name
	ParentID *int64 // category.parent_category_id (nullable)
}
