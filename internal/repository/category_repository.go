package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/haein-dev/c2c-market/internal/model"
)

// CategoryRepo provides read access to the category tree. The tree is
// administered out of band and treated as read-only at runtime.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo returns a CategoryRepo bound to the given database.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// ListAll returns every category ordered by id.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT category_id, category_name, parent_category_id
	           FROM category
	           ORDER BY category_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("can't query categories: %w", err)
	}
	defer rows.Close()

	out := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		var parent sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &parent); err != nil {
			return nil, fmt.Errorf("can't scan category: %w", err)
		}
		if parent.Valid {
			p := parent.Int64
			c.ParentID = &p
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Closure returns id plus every descendant category id reachable by
// following parent links downward. The result is duplicate-free and
// unordered. It is computed per request so administrative changes to
// the tree are visible immediately; callers needing speed may cache
// externally. An id with no matching category yields just the seed,
// which matches nothing downstream.
func (r *CategoryRepo) Closure(ctx context.Context, id int64) ([]int64, error) {
	return expandClosure(id, func(frontier []int64) ([]int64, error) {
		const q = `SELECT category_id FROM category WHERE parent_category_id = ANY($1)`
		rows, err := r.db.QueryContext(ctx, q, frontier)
		if err != nil {
			return nil, fmt.Errorf("can't query category children: %w", err)
		}
		defer rows.Close()

		var children []int64
		for rows.Next() {
			var cid int64
			if err := rows.Scan(&cid); err != nil {
				return nil, fmt.Errorf("can't scan category id: %w", err)
			}
			children = append(children, cid)
		}
		return children, rows.Err()
	})
}

// expandClosure performs the frontier expansion behind Closure.
// childrenOf returns the direct children of every id in the frontier.
// The seen set guarantees termination and duplicate-free output at any
// tree depth, even if the stored data were to contain a cycle.
func expandClosure(seed int64, childrenOf func([]int64) ([]int64, error)) ([]int64, error) {
	seen := map[int64]struct{}{seed: {}}
	out := []int64{seed}
	frontier := []int64{seed}

	for len(frontier) > 0 {
		next, err := childrenOf(frontier)
		if err != nil {
			return nil, err
		}

		var fresh []int64
		for _, id := range next {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
			fresh = append(fresh, id)
		}
		frontier = fresh
	}
	return out, nil
}
