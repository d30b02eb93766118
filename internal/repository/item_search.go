package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/haein-dev/c2c-market/internal/model"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ItemSearchQuery carries the optional filters for listing items. All
// filters are independent and AND-combined; malformed values skip their
// predicate instead of failing the query (permissive filtering).
// CategoryIDs is the already-resolved category closure; the raw query
// parameter is parsed and resolved by the caller.
type ItemSearchQuery struct {
	Search        string
	CategoryIDs   []int64
	EventOptionID string
	SeatSector    string
	SeatRow       string
	SeatNumber    string
	Kind          string // "ticket" or "product"
	Status        string
	Page          int
	Limit         int
}

// Normalize clamps pagination to page >= 1 and 1 <= limit <= 100,
// applying the defaults for unset values.
func (q *ItemSearchQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
}

// whereBuilder accumulates AND-combined conditions with positional
// args. Condition templates reference their args through fmt verbs
// (%s, or %[1]s when one arg appears twice) which the builder replaces
// with $n placeholders, so predicate order alone determines numbering.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) add(tmpl string, args ...any) {
	ph := make([]any, len(args))
	for i := range args {
		ph[i] = fmt.Sprintf("$%d", len(b.args)+i+1)
	}
	b.conds = append(b.conds, fmt.Sprintf(tmpl, ph...))
	b.args = append(b.args, args...)
}

func (b *whereBuilder) cond(c string) {
	b.conds = append(b.conds, c)
}

func (b *whereBuilder) whereSQL() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// itemPredicates is the ordered list of filter predicates. Each one
// contributes zero or one condition to the WHERE clause.
var itemPredicates = []func(q *ItemSearchQuery, b *whereBuilder){
	func(q *ItemSearchQuery, b *whereBuilder) {
		if q.Search != "" {
			b.add(`(i.title ILIKE %[1]s OR sp.model_name ILIKE %[1]s)`, "%"+q.Search+"%")
		}
	},
	func(q *ItemSearchQuery, b *whereBuilder) {
		if len(q.CategoryIDs) > 0 {
			b.add(`i.category_id = ANY(%s)`, q.CategoryIDs)
		}
	},
	func(q *ItemSearchQuery, b *whereBuilder) {
		if id, err := strconv.ParseInt(q.EventOptionID, 10, 64); q.EventOptionID != "" && err == nil {
			b.add(`td.event_option_id = %s`, id)
		}
	},
	func(q *ItemSearchQuery, b *whereBuilder) {
		if q.SeatSector != "" {
			b.add(`td.seat_info ->> 'sector' = %s`, q.SeatSector)
		}
	},
	func(q *ItemSearchQuery, b *whereBuilder) {
		if n, err := strconv.ParseInt(q.SeatRow, 10, 64); q.SeatRow != "" && err == nil {
			b.add(`(td.seat_info ->> 'row')::int = %s`, n)
		}
	},
	func(q *ItemSearchQuery, b *whereBuilder) {
		if n, err := strconv.ParseInt(q.SeatNumber, 10, 64); q.SeatNumber != "" && err == nil {
			b.add(`(td.seat_info ->> 'number')::int = %s`, n)
		}
	},
	func(q *ItemSearchQuery, b *whereBuilder) {
		switch strings.ToLower(q.Kind) {
		case "ticket":
			b.cond(`td.item_id IS NOT NULL`)
		case "product":
			b.cond(`td.item_id IS NULL`)
		}
	},
	func(q *ItemSearchQuery, b *whereBuilder) {
		if model.ValidStatus(q.Status) {
			b.add(`i.status = %s`, q.Status)
		}
	},
}

func buildItemWhere(q *ItemSearchQuery) *whereBuilder {
	b := &whereBuilder{}
	for _, p := range itemPredicates {
		p(q, b)
	}
	return b
}

// paginate derives the page-count fields of a listing response.
func paginate(total, page, limit int) (totalPages int, hasMore bool) {
	totalPages = (total + limit - 1) / limit
	return totalPages, page*limit < total
}

// ItemRow is one row of a listing response: the item joined with its
// optional SKU and ticket details.
type ItemRow struct {
	ID            int64          `json:"item_id"`
	Title         string         `json:"title"`
	Price         int64          `json:"price"`
	Status        string         `json:"status"`
	CategoryID    *int64         `json:"category_id"`
	StdID         *int64         `json:"std_id"`
	ProductCode   *string        `json:"product_code"`
	ModelName     *string        `json:"model_name"`
	BrandName     *string        `json:"brand_name"`
	EventOptionID *int64         `json:"event_option_id"`
	SeatInfo      model.SeatInfo `json:"seat_info,omitempty"`
	OriginalPrice *int64         `json:"original_price"`
}

// ItemPage is the paged result of Search. Total and TotalPages are
// computed from the same predicate set as the rows.
type ItemPage struct {
	Items      []ItemRow
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasMore    bool
}

// Search runs the composed filter query: a COUNT and a page SELECT
// sharing one condition set, ordered newest-first by item id.
func (r *ItemRepo) Search(ctx context.Context, q ItemSearchQuery) (*ItemPage, error) {
	q.Normalize()
	b := buildItemWhere(&q)

	const from = `
		FROM item i
		LEFT JOIN standard_product sp ON i.std_id = sp.std_id
		LEFT JOIN ticket_details td ON i.item_id = td.item_id
	`

	var total int
	countSQL := `SELECT COUNT(*) ` + from + b.whereSQL()
	if err := r.db.QueryRowContext(ctx, countSQL, b.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("can't count items: %w", err)
	}

	offset := (q.Page - 1) * q.Limit
	dataSQL := `SELECT
			i.item_id, i.title, i.price, i.status, i.category_id, i.std_id,
			sp.product_code, sp.model_name, sp.brand_name,
			td.event_option_id, td.seat_info, td.original_price
		` + from + b.whereSQL() + fmt.Sprintf(`
		ORDER BY i.item_id DESC
		LIMIT $%d OFFSET $%d`, len(b.args)+1, len(b.args)+2)

	args := append(append([]any{}, b.args...), q.Limit, offset)
	rows, err := r.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("can't query items: %w", err)
	}
	defer rows.Close()

	items := make([]ItemRow, 0, q.Limit)
	for rows.Next() {
		var it ItemRow
		var seatRaw []byte
		if err := rows.Scan(
			&it.ID, &it.Title, &it.Price, &it.Status, &it.CategoryID, &it.StdID,
			&it.ProductCode, &it.ModelName, &it.BrandName,
			&it.EventOptionID, &seatRaw, &it.OriginalPrice,
		); err != nil {
			return nil, fmt.Errorf("can't scan item: %w", err)
		}
		if len(seatRaw) > 0 {
			if err := json.Unmarshal(seatRaw, &it.SeatInfo); err != nil {
				return nil, fmt.Errorf("can't decode seat info: %w", err)
			}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages, hasMore := paginate(total, q.Page, q.Limit)
	return &ItemPage{
		Items:      items,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    hasMore,
	}, nil
}
