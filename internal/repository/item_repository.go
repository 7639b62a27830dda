package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"stockroom/internal/model"
)

// itemColumns are the columns selected for every item row, including the
// supplier name and color joined for display. The LEFT JOIN keeps items
// without a manufacturer visible in listings.
var itemColumns = []string{
	"i.id", "i.code", "i.name", "i.category",
	"i.buying_price", "i.selling_price", "i.unit",
	"i.manufacturer_id", "i.created_at",
	"m.name", "m.color",
}

// ItemRepo provides search and CRUD access to the `items` table.
type ItemRepo struct {
	DB            *sql.DB
	Manufacturers *ManufacturerRepo
}

func NewItemRepo(db *sql.DB, manufacturers *ManufacturerRepo) *ItemRepo {
	return &ItemRepo{DB: db, Manufacturers: manufacturers}
}

func scanItem(rows interface{ Scan(...any) error }) (model.Item, error) {
	var it model.Item
	var mName, mColor *string
	err := rows.Scan(
		&it.ID, &it.Code, &it.Name, &it.Category,
		&it.BuyingPrice, &it.SellingPrice, &it.Unit,
		&it.ManufacturerID, &it.CreatedAt,
		&mName, &mColor,
	)
	if err != nil {
		return model.Item{}, err
	}
	if mName != nil {
		it.Manufacturer = &model.ItemManufacturer{Name: *mName}
		if mColor != nil {
			it.Manufacturer.Color = *mColor
		}
	}
	it.ProfitPercent = model.Profit(it.BuyingPrice, it.SellingPrice)
	return it, nil
}

// Search runs the filtered, paginated catalogue query described by q. It
// returns one page of rows ordered by item name and the total number of
// matching rows for pagination.
func (r *ItemRepo) Search(ctx context.Context, q ItemQuery) ([]model.Item, int64, error) {
	q = q.normalized()

	tokens := Tokenize(q.Search)
	var manufMatches map[string][]uint64
	if len(tokens) > 0 {
		var err error
		manufMatches, err = r.Manufacturers.IDsMatching(ctx, tokens)
		if err != nil {
			return nil, 0, err
		}
	}
	pred := searchPredicate(tokens, manufMatches, q.ManufacturerID)

	countQuery := sq.Select("COUNT(*)").From("items i")
	if len(pred) > 0 {
		countQuery = countQuery.Where(pred)
	}
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := sq.Select(itemColumns...).
		From("items i").
		LeftJoin("manufacturers m ON m.id = i.manufacturer_id").
		OrderBy("i.name ASC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset()))
	if len(pred) > 0 {
		dataQuery = dataQuery.Where(pred)
	}
	dataSQL, dataArgs, err := dataQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Item, 0, q.Limit)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a single item with its joined supplier fields.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	query, args, err := sq.Select(itemColumns...).
		From("items i").
		LeftJoin("manufacturers m ON m.id = i.manufacturer_id").
		Where(sq.Eq{"i.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	return scanItem(r.DB.QueryRowContext(ctx, query, args...))
}

// Create inserts an item and returns the stored row.
func (r *ItemRepo) Create(ctx context.Context, it model.Item) (model.Item, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO items (code, name, category, buying_price, selling_price, unit, manufacturer_id) VALUES (?,?,?,?,?,?,?)",
		it.Code, it.Name, it.Category, it.BuyingPrice, it.SellingPrice, it.Unit, it.ManufacturerID)
	if err != nil {
		return model.Item{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Item{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update fully replaces the editable fields of an item and returns the
// stored row.
func (r *ItemRepo) Update(ctx context.Context, it model.Item) (model.Item, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE items SET code=?, name=?, category=?, buying_price=?, selling_price=?, unit=?, manufacturer_id=? WHERE id=?",
		it.Code, it.Name, it.Category, it.BuyingPrice, it.SellingPrice, it.Unit, it.ManufacturerID, it.ID)
	if err != nil {
		return model.Item{}, err
	}
	return r.GetByID(ctx, it.ID)
}

// Delete removes an item.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM items WHERE id=?", id)
	return err
}
