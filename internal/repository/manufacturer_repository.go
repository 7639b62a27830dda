package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"stockroom/internal/model"
)

const manufacturerColumns = "id, name, contact_person, phone, email, address, color, created_at"

// ManufacturerRepo provides CRUD access to the `manufacturers` table.
type ManufacturerRepo struct{ DB *sql.DB }

func NewManufacturerRepo(db *sql.DB) *ManufacturerRepo { return &ManufacturerRepo{DB: db} }

func scanManufacturer(row interface{ Scan(...any) error }) (model.Manufacturer, error) {
	var m model.Manufacturer
	err := row.Scan(&m.ID, &m.Name, &m.ContactPerson, &m.Phone, &m.Email, &m.Address, &m.Color, &m.CreatedAt)
	return m, err
}

// List returns all manufacturers ordered by name ascending. The listing is
// deliberately unpaginated; supplier counts stay small.
func (r *ManufacturerRepo) List(ctx context.Context) ([]model.Manufacturer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+manufacturerColumns+" FROM manufacturers ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Manufacturer, 0)
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID fetches a single manufacturer.
func (r *ManufacturerRepo) GetByID(ctx context.Context, id uint64) (model.Manufacturer, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+manufacturerColumns+" FROM manufacturers WHERE id=? LIMIT 1", id)
	return scanManufacturer(row)
}

// Create inserts a manufacturer and returns the stored row with
// server-assigned fields populated.
func (r *ManufacturerRepo) Create(ctx context.Context, m model.Manufacturer) (model.Manufacturer, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO manufacturers (name, contact_person, phone, email, address, color) VALUES (?,?,?,?,?,?)",
		m.Name, m.ContactPerson, m.Phone, m.Email, m.Address, m.Color)
	if err != nil {
		return model.Manufacturer{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Manufacturer{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update fully replaces the editable fields of a manufacturer and returns
// the stored row.
func (r *ManufacturerRepo) Update(ctx context.Context, m model.Manufacturer) (model.Manufacturer, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE manufacturers SET name=?, contact_person=?, phone=?, email=?, address=?, color=? WHERE id=?",
		m.Name, m.ContactPerson, m.Phone, m.Email, m.Address, m.Color, m.ID)
	if err != nil {
		return model.Manufacturer{}, err
	}
	return r.GetByID(ctx, m.ID)
}

// Delete removes a manufacturer. Referencing items are orphaned to NULL by
// the schema's ON DELETE SET NULL policy; no application-level check is
// performed.
func (r *ManufacturerRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM manufacturers WHERE id=?", id)
	return err
}

// UsedColors returns the badge colors currently assigned to manufacturers.
func (r *ManufacturerRepo) UsedColors(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT color FROM manufacturers")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colors []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

// IDsMatching resolves, for every search term, the ids of manufacturers
// whose name contains that term case-insensitively. All terms are answered
// by a single query; rows are bucketed per term in memory, which keeps the
// per-term OR-group semantics of the item search without one round trip per
// term.
func (r *ManufacturerRepo) IDsMatching(ctx context.Context, terms []string) (map[string][]uint64, error) {
	out := make(map[string][]uint64, len(terms))
	if len(terms) == 0 {
		return out, nil
	}

	or := make(sq.Or, 0, len(terms))
	for _, t := range terms {
		or = append(or, sq.Like{"LOWER(name)": "%" + strings.ToLower(t) + "%"})
	}
	query, args, err := sq.Select("id", "name").From("manufacturers").Where(or).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		lower := strings.ToLower(name)
		for _, t := range terms {
			if strings.Contains(lower, strings.ToLower(t)) {
				out[t] = append(out[t], id)
			}
		}
	}
	return out, rows.Err()
}
