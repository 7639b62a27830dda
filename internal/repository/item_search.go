package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ItemQuery describes the filters and pagination of a catalogue listing as
// they arrive from the query string.
type ItemQuery struct {
	Page           int
	Limit          int
	Search         string
	ManufacturerID string // "all" or a specific id
}

// normalized clamps pagination inputs to their defaults: page >= 1, limit
// defaulting to 10.
func (q ItemQuery) normalized() ItemQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return q
}

// Offset is the zero-based index of the first row of the requested page.
func (q ItemQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages derives the page count for a result set: ceil(total/limit),
// 0 when nothing matched.
func TotalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// Tokenize splits a raw search string on whitespace, discarding empty
// tokens, so "red  widget" yields ["red", "widget"].
func Tokenize(search string) []string {
	return strings.Fields(search)
}

// searchPredicate composes the catalogue WHERE clause. Every token
// contributes one OR-group matching the item name, code, or category as a
// case-insensitive substring, or a manufacturer whose name contains the
// token; the groups combine with AND, so each additional word narrows the
// result. A concrete manufacturer filter is appended as an exact match.
func searchPredicate(tokens []string, manufMatches map[string][]uint64, manufacturerID string) sq.And {
	pred := sq.And{}
	for _, tok := range tokens {
		pat := "%" + strings.ToLower(tok) + "%"
		group := sq.Or{
			sq.Like{"LOWER(i.name)": pat},
			sq.Like{"LOWER(COALESCE(i.code, ''))": pat},
			sq.Like{"LOWER(i.category)": pat},
		}
		if ids := manufMatches[tok]; len(ids) > 0 {
			group = append(group, sq.Eq{"i.manufacturer_id": ids})
		}
		pred = append(pred, group)
	}
	if manufacturerID != "" && manufacturerID != "all" {
		pred = append(pred, sq.Eq{"i.manufacturer_id": manufacturerID})
	}
	return pred
}
