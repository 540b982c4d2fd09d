// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Every statement goes through database.Conn so it joins the transaction
// a service opened with database.Transactor, if any. Lookups by id return
// an error wrapping pgx.ErrNoRows when nothing matches.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// filter accumulates WHERE clauses and their positional args.
// Each clause holds a single %d that becomes the $n placeholder.
type filter struct {
	clauses []string
	args    []any
}

func (f *filter) add(clause string, arg any) {
	f.args = append(f.args, arg)
	f.clauses = append(f.clauses, fmt.Sprintf(clause, len(f.args)))
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause with its args.
func (f *filter) page(limit, offset int) (string, []any) {
	n := len(f.args)
	args := append(append([]any{}, f.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains builds an ILIKE pattern matching s anywhere.
func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// count runs a COUNT(*) query with the filter's args.
func count(ctx context.Context, q database.Querier, sql string, f *filter) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, sql+f.where(), f.args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// expectOne turns an UPDATE/DELETE that touched nothing into pgx.ErrNoRows.
func expectOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
