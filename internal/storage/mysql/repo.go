package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

var dialect = goqu.Dialect("mysql")

// ---- nullable bind helpers ----

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

// ---- nullable scan helpers ----

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	n := int(ni.Int64)
	return &n
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	n := ni.Int64
	return &n
}

func f64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// ---- paging & sorting ----

// orderFor resolves "column,dir" against the entity's sortable columns. A
// field outside the whitelist falls back to the primary key ascending, the
// requested direction included.
func orderFor(pg domain.Page, cols map[string]exp.IdentifierExpression, def exp.IdentifierExpression) exp.OrderedExpression {
	field, dir, _ := strings.Cut(pg.Sort, ",")
	col, ok := cols[field]
	if !ok {
		return def.Asc()
	}
	if strings.EqualFold(dir, "desc") {
		return col.Desc()
	}
	return col.Asc()
}

func pageLimits(pg domain.Page) (limit, offset uint) {
	size := pg.Size
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	if size > domain.MaxPageSize {
		size = domain.MaxPageSize
	}
	num := pg.Number
	if num < 0 {
		num = 0
	}
	return uint(size), uint(num * size)
}

// countDistinct runs the criteria dataset as a COUNT(DISTINCT pk) query so
// the total agrees with the distinct row set a joined fetch produces.
func countDistinct(ctx context.Context, db *sql.DB, ds *goqu.SelectDataset, pk exp.IdentifierExpression) (int64, error) {
	q, args, err := ds.Select(goqu.COUNT(goqu.DISTINCT(pk))).ToSQL()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// inTx runs fn inside a transaction, rolling back on error.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
