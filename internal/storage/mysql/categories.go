package mysql

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

var categorySortCols = map[string]exp.IdentifierExpression{
	"id":          tCategories.Col("id"),
	"name":        tCategories.Col("name"),
	"description": tCategories.Col("description"),
}

func (r *CategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	q, args, err := dialect.Insert(tCategories).Rows(goqu.Record{
		"name":        c.Name,
		"description": valStr(c.Description),
	}).ToSQL()
	if err != nil {
		return domain.Category{}, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.Category{}, err
	}
	c.ID, err = res.LastInsertId()
	return c, err
}

func (r *CategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	q, args, err := dialect.Update(tCategories).Set(goqu.Record{
		"name":        c.Name,
		"description": valStr(c.Description),
	}).Where(tCategories.Col("id").Eq(c.ID)).ToSQL()
	if err != nil {
		return domain.Category{}, err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepo) Get(ctx context.Context, id int64) (domain.Category, error) {
	q, args, err := dialect.From(tCategories).
		Select("id", "name", "description").
		Where(tCategories.Col("id").Eq(id)).ToSQL()
	if err != nil {
		return domain.Category{}, err
	}
	return scanCategory(r.db.QueryRowContext(ctx, q, args...))
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	q, args, err := dialect.Delete(tCategories).Where(tCategories.Col("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *CategoryRepo) FindByCriteria(ctx context.Context, crit *domain.CategoryCriteria) ([]domain.Category, error) {
	ds, distinct := categoryQuery(crit)
	ds = ds.Select(tCategories.Col("id"), tCategories.Col("name"), tCategories.Col("description")).
		Order(tCategories.Col("id").Asc())
	if distinct {
		ds = ds.Distinct()
	}
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategoryRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) FindPageByCriteria(ctx context.Context, crit *domain.CategoryCriteria, pg domain.Page) (domain.Paged[domain.Category], error) {
	total, err := r.CountByCriteria(ctx, crit)
	if err != nil {
		return domain.Paged[domain.Category]{}, err
	}
	ds, distinct := categoryQuery(crit)
	limit, offset := pageLimits(pg)
	ds = ds.Select(tCategories.Col("id"), tCategories.Col("name"), tCategories.Col("description")).
		Order(orderFor(pg, categorySortCols, tCategories.Col("id"))).
		Limit(limit).Offset(offset)
	if distinct {
		ds = ds.Distinct()
	}
	q, args, err := ds.ToSQL()
	if err != nil {
		return domain.Paged[domain.Category]{}, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return domain.Paged[domain.Category]{}, err
	}
	defer rows.Close()

	page := domain.Paged[domain.Category]{TotalElements: total}
	for rows.Next() {
		c, err := scanCategoryRows(rows)
		if err != nil {
			return domain.Paged[domain.Category]{}, err
		}
		page.Items = append(page.Items, c)
	}
	return page, rows.Err()
}

func (r *CategoryRepo) CountByCriteria(ctx context.Context, crit *domain.CategoryCriteria) (int64, error) {
	ds, _ := categoryQuery(crit)
	return countDistinct(ctx, r.db, ds, tCategories.Col("id"))
}

func scanCategory(row *sql.Row) (domain.Category, error) {
	var c domain.Category
	var desc sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &desc); err != nil {
		if err == sql.ErrNoRows {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}
	c.Description = strPtr(desc)
	return c, nil
}

func scanCategoryRows(rows *sql.Rows) (domain.Category, error) {
	var c domain.Category
	var desc sql.NullString
	if err := rows.Scan(&c.ID, &c.Name, &desc); err != nil {
		return domain.Category{}, err
	}
	c.Description = strPtr(desc)
	return c, nil
}
