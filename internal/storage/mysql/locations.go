package mysql

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

type LocationRepo struct{ db *sql.DB }

func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

var locationSortCols = map[string]exp.IdentifierExpression{
	"id":        tLocations.Col("id"),
	"address":   tLocations.Col("address"),
	"city":      tLocations.Col("city"),
	"latitude":  tLocations.Col("latitude"),
	"longitude": tLocations.Col("longitude"),
}

var locationCols = []any{"id", "address", "city", "latitude", "longitude", "place_id"}

func (r *LocationRepo) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	q, args, err := dialect.Insert(tLocations).Rows(locationRecord(loc)).ToSQL()
	if err != nil {
		return domain.Location{}, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.Location{}, err
	}
	loc.ID, err = res.LastInsertId()
	return loc, err
}

func (r *LocationRepo) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	q, args, err := dialect.Update(tLocations).Set(locationRecord(loc)).
		Where(tLocations.Col("id").Eq(loc.ID)).ToSQL()
	if err != nil {
		return domain.Location{}, err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return domain.Location{}, err
	}
	return loc, nil
}

func (r *LocationRepo) Get(ctx context.Context, id int64) (domain.Location, error) {
	return r.getWhere(ctx, tLocations.Col("id").Eq(id))
}

func (r *LocationRepo) GetByPlace(ctx context.Context, placeID int64) (domain.Location, error) {
	return r.getWhere(ctx, tLocations.Col("place_id").Eq(placeID))
}

func (r *LocationRepo) getWhere(ctx context.Context, cond exp.Expression) (domain.Location, error) {
	q, args, err := dialect.From(tLocations).Select(locationCols...).Where(cond).ToSQL()
	if err != nil {
		return domain.Location{}, err
	}
	var loc domain.Location
	var lat, lon sql.NullString
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&loc.ID, &loc.Address, &loc.City, &lat, &lon, &loc.PlaceID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}
	loc.Latitude = strPtr(lat)
	loc.Longitude = strPtr(lon)
	return loc, nil
}

func (r *LocationRepo) Delete(ctx context.Context, id int64) error {
	q, args, err := dialect.Delete(tLocations).Where(tLocations.Col("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *LocationRepo) FindByCriteria(ctx context.Context, crit *domain.LocationCriteria) ([]domain.Location, error) {
	ds, _ := locationQuery(crit)
	ds = ds.Select(locationCols...).Order(tLocations.Col("id").Asc())
	return r.queryLocations(ctx, ds)
}

func (r *LocationRepo) FindPageByCriteria(ctx context.Context, crit *domain.LocationCriteria, pg domain.Page) (domain.Paged[domain.Location], error) {
	total, err := r.CountByCriteria(ctx, crit)
	if err != nil {
		return domain.Paged[domain.Location]{}, err
	}
	ds, _ := locationQuery(crit)
	limit, offset := pageLimits(pg)
	ds = ds.Select(locationCols...).
		Order(orderFor(pg, locationSortCols, tLocations.Col("id"))).
		Limit(limit).Offset(offset)
	items, err := r.queryLocations(ctx, ds)
	if err != nil {
		return domain.Paged[domain.Location]{}, err
	}
	return domain.Paged[domain.Location]{Items: items, TotalElements: total}, nil
}

func (r *LocationRepo) CountByCriteria(ctx context.Context, crit *domain.LocationCriteria) (int64, error) {
	ds, _ := locationQuery(crit)
	return countDistinct(ctx, r.db, ds, tLocations.Col("id"))
}

func (r *LocationRepo) queryLocations(ctx context.Context, ds *goqu.SelectDataset) ([]domain.Location, error) {
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		var loc domain.Location
		var lat, lon sql.NullString
		if err := rows.Scan(&loc.ID, &loc.Address, &loc.City, &lat, &lon, &loc.PlaceID); err != nil {
			return nil, err
		}
		loc.Latitude = strPtr(lat)
		loc.Longitude = strPtr(lon)
		out = append(out, loc)
	}
	return out, rows.Err()
}
