package mysql

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

type PlaceRepo struct{ db *sql.DB }

func NewPlaceRepo(db *sql.DB) *PlaceRepo { return &PlaceRepo{db: db} }

var placeSortCols = map[string]exp.IdentifierExpression{
	"id":            tPlaces.Col("id"),
	"name":          tPlaces.Col("name"),
	"specification": tPlaces.Col("specification"),
	"description":   tPlaces.Col("description"),
	"price":         tPlaces.Col("price"),
}

func placeRecord(p domain.Place) goqu.Record {
	return goqu.Record{
		"name":          p.Name,
		"specification": p.Specification,
		"description":   valStr(p.Description),
		"price":         valF64(p.Price),
		"category_id":   valInt64(p.CategoryID),
	}
}

func locationRecord(loc domain.Location) goqu.Record {
	return goqu.Record{
		"address":   loc.Address,
		"city":      loc.City,
		"latitude":  valStr(loc.Latitude),
		"longitude": valStr(loc.Longitude),
		"place_id":  loc.PlaceID,
	}
}

func (r *PlaceRepo) CreateWithLocation(ctx context.Context, p domain.Place, loc domain.Location) (domain.Place, domain.Location, error) {
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		q, args, err := dialect.Insert(tPlaces).Rows(placeRecord(p)).ToSQL()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		loc.PlaceID = p.ID
		q, args, err = dialect.Insert(tLocations).Rows(locationRecord(loc)).ToSQL()
		if err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		loc.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return domain.Place{}, domain.Location{}, err
	}
	return p, loc, nil
}

func (r *PlaceRepo) UpdateWithLocation(ctx context.Context, p domain.Place, loc domain.Location) (domain.Place, domain.Location, error) {
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		q, args, err := dialect.Update(tPlaces).Set(placeRecord(p)).
			Where(tPlaces.Col("id").Eq(p.ID)).ToSQL()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
		q, args, err = dialect.Update(tLocations).Set(locationRecord(loc)).
			Where(tLocations.Col("id").Eq(loc.ID)).ToSQL()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, q, args...)
		return err
	})
	if err != nil {
		return domain.Place{}, domain.Location{}, err
	}
	return p, loc, nil
}

func (r *PlaceRepo) Get(ctx context.Context, id int64) (domain.Place, error) {
	q, args, err := dialect.From(tPlaces).
		Select("id", "name", "specification", "description", "price", "category_id").
		Where(tPlaces.Col("id").Eq(id)).ToSQL()
	if err != nil {
		return domain.Place{}, err
	}
	var p domain.Place
	var desc sql.NullString
	var price sql.NullFloat64
	var catID sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&p.ID, &p.Name, &p.Specification, &desc, &price, &catID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}
	p.Description = strPtr(desc)
	p.Price = f64Ptr(price)
	p.CategoryID = int64Ptr(catID)
	return p, nil
}

// placeViewDataset joins locations and categories for the flattened read
// model. Filter joins use aliases, so these plain joins never clash.
func placeViewDataset(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.
		LeftJoin(tLocations, goqu.On(tLocations.Col("place_id").Eq(tPlaces.Col("id")))).
		LeftJoin(tCategories, goqu.On(tCategories.Col("id").Eq(tPlaces.Col("category_id")))).
		Select(
			tPlaces.Col("id"), tPlaces.Col("name"), tPlaces.Col("specification"),
			tPlaces.Col("description"), tPlaces.Col("price"), tPlaces.Col("category_id"),
			tCategories.Col("name").As("category_name"),
			tLocations.Col("id").As("location_id"), tLocations.Col("address"),
			tLocations.Col("city"), tLocations.Col("latitude"), tLocations.Col("longitude"),
		)
}

func scanPlaceView(s interface{ Scan(dest ...any) error }) (domain.PlaceView, error) {
	var v domain.PlaceView
	var desc, catName, addr, city, lat, lon sql.NullString
	var price sql.NullFloat64
	var catID, locID sql.NullInt64
	if err := s.Scan(&v.ID, &v.Name, &v.Specification, &desc, &price, &catID,
		&catName, &locID, &addr, &city, &lat, &lon); err != nil {
		return domain.PlaceView{}, err
	}
	v.Description = strPtr(desc)
	v.Price = f64Ptr(price)
	v.CategoryID = int64Ptr(catID)
	v.CategoryName = strPtr(catName)
	v.LocationID = int64Ptr(locID)
	v.Address = strPtr(addr)
	v.City = strPtr(city)
	v.Latitude = strPtr(lat)
	v.Longitude = strPtr(lon)
	return v, nil
}

func (r *PlaceRepo) GetView(ctx context.Context, id int64) (domain.PlaceView, error) {
	ds := placeViewDataset(dialect.From(tPlaces)).Where(tPlaces.Col("id").Eq(id))
	q, args, err := ds.ToSQL()
	if err != nil {
		return domain.PlaceView{}, err
	}
	v, err := scanPlaceView(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return domain.PlaceView{}, domain.ErrNotFound
	}
	return v, err
}

func (r *PlaceRepo) Delete(ctx context.Context, id int64) error {
	// owned location first, FK order
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		q, args, err := dialect.Delete(tLocations).Where(tLocations.Col("place_id").Eq(id)).ToSQL()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
		q, args, err = dialect.Delete(tPlaces).Where(tPlaces.Col("id").Eq(id)).ToSQL()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, q, args...)
		return err
	})
}

func (r *PlaceRepo) FindByCriteria(ctx context.Context, crit *domain.PlaceCriteria) ([]domain.PlaceView, error) {
	ds, distinct := placeQuery(crit)
	ds = placeViewDataset(ds).Order(tPlaces.Col("id").Asc())
	if distinct {
		ds = ds.Distinct()
	}
	return r.queryViews(ctx, ds)
}

func (r *PlaceRepo) FindPageByCriteria(ctx context.Context, crit *domain.PlaceCriteria, pg domain.Page) (domain.Paged[domain.PlaceView], error) {
	total, err := r.CountByCriteria(ctx, crit)
	if err != nil {
		return domain.Paged[domain.PlaceView]{}, err
	}
	ds, distinct := placeQuery(crit)
	limit, offset := pageLimits(pg)
	ds = placeViewDataset(ds).
		Order(orderFor(pg, placeSortCols, tPlaces.Col("id"))).
		Limit(limit).Offset(offset)
	if distinct {
		ds = ds.Distinct()
	}
	items, err := r.queryViews(ctx, ds)
	if err != nil {
		return domain.Paged[domain.PlaceView]{}, err
	}
	return domain.Paged[domain.PlaceView]{Items: items, TotalElements: total}, nil
}

func (r *PlaceRepo) CountByCriteria(ctx context.Context, crit *domain.PlaceCriteria) (int64, error) {
	ds, _ := placeQuery(crit)
	return countDistinct(ctx, r.db, ds, tPlaces.Col("id"))
}

func (r *PlaceRepo) queryViews(ctx context.Context, ds *goqu.SelectDataset) ([]domain.PlaceView, error) {
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PlaceView
	for rows.Next() {
		v, err := scanPlaceView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
