package mysql

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

type ReservationRepo struct{ db *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

var reservationSortCols = map[string]exp.IdentifierExpression{
	"id":        tReservations.Col("id"),
	"type":      tReservations.Col("type"),
	"status":    tReservations.Col("status"),
	"period":    tReservations.Col("period"),
	"startDate": tReservations.Col("start_date"),
	"endDate":   tReservations.Col("end_date"),
	"fees":      tReservations.Col("fees"),
}

func reservationRecord(rv domain.Reservation) goqu.Record {
	return goqu.Record{
		"type":       string(rv.Type),
		"status":     string(rv.Status),
		"period":     valInt(rv.Period),
		"start_date": valTime(rv.StartDate),
		"end_date":   valTime(rv.EndDate),
		"fees":       valF64(rv.Fees),
		"user_id":    rv.UserID,
		"place_id":   rv.PlaceID,
	}
}

func (r *ReservationRepo) Create(ctx context.Context, rv domain.Reservation) (domain.Reservation, error) {
	q, args, err := dialect.Insert(tReservations).Rows(reservationRecord(rv)).ToSQL()
	if err != nil {
		return domain.Reservation{}, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.Reservation{}, err
	}
	rv.ID, err = res.LastInsertId()
	return rv, err
}

func (r *ReservationRepo) Update(ctx context.Context, rv domain.Reservation) (domain.Reservation, error) {
	q, args, err := dialect.Update(tReservations).Set(reservationRecord(rv)).
		Where(tReservations.Col("id").Eq(rv.ID)).ToSQL()
	if err != nil {
		return domain.Reservation{}, err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return domain.Reservation{}, err
	}
	return rv, nil
}

func (r *ReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (domain.Reservation, error) {
	// Existence check first: MySQL reports zero affected rows for a
	// same-value update, so RowsAffected cannot distinguish missing from
	// unchanged.
	if _, err := r.Get(ctx, id); err != nil {
		return domain.Reservation{}, err
	}
	q, args, err := dialect.Update(tReservations).Set(goqu.Record{"status": string(status)}).
		Where(tReservations.Col("id").Eq(id)).ToSQL()
	if err != nil {
		return domain.Reservation{}, err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return domain.Reservation{}, err
	}
	return r.Get(ctx, id)
}

var reservationCols = []any{"id", "type", "status", "period", "start_date", "end_date", "fees", "user_id", "place_id"}

func (r *ReservationRepo) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	return r.getWhere(ctx, tReservations.Col("id").Eq(id))
}

func (r *ReservationRepo) GetOwned(ctx context.Context, id, userID int64) (domain.Reservation, error) {
	return r.getWhere(ctx, goqu.And(
		tReservations.Col("id").Eq(id),
		tReservations.Col("user_id").Eq(userID),
	))
}

func (r *ReservationRepo) getWhere(ctx context.Context, cond exp.Expression) (domain.Reservation, error) {
	q, args, err := dialect.From(tReservations).Select(reservationCols...).Where(cond).ToSQL()
	if err != nil {
		return domain.Reservation{}, err
	}
	rv, err := scanReservation(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return rv, err
}

func scanReservation(s interface{ Scan(dest ...any) error }) (domain.Reservation, error) {
	var rv domain.Reservation
	var typ, status string
	var period sql.NullInt64
	var start, end sql.NullTime
	var fees sql.NullFloat64
	if err := s.Scan(&rv.ID, &typ, &status, &period, &start, &end, &fees, &rv.UserID, &rv.PlaceID); err != nil {
		return domain.Reservation{}, err
	}
	rv.Type = domain.ReservationType(typ)
	rv.Status = domain.ReservationStatus(status)
	rv.Period = intPtr(period)
	rv.StartDate = timePtr(start)
	rv.EndDate = timePtr(end)
	rv.Fees = f64Ptr(fees)
	return rv, nil
}

func (r *ReservationRepo) Delete(ctx context.Context, id int64) error {
	q, args, err := dialect.Delete(tReservations).Where(tReservations.Col("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

// reservationViewDataset joins users and places for the read model.
func reservationViewDataset(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.
		LeftJoin(tUsers, goqu.On(tUsers.Col("id").Eq(tReservations.Col("user_id")))).
		LeftJoin(tPlaces, goqu.On(tPlaces.Col("id").Eq(tReservations.Col("place_id")))).
		Select(
			tReservations.Col("id"), tReservations.Col("type"), tReservations.Col("status"),
			tReservations.Col("period"), tReservations.Col("start_date"), tReservations.Col("end_date"),
			tReservations.Col("fees"), tReservations.Col("user_id"),
			tUsers.Col("login").As("user_login"),
			tReservations.Col("place_id"), tPlaces.Col("name").As("place_name"),
		)
}

func scanReservationView(s interface{ Scan(dest ...any) error }) (domain.ReservationView, error) {
	var v domain.ReservationView
	var typ, status string
	var period sql.NullInt64
	var start, end sql.NullTime
	var fees sql.NullFloat64
	var login, placeName sql.NullString
	if err := s.Scan(&v.ID, &typ, &status, &period, &start, &end, &fees,
		&v.UserID, &login, &v.PlaceID, &placeName); err != nil {
		return domain.ReservationView{}, err
	}
	v.Type = domain.ReservationType(typ)
	v.Status = domain.ReservationStatus(status)
	v.Period = intPtr(period)
	v.StartDate = timePtr(start)
	v.EndDate = timePtr(end)
	v.Fees = f64Ptr(fees)
	v.UserLogin = strPtr(login)
	v.PlaceName = strPtr(placeName)
	return v, nil
}

func (r *ReservationRepo) FindByCriteria(ctx context.Context, crit *domain.ReservationCriteria) ([]domain.ReservationView, error) {
	ds, _ := reservationQuery(crit)
	ds = reservationViewDataset(ds).Order(tReservations.Col("id").Asc())
	return r.queryViews(ctx, ds)
}

func (r *ReservationRepo) FindPageByCriteria(ctx context.Context, crit *domain.ReservationCriteria, pg domain.Page) (domain.Paged[domain.ReservationView], error) {
	total, err := r.CountByCriteria(ctx, crit)
	if err != nil {
		return domain.Paged[domain.ReservationView]{}, err
	}
	ds, _ := reservationQuery(crit)
	limit, offset := pageLimits(pg)
	ds = reservationViewDataset(ds).
		Order(orderFor(pg, reservationSortCols, tReservations.Col("id"))).
		Limit(limit).Offset(offset)
	items, err := r.queryViews(ctx, ds)
	if err != nil {
		return domain.Paged[domain.ReservationView]{}, err
	}
	return domain.Paged[domain.ReservationView]{Items: items, TotalElements: total}, nil
}

func (r *ReservationRepo) CountByCriteria(ctx context.Context, crit *domain.ReservationCriteria) (int64, error) {
	ds, _ := reservationQuery(crit)
	return countDistinct(ctx, r.db, ds, tReservations.Col("id"))
}

func (r *ReservationRepo) queryViews(ctx context.Context, ds *goqu.SelectDataset) ([]domain.ReservationView, error) {
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReservationView
	for rows.Next() {
		v, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
