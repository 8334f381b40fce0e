package mysql

import (
	"cmp"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

// Criteria-to-predicate translation. Every present operator on a filter
// contributes one expression; the caller ANDs them via Where. Absent filters
// contribute nothing, so nil criteria selects the whole table.

func filterExprs[T comparable](col exp.IdentifierExpression, f *domain.Filter[T]) []exp.Expression {
	if f == nil {
		return nil
	}
	var out []exp.Expression
	if f.Equals != nil {
		out = append(out, col.Eq(*f.Equals))
	}
	if f.NotEquals != nil {
		out = append(out, col.Neq(*f.NotEquals))
	}
	if len(f.In) > 0 {
		out = append(out, col.In(f.In))
	}
	if f.Specified != nil {
		if *f.Specified {
			out = append(out, col.IsNotNull())
		} else {
			out = append(out, col.IsNull())
		}
	}
	return out
}

func rangeExprs[T cmp.Ordered](col exp.IdentifierExpression, f *domain.RangeFilter[T]) []exp.Expression {
	if f == nil {
		return nil
	}
	out := filterExprs(col, &f.Filter)
	if f.GreaterThan != nil {
		out = append(out, col.Gt(*f.GreaterThan))
	}
	if f.GreaterThanOrEqual != nil {
		out = append(out, col.Gte(*f.GreaterThanOrEqual))
	}
	if f.LessThan != nil {
		out = append(out, col.Lt(*f.LessThan))
	}
	if f.LessThanOrEqual != nil {
		out = append(out, col.Lte(*f.LessThanOrEqual))
	}
	return out
}

func timeExprs(col exp.IdentifierExpression, f *domain.TimeFilter) []exp.Expression {
	if f == nil {
		return nil
	}
	out := filterExprs(col, &f.Filter)
	if f.GreaterThan != nil {
		out = append(out, col.Gt(*f.GreaterThan))
	}
	if f.GreaterThanOrEqual != nil {
		out = append(out, col.Gte(*f.GreaterThanOrEqual))
	}
	if f.LessThan != nil {
		out = append(out, col.Lt(*f.LessThan))
	}
	if f.LessThanOrEqual != nil {
		out = append(out, col.Lte(*f.LessThanOrEqual))
	}
	return out
}

// stringExprs adds the substring operators. LIKE BINARY keeps the match
// case-sensitive regardless of column collation.
func stringExprs(col exp.IdentifierExpression, f *domain.StringFilter) []exp.Expression {
	if f == nil {
		return nil
	}
	out := filterExprs(col, &f.Filter)
	if f.Contains != nil {
		out = append(out, goqu.L("? LIKE BINARY ?", col, likePattern(*f.Contains)))
	}
	if f.DoesNotContain != nil {
		out = append(out, goqu.L("? NOT LIKE BINARY ?", col, likePattern(*f.DoesNotContain)))
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ---- per-entity datasets ----

var (
	tCategories   = goqu.T("categories")
	tPlaces       = goqu.T("places")
	tLocations    = goqu.T("locations")
	tImages       = goqu.T("images")
	tReservations = goqu.T("reservations")
	tUsers        = goqu.T("users")
)

// categoryQuery builds the filtered dataset for categories. Reverse
// relations (places, images of the category) are reached through left joins
// on aliased child tables; distinct guards against join fan-out.
func categoryQuery(crit *domain.CategoryCriteria) (ds *goqu.SelectDataset, distinct bool) {
	ds = dialect.From(tCategories)
	if crit == nil {
		return ds, false
	}
	var where []exp.Expression
	where = append(where, rangeExprs(tCategories.Col("id"), crit.ID)...)
	where = append(where, stringExprs(tCategories.Col("name"), crit.Name)...)
	where = append(where, stringExprs(tCategories.Col("description"), crit.Description)...)
	if crit.PlaceID != nil {
		fp := tPlaces.As("fp")
		ds = ds.LeftJoin(fp, goqu.On(fp.Col("category_id").Eq(tCategories.Col("id"))))
		where = append(where, rangeExprs(fp.Col("id"), crit.PlaceID)...)
		distinct = true
	}
	if crit.ImageID != nil {
		fi := tImages.As("fi")
		ds = ds.LeftJoin(fi, goqu.On(fi.Col("category_id").Eq(tCategories.Col("id"))))
		where = append(where, rangeExprs(fi.Col("id"), crit.ImageID)...)
		distinct = true
	}
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds, distinct
}

func placeQuery(crit *domain.PlaceCriteria) (ds *goqu.SelectDataset, distinct bool) {
	ds = dialect.From(tPlaces)
	if crit == nil {
		return ds, false
	}
	var where []exp.Expression
	where = append(where, rangeExprs(tPlaces.Col("id"), crit.ID)...)
	where = append(where, stringExprs(tPlaces.Col("name"), crit.Name)...)
	where = append(where, stringExprs(tPlaces.Col("specification"), crit.Specification)...)
	where = append(where, stringExprs(tPlaces.Col("description"), crit.Description)...)
	where = append(where, rangeExprs(tPlaces.Col("price"), crit.Price)...)
	where = append(where, rangeExprs(tPlaces.Col("category_id"), crit.CategoryID)...)
	if crit.LocationID != nil {
		fl := tLocations.As("fl")
		ds = ds.LeftJoin(fl, goqu.On(fl.Col("place_id").Eq(tPlaces.Col("id"))))
		where = append(where, rangeExprs(fl.Col("id"), crit.LocationID)...)
		distinct = true
	}
	if crit.ImageID != nil {
		fi := tImages.As("fi")
		ds = ds.LeftJoin(fi, goqu.On(fi.Col("place_id").Eq(tPlaces.Col("id"))))
		where = append(where, rangeExprs(fi.Col("id"), crit.ImageID)...)
		distinct = true
	}
	if crit.ReservationID != nil {
		fr := tReservations.As("fr")
		ds = ds.LeftJoin(fr, goqu.On(fr.Col("place_id").Eq(tPlaces.Col("id"))))
		where = append(where, rangeExprs(fr.Col("id"), crit.ReservationID)...)
		distinct = true
	}
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds, distinct
}

func locationQuery(crit *domain.LocationCriteria) (ds *goqu.SelectDataset, distinct bool) {
	ds = dialect.From(tLocations)
	if crit == nil {
		return ds, false
	}
	var where []exp.Expression
	where = append(where, rangeExprs(tLocations.Col("id"), crit.ID)...)
	where = append(where, stringExprs(tLocations.Col("address"), crit.Address)...)
	where = append(where, stringExprs(tLocations.Col("city"), crit.City)...)
	where = append(where, stringExprs(tLocations.Col("latitude"), crit.Latitude)...)
	where = append(where, stringExprs(tLocations.Col("longitude"), crit.Longitude)...)
	where = append(where, rangeExprs(tLocations.Col("place_id"), crit.PlaceID)...)
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds, false
}

func imageQuery(crit *domain.ImageCriteria) (ds *goqu.SelectDataset, distinct bool) {
	ds = dialect.From(tImages)
	if crit == nil {
		return ds, false
	}
	var where []exp.Expression
	where = append(where, rangeExprs(tImages.Col("id"), crit.ID)...)
	where = append(where, stringExprs(tImages.Col("image_url"), crit.ImageURL)...)
	where = append(where, filterExprs(tImages.Col("main"), crit.Main)...)
	where = append(where, rangeExprs(tImages.Col("place_id"), crit.PlaceID)...)
	where = append(where, rangeExprs(tImages.Col("category_id"), crit.CategoryID)...)
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds, false
}

func reservationQuery(crit *domain.ReservationCriteria) (ds *goqu.SelectDataset, distinct bool) {
	ds = dialect.From(tReservations)
	if crit == nil {
		return ds, false
	}
	var where []exp.Expression
	where = append(where, rangeExprs(tReservations.Col("id"), crit.ID)...)
	where = append(where, filterExprs(tReservations.Col("type"), crit.Type)...)
	where = append(where, filterExprs(tReservations.Col("status"), crit.Status)...)
	where = append(where, rangeExprs(tReservations.Col("period"), crit.Period)...)
	where = append(where, timeExprs(tReservations.Col("start_date"), crit.StartDate)...)
	where = append(where, timeExprs(tReservations.Col("end_date"), crit.EndDate)...)
	where = append(where, rangeExprs(tReservations.Col("fees"), crit.Fees)...)
	where = append(where, rangeExprs(tReservations.Col("user_id"), crit.UserID)...)
	where = append(where, rangeExprs(tReservations.Col("place_id"), crit.PlaceID)...)
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds, false
}
