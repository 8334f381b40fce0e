package httpserver

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"placebook/internal/domain"
)

// Criteria arrive as `field.operator=value` query parameters, e.g.
// price.greaterThanOrEqual=10, id.in=1,2,3, main.specified=true. A parameter
// that fails to parse rejects the whole request with a validation error.

func parseValues[T comparable](q url.Values, field string, conv func(string) (T, error)) (domain.Filter[T], bool, error) {
	var (
		f   domain.Filter[T]
		any bool
	)
	if raw := q.Get(field + ".equals"); raw != "" {
		v, err := conv(raw)
		if err != nil {
			return f, false, badParam(field, "equals")
		}
		f.Equals = &v
		any = true
	}
	if raw := q.Get(field + ".notEquals"); raw != "" {
		v, err := conv(raw)
		if err != nil {
			return f, false, badParam(field, "notEquals")
		}
		f.NotEquals = &v
		any = true
	}
	if raw := q.Get(field + ".in"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			v, err := conv(strings.TrimSpace(part))
			if err != nil {
				return f, false, badParam(field, "in")
			}
			f.In = append(f.In, v)
		}
		any = true
	}
	if raw := q.Get(field + ".specified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, false, badParam(field, "specified")
		}
		f.Specified = &v
		any = true
	}
	return f, any, nil
}

func parseRange[T int | int64 | float64](q url.Values, field string, conv func(string) (T, error)) (*domain.RangeFilter[T], error) {
	base, any, err := parseValues(q, field, conv)
	if err != nil {
		return nil, err
	}
	out := domain.RangeFilter[T]{Filter: base}
	for _, op := range []struct {
		name string
		dst  **T
	}{
		{"greaterThan", &out.GreaterThan},
		{"greaterThanOrEqual", &out.GreaterThanOrEqual},
		{"lessThan", &out.LessThan},
		{"lessThanOrEqual", &out.LessThanOrEqual},
	} {
		raw := q.Get(field + "." + op.name)
		if raw == "" {
			continue
		}
		v, err := conv(raw)
		if err != nil {
			return nil, badParam(field, op.name)
		}
		*op.dst = &v
		any = true
	}
	if !any {
		return nil, nil
	}
	return &out, nil
}

func parseString(q url.Values, field string) (*domain.StringFilter, error) {
	base, any, err := parseValues(q, field, func(s string) (string, error) { return s, nil })
	if err != nil {
		return nil, err
	}
	out := domain.StringFilter{Filter: base}
	if raw := q.Get(field + ".contains"); raw != "" {
		out.Contains = &raw
		any = true
	}
	if raw := q.Get(field + ".doesNotContain"); raw != "" {
		out.DoesNotContain = &raw
		any = true
	}
	if !any {
		return nil, nil
	}
	return &out, nil
}

func parseBool(q url.Values, field string) (*domain.Filter[bool], error) {
	f, any, err := parseValues(q, field, strconv.ParseBool)
	if err != nil {
		return nil, err
	}
	if !any {
		return nil, nil
	}
	return &f, nil
}

func parseTime(q url.Values, field string) (*domain.TimeFilter, error) {
	conv := func(s string) (time.Time, error) { return time.Parse(time.RFC3339, s) }
	base, any, err := parseValues(q, field, conv)
	if err != nil {
		return nil, err
	}
	out := domain.TimeFilter{Filter: base}
	for _, op := range []struct {
		name string
		dst  **time.Time
	}{
		{"greaterThan", &out.GreaterThan},
		{"greaterThanOrEqual", &out.GreaterThanOrEqual},
		{"lessThan", &out.LessThan},
		{"lessThanOrEqual", &out.LessThanOrEqual},
	} {
		raw := q.Get(field + "." + op.name)
		if raw == "" {
			continue
		}
		v, err := conv(raw)
		if err != nil {
			return nil, badParam(field, op.name)
		}
		*op.dst = &v
		any = true
	}
	if !any {
		return nil, nil
	}
	return &out, nil
}

func parseEnum[T ~string](q url.Values, field string, valid func(T) bool) (*domain.Filter[T], error) {
	conv := func(s string) (T, error) {
		v := T(s)
		if !valid(v) {
			return v, badParam(field, "equals")
		}
		return v, nil
	}
	f, any, err := parseValues(q, field, conv)
	if err != nil {
		return nil, err
	}
	if !any {
		return nil, nil
	}
	return &f, nil
}

func parseI64(s string) (int64, error)   { return strconv.ParseInt(s, 10, 64) }
func parseInt(s string) (int, error)     { return strconv.Atoi(s) }
func parseF64(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func badParam(field, op string) error {
	return domain.Validation("criteriainvalid", "malformed criteria parameter "+field+"."+op)
}

// ---- per-entity criteria ----

func parseCategoryCriteria(q url.Values) (*domain.CategoryCriteria, error) {
	var (
		c   domain.CategoryCriteria
		err error
	)
	if c.ID, err = parseRange(q, "id", parseI64); err != nil {
		return nil, err
	}
	if c.Name, err = parseString(q, "name"); err != nil {
		return nil, err
	}
	if c.Description, err = parseString(q, "description"); err != nil {
		return nil, err
	}
	if c.PlaceID, err = parseRange(q, "placeId", parseI64); err != nil {
		return nil, err
	}
	if c.ImageID, err = parseRange(q, "imageId", parseI64); err != nil {
		return nil, err
	}
	return &c, nil
}

func parsePlaceCriteria(q url.Values) (*domain.PlaceCriteria, error) {
	var (
		c   domain.PlaceCriteria
		err error
	)
	if c.ID, err = parseRange(q, "id", parseI64); err != nil {
		return nil, err
	}
	if c.Name, err = parseString(q, "name"); err != nil {
		return nil, err
	}
	if c.Specification, err = parseString(q, "specification"); err != nil {
		return nil, err
	}
	if c.Description, err = parseString(q, "description"); err != nil {
		return nil, err
	}
	if c.Price, err = parseRange(q, "price", parseF64); err != nil {
		return nil, err
	}
	if c.LocationID, err = parseRange(q, "locationId", parseI64); err != nil {
		return nil, err
	}
	if c.ImageID, err = parseRange(q, "imageId", parseI64); err != nil {
		return nil, err
	}
	if c.ReservationID, err = parseRange(q, "reservationId", parseI64); err != nil {
		return nil, err
	}
	if c.CategoryID, err = parseRange(q, "categoryId", parseI64); err != nil {
		return nil, err
	}
	return &c, nil
}

func parseLocationCriteria(q url.Values) (*domain.LocationCriteria, error) {
	var (
		c   domain.LocationCriteria
		err error
	)
	if c.ID, err = parseRange(q, "id", parseI64); err != nil {
		return nil, err
	}
	if c.Address, err = parseString(q, "address"); err != nil {
		return nil, err
	}
	if c.City, err = parseString(q, "city"); err != nil {
		return nil, err
	}
	if c.Latitude, err = parseString(q, "latitude"); err != nil {
		return nil, err
	}
	if c.Longitude, err = parseString(q, "longitude"); err != nil {
		return nil, err
	}
	if c.PlaceID, err = parseRange(q, "placeId", parseI64); err != nil {
		return nil, err
	}
	return &c, nil
}

func parseImageCriteria(q url.Values) (*domain.ImageCriteria, error) {
	var (
		c   domain.ImageCriteria
		err error
	)
	if c.ID, err = parseRange(q, "id", parseI64); err != nil {
		return nil, err
	}
	if c.ImageURL, err = parseString(q, "imageUrl"); err != nil {
		return nil, err
	}
	if c.Main, err = parseBool(q, "main"); err != nil {
		return nil, err
	}
	if c.PlaceID, err = parseRange(q, "placeId", parseI64); err != nil {
		return nil, err
	}
	if c.CategoryID, err = parseRange(q, "categoryId", parseI64); err != nil {
		return nil, err
	}
	return &c, nil
}

func parseReservationCriteria(q url.Values) (*domain.ReservationCriteria, error) {
	var (
		c   domain.ReservationCriteria
		err error
	)
	if c.ID, err = parseRange(q, "id", parseI64); err != nil {
		return nil, err
	}
	if c.Type, err = parseEnum(q, "type", domain.ReservationType.Valid); err != nil {
		return nil, err
	}
	if c.Status, err = parseEnum(q, "status", domain.ReservationStatus.Valid); err != nil {
		return nil, err
	}
	if c.Period, err = parseRange(q, "period", parseInt); err != nil {
		return nil, err
	}
	if c.StartDate, err = parseTime(q, "startDate"); err != nil {
		return nil, err
	}
	if c.EndDate, err = parseTime(q, "endDate"); err != nil {
		return nil, err
	}
	if c.Fees, err = parseRange(q, "fees", parseF64); err != nil {
		return nil, err
	}
	if c.UserID, err = parseRange(q, "userId", parseI64); err != nil {
		return nil, err
	}
	if c.PlaceID, err = parseRange(q, "placeId", parseI64); err != nil {
		return nil, err
	}
	return &c, nil
}

// ---- pagination ----

func parsePage(q url.Values) (domain.Page, error) {
	pg := domain.Page{Number: 0, Size: domain.DefaultPageSize, Sort: q.Get("sort")}
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return pg, domain.Validation("pageinvalid", "page must be a non-negative integer")
		}
		pg.Number = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return pg, domain.Validation("pageinvalid", "size must be a positive integer")
		}
		pg.Size = n
	}
	return pg, nil
}
