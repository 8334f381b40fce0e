package mysql

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebook/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func toSQL(t *testing.T, ds interface{ ToSQL() (string, []interface{}, error) }) string {
	t.Helper()
	q, _, err := ds.ToSQL()
	require.NoError(t, err)
	return q
}

func TestNilCriteriaSelectsEverything(t *testing.T) {
	ds, distinct := placeQuery(nil)
	q := toSQL(t, ds)
	assert.False(t, distinct)
	assert.NotContains(t, q, "WHERE")
	assert.NotContains(t, q, "JOIN")
}

func TestEmptyCriteriaAddsNoPredicates(t *testing.T) {
	ds, distinct := placeQuery(&domain.PlaceCriteria{})
	q := toSQL(t, ds)
	assert.False(t, distinct)
	assert.NotContains(t, q, "WHERE")
}

func TestRangeOperators(t *testing.T) {
	crit := &domain.PlaceCriteria{
		Price: &domain.RangeFilter[float64]{
			GreaterThanOrEqual: ptr(10.0),
			LessThan:           ptr(200.0),
		},
	}
	ds, _ := placeQuery(crit)
	q := toSQL(t, ds)
	assert.Contains(t, q, "`places`.`price` >= 10")
	assert.Contains(t, q, "`places`.`price` < 200")
}

func TestEqualsAndInAndSpecified(t *testing.T) {
	crit := &domain.PlaceCriteria{
		ID: &domain.RangeFilter[int64]{
			Filter: domain.Filter[int64]{In: []int64{1, 2, 3}},
		},
		CategoryID: &domain.RangeFilter[int64]{
			Filter: domain.Filter[int64]{Equals: ptr(int64(7))},
		},
		Description: &domain.StringFilter{
			Filter: domain.Filter[string]{Specified: ptr(false)},
		},
	}
	ds, _ := placeQuery(crit)
	q := toSQL(t, ds)
	assert.Contains(t, q, "`places`.`id` IN (1, 2, 3)")
	assert.Contains(t, q, "`places`.`category_id` = 7")
	assert.Contains(t, q, "`places`.`description` IS NULL")
}

func TestStringContainsIsCaseSensitive(t *testing.T) {
	crit := &domain.PlaceCriteria{
		Name: &domain.StringFilter{Contains: ptr("Loft")},
	}
	ds, _ := placeQuery(crit)
	q := toSQL(t, ds)
	assert.Contains(t, q, "LIKE BINARY '%Loft%'")
}

func TestDoesNotContain(t *testing.T) {
	crit := &domain.CategoryCriteria{
		Name: &domain.StringFilter{DoesNotContain: ptr("test")},
	}
	ds, _ := categoryQuery(crit)
	q := toSQL(t, ds)
	assert.Contains(t, q, "NOT LIKE BINARY '%test%'")
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\%\_done%`, likePattern("100%_done"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestRelationshipFilterUsesLeftJoin(t *testing.T) {
	crit := &domain.PlaceCriteria{
		ImageID: &domain.RangeFilter[int64]{
			Filter: domain.Filter[int64]{Equals: ptr(int64(9))},
		},
	}
	ds, distinct := placeQuery(crit)
	q := toSQL(t, ds)
	assert.True(t, distinct)
	assert.Contains(t, q, "LEFT JOIN `images` AS `fi`")
	assert.Contains(t, q, "`fi`.`place_id` = `places`.`id`")
	assert.Contains(t, q, "`fi`.`id` = 9")
}

func TestReservationAndLocationJoinsUseDistinctAliases(t *testing.T) {
	crit := &domain.PlaceCriteria{
		LocationID:    &domain.RangeFilter[int64]{Filter: domain.Filter[int64]{Equals: ptr(int64(1))}},
		ReservationID: &domain.RangeFilter[int64]{Filter: domain.Filter[int64]{Equals: ptr(int64(2))}},
	}
	ds, distinct := placeQuery(crit)
	q := toSQL(t, ds)
	assert.True(t, distinct)
	assert.Contains(t, q, "LEFT JOIN `locations` AS `fl`")
	assert.Contains(t, q, "LEFT JOIN `reservations` AS `fr`")
}

func TestCategoryReverseRelationJoins(t *testing.T) {
	crit := &domain.CategoryCriteria{
		PlaceID: &domain.RangeFilter[int64]{Filter: domain.Filter[int64]{Equals: ptr(int64(4))}},
	}
	ds, distinct := categoryQuery(crit)
	q := toSQL(t, ds)
	assert.True(t, distinct)
	assert.Contains(t, q, "LEFT JOIN `places` AS `fp`")
	assert.Contains(t, q, "`fp`.`category_id` = `categories`.`id`")
}

func TestReservationEnumAndUserFilters(t *testing.T) {
	crit := &domain.ReservationCriteria{
		Status: &domain.Filter[domain.ReservationStatus]{Equals: ptr(domain.StatusPending)},
		UserID: &domain.RangeFilter[int64]{Filter: domain.Filter[int64]{Equals: ptr(int64(12))}},
	}
	ds, _ := reservationQuery(crit)
	q := toSQL(t, ds)
	assert.Contains(t, q, "`reservations`.`status` = 'PENDING'")
	assert.Contains(t, q, "`reservations`.`user_id` = 12")
}

func TestImageMainBooleanFilter(t *testing.T) {
	crit := &domain.ImageCriteria{
		Main:    &domain.Filter[bool]{Equals: ptr(true)},
		PlaceID: &domain.RangeFilter[int64]{Filter: domain.Filter[int64]{Specified: ptr(true)}},
	}
	ds, _ := imageQuery(crit)
	q := toSQL(t, ds)
	assert.Contains(t, q, "`images`.`main` IS TRUE")
	assert.Contains(t, q, "`images`.`place_id` IS NOT NULL")
}

func TestCountQueryMatchesFilteredSet(t *testing.T) {
	crit := &domain.PlaceCriteria{
		ImageID: &domain.RangeFilter[int64]{Filter: domain.Filter[int64]{Specified: ptr(true)}},
	}
	ds, _ := placeQuery(crit)
	q := toSQL(t, ds.Select(goqu.COUNT(goqu.DISTINCT(tPlaces.Col("id")))))
	assert.Contains(t, q, "COUNT(DISTINCT(`places`.`id`))")
	assert.Contains(t, q, "LEFT JOIN `images` AS `fi`")
}

func TestOrderForWhitelistsColumns(t *testing.T) {
	ord := orderFor(domain.Page{Sort: "price,desc"}, placeSortCols, tPlaces.Col("id"))
	q := toSQL(t, dialect.From(tPlaces).Order(ord))
	assert.Contains(t, q, "ORDER BY `places`.`price` DESC")

	ord = orderFor(domain.Page{Sort: "evil_column,desc"}, placeSortCols, tPlaces.Col("id"))
	q = toSQL(t, dialect.From(tPlaces).Order(ord))
	assert.Contains(t, q, "ORDER BY `places`.`id` ASC")
}

func TestPageLimits(t *testing.T) {
	limit, offset := pageLimits(domain.Page{Number: 2, Size: 25})
	assert.Equal(t, uint(25), limit)
	assert.Equal(t, uint(50), offset)

	limit, _ = pageLimits(domain.Page{Size: 0})
	assert.Equal(t, uint(domain.DefaultPageSize), limit)

	limit, _ = pageLimits(domain.Page{Size: 100000})
	assert.Equal(t, uint(domain.MaxPageSize), limit)

	_, offset = pageLimits(domain.Page{Number: -3, Size: 10})
	assert.Equal(t, uint(0), offset)
}
