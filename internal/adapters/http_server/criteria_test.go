package httpserver

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebook/internal/domain"
)

func TestParsePlaceCriteria_AllOperators(t *testing.T) {
	q := url.Values{}
	q.Set("id.in", "1, 2,3")
	q.Set("name.contains", "Loft")
	q.Set("description.doesNotContain", "noisy")
	q.Set("specification.notEquals", "couch")
	q.Set("price.greaterThanOrEqual", "10")
	q.Set("price.lessThan", "200")
	q.Set("categoryId.specified", "false")
	q.Set("imageId.equals", "5")

	c, err := parsePlaceCriteria(q)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, c.ID.In)
	require.NotNil(t, c.Name.Contains)
	assert.Equal(t, "Loft", *c.Name.Contains)
	require.NotNil(t, c.Description.DoesNotContain)
	assert.Equal(t, "noisy", *c.Description.DoesNotContain)
	require.NotNil(t, c.Specification.NotEquals)
	assert.Equal(t, "couch", *c.Specification.NotEquals)
	require.NotNil(t, c.Price.GreaterThanOrEqual)
	assert.Equal(t, 10.0, *c.Price.GreaterThanOrEqual)
	require.NotNil(t, c.Price.LessThan)
	assert.Equal(t, 200.0, *c.Price.LessThan)
	require.NotNil(t, c.CategoryID.Specified)
	assert.False(t, *c.CategoryID.Specified)
	require.NotNil(t, c.ImageID.Equals)
	assert.Equal(t, int64(5), *c.ImageID.Equals)
	assert.Nil(t, c.LocationID)
	assert.Nil(t, c.ReservationID)
}

func TestParsePlaceCriteria_Empty(t *testing.T) {
	c, err := parsePlaceCriteria(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, &domain.PlaceCriteria{}, c)
}

func TestParseCriteria_MalformedValue(t *testing.T) {
	for _, tc := range []struct{ key, val string }{
		{"id.equals", "abc"},
		{"price.greaterThan", "cheap"},
		{"id.in", "1,x,3"},
		{"categoryId.specified", "maybe"},
	} {
		q := url.Values{}
		q.Set(tc.key, tc.val)
		_, err := parsePlaceCriteria(q)
		require.Error(t, err, tc.key)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), tc.key)
	}
}

func TestParseReservationCriteria_EnumAndTime(t *testing.T) {
	q := url.Values{}
	q.Set("status.equals", "PENDING")
	q.Set("type.in", "DAILY,WEEKLY")
	q.Set("startDate.greaterThanOrEqual", "2026-09-01T00:00:00Z")

	c, err := parseReservationCriteria(q)
	require.NoError(t, err)
	require.NotNil(t, c.Status.Equals)
	assert.Equal(t, domain.StatusPending, *c.Status.Equals)
	assert.Equal(t, []domain.ReservationType{domain.TypeDaily, domain.TypeWeekly}, c.Type.In)
	require.NotNil(t, c.StartDate.GreaterThanOrEqual)
	assert.True(t, c.StartDate.GreaterThanOrEqual.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))

	q.Set("status.equals", "DONE")
	_, err = parseReservationCriteria(q)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestParseImageCriteria_Bool(t *testing.T) {
	q := url.Values{}
	q.Set("main.equals", "true")
	q.Set("imageUrl.contains", ".jpg")

	c, err := parseImageCriteria(q)
	require.NoError(t, err)
	require.NotNil(t, c.Main.Equals)
	assert.True(t, *c.Main.Equals)
	require.NotNil(t, c.ImageURL.Contains)
}

func TestParsePage(t *testing.T) {
	pg, err := parsePage(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, domain.Page{Number: 0, Size: domain.DefaultPageSize}, pg)

	q := url.Values{}
	q.Set("page", "3")
	q.Set("size", "50")
	q.Set("sort", "price,desc")
	pg, err = parsePage(q)
	require.NoError(t, err)
	assert.Equal(t, domain.Page{Number: 3, Size: 50, Sort: "price,desc"}, pg)

	q.Set("page", "-1")
	_, err = parsePage(q)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	q.Set("page", "0")
	q.Set("size", "nope")
	_, err = parsePage(q)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
