package domain

// Page describes one requested slice of a criteria query. Number is
// zero-based. Sort is "column,asc" or "column,desc"; columns are
// whitelisted per entity by the storage layer.
type Page struct {
	Number int
	Size   int
	Sort   string
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Paged is one page of results plus the total match count. TotalElements is
// computed from the same predicate as the items, so it agrees with
// CountByCriteria for equal criteria.
type Paged[T any] struct {
	Items         []T
	TotalElements int64
}
