package domain

type Place struct {
	ID            int64
	Name          string
	Specification string
	Description   *string
	Price         *float64
	CategoryID    *int64
}

// Location is exclusively owned by one place; place_id carries a unique key.
type Location struct {
	ID        int64
	Address   string
	City      string
	Latitude  *string
	Longitude *string
	PlaceID   int64
}

// PlaceInput is the flattened place+location payload accepted on save and
// update. On update, nil location fields keep their stored value.
type PlaceInput struct {
	Name          string
	Specification string
	Description   *string
	Price         *float64
	CategoryID    *int64
	Address       *string
	City          *string
	Latitude      *string
	Longitude     *string
}

// PlaceView joins the place with its location and category name for reads.
type PlaceView struct {
	ID            int64
	Name          string
	Specification string
	Description   *string
	Price         *float64
	CategoryID    *int64
	CategoryName  *string
	LocationID    *int64
	Address       *string
	City          *string
	Latitude      *string
	Longitude     *string
}
