package domain

// Image belongs to at most one place or one category. Within one owner at
// most a single image has Main set; SetMain on the repository enforces that
// in a single transaction.
type Image struct {
	ID         int64
	ImageURL   string
	Main       bool
	PlaceID    *int64
	CategoryID *int64
}

// ImageOwner selects which owner column a main-image operation targets.
type ImageOwner string

const (
	OwnerPlace    ImageOwner = "place"
	OwnerCategory ImageOwner = "category"
)
