package domain

import (
	"context"
	"time"
)

type CategoryRepository interface {
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, c Category) (Category, error)
	Get(ctx context.Context, id int64) (Category, error)
	Delete(ctx context.Context, id int64) error
	FindByCriteria(ctx context.Context, crit *CategoryCriteria) ([]Category, error)
	FindPageByCriteria(ctx context.Context, crit *CategoryCriteria, pg Page) (Paged[Category], error)
	CountByCriteria(ctx context.Context, crit *CategoryCriteria) (int64, error)
}

type PlaceRepository interface {
	// CreateWithLocation persists the place and its owned location in one
	// transaction; a caller never observes a place without its location.
	CreateWithLocation(ctx context.Context, p Place, loc Location) (Place, Location, error)
	UpdateWithLocation(ctx context.Context, p Place, loc Location) (Place, Location, error)
	Get(ctx context.Context, id int64) (Place, error)
	GetView(ctx context.Context, id int64) (PlaceView, error)
	Delete(ctx context.Context, id int64) error
	FindByCriteria(ctx context.Context, crit *PlaceCriteria) ([]PlaceView, error)
	FindPageByCriteria(ctx context.Context, crit *PlaceCriteria, pg Page) (Paged[PlaceView], error)
	CountByCriteria(ctx context.Context, crit *PlaceCriteria) (int64, error)
}

type LocationRepository interface {
	Create(ctx context.Context, loc Location) (Location, error)
	Update(ctx context.Context, loc Location) (Location, error)
	Get(ctx context.Context, id int64) (Location, error)
	GetByPlace(ctx context.Context, placeID int64) (Location, error)
	Delete(ctx context.Context, id int64) error
	FindByCriteria(ctx context.Context, crit *LocationCriteria) ([]Location, error)
	FindPageByCriteria(ctx context.Context, crit *LocationCriteria, pg Page) (Paged[Location], error)
	CountByCriteria(ctx context.Context, crit *LocationCriteria) (int64, error)
}

type ImageRepository interface {
	Create(ctx context.Context, img Image) (Image, error)
	Update(ctx context.Context, img Image) (Image, error)
	Get(ctx context.Context, id int64) (Image, error)
	Delete(ctx context.Context, id int64) error
	FindByURL(ctx context.Context, imageURL string) (Image, error)
	FindMain(ctx context.Context, owner ImageOwner, ownerID int64) (Image, error)
	// SetMain demotes the owner's current main image and promotes imageID in
	// one transaction, keeping at most one main image per owner.
	SetMain(ctx context.Context, owner ImageOwner, ownerID, imageID int64) (Image, error)
	FindByCriteria(ctx context.Context, crit *ImageCriteria) ([]Image, error)
	FindPageByCriteria(ctx context.Context, crit *ImageCriteria, pg Page) (Paged[Image], error)
	CountByCriteria(ctx context.Context, crit *ImageCriteria) (int64, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r Reservation) (Reservation, error)
	Update(ctx context.Context, r Reservation) (Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status ReservationStatus) (Reservation, error)
	Get(ctx context.Context, id int64) (Reservation, error)
	// GetOwned resolves a reservation only when it belongs to userID and
	// returns ErrNotFound otherwise; absent and foreign are indistinguishable.
	GetOwned(ctx context.Context, id, userID int64) (Reservation, error)
	Delete(ctx context.Context, id int64) error
	FindByCriteria(ctx context.Context, crit *ReservationCriteria) ([]ReservationView, error)
	FindPageByCriteria(ctx context.Context, crit *ReservationCriteria, pg Page) (Paged[ReservationView], error)
	CountByCriteria(ctx context.Context, crit *ReservationCriteria) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByLogin(ctx context.Context, login string) (User, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// AttemptCounter backs the OTP failure throttle.
type AttemptCounter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
	Count(ctx context.Context, key string) (int64, error)
}
