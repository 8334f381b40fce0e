package app_test

import (
	"context"
	"time"

	"placebook/internal/domain"
)

// ---- fakes ----

type fakeCategoryRepo struct {
	byID   map[int64]domain.Category
	nextID int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[int64]domain.Category{}, nextID: 1}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	c.ID = f.nextID
	f.nextID++
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) Get(ctx context.Context, id int64) (domain.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCategoryRepo) FindByCriteria(ctx context.Context, crit *domain.CategoryCriteria) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindPageByCriteria(ctx context.Context, crit *domain.CategoryCriteria, pg domain.Page) (domain.Paged[domain.Category], error) {
	items, _ := f.FindByCriteria(ctx, crit)
	return domain.Paged[domain.Category]{Items: items, TotalElements: int64(len(items))}, nil
}

func (f *fakeCategoryRepo) CountByCriteria(ctx context.Context, crit *domain.CategoryCriteria) (int64, error) {
	return int64(len(f.byID)), nil
}

type fakePlaceRepo struct {
	places    map[int64]domain.Place
	locations *fakeLocationRepo
	nextID    int64
}

func newFakePlaceRepo(locs *fakeLocationRepo) *fakePlaceRepo {
	return &fakePlaceRepo{places: map[int64]domain.Place{}, locations: locs, nextID: 1}
}

func (f *fakePlaceRepo) CreateWithLocation(ctx context.Context, p domain.Place, loc domain.Location) (domain.Place, domain.Location, error) {
	p.ID = f.nextID
	f.nextID++
	f.places[p.ID] = p
	loc.PlaceID = p.ID
	loc, _ = f.locations.Create(ctx, loc)
	return p, loc, nil
}

func (f *fakePlaceRepo) UpdateWithLocation(ctx context.Context, p domain.Place, loc domain.Location) (domain.Place, domain.Location, error) {
	f.places[p.ID] = p
	f.locations.byID[loc.ID] = loc
	return p, loc, nil
}

func (f *fakePlaceRepo) Get(ctx context.Context, id int64) (domain.Place, error) {
	p, ok := f.places[id]
	if !ok {
		return domain.Place{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePlaceRepo) GetView(ctx context.Context, id int64) (domain.PlaceView, error) {
	p, ok := f.places[id]
	if !ok {
		return domain.PlaceView{}, domain.ErrNotFound
	}
	return domain.PlaceView{ID: p.ID, Name: p.Name, Specification: p.Specification, Price: p.Price}, nil
}

func (f *fakePlaceRepo) Delete(ctx context.Context, id int64) error {
	delete(f.places, id)
	return nil
}

func (f *fakePlaceRepo) FindByCriteria(ctx context.Context, crit *domain.PlaceCriteria) ([]domain.PlaceView, error) {
	return nil, nil
}

func (f *fakePlaceRepo) FindPageByCriteria(ctx context.Context, crit *domain.PlaceCriteria, pg domain.Page) (domain.Paged[domain.PlaceView], error) {
	return domain.Paged[domain.PlaceView]{}, nil
}

func (f *fakePlaceRepo) CountByCriteria(ctx context.Context, crit *domain.PlaceCriteria) (int64, error) {
	return int64(len(f.places)), nil
}

type fakeLocationRepo struct {
	byID   map[int64]domain.Location
	nextID int64
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: map[int64]domain.Location{}, nextID: 1}
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	loc.ID = f.nextID
	f.nextID++
	f.byID[loc.ID] = loc
	return loc, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	f.byID[loc.ID] = loc
	return loc, nil
}

func (f *fakeLocationRepo) Get(ctx context.Context, id int64) (domain.Location, error) {
	loc, ok := f.byID[id]
	if !ok {
		return domain.Location{}, domain.ErrNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) GetByPlace(ctx context.Context, placeID int64) (domain.Location, error) {
	for _, loc := range f.byID {
		if loc.PlaceID == placeID {
			return loc, nil
		}
	}
	return domain.Location{}, domain.ErrNotFound
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeLocationRepo) FindByCriteria(ctx context.Context, crit *domain.LocationCriteria) ([]domain.Location, error) {
	return nil, nil
}

func (f *fakeLocationRepo) FindPageByCriteria(ctx context.Context, crit *domain.LocationCriteria, pg domain.Page) (domain.Paged[domain.Location], error) {
	return domain.Paged[domain.Location]{}, nil
}

func (f *fakeLocationRepo) CountByCriteria(ctx context.Context, crit *domain.LocationCriteria) (int64, error) {
	return int64(len(f.byID)), nil
}

type fakeImageRepo struct {
	byID   map[int64]domain.Image
	nextID int64
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{byID: map[int64]domain.Image{}, nextID: 1}
}

func (f *fakeImageRepo) Create(ctx context.Context, img domain.Image) (domain.Image, error) {
	img.ID = f.nextID
	f.nextID++
	f.byID[img.ID] = img
	return img, nil
}

func (f *fakeImageRepo) Update(ctx context.Context, img domain.Image) (domain.Image, error) {
	f.byID[img.ID] = img
	return img, nil
}

func (f *fakeImageRepo) Get(ctx context.Context, id int64) (domain.Image, error) {
	img, ok := f.byID[id]
	if !ok {
		return domain.Image{}, domain.ErrNotFound
	}
	return img, nil
}

func (f *fakeImageRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeImageRepo) FindByURL(ctx context.Context, imageURL string) (domain.Image, error) {
	for _, img := range f.byID {
		if img.ImageURL == imageURL {
			return img, nil
		}
	}
	return domain.Image{}, domain.ErrNotFound
}

func (f *fakeImageRepo) FindMain(ctx context.Context, owner domain.ImageOwner, ownerID int64) (domain.Image, error) {
	for _, img := range f.byID {
		if img.Main && ownerMatches(img, owner, ownerID) {
			return img, nil
		}
	}
	return domain.Image{}, domain.ErrNotFound
}

func (f *fakeImageRepo) SetMain(ctx context.Context, owner domain.ImageOwner, ownerID, imageID int64) (domain.Image, error) {
	target, ok := f.byID[imageID]
	if !ok || !ownerMatches(target, owner, ownerID) {
		return domain.Image{}, domain.ErrNotFound
	}
	for id, img := range f.byID {
		if img.Main && ownerMatches(img, owner, ownerID) {
			img.Main = false
			f.byID[id] = img
		}
	}
	target.Main = true
	f.byID[imageID] = target
	return target, nil
}

func ownerMatches(img domain.Image, owner domain.ImageOwner, ownerID int64) bool {
	if owner == domain.OwnerPlace {
		return img.PlaceID != nil && *img.PlaceID == ownerID
	}
	return img.CategoryID != nil && *img.CategoryID == ownerID
}

func (f *fakeImageRepo) FindByCriteria(ctx context.Context, crit *domain.ImageCriteria) ([]domain.Image, error) {
	return nil, nil
}

func (f *fakeImageRepo) FindPageByCriteria(ctx context.Context, crit *domain.ImageCriteria, pg domain.Page) (domain.Paged[domain.Image], error) {
	return domain.Paged[domain.Image]{}, nil
}

func (f *fakeImageRepo) CountByCriteria(ctx context.Context, crit *domain.ImageCriteria) (int64, error) {
	return int64(len(f.byID)), nil
}

type fakeReservationRepo struct {
	byID     map[int64]domain.Reservation
	nextID   int64
	lastCrit *domain.ReservationCriteria
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: map[int64]domain.Reservation{}, nextID: 1}
}

func (f *fakeReservationRepo) Create(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	r.ID = f.nextID
	f.nextID++
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	r.Status = status
	f.byID[id] = r
	return r, nil
}

func (f *fakeReservationRepo) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetOwned(ctx context.Context, id, userID int64) (domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok || r.UserID != userID {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeReservationRepo) FindByCriteria(ctx context.Context, crit *domain.ReservationCriteria) ([]domain.ReservationView, error) {
	f.lastCrit = crit
	return nil, nil
}

func (f *fakeReservationRepo) FindPageByCriteria(ctx context.Context, crit *domain.ReservationCriteria, pg domain.Page) (domain.Paged[domain.ReservationView], error) {
	f.lastCrit = crit
	return domain.Paged[domain.ReservationView]{}, nil
}

func (f *fakeReservationRepo) CountByCriteria(ctx context.Context, crit *domain.ReservationCriteria) (int64, error) {
	f.lastCrit = crit
	return 0, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Category:
		*d = v.(domain.Category)
	case *domain.PlaceView:
		*d = v.(domain.PlaceView)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeCounter struct {
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	f.counts[key]++
	if f.counts[key] == 1 {
		f.ttls[key] = ttl
	}
	return f.counts[key], nil
}

func (f *fakeCounter) Reset(ctx context.Context, key string) error {
	delete(f.counts, key)
	delete(f.ttls, key)
	return nil
}

func (f *fakeCounter) Count(ctx context.Context, key string) (int64, error) {
	return f.counts[key], nil
}

func ptr[T any](v T) *T { return &v }
