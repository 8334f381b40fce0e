package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"placebook/internal/domain"
)

// PlaceService orchestrates the flattened place+location payload: a place is
// never persisted without its location, and a partial location update keeps
// the stored value for every field the payload leaves nil.
type PlaceService struct {
	places    domain.PlaceRepository
	locations domain.LocationRepository
	cache     domain.Cache
	cacheTTL  time.Duration
}

func NewPlaceService(p domain.PlaceRepository, l domain.LocationRepository, c domain.Cache, ttl time.Duration) *PlaceService {
	return &PlaceService{places: p, locations: l, cache: c, cacheTTL: ttl}
}

func (s *PlaceService) Save(ctx context.Context, in domain.PlaceInput) (domain.PlaceView, error) {
	if err := validatePlaceInput(in); err != nil {
		return domain.PlaceView{}, err
	}
	p := domain.Place{
		Name:          in.Name,
		Specification: in.Specification,
		Description:   in.Description,
		Price:         in.Price,
		CategoryID:    in.CategoryID,
	}
	loc := domain.Location{}
	applyLocationInput(&loc, in)

	p, loc, err := s.places.CreateWithLocation(ctx, p, loc)
	if err != nil {
		return domain.PlaceView{}, err
	}
	return viewOf(p, loc), nil
}

func (s *PlaceService) Update(ctx context.Context, id int64, in domain.PlaceInput) (domain.PlaceView, error) {
	if id == 0 {
		return domain.PlaceView{}, domain.Validation("idnull", "an existing place must have an id")
	}
	if err := validatePlaceInput(in); err != nil {
		return domain.PlaceView{}, err
	}
	p, err := s.places.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PlaceView{}, domain.NotFound("idnotfound", "place not found")
		}
		return domain.PlaceView{}, err
	}
	loc, err := s.locations.GetByPlace(ctx, id)
	locMissing := false
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.PlaceView{}, err
		}
		locMissing = true
	}

	p.Name = in.Name
	p.Specification = in.Specification
	p.Description = in.Description
	p.Price = in.Price
	p.CategoryID = in.CategoryID
	loc.PlaceID = id
	applyLocationInput(&loc, in)

	// a place whose location row was deleted gets it recreated here; updating
	// the zero id would silently match nothing
	if locMissing {
		if loc, err = s.locations.Create(ctx, loc); err != nil {
			return domain.PlaceView{}, err
		}
	}
	p, loc, err = s.places.UpdateWithLocation(ctx, p, loc)
	if err != nil {
		return domain.PlaceView{}, err
	}
	s.evict(ctx, id)
	return viewOf(p, loc), nil
}

func (s *PlaceService) Get(ctx context.Context, id int64) (domain.PlaceView, error) {
	key := placeKey(id)
	var v domain.PlaceView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &v); ok {
			return v, nil
		}
	}
	v, err := s.places.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PlaceView{}, domain.NotFound("idnotfound", "place not found")
		}
		return domain.PlaceView{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	}
	return v, nil
}

func (s *PlaceService) Delete(ctx context.Context, id int64) error {
	if err := s.places.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

func (s *PlaceService) Find(ctx context.Context, crit *domain.PlaceCriteria) ([]domain.PlaceView, error) {
	return s.places.FindByCriteria(ctx, crit)
}

func (s *PlaceService) FindPage(ctx context.Context, crit *domain.PlaceCriteria, pg domain.Page) (domain.Paged[domain.PlaceView], error) {
	return s.places.FindPageByCriteria(ctx, crit, pg)
}

func (s *PlaceService) Count(ctx context.Context, crit *domain.PlaceCriteria) (int64, error) {
	return s.places.CountByCriteria(ctx, crit)
}

func (s *PlaceService) evict(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, placeKey(id))
	}
}

func validatePlaceInput(in domain.PlaceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validation("namerequired", "place name is required")
	}
	if strings.TrimSpace(in.Specification) == "" {
		return domain.Validation("specificationrequired", "place specification is required")
	}
	return nil
}

// applyLocationInput overlays the non-nil location fields of the payload.
func applyLocationInput(loc *domain.Location, in domain.PlaceInput) {
	if in.Address != nil {
		loc.Address = *in.Address
	}
	if in.City != nil {
		loc.City = *in.City
	}
	if in.Latitude != nil {
		loc.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		loc.Longitude = in.Longitude
	}
}

func viewOf(p domain.Place, loc domain.Location) domain.PlaceView {
	v := domain.PlaceView{
		ID:            p.ID,
		Name:          p.Name,
		Specification: p.Specification,
		Description:   p.Description,
		Price:         p.Price,
		CategoryID:    p.CategoryID,
	}
	if loc.ID != 0 {
		locID := loc.ID
		addr, city := loc.Address, loc.City
		v.LocationID = &locID
		v.Address = &addr
		v.City = &city
		v.Latitude = loc.Latitude
		v.Longitude = loc.Longitude
	}
	return v
}

func placeKey(id int64) string { return fmt.Sprintf("place:%d", id) }
