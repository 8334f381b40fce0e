package app

import (
	"context"
	"errors"

	"placebook/internal/domain"
)

// LocationService exposes the location resource directly; lifecycle coupling
// with its place is handled by PlaceService, this is the raw CRUD surface.
type LocationService struct {
	repo domain.LocationRepository
}

func NewLocationService(r domain.LocationRepository) *LocationService {
	return &LocationService{repo: r}
}

func (s *LocationService) Save(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.ID != 0 {
		return domain.Location{}, domain.Validation("idexists", "a new location cannot already have an id")
	}
	if loc.PlaceID == 0 {
		return domain.Location{}, domain.Validation("placerequired", "location place is required")
	}
	return s.repo.Create(ctx, loc)
}

func (s *LocationService) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.ID == 0 {
		return domain.Location{}, domain.Validation("idnull", "an existing location must have an id")
	}
	if _, err := s.repo.Get(ctx, loc.ID); err != nil {
		if domain.IsNotFound(err) {
			return domain.Location{}, domain.NotFound("idnotfound", "location not found")
		}
		return domain.Location{}, err
	}
	return s.repo.Update(ctx, loc)
}

func (s *LocationService) Get(ctx context.Context, id int64) (domain.Location, error) {
	loc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Location{}, domain.NotFound("idnotfound", "location not found")
		}
		return domain.Location{}, err
	}
	return loc, nil
}

func (s *LocationService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *LocationService) Find(ctx context.Context, crit *domain.LocationCriteria) ([]domain.Location, error) {
	return s.repo.FindByCriteria(ctx, crit)
}

func (s *LocationService) FindPage(ctx context.Context, crit *domain.LocationCriteria, pg domain.Page) (domain.Paged[domain.Location], error) {
	return s.repo.FindPageByCriteria(ctx, crit, pg)
}

func (s *LocationService) Count(ctx context.Context, crit *domain.LocationCriteria) (int64, error) {
	return s.repo.CountByCriteria(ctx, crit)
}
