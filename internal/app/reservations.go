package app

import (
	"context"
	"errors"

	"placebook/internal/domain"
)

// ReservationService owns the reservation lifecycle. Every reservation is
// created PENDING no matter what the caller sends; status moves only through
// UpdateStatus (administration) and Cancel (the owner).
type ReservationService struct {
	repo domain.ReservationRepository
}

func NewReservationService(r domain.ReservationRepository) *ReservationService {
	return &ReservationService{repo: r}
}

func (s *ReservationService) Save(ctx context.Context, r domain.Reservation, who domain.Identity) (domain.Reservation, error) {
	if r.ID != 0 {
		return domain.Reservation{}, domain.Validation("idexists", "a new reservation cannot already have an id")
	}
	if !r.Type.Valid() {
		return domain.Reservation{}, domain.Validation("typeinvalid", "unknown reservation type")
	}
	if r.PlaceID == 0 {
		return domain.Reservation{}, domain.Validation("placerequired", "reservation place is required")
	}
	if who.UserID == 0 {
		return domain.Reservation{}, domain.Validation("noUser", "no authenticated user")
	}
	r.UserID = who.UserID
	r.Status = domain.StatusPending
	return s.repo.Create(ctx, r)
}

func (s *ReservationService) Update(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	if r.ID == 0 {
		return domain.Reservation{}, domain.Validation("idnull", "an existing reservation must have an id")
	}
	if !r.Type.Valid() {
		return domain.Reservation{}, domain.Validation("typeinvalid", "unknown reservation type")
	}
	if !r.Status.Valid() {
		return domain.Reservation{}, domain.Validation("statusinvalid", "unknown reservation status")
	}
	if _, err := s.repo.Get(ctx, r.ID); err != nil {
		if domain.IsNotFound(err) {
			return domain.Reservation{}, domain.NotFound("idnotfound", "reservation not found")
		}
		return domain.Reservation{}, err
	}
	return s.repo.Update(ctx, r)
}

// UpdateStatus overwrites the status unconditionally; administration may move
// a reservation to any state, including back to PENDING.
func (s *ReservationService) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (domain.Reservation, error) {
	if !status.Valid() {
		return domain.Reservation{}, domain.Validation("statusinvalid", "unknown reservation status")
	}
	out, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reservation{}, domain.NotFound("idnotfound", "reservation not found")
		}
		return domain.Reservation{}, err
	}
	return out, nil
}

// Cancel sets the caller's own reservation to CANCELED. A reservation that
// exists but belongs to someone else reads exactly like a missing one.
func (s *ReservationService) Cancel(ctx context.Context, id int64, who domain.Identity) (domain.Reservation, error) {
	if _, err := s.repo.GetOwned(ctx, id, who.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reservation{}, domain.NotFound("idnotfound", "reservation not found")
		}
		return domain.Reservation{}, err
	}
	return s.repo.UpdateStatus(ctx, id, domain.StatusCanceled)
}

func (s *ReservationService) Get(ctx context.Context, id int64, who domain.Identity) (domain.Reservation, error) {
	var (
		r   domain.Reservation
		err error
	)
	if who.Admin() {
		r, err = s.repo.Get(ctx, id)
	} else {
		r, err = s.repo.GetOwned(ctx, id, who.UserID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reservation{}, domain.NotFound("idnotfound", "reservation not found")
		}
		return domain.Reservation{}, err
	}
	return r, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ReservationService) Find(ctx context.Context, crit *domain.ReservationCriteria, who domain.Identity) ([]domain.ReservationView, error) {
	return s.repo.FindByCriteria(ctx, scopeToUser(crit, who))
}

func (s *ReservationService) FindPage(ctx context.Context, crit *domain.ReservationCriteria, pg domain.Page, who domain.Identity) (domain.Paged[domain.ReservationView], error) {
	return s.repo.FindPageByCriteria(ctx, scopeToUser(crit, who), pg)
}

func (s *ReservationService) Count(ctx context.Context, crit *domain.ReservationCriteria, who domain.Identity) (int64, error) {
	return s.repo.CountByCriteria(ctx, scopeToUser(crit, who))
}

// scopeToUser pins non-admin listings to the caller's own reservations. The
// criteria is cloned first so the caller's copy is never mutated.
func scopeToUser(crit *domain.ReservationCriteria, who domain.Identity) *domain.ReservationCriteria {
	if who.Admin() {
		return crit
	}
	scoped := crit.Copy()
	if scoped == nil {
		scoped = &domain.ReservationCriteria{}
	}
	uid := who.UserID
	scoped.UserID = &domain.RangeFilter[int64]{Filter: domain.Filter[int64]{Equals: &uid}}
	return scoped
}
