package domain

import "time"

type ReservationType string

const (
	TypeDaily   ReservationType = "DAILY"
	TypeWeekly  ReservationType = "WEEKLY"
	TypeMonthly ReservationType = "MONTHLY"
)

func (t ReservationType) Valid() bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeMonthly:
		return true
	}
	return false
}

type ReservationStatus string

const (
	StatusPending  ReservationStatus = "PENDING"
	StatusApproved ReservationStatus = "APPROVED"
	StatusRejected ReservationStatus = "REJECTED"
	StatusCanceled ReservationStatus = "CANCELED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Reservation is created PENDING regardless of caller input; status moves
// only through explicit update operations.
type Reservation struct {
	ID        int64
	Type      ReservationType
	Status    ReservationStatus
	Period    *int
	StartDate *time.Time
	EndDate   *time.Time
	Fees      *float64
	UserID    int64
	PlaceID   int64
}

// ReservationView adds the referenced user login and place name for reads.
type ReservationView struct {
	ID        int64
	Type      ReservationType
	Status    ReservationStatus
	Period    *int
	StartDate *time.Time
	EndDate   *time.Time
	Fees      *float64
	UserID    int64
	UserLogin *string
	PlaceID   int64
	PlaceName *string
}
