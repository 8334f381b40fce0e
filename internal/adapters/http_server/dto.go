package httpserver

import (
	"time"

	"placebook/internal/domain"
)

// Wire DTOs. The place payload is flattened: place scalars plus its location
// fields travel in one object, the shape clients created and read before the
// location became a separate resource.

type categoryDTO struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func toCategoryDTO(c domain.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (d categoryDTO) toDomain() domain.Category {
	return domain.Category{ID: d.ID, Name: d.Name, Description: d.Description}
}

type placeDTO struct {
	ID            int64    `json:"id,omitempty"`
	Name          string   `json:"name"`
	Specification string   `json:"specification"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	CategoryID    *int64   `json:"categoryId,omitempty"`
	CategoryName  *string  `json:"categoryName,omitempty"`
	LocationID    *int64   `json:"locationId,omitempty"`
	Address       *string  `json:"address,omitempty"`
	City          *string  `json:"city,omitempty"`
	Latitude      *string  `json:"latitude,omitempty"`
	Longitude     *string  `json:"longitude,omitempty"`
}

func toPlaceDTO(v domain.PlaceView) placeDTO {
	return placeDTO{
		ID:            v.ID,
		Name:          v.Name,
		Specification: v.Specification,
		Description:   v.Description,
		Price:         v.Price,
		CategoryID:    v.CategoryID,
		CategoryName:  v.CategoryName,
		LocationID:    v.LocationID,
		Address:       v.Address,
		City:          v.City,
		Latitude:      v.Latitude,
		Longitude:     v.Longitude,
	}
}

func (d placeDTO) toInput() domain.PlaceInput {
	return domain.PlaceInput{
		Name:          d.Name,
		Specification: d.Specification,
		Description:   d.Description,
		Price:         d.Price,
		CategoryID:    d.CategoryID,
		Address:       d.Address,
		City:          d.City,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
	}
}

type locationDTO struct {
	ID        int64   `json:"id,omitempty"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  *string `json:"latitude,omitempty"`
	Longitude *string `json:"longitude,omitempty"`
	PlaceID   int64   `json:"placeId"`
}

func toLocationDTO(l domain.Location) locationDTO {
	return locationDTO{ID: l.ID, Address: l.Address, City: l.City, Latitude: l.Latitude, Longitude: l.Longitude, PlaceID: l.PlaceID}
}

func (d locationDTO) toDomain() domain.Location {
	return domain.Location{ID: d.ID, Address: d.Address, City: d.City, Latitude: d.Latitude, Longitude: d.Longitude, PlaceID: d.PlaceID}
}

type imageDTO struct {
	ID         int64  `json:"id,omitempty"`
	ImageURL   string `json:"imageUrl"`
	Main       bool   `json:"main"`
	PlaceID    *int64 `json:"placeId,omitempty"`
	CategoryID *int64 `json:"categoryId,omitempty"`
}

func toImageDTO(i domain.Image) imageDTO {
	return imageDTO{ID: i.ID, ImageURL: i.ImageURL, Main: i.Main, PlaceID: i.PlaceID, CategoryID: i.CategoryID}
}

type reservationDTO struct {
	ID        int64      `json:"id,omitempty"`
	Type      string     `json:"type"`
	Status    string     `json:"status,omitempty"`
	Period    *int       `json:"period,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Fees      *float64   `json:"fees,omitempty"`
	UserID    int64      `json:"userId,omitempty"`
	UserLogin *string    `json:"userLogin,omitempty"`
	PlaceID   int64      `json:"placeId"`
	PlaceName *string    `json:"placeName,omitempty"`
}

func toReservationDTO(r domain.Reservation) reservationDTO {
	return reservationDTO{
		ID:        r.ID,
		Type:      string(r.Type),
		Status:    string(r.Status),
		Period:    r.Period,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Fees:      r.Fees,
		UserID:    r.UserID,
		PlaceID:   r.PlaceID,
	}
}

func toReservationViewDTO(v domain.ReservationView) reservationDTO {
	return reservationDTO{
		ID:        v.ID,
		Type:      string(v.Type),
		Status:    string(v.Status),
		Period:    v.Period,
		StartDate: v.StartDate,
		EndDate:   v.EndDate,
		Fees:      v.Fees,
		UserID:    v.UserID,
		UserLogin: v.UserLogin,
		PlaceID:   v.PlaceID,
		PlaceName: v.PlaceName,
	}
}

func (d reservationDTO) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:        d.ID,
		Type:      domain.ReservationType(d.Type),
		Status:    domain.ReservationStatus(d.Status),
		Period:    d.Period,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Fees:      d.Fees,
		UserID:    d.UserID,
		PlaceID:   d.PlaceID,
	}
}
