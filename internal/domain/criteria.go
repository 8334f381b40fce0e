package domain

// Criteria structs mirror the filterable fields of each entity: one optional
// filter per scalar column plus one per related-entity id. Copy produces an
// independent deep clone so the same request criteria can feed a count call
// and a paged fetch without mutation leaking between them.

type CategoryCriteria struct {
	ID          *RangeFilter[int64]
	Name        *StringFilter
	Description *StringFilter
	PlaceID     *RangeFilter[int64]
	ImageID     *RangeFilter[int64]
}

func (c *CategoryCriteria) Copy() *CategoryCriteria {
	if c == nil {
		return nil
	}
	return &CategoryCriteria{
		ID:          c.ID.Copy(),
		Name:        c.Name.Copy(),
		Description: c.Description.Copy(),
		PlaceID:     c.PlaceID.Copy(),
		ImageID:     c.ImageID.Copy(),
	}
}

type PlaceCriteria struct {
	ID            *RangeFilter[int64]
	Name          *StringFilter
	Specification *StringFilter
	Description   *StringFilter
	Price         *RangeFilter[float64]
	LocationID    *RangeFilter[int64]
	ImageID       *RangeFilter[int64]
	ReservationID *RangeFilter[int64]
	CategoryID    *RangeFilter[int64]
}

func (c *PlaceCriteria) Copy() *PlaceCriteria {
	if c == nil {
		return nil
	}
	return &PlaceCriteria{
		ID:            c.ID.Copy(),
		Name:          c.Name.Copy(),
		Specification: c.Specification.Copy(),
		Description:   c.Description.Copy(),
		Price:         c.Price.Copy(),
		LocationID:    c.LocationID.Copy(),
		ImageID:       c.ImageID.Copy(),
		ReservationID: c.ReservationID.Copy(),
		CategoryID:    c.CategoryID.Copy(),
	}
}

type LocationCriteria struct {
	ID        *RangeFilter[int64]
	Address   *StringFilter
	City      *StringFilter
	Latitude  *StringFilter
	Longitude *StringFilter
	PlaceID   *RangeFilter[int64]
}

func (c *LocationCriteria) Copy() *LocationCriteria {
	if c == nil {
		return nil
	}
	return &LocationCriteria{
		ID:        c.ID.Copy(),
		Address:   c.Address.Copy(),
		City:      c.City.Copy(),
		Latitude:  c.Latitude.Copy(),
		Longitude: c.Longitude.Copy(),
		PlaceID:   c.PlaceID.Copy(),
	}
}

type ImageCriteria struct {
	ID         *RangeFilter[int64]
	ImageURL   *StringFilter
	Main       *Filter[bool]
	PlaceID    *RangeFilter[int64]
	CategoryID *RangeFilter[int64]
}

func (c *ImageCriteria) Copy() *ImageCriteria {
	if c == nil {
		return nil
	}
	return &ImageCriteria{
		ID:         c.ID.Copy(),
		ImageURL:   c.ImageURL.Copy(),
		Main:       c.Main.Copy(),
		PlaceID:    c.PlaceID.Copy(),
		CategoryID: c.CategoryID.Copy(),
	}
}

type ReservationCriteria struct {
	ID        *RangeFilter[int64]
	Type      *Filter[ReservationType]
	Status    *Filter[ReservationStatus]
	Period    *RangeFilter[int]
	StartDate *TimeFilter
	EndDate   *TimeFilter
	Fees      *RangeFilter[float64]
	UserID    *RangeFilter[int64]
	PlaceID   *RangeFilter[int64]
}

func (c *ReservationCriteria) Copy() *ReservationCriteria {
	if c == nil {
		return nil
	}
	return &ReservationCriteria{
		ID:        c.ID.Copy(),
		Type:      c.Type.Copy(),
		Status:    c.Status.Copy(),
		Period:    c.Period.Copy(),
		StartDate: c.StartDate.Copy(),
		EndDate:   c.EndDate.Copy(),
		Fees:      c.Fees.Copy(),
		UserID:    c.UserID.Copy(),
		PlaceID:   c.PlaceID.Copy(),
	}
}
