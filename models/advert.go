package models

import "time"

type Advert struct {
	ID              int64         `json:"id"`
	Slug            string        `json:"slug"`
	UserID          int64         `json:"user_id"`
	Name            LocalizedText `json:"name"`
	Description     LocalizedText `json:"description"`
	LoadType        LocalizedText `json:"load_type"`
	ExitFromAddress LocalizedText `json:"exit_from_address"`
	Capacity        float64       `json:"capacity"`
	UnitID          *int64        `json:"unit_id"`
	TruckTypeID     *int64        `json:"truck_type_id"`
	FromAreaID      *int64        `json:"from_area_id"`
	ToAreaID        *int64        `json:"to_area_id"`
	DriverName      string        `json:"driver_name,omitempty"`
	DriverPhone     string        `json:"driver_phone,omitempty"`
	Photos          []string      `json:"photos"`
	ExpiresAt       *time.Time    `json:"expires_at"`
	CreatedAt       time.Time     `json:"created_at"`
	Owner           *User         `json:"owner,omitempty"`
}

// Lookup is a named reference row (area, unit, truck type).
type Lookup struct {
	ID   int64         `json:"id"`
	Name LocalizedText `json:"name"`
}
