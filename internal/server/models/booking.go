package models

import "time"

// Booking reserves a place for a user. The user reference is the booking's
// owner; only they may cancel it.
type Booking struct {
	ID             string    `json:"id"`
	User           string    `json:"user"`
	Place          string    `json:"place"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Price          int64     `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
}
