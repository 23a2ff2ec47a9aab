// Package models defines the persistent records of the booking domain.
package models

import "time"

// User is an identity record. Email is unique (case-sensitive as stored)
// and enforced by the users table's unique index. The password hash never
// leaves the service layer.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
