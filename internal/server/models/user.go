// Package models defines the records the session server persists.
package models

import "time"

// User is a CRM account. Email is unique and compared exactly as stored.
// Role is an open string; the front end knows "admin" and "viewer".
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
