package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values assignable to a User. Admin is never self-assignable at registration.
const (
	RoleAttendee  = "Attendee"
	RoleOrganizer = "Organizer"
	RoleAdmin     = "Admin"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `gorm:"size:100;not null" json:"first_name"`
	LastName     string     `gorm:"size:100;not null" json:"last_name"`
	Role         string     `gorm:"size:20;not null;default:'Attendee'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
