// Package models contains data structures for the application's domain models.
package models

import "time"

// Role is a closed set of user roles. Roles are flat: no role implies
// another, and every endpoint declares its own allow-set explicitly.
type Role string

const (
	// RoleEmployee can submit access requests and see their own.
	RoleEmployee Role = "employee"
	// RoleManager can review pending access requests.
	RoleManager Role = "manager"
	// RoleAdmin manages the software catalog and user accounts.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the AccessDesk application.
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	FirstName string          `gorm:"size:60;not null" json:"firstName"`
	LastName  string          `gorm:"size:60;not null" json:"lastName"`
	Email     string          `gorm:"unique;not null" json:"email"`
	Password  string          `gorm:"not null" json:"-"`
	Role      Role            `gorm:"type:varchar(20);not null;default:'employee';index" json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Requests  []AccessRequest `gorm:"foreignKey:UserID" json:"requests,omitempty"`
}
