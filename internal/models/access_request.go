package models

import "time"

// RequestStatus defines lifecycle states for access requests.
type RequestStatus string

const (
	// RequestStatusPending indicates the request is awaiting review.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusApproved indicates the request was granted.
	RequestStatusApproved RequestStatus = "approved"
	// RequestStatusRejected indicates the request was denied.
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transition.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// AccessRequest is one employee's request for access to one catalog entry.
// Requests start pending, are decided exactly once, and are never deleted.
type AccessRequest struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;index" json:"userId"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SoftwareID      uint          `gorm:"not null;index" json:"softwareId"`
	Software        *Software     `gorm:"foreignKey:SoftwareID" json:"software,omitempty"`
	Status          RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Reason          string        `gorm:"type:text;not null" json:"reason"`
	RejectionReason string        `gorm:"type:text" json:"rejectionReason,omitempty"`
	DecidedByUserID *uint         `json:"decidedByUserId,omitempty"`
	DecidedByUser   *User         `gorm:"foreignKey:DecidedByUserID" json:"decidedByUser,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
