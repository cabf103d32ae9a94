package models

import "time"

// Software is a requestable catalog entry. Entries are never physically
// deleted; deactivation clears IsActive so historical access requests keep
// a valid reference.
type Software struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:120;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Version     string          `gorm:"size:40;not null" json:"version"`
	IsActive    bool            `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Requests    []AccessRequest `gorm:"foreignKey:SoftwareID" json:"requests,omitempty"`
}
