package models

import "time"

// Problem is a design exercise: a short name plus the free-text requirements
// the user works against through the four stages.
type Problem struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Requirements string        `gorm:"type:text;not null" json:"requirements"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Classes      []ClassDesign `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"classes,omitempty"`
}
