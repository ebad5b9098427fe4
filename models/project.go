package models

import "time"

type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	Images      []Image   `json:"images,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
