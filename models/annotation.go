package models

import (
	"time"

	"gorm.io/datatypes"
)

// Annotation holds one saved annotation payload for an image. Data is stored as-is.
type Annotation struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ImageID   uint           `json:"image_id" gorm:"not null;index"`
	Data      datatypes.JSON `json:"annotation_data" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
}
