package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultDrawingColor  = "#000000"
	DefaultDrawingStroke = 2
)

// Drawing is the metadata and point list of a freehand drawing.
type Drawing struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	User        string         `json:"user" gorm:"size:100;not null;index"`
	Tool        string         `json:"tool" gorm:"size:100;not null"`
	Color       string         `json:"color" gorm:"size:7;not null"`
	Stroke      uint           `json:"stroke" gorm:"not null"`
	Coordinates datatypes.JSON `json:"coordinates" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
}
