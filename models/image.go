package models

import "time"

// Image is an uploaded picture belonging to a project. ImageFile is the path on local disk.
type Image struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	ProjectID   uint         `json:"project_id" gorm:"not null;index"`
	ImageFile   string       `json:"image_file" gorm:"size:512;not null"`
	CreatedAt   time.Time    `json:"created_at"`
	Annotations []Annotation `json:"annotations,omitempty" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
}
