package controllers

import (
	"annotator/models"
	"time"

	"gorm.io/datatypes"
)

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ImageResponse struct {
	ID        uint   `json:"id"`
	ImageFile string `json:"image_file"`
}

type AnnotationResponse struct {
	ID             uint           `json:"id"`
	ImageID        uint           `json:"image_id"`
	AnnotationData datatypes.JSON `json:"annotation_data"`
	CreatedAt      time.Time      `json:"created_at"`
}

func serializeProject(project models.Project) ProjectResponse {
	return ProjectResponse{ID: project.ID, Name: project.Name, Description: project.Description}
}

func serializeImage(image models.Image) ImageResponse {
	return ImageResponse{ID: image.ID, ImageFile: image.ImageFile}
}

func serializeAnnotation(annotation models.Annotation) AnnotationResponse {
	return AnnotationResponse{
		ID:             annotation.ID,
		ImageID:        annotation.ImageID,
		AnnotationData: annotation.Data,
		CreatedAt:      annotation.CreatedAt,
	}
}

// serializeAll maps records to responses. The result is never nil so empty lists encode as [].
func serializeAll[T any, R any](records []T, serialize func(T) R) []R {
	out := make([]R, 0, len(records))
	for _, record := range records {
		out = append(out, serialize(record))
	}
	return out
}
