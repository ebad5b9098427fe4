package controllers

import (
	"annotator/models"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type SaveAnnotationInput struct {
	ImageID        uint            `json:"image_id" binding:"required"`
	AnnotationData json.RawMessage `json:"annotation_data" binding:"required"`
}

// SaveAnnotation stores the annotation_data posted for an existing image.
func SaveAnnotation(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SaveAnnotationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image_id and annotation_data are required"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}

		ctx := c.Request.Context()
		image, err := store.GetImage(ctx, input.ImageID)
		if err != nil {
			respondError(c, err)
			return
		}

		annotation := models.Annotation{ImageID: image.ID, Data: datatypes.JSON(input.AnnotationData)}
		if err := store.CreateAnnotation(ctx, &annotation); err != nil {
			respondError(c, err)
			return
		}
		log.WithFields(log.Fields{"image_id": image.ID, "annotation_id": annotation.ID}).Debug("Saved annotation")
		c.JSON(http.StatusCreated, gin.H{"message": "Annotation saved successfully"})
	}
}

// FindAnnotations lists the annotations saved for an image.
func FindAnnotations(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		imageID, ok := parseID(c, "image_id")
		if !ok {
			return
		}
		annotations, err := store.ListAnnotationsByImage(c.Request.Context(), imageID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializeAll(annotations, serializeAnnotation))
	}
}
