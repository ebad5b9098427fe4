package controllers

import (
	"annotator/models"
	"annotator/utils"
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// DrawingUpload is the body of the save and share endpoints. The canvas page posts it as JSON,
// form posts are accepted as well.
type DrawingUpload struct {
	Drawing string `form:"drawing" json:"drawing" binding:"required"`
}

// SaveDrawing decodes the posted data URI and writes it to <mediaRoot>/drawings.
func SaveDrawing(mediaRoot string) gin.HandlerFunc {
	drawingDir := filepath.Join(mediaRoot, "drawings")
	return func(c *gin.Context) {
		var input DrawingUpload
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "drawing is required"})
			return
		}

		uri, err := utils.DecodeDataURI(input.Drawing)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		path, err := utils.WriteMediaFile(drawingDir, uri.Extension, uri.Data)
		if err != nil {
			respondError(c, err)
			return
		}

		entry := log.WithFields(log.Fields{"path": path, "bytes": len(uri.Data)})
		if info, err := utils.ProbeImage(bytes.NewReader(uri.Data)); err == nil {
			entry = entry.WithField("size", fmt.Sprintf("%dx%d", info.Width, info.Height))
		}
		entry.Info("Saved drawing")

		c.JSON(http.StatusOK, gin.H{"message": "Drawing saved successfully!", "file_path": path})
	}
}

// ShareDrawing answers with a share URL ending in a random four digit id. Nothing is stored,
// the URL does not resolve to the drawing.
func ShareDrawing(baseURL string) gin.HandlerFunc {
	baseURL = strings.TrimRight(baseURL, "/")
	return func(c *gin.Context) {
		var input DrawingUpload
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "drawing is required"})
			return
		}
		shareURL := fmt.Sprintf("%s/%d", baseURL, 1000+rand.IntN(9000))
		c.JSON(http.StatusOK, gin.H{"message": "Shared successfully!", "share_url": shareURL})
	}
}

type CreateDrawingInput struct {
	User        string          `json:"user" binding:"required,max=100"`
	Tool        string          `json:"tool" binding:"required,max=100"`
	Color       string          `json:"color" binding:"max=7"`
	Stroke      *uint           `json:"stroke"`
	Coordinates json.RawMessage `json:"coordinates" binding:"required"`
}

// CreateDrawing records the metadata and points of a drawing. Color and stroke fall back to
// their defaults when left out.
func CreateDrawing(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateDrawingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		drawing := models.Drawing{
			User:        input.User,
			Tool:        input.Tool,
			Color:       input.Color,
			Stroke:      models.DefaultDrawingStroke,
			Coordinates: datatypes.JSON(input.Coordinates),
		}
		if input.Stroke != nil {
			drawing.Stroke = *input.Stroke
		}
		if err := store.CreateDrawing(c.Request.Context(), &drawing); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, drawing)
	}
}

// FindDrawings lists drawings, optionally only those of ?user=
func FindDrawings(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		drawings, err := store.ListDrawings(c.Request.Context(), c.Query("user"))
		if err != nil {
			respondError(c, err)
			return
		}
		if drawings == nil {
			drawings = []models.Drawing{}
		}
		c.JSON(http.StatusOK, drawings)
	}
}
