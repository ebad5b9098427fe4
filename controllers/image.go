package controllers

import (
	"annotator/models"
	"annotator/utils"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// FindImages lists the images of a project. There is no check that the project exists, an
// unknown project simply has no images.
func FindImages(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseID(c, "project_id")
		if !ok {
			return
		}
		images, err := store.ListImagesByProject(c.Request.Context(), projectID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializeAll(images, serializeImage))
	}
}

// CreateImage stores the uploaded image_file under <mediaRoot>/images and records it for the project.
func CreateImage(store *models.Store, mediaRoot string) gin.HandlerFunc {
	imageDir := filepath.Join(mediaRoot, "images")
	return func(c *gin.Context) {
		projectID, ok := parseID(c, "project_id")
		if !ok {
			return
		}
		file, err := c.FormFile("image_file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_file is required"})
			return
		}

		ctx := c.Request.Context()
		if _, err := store.GetProject(ctx, projectID); err != nil {
			respondError(c, err)
			return
		}

		if err := os.MkdirAll(imageDir, 0o755); err != nil {
			respondError(c, fmt.Errorf("create image directory: %w", err))
			return
		}
		path := filepath.Join(imageDir, utils.NewFileName(filepath.Ext(filepath.Base(file.Filename))))
		if err := c.SaveUploadedFile(file, path); err != nil {
			respondError(c, fmt.Errorf("save uploaded image: %w", err))
			return
		}
		logUploadedImage(file.Filename, path)

		image := models.Image{ProjectID: projectID, ImageFile: path}
		if err := store.CreateImage(ctx, &image); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, serializeImage(image))
	}
}

func logUploadedImage(name string, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	entry := log.WithFields(log.Fields{"upload": name, "path": path})
	info, err := utils.ProbeImage(f)
	if err != nil {
		entry.WithError(err).Debug("Stored upload is not a decodable image")
		return
	}
	entry.Info(fmt.Sprintf("Stored %s image of %dx%d", info.Format, info.Width, info.Height))
}
