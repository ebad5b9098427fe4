package controllers

import (
	"annotator/models"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// FindProjects lists all projects
func FindProjects(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := store.ListProjects(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializeAll(projects, serializeProject))
	}
}

type CreateProjectInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateProject creates a project
func CreateProject(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProjectInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project := models.Project{Name: input.Name, Description: input.Description}
		if err := store.CreateProject(c.Request.Context(), &project); err != nil {
			respondError(c, err)
			return
		}
		log.WithField("project_id", project.ID).Info("Created project")
		c.JSON(http.StatusCreated, serializeProject(project))
	}
}
