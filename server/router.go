package server

import (
	"annotator/controllers"
	"annotator/frontend"
	"annotator/models"
	"annotator/utils"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

const Version = "v0.1.0"

// NewRouter builds the gin engine with all routes of the service.
// Currently no authentication is used.
func NewRouter(store *models.Store, config *utils.Config) (*gin.Engine, error) {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(loggerMiddleware())
	r.Use(corsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	templates, err := frontend.Templates()
	if err != nil {
		return nil, fmt.Errorf("cannot parse templates: %w", err)
	}
	r.SetHTMLTemplate(templates)
	r.StaticFS("/static", http.FS(frontend.Static()))

	// Version tag to test against
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": Version,
		})
	})

	r.GET("/", controllers.RenderPage("label.tmpl", "Annotation tool"))
	r.GET("/index", controllers.RenderPage("welcome.tmpl", "Welcome"))
	r.GET("/trace/", controllers.RenderPage("trace.tmpl", "Whiteboard"))

	recordRoutes(&r.RouterGroup, store, config)
	r.POST("/save/", controllers.SaveAnnotation(store))

	// The pages call the record routes under /api, /api/save/ is the drawing upload
	api := r.Group("/api")
	{
		recordRoutes(api, store, config)
		api.POST("/save/", controllers.SaveDrawing(config.Media.Root))
		api.POST("/share/", controllers.ShareDrawing(config.Share.BaseURL))
		api.GET("/drawings/", controllers.FindDrawings(store))
		api.POST("/drawings/", controllers.CreateDrawing(store))
	}

	return r, nil
}

// recordRoutes registers the project, image and annotation routes on a group.
func recordRoutes(g *gin.RouterGroup, store *models.Store, config *utils.Config) {
	g.GET("/project/", controllers.FindProjects(store))
	g.POST("/project/", controllers.CreateProject(store))
	g.GET("/image/:project_id/", controllers.FindImages(store))
	g.POST("/image/:project_id/", controllers.CreateImage(store, config.Media.Root))
	g.POST("/annotation/", controllers.SaveAnnotation(store))
	g.GET("/annotation/:image_id/", controllers.FindAnnotations(store))
}
