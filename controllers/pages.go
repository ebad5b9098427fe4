package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RenderPage serves a template without data besides its title.
func RenderPage(template string, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, template, gin.H{
			"title": title,
		})
	}
}
