package controllers

import (
	"annotator/models"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key holding the id of the current request.
const RequestIDKey = "request_id"

const internalErrorMessage = "internal server error"

// respondError writes the response for an error from the store. Not found errors become 404,
// everything else a 500 without details; the details go to the log.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found!"})
		return
	}
	log.WithError(err).WithFields(log.Fields{
		"request_id": c.GetString(RequestIDKey),
		"path":       c.FullPath(),
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
}

// parseID reads a numeric path parameter. Anything else does not name a record, so the
// request is answered with 404 and false is returned.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}
