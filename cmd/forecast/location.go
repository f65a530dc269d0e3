package main

import (
	"errors"
	"net/http"

	"datapoint-forecast/internal/location"
	"datapoint-forecast/internal/providers/datapoint"
	_ "datapoint-forecast/internal/types" // imported for swagger type definitions

	"github.com/gin-gonic/gin"
)

// ResolveLocationInput defines the query parameters for the resolve endpoint
type ResolveLocationInput struct {
	Name string `form:"name" binding:"required"` // Exact DataPoint site name
}

// handleResolveLocation godoc
// @Summary Resolve a location name
// @Description Look up a DataPoint forecast site by its exact, case-sensitive name and return its id and metadata
// @Tags location
// @Produce json
// @Param name query string true "Site name" example(London)
// @Success 200 {object} types.Site
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /location/resolve [get]
func (app *App) handleResolveLocation(c *gin.Context) {
	var input ResolveLocationInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	site, err := app.locationService.Resolve(c.Request.Context(), input.Name)
	if err != nil {
		switch {
		case errors.Is(err, location.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, location.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case isUpstreamError(err):
			app.logger.Error("failed to resolve location", "name", input.Name, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch DataPoint site list"})
		default:
			app.logger.Error("failed to resolve location", "name", input.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve location"})
		}
		return
	}

	c.JSON(http.StatusOK, site)
}

// isUpstreamError reports whether err came from the DataPoint service
func isUpstreamError(err error) bool {
	var (
		transportErr *datapoint.TransportError
		parseErr     *datapoint.ParseError
	)
	return errors.As(err, &transportErr) || errors.As(err, &parseErr)
}
