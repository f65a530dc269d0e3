package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse reports liveness and which mappings and ledger the server runs with
type PingResponse struct {
	Message         string `json:"message" example:"pong"`
	MappingsVersion string `json:"mappings_version" example:"2024.1"`
	RunLedger       bool   `json:"run_ledger" example:"true"`
}

// handlePing godoc
// @Summary Ping health check
// @Description Check if the API is running and report the active weather code mappings version
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:         "pong",
		MappingsVersion: app.mappings.Version,
		RunLedger:       app.runs != nil,
	})
}
