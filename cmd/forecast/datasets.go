package main

import (
	"errors"
	"io/fs"
	"net/http"

	"datapoint-forecast/internal/mapping"
	"datapoint-forecast/internal/table"

	"github.com/gin-gonic/gin"
)

// WeatherCodesResponse lists the weather type codes of the active mappings
type WeatherCodesResponse struct {
	Version string             `json:"version" example:"2024.1"`
	Codes   []mapping.CodeInfo `json:"codes"`
}

// DatasetResponse is a CSV snapshot. Missing cells are null.
type DatasetResponse struct {
	Kind    string      `json:"kind" example:"processed"`
	Path    string      `json:"path" example:"data/data_processed.csv"`
	Columns []string    `json:"columns"`
	Rows    [][]*string `json:"rows"`
}

// handleListWeatherCodes godoc
// @Summary List weather type codes
// @Description Return every DataPoint weather type code with its detailed description and grouped category
// @Tags mappings
// @Produce json
// @Success 200 {object} WeatherCodesResponse
// @Router /mappings/weather-codes [get]
func (app *App) handleListWeatherCodes(c *gin.Context) {
	c.JSON(http.StatusOK, WeatherCodesResponse{
		Version: app.mappings.Version,
		Codes:   app.mappings.Codes(),
	})
}

// handleGetDataset godoc
// @Summary Get a dataset snapshot
// @Description Return the most recent raw or processed CSV snapshot as JSON
// @Tags datasets
// @Produce json
// @Param kind path string true "Dataset kind" Enums(raw, processed)
// @Success 200 {object} DatasetResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /datasets/{kind} [get]
func (app *App) handleGetDataset(c *gin.Context) {
	raw, processed := app.cfg.OutputPaths()

	kind := c.Param("kind")
	var path string
	switch kind {
	case "raw":
		path = raw
	case "processed":
		path = processed
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset kind must be raw or processed"})
		return
	}

	t, err := app.datasets.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset has not been written yet"})
			return
		}
		app.logger.Error("failed to read dataset", "path", path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read dataset"})
		return
	}

	c.JSON(http.StatusOK, DatasetResponse{
		Kind:    kind,
		Path:    path,
		Columns: t.Columns(),
		Rows:    tableRows(t),
	})
}

func tableRows(t *table.Table) [][]*string {
	rows := make([][]*string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		cells := t.Row(i)
		row := make([]*string, len(cells))
		for j, cell := range cells {
			if cell.Present {
				v := cell.Value
				row[j] = &v
			}
		}
		rows = append(rows, row)
	}
	return rows
}
