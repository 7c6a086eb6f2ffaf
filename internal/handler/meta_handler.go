package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parampara/internal/model"
)

// MetaHandler serves the closed vocabularies the submission form is built from.
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Languages godoc
// @Summary Supported language codes with display names
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router /meta/languages [get]
func (h *MetaHandler) Languages(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Languages)
}

// Regions godoc
// @Summary Accepted region tags
// @Tags meta
// @Produce json
// @Success 200 {array} string
// @Router /meta/regions [get]
func (h *MetaHandler) Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Regions)
}

// Categories godoc
// @Summary Accepted categories and content types
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /meta/categories [get]
func (h *MetaHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories":    model.Categories,
		"content_types": model.ContentTypes,
	})
}
