package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parampara/internal/service"
)

// LocationHandler handles contributor location endpoints.
type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// RecordLocationRequest represents a location record request. Coordinates are
// optional but must be supplied together; an address-only record is valid.
type RecordLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   *string  `json:"address"`
}

// Record godoc
// @Summary Record the contributor's current location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordLocationRequest true "Location data"
// @Success 201 {object} model.LocationRecord
// @Failure 400 {object} errors.ErrorResponse
// @Router /locations [post]
func (h *LocationHandler) Record(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req RecordLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.locationService.Record(c.Request().Context(), userID, req.Latitude, req.Longitude, req.Address)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, record)
}

// Latest godoc
// @Summary Get the contributor's most recent location
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.LocationRecord
// @Failure 404 {object} errors.ErrorResponse
// @Router /locations/latest [get]
func (h *LocationHandler) Latest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	record, err := h.locationService.Latest(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, record)
}
