package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"parampara/internal/model"
	"parampara/internal/service"
)

// SubmissionHandler handles the submission ingestion and read endpoints.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// SubmissionResponse wraps a created submission with any enrichment warnings.
type SubmissionResponse struct {
	Submission *model.Submission `json:"submission"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// TranslateRequest asks for a text translation.
type TranslateRequest struct {
	Text   string `json:"text" validate:"required"`
	Source string `json:"source"`
	Target string `json:"target" validate:"required"`
}

// Create godoc
// @Summary Submit a new piece of cultural content
// @Description Multipart form: title, description, category, content_type,
// @Description language, region, latitude, longitude plus an optional "file"
// @Description part. Audio submissions require the file and are transcribed
// @Description best-effort; transcription failures appear in "warnings".
// @Tags submissions
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} SubmissionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Router /submissions [post]
func (h *SubmissionHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	input := service.SubmissionInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    model.Category(c.FormValue("category")),
		ContentType: model.ContentType(c.FormValue("content_type")),
		Language:    optionalString(c.FormValue("language")),
		Region:      optionalString(c.FormValue("region")),
	}
	input.LocationLat, err = optionalFloat(c.FormValue("latitude"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid latitude")
	}
	input.LocationLng, err = optionalFloat(c.FormValue("longitude"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid longitude")
	}

	var file *service.UploadedFile
	if fh, err := c.FormFile("file"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
		}
		defer src.Close()
		file = &service.UploadedFile{
			Name:    fh.Filename,
			Size:    fh.Size,
			Content: src,
		}
	}

	submission, warnings, err := h.submissionService.Create(c.Request().Context(), userID, input, file)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, SubmissionResponse{
		Submission: submission,
		Warnings:   warnings,
	})
}

// List godoc
// @Summary List the authenticated user's submissions, newest first
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Submission
// @Router /submissions [get]
func (h *SubmissionHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	submissions, err := h.submissionService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, submissions)
}

// Export godoc
// @Summary Download the authenticated user's submissions as CSV
// @Tags submissions
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV payload"
// @Router /submissions/export [get]
func (h *SubmissionHandler) Export(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="submissions.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return h.submissionService.ExportCSV(c.Request().Context(), userID, c.Response())
}

// Stats godoc
// @Summary Aggregate submission counts
// @Tags submissions
// @Produce json
// @Success 200 {object} repository.SubmissionStats
// @Router /stats [get]
func (h *SubmissionHandler) Stats(c echo.Context) error {
	stats, err := h.submissionService.Stats(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Translate godoc
// @Summary Translate text via the external translation service
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TranslateRequest true "Text and target language"
// @Success 200 {object} map[string]string
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /translate [post]
func (h *SubmissionHandler) Translate(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	translated, err := h.submissionService.Translate(c.Request().Context(), req.Text, req.Source, req.Target)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"translated_text": translated,
		"target":          req.Target,
	})
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optionalFloat(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
