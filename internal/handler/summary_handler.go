package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rdkadakkal/Yusen-Report/internal/logger"
	"github.com/rdkadakkal/Yusen-Report/internal/service"
	"github.com/rdkadakkal/Yusen-Report/internal/summary"
	"github.com/rdkadakkal/Yusen-Report/internal/workbook"
)

// UploadField is the multipart form field carrying the tracking
// export.
const UploadField = "file"

// SummaryHandler exposes the tracking report pipeline over HTTP.
type SummaryHandler struct {
	svc *service.SummaryReportService
}

// NewSummaryHandler creates the handler.
func NewSummaryHandler(svc *service.SummaryReportService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// PreviewHandler handles POST /api/v1/tracking/preview: it parses and
// aggregates the uploaded export and returns the leading raw and
// aggregated rows without rendering a file.
func (h *SummaryHandler) PreviewHandler(c echo.Context) error {
	src, err := h.openUpload(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid upload", err)
	}
	defer src.Close()

	preview, err := h.svc.Preview(c.Request().Context(), src)
	if err != nil {
		return respondError(c, statusFor(err), "Failed to build preview", err)
	}

	return respondSuccess(c, http.StatusOK, "Preview built successfully", preview)
}

// DownloadHandler handles POST /api/v1/tracking/report: it runs the
// full pipeline and streams back the rendered report with its
// suggested filename. The format query parameter selects the
// renderer; the default is Excel.
func (h *SummaryHandler) DownloadHandler(c echo.Context) error {
	src, err := h.openUpload(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid upload", err)
	}
	defer src.Close()

	artifact, err := h.svc.Generate(c.Request().Context(), src, c.QueryParam("format"))
	if err != nil {
		return respondError(c, statusFor(err), "Failed to generate report", err)
	}

	c.Response().Header().Set(echo.HeaderContentType, artifact.ContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, artifact.Filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(artifact.Data)))

	_, err = c.Response().Write(artifact.Data)
	return err
}

// RequiredTenantsHandler handles GET /api/v1/tenants/required.
func (h *SummaryHandler) RequiredTenantsHandler(c echo.Context) error {
	return respondSuccess(c, http.StatusOK,
		"Tenants included in every report, even with zero shipments",
		h.svc.RequiredTenants())
}

func (h *SummaryHandler) openUpload(c echo.Context) (multipart.File, error) {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		return nil, fmt.Errorf("missing %q upload: %w", UploadField, err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}

	logger.InfoLog(c.Request().Context(), "Processing upload %s (%d bytes)", fh.Filename, fh.Size)
	return src, nil
}

// statusFor maps pipeline errors to HTTP statuses: anything the caller
// can fix by changing the request is a 400, everything else a 500.
func statusFor(err error) int {
	var schemaErr *summary.SchemaError
	switch {
	case errors.As(err, &schemaErr),
		errors.Is(err, workbook.ErrInvalidWorkbook),
		errors.Is(err, service.ErrUnknownFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
