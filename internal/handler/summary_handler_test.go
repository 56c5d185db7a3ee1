package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rdkadakkal/Yusen-Report/internal/domain"
	"github.com/rdkadakkal/Yusen-Report/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestHandler() *SummaryHandler {
	svc := service.NewSummaryReportService(nil, service.WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}))
	return NewSummaryHandler(svc)
}

func buildUploadBody(t *testing.T, header []string, rows [][]string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, val))
		}
	}
	var workbookBuf bytes.Buffer
	_, err := f.WriteTo(&workbookBuf)
	require.NoError(t, err)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(UploadField, "export.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbookBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func trackingHeader() []string {
	return []string{domain.ColumnTenantName, domain.ColumnTracked, domain.ColumnPeriodDate}
}

func postUpload(t *testing.T, target string, body *bytes.Buffer, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestPreviewHandler(t *testing.T) {
	h := newTestHandler()
	body, contentType := buildUploadBody(t, trackingHeader(), [][]string{
		{"Acme Corp", "yes", "2024-01-05"},
		{"Acme Corp", "no", "2024-01-06"},
	})

	c, rec := postUpload(t, "/api/v1/tracking/preview", body, contentType)
	require.NoError(t, h.PreviewHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    service.SummaryPreview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, trackingHeader(), resp.Data.Columns)
	assert.Len(t, resp.Data.RawRows, 2)
	assert.Equal(t, 2, resp.Data.TotalRawRows)
	assert.Equal(t, []string{"2024-01"}, resp.Data.Months)
	// Acme plus the required tenants, one month each.
	assert.Equal(t, 1+len(domain.RequiredTenants), resp.Data.TotalGridRows)
}

func TestPreviewHandlerSchemaError(t *testing.T) {
	h := newTestHandler()
	body, contentType := buildUploadBody(t, []string{domain.ColumnTenantName, "Ship Date"}, [][]string{
		{"Acme Corp", "2024-01-05"},
	})

	c, rec := postUpload(t, "/api/v1/tracking/preview", body, contentType)
	require.NoError(t, h.PreviewHandler(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "'Tracked'")
	assert.Contains(t, resp.Error, "found alternatives: 'Ship Date'")
}

func TestPreviewHandlerMissingFile(t *testing.T) {
	h := newTestHandler()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	c, rec := postUpload(t, "/api/v1/tracking/preview", body, mw.FormDataContentType())
	require.NoError(t, h.PreviewHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadHandlerExcel(t *testing.T) {
	h := newTestHandler()
	body, contentType := buildUploadBody(t, trackingHeader(), [][]string{
		{"Acme Corp", "yes", "2024-01-05"},
	})

	c, rec := postUpload(t, "/api/v1/tracking/report", body, contentType)
	require.NoError(t, h.DownloadHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t,
		`attachment; filename="Yusen_Style_Summary_20240315_1030.xlsx"`,
		rec.Header().Get(echo.HeaderContentDisposition))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary"}, f.GetSheetList())
}

func TestDownloadHandlerCSV(t *testing.T) {
	h := newTestHandler()
	body, contentType := buildUploadBody(t, trackingHeader(), [][]string{
		{"Acme Corp", "yes", "2024-01-05"},
	})

	c, rec := postUpload(t, "/api/v1/tracking/report?format=csv", body, contentType)
	require.NoError(t, h.DownloadHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".csv")
	assert.Contains(t, rec.Body.String(), "Tenant Name")
}

func TestDownloadHandlerUnknownFormat(t *testing.T) {
	h := newTestHandler()
	body, contentType := buildUploadBody(t, trackingHeader(), nil)

	c, rec := postUpload(t, "/api/v1/tracking/report?format=pdf", body, contentType)
	require.NoError(t, h.DownloadHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequiredTenantsHandler(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/required", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.RequiredTenantsHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.RequiredTenants, resp.Data)
}
