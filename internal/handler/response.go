package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rdkadakkal/Yusen-Report/internal/logger"
)

// APIResponse is the JSON envelope of every non-file endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError logs the cause and returns an error envelope carrying
// its text, so callers see what to fix without reading server logs.
func respondError(c echo.Context, status int, message string, err error) error {
	resp := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		logger.ErrorLog(c.Request().Context(), "%s: %v", message, err)
		resp.Error = err.Error()
	}
	return c.JSON(status, resp)
}
