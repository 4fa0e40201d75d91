package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/shared/errors"
)

// APIResponse represents a standard JSON response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    "error",
			Message: message,
		},
	})
}

// ErrorInfoFor maps an error to its status code and public error info.
// Errors that are not AppErrors never expose their text.
func ErrorInfoFor(err error) (int, ErrorInfo) {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Code, ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}
	return http.StatusInternalServerError, ErrorInfo{
		Type:    string(errors.ErrorTypeInternal),
		Message: "Internal server error occurred",
	}
}

// ErrorPageWithError answers with the error page for err, using the status
// of an AppError and a generic 500 otherwise.
func ErrorPageWithError(c *gin.Context, err error) {
	statusCode, info := ErrorInfoFor(err)
	ErrorPage(c, statusCode, info.Message)
}

// ErrorPage answers a failed request with the error page, or with a JSON
// error when the client prefers JSON. Handlers must not have written yet.
func ErrorPage(c *gin.Context, statusCode int, message string) {
	switch c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) {
	case gin.MIMEHTML:
		c.HTML(statusCode, "error.tmpl", gin.H{
			"Status":  statusCode,
			"Title":   http.StatusText(statusCode),
			"Message": message,
		})
	default:
		ErrorResponse(c, statusCode, message)
	}
}

// AbortWithError renders the error page for err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	ErrorPageWithError(c, err)
	c.Abort()
}
