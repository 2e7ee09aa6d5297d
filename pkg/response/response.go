package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/pkg/apperr"
)

// ErrorBody is the only error shape clients ever see.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes a success payload as-is.
func JSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// Err writes the error envelope with an explicit status.
func Err(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = "An unknown error occurred!"
	}
	c.JSON(status, ErrorBody{Message: message})
}

// AbortErr writes the error envelope and aborts the handler chain.
func AbortErr(c *gin.Context, status int, message string) {
	Err(c, status, message)
	c.Abort()
}

// FromError maps an error kind to its status code and client-safe message.
// Internal detail (store errors, provider responses) never crosses here.
func FromError(c *gin.Context, err error) {
	Err(c, apperr.StatusOf(err), apperr.MessageOf(err))
}
