package api

import (
	"net/http"

	"whatsapp-inbox/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// Success writes the Success envelope with any extra fields merged in.
func Success(c *gin.Context, extra gin.H) {
	body := gin.H{"status": "Success"}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error writes the Error envelope. The HTTP status code follows the error
// code so callers can rely on either the envelope or the transport status.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalid:
		status = http.StatusBadRequest
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeConflict:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"status": "Error", "details": err.Error()})
}
