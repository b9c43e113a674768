package common

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform JSON body for failed requests. Internal causes
// are logged server-side; clients only see the generic message.
type ErrorResponse struct {
	Error string `json:"error"`
}

func RespError(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorResponse{Error: msg})
}
