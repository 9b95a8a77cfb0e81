package handlers

import (
	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "Success"
	statusError   = "Error"
)

const (
	msgTitleRequired    = "Title is required"
	msgTitleTooLong     = "Title must be at most 255 characters"
	msgInvalidBody      = "Invalid request body"
	msgInvalidID        = "Invalid task ID"
	msgInvalidCompleted = "Invalid completed status"
	msgNotFound         = "Task not found"
	msgInternal         = "Internal server error"
)

// Response is the envelope every API response is wrapped in.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Response{Status: statusSuccess, Message: message, Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Status: statusError, Error: message})
}
