package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the JSON shape every endpoint responds with
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, envelope{Success: false, Error: msg})
}
