// Package httpx holds the JSON envelopes every API handler replies with.
package httpx

import (
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Error codes shared by the handlers.
const (
	CodeValidation   = "validation_failed"
	CodeInvalidJSON  = "invalid_json"
	CodeInvalidForm  = "invalid_form"
	CodeInvalidID    = "invalid_id"
	CodeNotFound     = "not_found"
	CodeMissingToken = "missing_token"
	CodeInvalidToken = "invalid_token"
	CodeStore        = "store_error"
	CodeInternal     = "internal_error"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var exposeStoreErrors atomic.Bool

// SetExposeStoreErrors controls whether raw database errors are echoed in the
// details of a 500 reply. Only enable it in development.
func SetExposeStoreErrors(v bool) { exposeStoreErrors.Store(v) }

func JSON(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Data(status, "application/json; charset=utf-8", []byte("null"))
		return
	}
	c.JSON(status, payload)
}

// JSONError writes the error envelope and stops the handler chain.
func JSONError(c *gin.Context, status int, code string, details any) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Details: details})
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageResponse{Message: msg})
}

// StoreError logs err and replies 500.
func StoreError(c *gin.Context, err error) {
	log.Printf("store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	var details any
	if exposeStoreErrors.Load() {
		details = err.Error()
	}
	JSONError(c, http.StatusInternalServerError, CodeStore, details)
}
