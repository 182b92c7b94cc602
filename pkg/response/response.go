package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every response: {msg, data, error?}.
// msg and data are emitted as null when absent to keep the contract
// stable for clients.
type Envelope struct {
	Msg   any `json:"msg"`
	Data  any `json:"data"`
	Error any `json:"error,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Envelope{Msg: msg, Data: data})
}

// Invalid writes a 400 envelope with a human-readable error.
func Invalid(c *gin.Context, err any) {
	c.JSON(http.StatusBadRequest, Envelope{Error: err})
}

// AbortUnauthorized writes a 401 envelope and stops the handler chain.
func AbortUnauthorized(c *gin.Context, err string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Error: err})
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Envelope{Msg: msg})
}

// Conflict writes a 409 envelope when a resource already exists.
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, Envelope{Msg: msg})
}

// ServerError writes a 500 envelope with a generic message so internals
// never leak to the caller.
func ServerError(c *gin.Context, msg string) {
	if msg == "" {
		msg = "Unexpected error occurred"
	}
	c.JSON(http.StatusInternalServerError, Envelope{Msg: msg})
}

// TooManyRequests writes a 429 envelope (used by the rate limiter).
func TooManyRequests(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Envelope{Msg: msg})
}
