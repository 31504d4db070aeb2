package handler

import (
	"log"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps an application error onto the HTTP response. Taxonomy
// errors surface their message verbatim; internal errors are logged with
// detail and returned as a generic message so storage internals never leak.
func writeError(c *gin.Context, err error) {
	status := apperr.Status(err)
	message := "internal server error"

	e, ok := apperr.As(err)
	if ok && e.Kind != apperr.KindInternal {
		message = e.Message
	}
	if message == "internal server error" {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	if ok && e.Kind == apperr.KindPartialFailure {
		c.JSON(status, response.ErrorWithData(status, message, gin.H{"createdIds": e.CreatedIDs}))
		return
	}
	c.JSON(status, response.Error(status, message))
}
