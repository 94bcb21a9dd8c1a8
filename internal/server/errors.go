package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/sheetstock/internal/apperr"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:       http.StatusBadRequest,
	apperr.KindNotFound:         http.StatusNotFound,
	apperr.KindMethodNotAllowed: http.StatusMethodNotAllowed,
	apperr.KindUpstream:         http.StatusInternalServerError,
	apperr.KindInternal:         http.StatusInternalServerError,
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	if status, ok := statusByKind[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError is the only place errors become responses.
func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{
		"ok":    false,
		"error": apperr.MessageOf(err),
	})
}
