package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tabscope/internal/errors"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.router.Use(s.limitUploadSize())
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// limitUploadSize rejects bodies over the configured limit. Declared lengths
// are checked up front; the body reader enforces it for chunked uploads.
func (s *Server) limitUploadSize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if c.Request.ContentLength > s.maxUpload {
			s.respondError(c, apperrors.TooLarge(int(s.maxUpload>>20)))
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
		c.Next()
	}
}
