package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tabscope/domain/chart"
	"tabscope/domain/core"
	apperrors "tabscope/internal/errors"
	"tabscope/internal/report"
)

const defaultPreviewRows = 5

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleProfile returns the ProfileRun as JSON, or the rendered report when
// format is markdown or html.
func (s *Server) handleProfile(c *gin.Context) {
	t, name, err := s.readUpload(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	run, err := s.service.ProfileRun(c.Request.Context(), name, t)
	if err != nil {
		s.respondError(c, err)
		return
	}

	switch strings.ToLower(c.DefaultQuery("format", "json")) {
	case "json":
		c.JSON(http.StatusOK, run)
	case "markdown", "md":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(run)))
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(run))
	default:
		s.respondError(c, apperrors.InvalidInput("format must be json, markdown or html"))
	}
}

func (s *Server) handleColumns(c *gin.Context) {
	t, _, err := s.readUpload(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":         s.service.Columns(t),
		"numeric_columns": s.service.NumericColumns(t),
	})
}

func (s *Server) handleAggregate(c *gin.Context) {
	var req chart.Request
	if err := c.ShouldBind(&req); err != nil {
		if isTooLarge(err) {
			s.respondError(c, apperrors.TooLarge(int(s.maxUpload>>20)))
			return
		}
		s.respondError(c, apperrors.WithCode(apperrors.CodeInvalidInput, fmt.Errorf("invalid aggregate request: %w", err)))
		return
	}
	kind, err := chart.ParseKind(string(req.Kind))
	if err != nil {
		s.respondError(c, apperrors.WithCode(apperrors.CodeInvalidInput, err))
		return
	}
	req.Kind = kind
	req.Columns = splitColumns(req.Columns)

	t, _, err := s.readUpload(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	result, err := s.service.Aggregate(t, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handlePreview(c *gin.Context) {
	n := defaultPreviewRows
	if raw := c.Query("rows"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			s.respondError(c, apperrors.InvalidInput("rows must be a non-negative integer"))
			return
		}
		n = v
	}

	t, _, err := s.readUpload(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	head := t.Head(n)
	c.JSON(http.StatusOK, gin.H{
		"columns":    head.ColumnNames(),
		"rows":       head.Records(),
		"total_rows": t.NumRows(),
	})
}

// splitColumns accepts repeated fields as well as comma-separated lists
func splitColumns(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) respondError(c *gin.Context, err error) {
	err = apperrors.FromDomain(err)
	status := apperrors.HTTPStatus(err)

	body := gin.H{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	}
	if core.IsPreconditionError(err) {
		body["warning"] = true
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Debug("%s %s rejected: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, body)
}
