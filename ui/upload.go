package ui

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tabscope/adapters/excel"
	"tabscope/domain/table"
	apperrors "tabscope/internal/errors"
)

// readUpload parses the multipart "file" field into a table. The returned
// name is the uploaded file name.
func (s *Server) readUpload(c *gin.Context) (*table.Table, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			return nil, "", apperrors.TooLarge(int(s.maxUpload >> 20))
		}
		return nil, "", apperrors.InvalidInput("multipart field 'file' is required")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", apperrors.Wrap(err, "failed to open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", apperrors.Wrap(err, "failed to read upload")
	}

	t, err := excel.ReadBytes(fh.Filename, data, s.readerConfig)
	if err != nil {
		if apperrors.GetCode(apperrors.FromDomain(err)) == apperrors.CodeInternalError {
			// an unparseable file is bad input
			return nil, "", apperrors.WithCode(apperrors.CodeInvalidInput, err)
		}
		return nil, "", err
	}

	s.logger.Debug("parsed upload %s: %d rows x %d columns", fh.Filename, t.NumRows(), t.NumColumns())
	return t, fh.Filename, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
