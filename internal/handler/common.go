package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/middleware"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

// UploadField is the multipart field carrying the file.
const UploadField = "file"

type CommonService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}

// CommonHandler serves /admin/common.
type CommonHandler struct {
	Handler
	common CommonService
}

func NewCommonHandler(s *server.Server, common CommonService) *CommonHandler {
	return &CommonHandler{
		Handler: NewHandler(s),
		common:  common,
	}
}

// Upload stores the multipart file and answers its URL.
func (h *CommonHandler) Upload() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (string, error) {
		fh, err := c.FormFile(UploadField)
		if err != nil {
			middleware.GetLogger(c).Warn().Err(err).Msg("upload without file")
			return "", errs.ErrUploadFailed
		}

		f, err := fh.Open()
		if err != nil {
			return "", errs.ErrUploadFailed
		}
		defer f.Close()

		return h.common.Upload(c.Request().Context(), fh.Filename, fh.Header.Get(echo.HeaderContentType), fh.Size, f)
	}, http.StatusOK)
}
