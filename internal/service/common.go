package service

import (
	"context"
	"io"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/rs/zerolog"
)

type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

type CommonService struct {
	uploader Uploader
	logger   *zerolog.Logger
}

func NewCommonService(uploader Uploader, logger *zerolog.Logger) *CommonService {
	return &CommonService{uploader: uploader, logger: logger}
}

// Upload stores a file and returns its public URL. Storage failures are
// logged and reported to the client as UPLOAD_FAILED.
func (s *CommonService) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if size <= 0 || filename == "" {
		return "", errs.ErrUploadFailed
	}

	url, err := s.uploader.Upload(ctx, filename, contentType, body)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Int64("size", size).Msg("failed to upload file")
		return "", errs.ErrUploadFailed
	}

	s.logger.Info().Str("url", url).Int64("size", size).Msg("file uploaded")
	return url, nil
}
