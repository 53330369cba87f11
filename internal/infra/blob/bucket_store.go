// Package blob stores uploaded images in a gocloud bucket (GCS, local files or memory).
package blob

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"pharmanet/config"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

type bucketStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// BucketStoreParams holds dependencies for the blob store, injected by Fx.
type BucketStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBucketStore opens the configured bucket URL and closes it on shutdown.
func NewBucketStore(params BucketStoreParams) (service.BlobStore, error) {
	cfg := params.Config.Blob

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Logger.Info("Blob bucket opened", slog.String("bucket_url", cfg.BucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing blob bucket")

			return errors.WithStack(bucket.Close())
		},
	})

	return NewBucketStoreWithBucket(bucket, cfg.PublicBaseURL, params.Logger), nil
}

// NewBucketStoreWithBucket wraps an already opened bucket.
func NewBucketStoreWithBucket(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) service.BlobStore {
	return &bucketStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Upload writes data under key and returns its public URL. The content type is
// sniffed from the payload.
func (s *bucketStore) Upload(ctx context.Context, key string, data []byte) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", domainerrors.ErrValidationFailed.WrapMessage("blob key is empty")
	}

	contentType := mimetype.Detect(data).String()
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrUploadFailed.WithDetails(err.Error()), "failed to write blob")
	}

	s.logger.Debug("Blob stored",
		slog.String("key", key),
		slog.String("content_type", contentType),
		slog.Int("size", len(data)),
	)

	return s.publicURL(key), nil
}

func (s *bucketStore) publicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return s.publicBaseURL + "/" + strings.Join(segments, "/")
}
