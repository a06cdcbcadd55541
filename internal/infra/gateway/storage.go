package gateway

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/agencyhub/agencyhub"
)

// ObjectStorageGateway stores public objects in a Cloud Storage bucket.
type ObjectStorageGateway struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

func NewObjectStorageGateway(ctx context.Context, bucket, publicBaseURL string, opts ...option.ClientOption) (*ObjectStorageGateway, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create storage client")
	}
	return &ObjectStorageGateway{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (g *ObjectStorageGateway) Put(ctx context.Context, object, contentType string, body io.Reader) (string, error) {
	ctx, span := tracer.Start(ctx, "Storage.Gateway.Put")
	defer span.End()

	// cancelling the writer's context aborts the upload without committing
	// a partial object
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(object).NewWriter(writeCtx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, body); err != nil {
		cancel()
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to write object")
	}
	if err := w.Close(); err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to finalize object")
	}

	return strings.TrimRight(g.publicBaseURL, "/") + "/" + object, nil
}

// DeleteURL removes the object behind a URL returned by Put. Missing objects
// are not an error.
func (g *ObjectStorageGateway) DeleteURL(ctx context.Context, publicURL string) error {
	ctx, span := tracer.Start(ctx, "Storage.Gateway.DeleteURL")
	defer span.End()

	object, err := agencyhub.ParseObjectURL(g.publicBaseURL, publicURL)
	if err != nil {
		return err
	}

	err = g.client.Bucket(g.bucket).Object(object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		span.RecordError(err)
		return err
	}
	return nil
}

func (g *ObjectStorageGateway) Close() error {
	return g.client.Close()
}
