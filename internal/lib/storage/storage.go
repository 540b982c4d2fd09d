// Package storage uploads images to Azure Blob Storage and removes them
// again when the dish or setmeal that referenced them goes away.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/deppfellow/sky-takeout/internal/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrForeignURL is returned by Delete for a URL outside the configured container.
var ErrForeignURL = errors.New("url does not belong to the storage container")

type Blob struct {
	client    *azblob.Client
	container string
	baseURL   string
	logger    *zerolog.Logger
	now       func() time.Time
}

// New builds the blob client. A connection string wins over the account
// URL; with only the URL, DefaultAzureCredential is used.
func New(cfg config.StorageConfig, logger *zerolog.Logger) (*Blob, error) {
	var (
		client *azblob.Client
		err    error
	)

	if cfg.ConnectionString != "" {
		client, err = azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	} else {
		var cred *azidentity.DefaultAzureCredential
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("creating azure credential: %w", err)
		}
		client, err = azblob.NewClient(cfg.AccountURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}

	return &Blob{
		client:    client,
		container: cfg.Container,
		baseURL:   runtime.JoinPaths(client.URL(), cfg.Container),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// EnsureContainer creates the container when it does not exist yet.
func (b *Blob) EnsureContainer(ctx context.Context) error {
	_, err := b.client.CreateContainer(ctx, b.container, nil)
	if err == nil {
		b.logger.Info().Str("container", b.container).Msg("created blob container")
		return nil
	}
	if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil
	}
	return fmt.Errorf("creating container %s: %w", b.container, err)
}

// Upload stores body under yyyy/MM/<uuid><ext> and returns the blob URL.
func (b *Blob) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	name := ObjectName(b.now(), filename)

	opts := &azblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)}
	}

	if _, err := b.client.UploadStream(ctx, b.container, name, body, opts); err != nil {
		return "", fmt.Errorf("uploading blob %s: %w", name, err)
	}

	return b.baseURL + "/" + name, nil
}

// Delete removes the blob behind rawURL. A blob that is already gone is not an error.
func (b *Blob) Delete(ctx context.Context, rawURL string) error {
	name, err := b.blobName(rawURL)
	if err != nil {
		return err
	}

	_, err = b.client.DeleteBlob(ctx, b.container, name, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("deleting blob %s: %w", name, err)
	}
	return nil
}

// Owns reports whether rawURL points into this container.
func (b *Blob) Owns(rawURL string) bool {
	_, err := b.blobName(rawURL)
	return err == nil
}

func (b *Blob) blobName(rawURL string) (string, error) {
	return blobNameFromURL(b.baseURL, rawURL)
}

func blobNameFromURL(baseURL, rawURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != base.Host {
		return "", ErrForeignURL
	}

	prefix := strings.TrimSuffix(base.Path, "/") + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", ErrForeignURL
	}
	name := strings.TrimPrefix(u.Path, prefix)
	if name == "" || strings.Contains(name, "..") {
		return "", ErrForeignURL
	}
	return name, nil
}

// ObjectName returns yyyy/MM/<uuid><ext> for an upload received at now.
func ObjectName(now time.Time, filename string) string {
	return fmt.Sprintf("%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), path.Ext(filename))
}
