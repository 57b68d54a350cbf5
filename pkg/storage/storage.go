// Package storage provides blob storage operations with an Azure Blob Storage implementation.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/JaimeStill/elib/pkg/lifecycle"
)

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage container.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a blob at the given key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Delete removes the blob at the given key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of the blob at key.
	URL(key string) string
	// Key resolves a URL produced by URL back to its blob key.
	// Returns ErrForeignURL for URLs outside the container.
	Key(rawURL string) (string, error)
}

type azure struct {
	client    *azblob.Client
	container string
	baseURL   string
	logger    *slog.Logger
}

// New creates a storage system from the given configuration.
// A connection string takes precedence; otherwise the client is built for
// ServiceURL with the Azure default credential chain. No request is issued
// until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	base := cfg.PublicURL
	if base == "" {
		base = strings.TrimSuffix(client.URL(), "/") + "/" + cfg.ContainerName
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		baseURL:   base,
		logger:    logger.With("system", "storage"),
	}, nil
}

func newClient(cfg *Config) (*azblob.Client, error) {
	opts := &azblob.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries: int32(cfg.MaxRetries),
				TryTimeout: cfg.TryTimeoutDuration(),
			},
		},
	}

	if cfg.ConnectionString != "" {
		return azblob.NewClientFromConnectionString(cfg.ConnectionString, opts)
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("default credential: %w", err)
	}
	return azblob.NewClient(cfg.ServiceURL, cred, opts)
}

// logResponseError records the service status and error code when err came
// back from the blob service rather than from the transport.
func (a *azure) logResponseError(op, key string, err error) {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		a.logger.Warn("blob service rejected request",
			"op", op,
			"key", key,
			"status", respErr.StatusCode,
			"code", respErr.ErrorCode,
		)
	}
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system")

	lc.OnStartup("storage", func(ctx context.Context) error {
		_, err := a.client.CreateContainer(ctx, a.container, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			a.logger.Error("storage container initialization failed", "error", err)
			return fmt.Errorf("create container %s: %w", a.container, err)
		}

		a.logger.Info("storage container ready", "container", a.container)
		return nil
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	_, err := a.client.UploadStream(ctx, a.container, key, reader, opts)
	if err != nil {
		a.logResponseError("upload", key, err)
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := a.client.DeleteBlob(ctx, a.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		a.logResponseError("delete", key, err)
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) URL(key string) string {
	return BlobURL(a.baseURL, key)
}

func (a *azure) Key(rawURL string) (string, error) {
	return BlobKey(a.baseURL, rawURL)
}

// BlobURL joins a container base URL and a blob key, escaping each key segment.
func BlobURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return base + "/" + strings.Join(segments, "/")
}

// BlobKey is the inverse of BlobURL.
func BlobKey(base, rawURL string) (string, error) {
	rest, ok := strings.CutPrefix(rawURL, base+"/")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, rawURL)
	}

	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, rawURL)
	}

	if err := validateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
