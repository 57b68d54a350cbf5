// Package assets is the client for the remote asset host that stores book
// cover images and book files. Uploads take an ephemeral local path and
// return a stable public URL; removals take that URL back.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/JaimeStill/elib/pkg/formatting"
	"github.com/JaimeStill/elib/pkg/storage"
)

// Asset describes a stored remote blob.
type Asset struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Store uploads local files to the asset host and removes them by URL.
type Store interface {
	// Upload stores the file at localPath and returns its public location.
	Upload(ctx context.Context, localPath string) (*Asset, error)
	// Remove deletes the asset at url. An asset that is already gone, or whose
	// url no longer maps into the container, is not an error.
	Remove(ctx context.Context, url string) error
}

type blobStore struct {
	storage storage.System
	prefix  string
	logger  *slog.Logger
}

// New creates a Store that writes blobs under prefix in the given storage system.
func New(store storage.System, prefix string, logger *slog.Logger) Store {
	return &blobStore{
		storage: store,
		prefix:  strings.Trim(prefix, "/"),
		logger:  logger.With("system", "assets"),
	}
}

func (s *blobStore) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if strings.TrimSpace(localPath) == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat asset: %w", err)
	}
	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("detect asset type: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewind asset: %w", err)
	}

	key := s.buildKey(mtype.Extension())
	if err := s.storage.Upload(ctx, key, f, mtype.String()); err != nil {
		return nil, err
	}

	asset := &Asset{
		URL:         s.storage.URL(key),
		Key:         key,
		ContentType: mtype.String(),
		Size:        info.Size(),
	}

	s.logger.Info(
		"asset uploaded",
		"key", key,
		"content_type", asset.ContentType,
		"size", formatting.FormatBytes(asset.Size, 1),
	)
	return asset, nil
}

func (s *blobStore) Remove(ctx context.Context, url string) error {
	key, err := s.storage.Key(url)
	if err != nil {
		s.logger.Warn("asset url outside container, skipping", "url", url, "error", err)
		return nil
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("asset already absent", "key", key)
			return nil
		}
		return err
	}

	s.logger.Info("asset removed", "key", key)
	return nil
}

func (s *blobStore) buildKey(ext string) string {
	name := uuid.NewString() + ext
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}
