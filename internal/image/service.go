package image

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smerfmc/gallery/internal/storage"
)

// View pairs a presigned image URL with its caption for gallery rendering.
type View struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// repository is the persistence surface the service needs. *Repository
// satisfies it; tests substitute a mock.
type repository interface {
	Insert(ctx context.Context, img Image) error
	ListByCategory(ctx context.Context, category string) ([]Image, error)
}

// categoryNames supplies the current category names for upload validation.
// *category.Service satisfies it.
type categoryNames interface {
	ListNames(ctx context.Context) ([]string, error)
}

// Service contains business logic for storing and listing images.
type Service struct {
	repo       repository
	store      storage.Storage
	categories categoryNames
	urlExpiry  time.Duration
}

// NewService creates a new image Service. urlExpiry controls the lifetime of
// presigned gallery links; zero or negative falls back to the storage default.
func NewService(repo repository, store storage.Storage, categories categoryNames, urlExpiry time.Duration) *Service {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultURLExpiry
	}
	return &Service{repo: repo, store: store, categories: categories, urlExpiry: urlExpiry}
}

// GenerateStorageKey builds the object key for an upload:
// "<category>/<random-id><ext>". The random id is a fresh 128-bit UUID in
// bare hex, so keys are never reused; the extension is taken verbatim from
// the original filename, empty when it has none.
func GenerateStorageKey(category, filename string) string {
	id := uuid.New()
	return category + "/" + hex.EncodeToString(id[:]) + filepath.Ext(filename)
}

// Upload validates the attachment, writes its bytes to the object store, and
// records the metadata row. The two writes are separate operations: if the
// insert fails after the object write succeeded, the blob is orphaned.
func (s *Service) Upload(ctx context.Context, category, filename, contentType string, r io.Reader, size int64, caption *string) (*Image, error) {
	if !strings.HasPrefix(contentType, "image") {
		return nil, ErrNotImage
	}

	names, err := s.categories.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	found := false
	for _, n := range names {
		if n == category { // exact match, case-sensitive
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCategoryNotFound
	}

	key := GenerateStorageKey(category, filename)
	if err := s.store.Upload(ctx, key, r, size, contentType); err != nil {
		return nil, fmt.Errorf("upload object: %w", err)
	}

	img := Image{ObjectKey: key, Category: category, Caption: caption}
	if err := s.repo.Insert(ctx, img); err != nil {
		return nil, fmt.Errorf("record image metadata: %w", err)
	}
	return &img, nil
}

// ListForCategory returns the gallery view models for a category: one
// presigned URL + caption pair per image, ordered by object key. A failed
// presign is logged and leaves that entry's URL empty rather than failing
// the whole listing.
func (s *Service) ListForCategory(ctx context.Context, category string) ([]View, error) {
	imgs, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(imgs))
	for _, img := range imgs {
		url, err := s.store.PresignedURL(ctx, img.ObjectKey, s.urlExpiry)
		if err != nil {
			log.Printf("image: presign %q failed: %v", img.ObjectKey, err)
			url = ""
		}
		v := View{URL: url}
		if img.Caption != nil {
			v.Caption = *img.Caption
		}
		views = append(views, v)
	}
	return views, nil
}
