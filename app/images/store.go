package images

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mytheresa/go-item-listing/app/logger"
	"github.com/mytheresa/go-item-listing/app/storage"
)

const (
	// DefaultImage is served in place of any missing image.
	DefaultImage = "default.jpg"
	ContentType  = "image/jpeg"
	extension    = ".jpg"
)

// ErrInvalidImageName is returned for names that are not a bare .jpg file name.
var ErrInvalidImageName = errors.New("image name must be a .jpg file name")

//go:embed default.jpg
var defaultImage []byte

// Store keeps image content addressed by its SHA-256 digest.
type Store struct {
	backend storage.Backend
}

func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// EnsureDefault writes the bundled default image unless one is already
// stored, so operators can replace it.
func (s *Store) EnsureDefault(ctx context.Context) error {
	ok, err := s.backend.Has(ctx, DefaultImage)
	if err != nil {
		return fmt.Errorf("check default image: %w", err)
	}
	if ok {
		return nil
	}
	if err := s.backend.Write(ctx, DefaultImage, defaultImage); err != nil {
		return fmt.Errorf("write default image: %w", err)
	}
	return nil
}

// Name returns the asset name for data: its hex SHA-256 digest plus ".jpg",
// whatever the actual format.
func Name(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + extension
}

// Save stores data under its content name and returns the name. Saving the
// same bytes twice rewrites the same object.
func (s *Store) Save(ctx context.Context, data []byte) (string, error) {
	name := Name(data)
	if err := s.backend.Write(ctx, name, data); err != nil {
		return "", fmt.Errorf("save image %s: %w", name, err)
	}
	return name, nil
}

// ValidateName rejects names without the .jpg suffix and anything that is
// not a single path element.
func ValidateName(name string) error {
	if !strings.HasSuffix(name, extension) {
		return ErrInvalidImageName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidImageName
	}
	return nil
}

// Fetch opens the named image, falling back to DefaultImage when it does not
// exist. It returns the name actually served.
func (s *Store) Fetch(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if err := ValidateName(name); err != nil {
		return nil, "", err
	}

	rc, err := s.backend.Read(ctx, name)
	if errors.Is(err, storage.ErrNotExist) {
		logger.FromContext(ctx).Debug("image not found, serving default", "image", name)
		name = DefaultImage
		rc, err = s.backend.Read(ctx, name)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read image %s: %w", name, err)
	}
	return rc, name, nil
}
