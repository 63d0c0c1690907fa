package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/katanastore/backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrNotFound is returned for lookups and writes against a missing product.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateSlug is returned when a create/update collides with an
	// existing slug. Slug uniqueness is enforced by the store.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrInvalid is returned when a write violates the catalog invariants
	// (empty name, empty slug, empty gallery). Nothing is persisted.
	ErrInvalid = errors.New("invalid product")
)

// CatalogRepository is the read/write contract against the product store.
// Public pages use the read side only; the admin write path is the sole
// caller of the write side.
type CatalogRepository interface {
	// ListActive returns visible products, newest first.
	ListActive(ctx context.Context) ([]models.Product, error)
	// ListAll returns every product, newest first. Admin listing.
	ListAll(ctx context.Context) ([]models.Product, error)
	// GetBySlug looks a product up by its public key. It does not filter on
	// is_active: an inactive product stays reachable by direct link.
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	// GetByID loads a product for the admin edit path.
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Product, error)
	// ListRelated returns up to limit visible products other than excludeSlug,
	// newest first.
	ListRelated(ctx context.Context, excludeSlug string, limit int) ([]models.Product, error)

	// Create validates the catalog invariants, assigns id and created_at, and
	// inserts the product.
	Create(ctx context.Context, p *models.Product) error
	// Update replaces the mutable fields of an existing product. The gallery
	// passed in is persisted as-is; callers decide replace-vs-keep beforehand.
	Update(ctx context.Context, id bson.ObjectID, p *models.Product) error
	// Delete removes a product permanently. Stored image blobs are not
	// cascaded; orphans are accepted.
	Delete(ctx context.Context, id bson.ObjectID) error
	// SetActive toggles public visibility without touching other fields.
	SetActive(ctx context.Context, id bson.ObjectID, active bool) error
}

// validate enforces the write-time invariants shared by both implementations.
func validate(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if p.Slug == "" {
		return fmt.Errorf("%w: slug required", ErrInvalid)
	}
	if len(p.ImageURLs) == 0 {
		return fmt.Errorf("%w: at least one image required", ErrInvalid)
	}
	// The primary image is always the head of the gallery.
	p.ImageURL = p.ImageURLs[0]
	return nil
}
