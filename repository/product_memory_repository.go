package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/katanastore/backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryCatalogRepository is an in-memory CatalogRepository. It backs the
// tests and local runs without a database, and enforces the same invariants
// as the MongoDB implementation, including slug uniqueness.
type MemoryCatalogRepository struct {
	mu       sync.RWMutex
	products map[bson.ObjectID]models.Product
	clock    time.Time // monotonic stand-in so same-instant creates keep order
}

func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		products: make(map[bson.ObjectID]models.Product),
		clock:    time.Now().UTC(),
	}
}

func (r *MemoryCatalogRepository) snapshot(keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *MemoryCatalogRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(func(p models.Product) bool { return p.IsActive }), nil
}

func (r *MemoryCatalogRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(func(models.Product) bool { return true }), nil
}

func (r *MemoryCatalogRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.Slug == slug {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryCatalogRepository) GetByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := p
	return &found, nil
}

func (r *MemoryCatalogRepository) ListRelated(ctx context.Context, excludeSlug string, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.snapshot(func(p models.Product) bool {
		return p.IsActive && p.Slug != excludeSlug
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryCatalogRepository) slugTaken(slug string, except bson.ObjectID) bool {
	for id, p := range r.products {
		if p.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (r *MemoryCatalogRepository) Create(ctx context.Context, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(p.Slug, bson.ObjectID{}) {
		return ErrDuplicateSlug
	}

	p.Id = bson.NewObjectID()
	r.clock = r.clock.Add(time.Millisecond)
	p.CreatedAt = r.clock
	r.products[p.Id] = *p
	return nil
}

func (r *MemoryCatalogRepository) Update(ctx context.Context, id bson.ObjectID, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	if r.slugTaken(p.Slug, id) {
		return ErrDuplicateSlug
	}

	current.Name = p.Name
	current.Slug = p.Slug
	current.PriceUSD = p.PriceUSD
	current.DiscountPercent = p.DiscountPercent
	current.Description = p.Description
	current.ImageURL = p.ImageURL
	current.ImageURLs = p.ImageURLs
	current.IsActive = p.IsActive
	r.products[id] = current
	return nil
}

func (r *MemoryCatalogRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryCatalogRepository) SetActive(ctx context.Context, id bson.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	p.IsActive = active
	r.products[id] = p
	return nil
}
