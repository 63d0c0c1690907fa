package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katanastore/backend/models"
	"github.com/katanastore/backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoCatalogRepository is the MongoDB implementation of CatalogRepository.
type MongoCatalogRepository struct {
	col *mongo.Collection
}

func NewMongoCatalogRepository(col *mongo.Collection) *MongoCatalogRepository {
	return &MongoCatalogRepository{col: col}
}

// EnsureIndexes creates the unique slug index the write contract relies on.
func (r *MongoCatalogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create slug index: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]models.Product, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, cursor.Err()
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

func (r *MongoCatalogRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"is_active": true}, options.Find().SetSort(newestFirst))
}

func (r *MongoCatalogRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (r *MongoCatalogRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoCatalogRepository) GetByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoCatalogRepository) ListRelated(ctx context.Context, excludeSlug string, limit int) ([]models.Product, error) {
	filter := bson.M{
		"is_active": true,
		"slug":      bson.M{"$ne": excludeSlug},
	}
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *MongoCatalogRepository) Create(ctx context.Context, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	p.Id = bson.NewObjectID()
	p.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *MongoCatalogRepository) Update(ctx context.Context, id bson.ObjectID, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	set := bson.M{
		"name":             p.Name,
		"slug":             p.Slug,
		"price_usd":        p.PriceUSD,
		"discount_percent": p.DiscountPercent,
		"description":      p.Description,
		"image_url":        p.ImageURL,
		"image_urls":       p.ImageURLs,
		"is_active":        p.IsActive,
	}

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCatalogRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCatalogRepository) SetActive(ctx context.Context, id bson.ObjectID, active bool) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
