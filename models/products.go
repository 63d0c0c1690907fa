package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product is the single catalog entity. Field keys mirror the original store
// columns so existing documents keep working.
type Product struct {
	Id              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string        `bson:"name" json:"name"`
	Slug            string        `bson:"slug" json:"slug"`
	PriceUSD        float64       `bson:"price_usd" json:"price_usd"`
	DiscountPercent float64       `bson:"discount_percent" json:"discount_percent"`
	Description     string        `bson:"description" json:"description"`
	ImageURL        string        `bson:"image_url" json:"image_url"`
	ImageURLs       []string      `bson:"image_urls" json:"image_urls"`
	IsActive        bool          `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
}

// Gallery returns the image list for display, falling back to the primary
// image when image_urls was never populated.
func (p *Product) Gallery() []string {
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs
	}
	if p.ImageURL != "" {
		return []string{p.ImageURL}
	}
	return nil
}
