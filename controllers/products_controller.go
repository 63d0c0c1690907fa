package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/katanastore/backend/models"
	"github.com/katanastore/backend/repository"
	"github.com/katanastore/backend/utils"
)

const relatedLimit = 6

// productView decorates a product with its computed display prices.
func productView(p models.Product) gin.H {
	final := utils.FinalPrice(p.PriceUSD, p.DiscountPercent)
	return gin.H{
		"product":             p,
		"final_price":         final,
		"final_price_display": utils.FormatUSD(final),
		"price_display":       utils.FormatUSD(p.PriceUSD),
	}
}

func productViews(products []models.Product) []gin.H {
	views := make([]gin.H, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	return views
}

// GetProducts serves the public storefront listing: active products only,
// newest first.
func GetProducts(repo repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListActive(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": productViews(products),
			"total": len(products),
		})
	}
}

// GetProductBySlug serves the public detail page: the product (inactive ones
// stay reachable by direct link), its gallery, a WhatsApp order link, and up
// to six related products.
func GetProductBySlug(repo repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		slug := c.Param("slug")

		p, err := repo.GetBySlug(ctx, slug)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		related, err := repo.ListRelated(ctx, slug, relatedLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		view := productView(*p)
		view["images"] = p.Gallery()
		view["whatsapp_link"] = whatsAppLink(p.Name)
		view["related"] = productViews(related)
		c.JSON(http.StatusOK, view)
	}
}

// GetRelatedProducts exposes the related-products query on its own.
func GetRelatedProducts(repo repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		limit := utils.ParseIntDefault(c.Query("limit"), relatedLimit)
		if limit < 1 || limit > 24 {
			limit = relatedLimit
		}

		related, err := repo.ListRelated(c.Request.Context(), slug, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": productViews(related)})
	}
}

// whatsAppLink builds the pre-filled order message link. Empty when no
// contact number is configured.
func whatsAppLink(productName string) string {
	number := utils.WhatsAppNumber()
	if number == "" {
		return ""
	}
	msg := "Hi brother, I'm interested in the product *" + productName + "*."
	encoded := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + number + "?text=" + encoded
}
