package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/katanastore/backend/controllers"
	"github.com/katanastore/backend/models"
	"github.com/katanastore/backend/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublicRouter(repo repository.CatalogRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", controllers.GetProducts(repo))
	r.GET("/products/:slug", controllers.GetProductBySlug(repo))
	r.GET("/products/:slug/related", controllers.GetRelatedProducts(repo))
	return r
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestGetProductsListsOnlyActive(t *testing.T) {
	repo := repository.NewMemoryCatalogRepository()
	require.NoError(t, repo.Create(context.Background(), &models.Product{
		Name: "Visible", Slug: "visible", PriceUSD: 100, DiscountPercent: 20,
		ImageURLs: []string{"https://cdn.test/v.jpg"}, IsActive: true,
	}))
	require.NoError(t, repo.Create(context.Background(), &models.Product{
		Name: "Hidden", Slug: "hidden",
		ImageURLs: []string{"https://cdn.test/h.jpg"}, IsActive: false,
	}))

	r := newPublicRouter(repo)
	rec := do(r, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode(t, rec.Body.Bytes())
	assert.Equal(t, float64(1), out["total"])

	items := out["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, 80.0, item["final_price"])
	assert.Equal(t, "$80.00", item["final_price_display"])
	assert.Equal(t, "$100.00", item["price_display"])
}

func TestGetProductBySlug(t *testing.T) {
	t.Setenv("WHATSAPP_NUMBER", "15550001111")

	repo := repository.NewMemoryCatalogRepository()
	require.NoError(t, repo.Create(context.Background(), &models.Product{
		Name: "Folded Steel Katana", Slug: "folded-steel-katana", PriceUSD: 450,
		ImageURLs: []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg"},
		IsActive:  true,
	}))
	for i := 0; i < 8; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.Product{
			Name: fmt.Sprintf("Other %d", i), Slug: fmt.Sprintf("other-%d", i),
			ImageURLs: []string{"https://cdn.test/o.jpg"}, IsActive: true,
		}))
	}

	r := newPublicRouter(repo)
	rec := do(r, http.MethodGet, "/products/folded-steel-katana", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode(t, rec.Body.Bytes())
	images := out["images"].([]any)
	assert.Len(t, images, 2)

	link := out["whatsapp_link"].(string)
	assert.Contains(t, link, "https://wa.me/15550001111?text=")
	assert.Contains(t, link, "Folded%20Steel%20Katana")

	related := out["related"].([]any)
	assert.Len(t, related, 6, "related products are capped at six")
}

func TestGetProductBySlugServesInactiveProducts(t *testing.T) {
	repo := repository.NewMemoryCatalogRepository()
	require.NoError(t, repo.Create(context.Background(), &models.Product{
		Name: "Hidden", Slug: "hidden",
		ImageURLs: []string{"https://cdn.test/h.jpg"}, IsActive: false,
	}))

	r := newPublicRouter(repo)
	rec := do(r, http.MethodGet, "/products/hidden", nil, "")
	// Direct links keep working even when the product is hidden from lists.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProductBySlugNotFound(t *testing.T) {
	repo := repository.NewMemoryCatalogRepository()
	r := newPublicRouter(repo)
	rec := do(r, http.MethodGet, "/products/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRelatedProducts(t *testing.T) {
	repo := repository.NewMemoryCatalogRepository()
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.Product{
			Name: fmt.Sprintf("Item %d", i), Slug: fmt.Sprintf("item-%d", i),
			ImageURLs: []string{"https://cdn.test/i.jpg"}, IsActive: true,
		}))
	}

	r := newPublicRouter(repo)
	rec := do(r, http.MethodGet, "/products/item-0/related?limit=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode(t, rec.Body.Bytes())
	items := out["items"].([]any)
	require.Len(t, items, 2)
	for _, it := range items {
		p := it.(map[string]any)["product"].(map[string]any)
		assert.NotEqual(t, "item-0", p["slug"])
	}
}
