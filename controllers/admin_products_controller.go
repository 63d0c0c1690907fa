package controllers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katanastore/backend/dto"
	"github.com/katanastore/backend/forms"
	"github.com/katanastore/backend/repository"
	"github.com/katanastore/backend/storage"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// parseProductForm reads the multipart admin form: a JSON "data" field plus
// zero or more "images" files.
func parseProductForm(c *gin.Context) (*dto.ProductFormDTO, []*multipart.FileHeader, bool) {
	jsonData := c.PostForm("data")
	if jsonData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
		return nil, nil, false
	}

	var d dto.ProductFormDTO
	if err := json.Unmarshal([]byte(jsonData), &d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
		return nil, nil, false
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}
	return &d, files, true
}

func applyForm(state forms.FormState, d *dto.ProductFormDTO) forms.FormState {
	state.Name = d.Name
	state.SlugManual = d.Slug
	state.PriceUSD = d.PriceUSD
	state.DiscountPercent = d.DiscountPercent
	state.Description = d.Description
	state.IsActive = d.IsActive
	return state
}

func writeFailureStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// refreshedListing re-fetches the full admin listing after a write. Listing
// is never patched optimistically.
func refreshedListing(c *gin.Context, repo repository.CatalogRepository) []gin.H {
	products, err := repo.ListAll(c.Request.Context())
	if err != nil {
		return nil
	}
	return productViews(products)
}

// AdminListProducts returns every product, active or not, newest first.
func AdminListProducts(repo repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListAll(c.Request.Context())
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

// AddProduct creates a product: validate, upload the staged gallery, persist.
// A new product needs at least one staged image; validation runs before any
// upload so a bad form never touches storage.
func AddProduct(repo repository.CatalogRepository, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		d, files, ok := parseProductForm(c)
		if !ok {
			return
		}

		state := applyForm(forms.NewFormState(), d)
		state, err := state.Submit(len(files))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": state.Message})
			return
		}

		imageURLs, err := storage.AssembleGallery(ctx, up, state.Slug(), files, nil)
		if err != nil {
			state = state.Fail(err.Error())
			c.JSON(http.StatusBadGateway, gin.H{"error": state.Message})
			return
		}

		product := state.Payload(imageURLs)
		if err := repo.Create(ctx, &product); err != nil {
			state = state.Fail(err.Error())
			c.JSON(writeFailureStatus(err), gin.H{"error": state.Message})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"product": product,
			"items":   refreshedListing(c, repo),
		})
	}
}

// UpdateProduct replaces a product's fields. New staged files wholesale-replace
// the stored gallery; with no staged files the prior gallery is kept as-is,
// nothing is re-uploaded.
func UpdateProduct(repo repository.CatalogRepository, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			c.JSON(writeFailureStatus(err), gin.H{"error": err.Error()})
			return
		}

		d, files, ok := parseProductForm(c)
		if !ok {
			return
		}

		state := applyForm(forms.NewFormState().BeginEdit(*current), d)
		state, err = state.Submit(len(files))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": state.Message})
			return
		}

		imageURLs, err := storage.AssembleGallery(ctx, up, state.Slug(), files, current.Gallery())
		if err != nil {
			state = state.Fail(err.Error())
			c.JSON(http.StatusBadGateway, gin.H{"error": state.Message})
			return
		}

		product := state.Payload(imageURLs)
		if err := repo.Update(ctx, id, &product); err != nil {
			state = state.Fail(err.Error())
			c.JSON(writeFailureStatus(err), gin.H{"error": state.Message})
			return
		}

		product.Id = id
		product.CreatedAt = current.CreatedAt
		c.JSON(http.StatusOK, gin.H{
			"product": product,
			"items":   refreshedListing(c, repo),
		})
	}
}

// DeleteProduct removes a product permanently. Stored image blobs are left
// behind.
func DeleteProduct(repo repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		if err := repo.Delete(c.Request.Context(), id); err != nil {
			c.JSON(writeFailureStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":    true,
			"items": refreshedListing(c, repo),
		})
	}
}

// SetProductActive toggles storefront visibility without touching any other
// field.
func SetProductActive(repo repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var d dto.SetActiveDTO
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := repo.SetActive(c.Request.Context(), id, *d.IsActive); err != nil {
			c.JSON(writeFailureStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":    true,
			"items": refreshedListing(c, repo),
		})
	}
}
