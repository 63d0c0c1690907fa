package dto

// ProductFormDTO is the JSON "data" part of the multipart admin form. Slug is
// the optional manual override; discount_percent is persisted as sent and only
// clamped at display time.
type ProductFormDTO struct {
	Name            string  `json:"name" binding:"required"`
	Slug            string  `json:"slug"`
	PriceUSD        float64 `json:"price_usd"`
	DiscountPercent float64 `json:"discount_percent"`
	Description     string  `json:"description"`
	IsActive        bool    `json:"is_active"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetActiveDTO struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
