// Package forms models the admin product form as an explicit immutable value
// with reducer-style transitions, instead of ambient per-field state.
package forms

import (
	"errors"
	"strings"

	"github.com/katanastore/backend/models"
	"github.com/katanastore/backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Phase int

const (
	Idle Phase = iota
	Editing
	Submitting
)

var (
	ErrNameRequired   = errors.New("product name required")
	ErrSlugInvalid    = errors.New("slug invalid")
	ErrImagesRequired = errors.New("choose at least 1 image")
)

// FormState is one snapshot of the admin form. Transitions return a new
// value; the previous state stays intact so a failed submit can fall back.
type FormState struct {
	Phase     Phase
	EditingID bson.ObjectID // zero while creating

	Name            string
	SlugManual      string // optional override; used verbatim (trimmed)
	PriceUSD        float64
	DiscountPercent float64
	Description     string
	IsActive        bool

	ExistingImageURLs []string
	Message           string
}

// NewFormState returns the Idle form with the create-path defaults.
func NewFormState() FormState {
	return FormState{Phase: Idle, IsActive: true}
}

// Slug resolves the effective slug: the trimmed manual override when present,
// otherwise the normalized name.
func (s FormState) Slug() string {
	return utils.EffectiveSlug(s.SlugManual, s.Name)
}

func (s FormState) IsEditing() bool {
	return !s.EditingID.IsZero()
}

// BeginEdit populates the form from an existing product and clears any staged
// files (staging lives outside this value, in the request).
func (s FormState) BeginEdit(p models.Product) FormState {
	return FormState{
		Phase:             Editing,
		EditingID:         p.Id,
		Name:              p.Name,
		SlugManual:        p.Slug,
		PriceUSD:          p.PriceUSD,
		DiscountPercent:   p.DiscountPercent,
		Description:       p.Description,
		IsActive:          p.IsActive,
		ExistingImageURLs: p.Gallery(),
	}
}

// Cancel discards all staged edits and returns to Idle.
func (s FormState) Cancel() FormState {
	return NewFormState()
}

// Validate enforces the submit preconditions: non-empty name, non-empty
// effective slug, and — only when creating — at least one staged file.
func (s FormState) Validate(stagedCount int) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if s.Slug() == "" {
		return ErrSlugInvalid
	}
	if !s.IsEditing() && stagedCount == 0 && len(s.ExistingImageURLs) == 0 {
		return ErrImagesRequired
	}
	return nil
}

// Submit moves to Submitting when validation passes. On a validation error
// the state is returned unchanged with the message set, so the form stays
// populated for resubmission.
func (s FormState) Submit(stagedCount int) (FormState, error) {
	if err := s.Validate(stagedCount); err != nil {
		failed := s
		failed.Message = err.Error()
		return failed, err
	}
	next := s
	next.Phase = Submitting
	next.Message = ""
	return next, nil
}

// Complete resets to Idle after a successful save; the caller re-fetches the
// full product list rather than patching it optimistically.
func (s FormState) Complete() FormState {
	return NewFormState()
}

// Fail returns to the pre-submit phase with the failure message, keeping all
// fields so the save can be retried.
func (s FormState) Fail(msg string) FormState {
	failed := s
	if failed.IsEditing() {
		failed.Phase = Editing
	} else {
		failed.Phase = Idle
	}
	failed.Message = msg
	return failed
}

// Payload builds the product persisted for this form, given the assembled
// gallery. The primary image is the gallery head.
func (s FormState) Payload(imageURLs []string) models.Product {
	p := models.Product{
		Id:              s.EditingID,
		Name:            strings.TrimSpace(s.Name),
		Slug:            s.Slug(),
		PriceUSD:        s.PriceUSD,
		DiscountPercent: s.DiscountPercent,
		Description:     s.Description,
		ImageURLs:       imageURLs,
		IsActive:        s.IsActive,
	}
	if len(imageURLs) > 0 {
		p.ImageURL = imageURLs[0]
	}
	return p
}
