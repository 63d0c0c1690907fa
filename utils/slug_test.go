package utils_test

import (
	"testing"

	"github.com/katanastore/backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", utils.Slugify("Hello World!"))
	assert.Equal(t, "foo", utils.Slugify("  -- Foo --  "))
	assert.Equal(t, "", utils.Slugify(""))
	assert.Equal(t, "katana-tanto-9-5", utils.Slugify("Katana / Tanto (9.5\")"))
	assert.Equal(t, "cafe-creme", utils.Slugify("Café Crème"))
	assert.Equal(t, "", utils.Slugify("!!!"))
}

func TestSlugifyOnlyProducesSafeRunes(t *testing.T) {
	for _, in := range []string{"Hello World", "A--B", "trailing-", "-leading", "éàü", "a b  c"} {
		s := utils.Slugify(in)
		for _, r := range s {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "unexpected rune %q in slug %q", r, s)
		}
		if s != "" {
			assert.NotEqual(t, byte('-'), s[0])
			assert.NotEqual(t, byte('-'), s[len(s)-1])
		}
	}
}

func TestEffectiveSlug(t *testing.T) {
	// Manual override wins and is trimmed, not re-normalized.
	assert.Equal(t, "My-Custom", utils.EffectiveSlug("  My-Custom  ", "Some Name"))
	// Empty override falls back to the normalized name.
	assert.Equal(t, "some-name", utils.EffectiveSlug("", "Some Name"))
	assert.Equal(t, "some-name", utils.EffectiveSlug("   ", "Some Name"))
	assert.Equal(t, "", utils.EffectiveSlug("", ""))
}
