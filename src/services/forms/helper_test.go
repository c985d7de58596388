package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercases", "Contact-Us", "contact-us"},
		{"SpacesBecomeHyphens", "customer feedback form", "customer-feedback-form"},
		{"IllegalRunsCollapse", "hello!!!world", "hello-world"},
		{"TrimsEdgeHyphens", "--contact--", "contact"},
		{"DuplicateHyphensCollapse", "a--b---c", "a-b-c"},
		{"ThaiStrippedEntirely", "ฟอร์ม", ""},
		{"UnicodeMixed", "form-ทดสอบ-2026", "form-2026"},
		{"Empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeSlug(tc.in))
		})
	}

	t.Run("Idempotent", func(t *testing.T) {
		for _, in := range []string{"Contact Us!", "  weird__slug  ", "already-normal"} {
			once := NormalizeSlug(in)
			assert.Equal(t, once, NormalizeSlug(once))
		}
	})
}

func TestIsReservedSlug(t *testing.T) {
	for _, slug := range []string{"admin", "api", "apply", "login", "logout", "auth", "swagger", "static"} {
		assert.True(t, IsReservedSlug(slug), slug)
	}

	assert.False(t, IsReservedSlug("contact"))
	assert.False(t, IsReservedSlug("admin-survey"))

	t.Run("NormalizationStripsPathPrefixes", func(t *testing.T) {
		// Underscore and dot are not slug characters, so a normalized slug
		// can never smuggle a framework-internal path.
		assert.Equal(t, "internal", NormalizeSlug("_internal"))
		assert.Equal(t, "well-known", NormalizeSlug(".well-known"))
	})
}
