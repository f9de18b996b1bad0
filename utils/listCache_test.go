package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCacheKeyIsDeterministic(t *testing.T) {
	filters := map[string]string{"status": "sent", "search": "acme"}

	first := ListCacheKey("quotations", filters, 1, 10)
	second := ListCacheKey("quotations", map[string]string{"search": "acme", "status": "sent"}, 1, 10)

	assert.Equal(t, first, second)
}

func TestListCacheKeyVariesByQuery(t *testing.T) {
	filters := map[string]string{"status": "sent"}
	base := ListCacheKey("quotations", filters, 1, 10)

	assert.NotEqual(t, base, ListCacheKey("quotations", filters, 2, 10))
	assert.NotEqual(t, base, ListCacheKey("quotations", filters, 1, 20))
	assert.NotEqual(t, base, ListCacheKey("quotations", map[string]string{"status": "draft"}, 1, 10))
	assert.NotEqual(t, base, ListCacheKey("clients", filters, 1, 10))
}

func TestListCacheKeyLivesUnderInvalidationPrefix(t *testing.T) {
	// InvalidateCache sweeps "<resource>:*"; cached pages must sit inside
	// that pattern or writes would never clear them.
	assert.True(t, strings.HasPrefix(ListCacheKey("quotations", nil, 1, 10), "quotations:"))
	assert.True(t, strings.HasPrefix(ListCacheKey("clients", nil, 1, 10), "clients:"))
}
