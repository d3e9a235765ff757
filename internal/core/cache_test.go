package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedFileCacheFirstWriterWins(t *testing.T) {
	cache := NewFixedFileCache()
	cache.Record("app/requirements.txt", "app/requirements.txt")
	cache.Record("app/requirements.txt", "other/requirements.txt")

	fixer, ok := cache.Lookup("app/requirements.txt")
	assert.True(t, ok)
	assert.Equal(t, "app/requirements.txt", fixer)
}

func TestFixedFileCacheNormalizesSpellings(t *testing.T) {
	cache := NewFixedFileCache()
	cache.Record("./app/requirements.txt", "app/requirements.txt")

	_, ok := cache.Lookup("app/requirements.txt")
	assert.True(t, ok)
	_, ok = cache.Lookup("app/../app/requirements.txt")
	assert.True(t, ok)
}

func TestFixedFileCacheMerge(t *testing.T) {
	cache := NewFixedFileCache()
	cache.Merge([]string{"a/requirements.txt", "a/base.txt"}, "a/requirements.txt")

	fixer, ok := cache.Lookup("a/base.txt")
	assert.True(t, ok)
	assert.Equal(t, "a/requirements.txt", fixer)

	_, ok = cache.Lookup("b/requirements.txt")
	assert.False(t, ok)
}

func TestNormalizeUnitPath(t *testing.T) {
	assert.Equal(t, "app/requirements.txt", NormalizeUnitPath("./app/requirements.txt"))
	assert.Equal(t, "app/requirements.txt", NormalizeUnitPath("app//requirements.txt"))
	assert.Equal(t, "requirements.txt", NormalizeUnitPath("a/../requirements.txt"))
}
