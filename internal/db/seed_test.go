package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionNames(t *testing.T) {
	names := PermissionNames()

	// 4 verbs over 5 nouns, plus the view-only activity log.
	assert.Len(t, names, 21)

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		assert.False(t, seen[name], "duplicate permission %q", name)
		seen[name] = true
	}

	assert.True(t, seen["view items"])
	assert.True(t, seen["delete users"])
	assert.True(t, seen["view activities"])
	assert.False(t, seen["edit activities"], "activity log is append-only, no edit grant exists")
}
