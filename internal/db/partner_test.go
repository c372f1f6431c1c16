package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAPIKeyIsDeterministic(t *testing.T) {
	a := HashAPIKey("pk_live_abc123")
	b := HashAPIKey("pk_live_abc123")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHashAPIKeyDiffersByInput(t *testing.T) {
	a := HashAPIKey("pk_live_abc123")
	b := HashAPIKey("pk_live_xyz789")
	assert.NotEqual(t, a, b)
}
