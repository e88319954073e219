package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdapterIdentity(t *testing.T) {
	adapter := New("test-token")
	assert.Equal(t, "telegram", adapter.Name())
	assert.True(t, adapter.IsEnabled())
}

func TestAdapterDisabledWithoutToken(t *testing.T) {
	assert.False(t, New("").IsEnabled())
}
