package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestAdapterIdentity(t *testing.T) {
	adapter := New("test-token")
	assert.Equal(t, "discord", adapter.Name())
	assert.True(t, adapter.IsEnabled())
	assert.False(t, New("").IsEnabled())
}

func TestMentioned(t *testing.T) {
	mentions := []*discordgo.User{{ID: "a"}, {ID: "b"}}
	assert.True(t, mentioned("b", mentions))
	assert.False(t, mentioned("c", mentions))
	assert.False(t, mentioned("c", nil))
}
