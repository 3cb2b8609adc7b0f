package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopic_Segments(t *testing.T) {
	assert.Equal(t, []string{"lifecycle", "pause"}, Topic("lifecycle.pause").Segments())
	assert.Nil(t, Topic("").Segments())
}

func TestTopic_ParentBase(t *testing.T) {
	tp := Topic("menu.exit_to_main_menu")
	assert.Equal(t, Topic("menu"), tp.Parent())
	assert.Equal(t, "exit_to_main_menu", tp.Base())

	assert.Equal(t, Topic(""), Topic("tick").Parent())
	assert.Equal(t, "tick", Topic("tick").Base())
}

func TestTopic_IsValid(t *testing.T) {
	assert.True(t, Topic("lifecycle.exit").IsValid())
	assert.True(t, Topic("tick").IsValid())
	assert.False(t, Topic("").IsValid())
	assert.False(t, Topic("a..b").IsValid())
	assert.False(t, Topic(".a").IsValid())
}
