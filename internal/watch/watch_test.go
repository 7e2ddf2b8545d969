package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldProcessEventThrottles(t *testing.T) {
	path := t.TempDir() + "/script.go"

	assert.True(t, shouldProcessEvent(path, time.Hour))
	assert.False(t, shouldProcessEvent(path, time.Hour), "burst events must be collapsed")

	// A different file has its own window.
	assert.True(t, shouldProcessEvent(path+".other", time.Hour))
}

func TestShouldProcessEventWindowExpires(t *testing.T) {
	path := t.TempDir() + "/script.go"

	assert.True(t, shouldProcessEvent(path, time.Nanosecond))
	time.Sleep(10 * time.Millisecond)
	assert.True(t, shouldProcessEvent(path, time.Nanosecond))
}
