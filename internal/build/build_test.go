package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version())
	assert.NotContains(t, Version(), "\n")

	prev := version
	version = "9.9.9"
	t.Cleanup(func() { version = prev })
	assert.Equal(t, "9.9.9", Version())
}
