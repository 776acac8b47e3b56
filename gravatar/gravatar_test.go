package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	// case and surrounding whitespace never change the hash
	url := URL("  Ada@Example.COM ")
	assert.Equal(t, URL("ada@example.com"), url)

	assert.Contains(t, url, "https://www.gravatar.com/avatar/")
	assert.Contains(t, url, "s=200")
	assert.Contains(t, url, "r=pg")
	assert.Contains(t, url, "d=mp")
}
