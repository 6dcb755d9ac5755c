package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceKey(t *testing.T) {
	assert.Equal(t, "moviedisc:trending:5", namespaceKey("trending:5"))
	assert.Equal(t, "moviedisc:http:cache:abc", namespaceKey("http:cache:abc"))
}
