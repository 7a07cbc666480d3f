package valkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	c := &Client{keyPrefix: normalizePrefix("ultramsg")}
	assert.Equal(t, "ultramsg:dedup:abc", c.Key("dedup", "abc"))
	assert.Equal(t, "ultramsg", c.Key())

	bare := &Client{}
	assert.Equal(t, "dedup", bare.Key("dedup"))
}
