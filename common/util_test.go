package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexHelpers(t *testing.T) {
	assert.True(t, Has0xPrefix("0xabcd"))
	assert.True(t, Has0xPrefix("0XABCD"))
	assert.False(t, Has0xPrefix("abcd"))

	assert.Equal(t, "abcd", Strip0xPrefix("0xabcd"))
	assert.Equal(t, "abcd", Strip0xPrefix("abcd"))

	assert.True(t, IsHex("00ffAA"))
	assert.False(t, IsHex("0ff"))
	assert.False(t, IsHex("zz"))
}

func TestZeroBytes(t *testing.T) {
	b := []byte{0x01, 0x02, 0x05}
	c := BytesCopy(b)
	ZeroBytes(b)

	assert.Equal(t, []byte{0, 0, 0}, b)
	assert.Equal(t, []byte{0x01, 0x02, 0x05}, c)
}

func TestIntersection(t *testing.T) {
	dup, ok := FirstIntersection([]string{"a", "b"}, []string{"c", "b"})
	assert.True(t, ok)
	assert.Equal(t, "b", dup)

	_, ok = FirstIntersection([]string{"a"}, []string{"c"})
	assert.False(t, ok)

	dup, ok = HasDuplicate([]string{"x", "y", "x"})
	assert.True(t, ok)
	assert.Equal(t, "x", dup)

	_, ok = HasDuplicate([]string{"x", "y"})
	assert.False(t, ok)

	idx, ok := FirstDuplicate([]interface{}{uint32(0), uint32(2), uint32(2)})
	assert.True(t, ok)
	assert.Equal(t, uint32(2), idx)

	_, ok = FirstDuplicate([]interface{}{uint32(1), 1})
	assert.False(t, ok)
}
