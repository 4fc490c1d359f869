package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, Last(0b0000_1111, Bit1), byte(0b0000_0001))
	assert.Equal(t, Last(0b0000_1111, Bit2), byte(0b0000_0011))
	assert.Equal(t, Last(0b0000_1111, Bit3), byte(0b0000_0111))
	assert.Equal(t, Last(0b0000_1111, Bit4), byte(0b0000_1111))

	assert.Equal(t, Last(0b1000_1111, Bit1), byte(0b0000_0001))
	assert.Equal(t, Last(0b1000_1111, Bit2), byte(0b0000_0011))
	assert.Equal(t, Last(0b1000_1111, Bit3), byte(0b0000_0111))
	assert.Equal(t, Last(0b1000_1111, Bit4), byte(0b0000_1111))

	assert.Equal(t, Last(0b0000_1010, Bit1), byte(0b0000_0000))
	assert.Equal(t, Last(0b0000_1010, Bit2), byte(0b0000_0010))
	assert.Equal(t, Last(0b0000_1010, Bit3), byte(0b0000_0010))
	assert.Equal(t, Last(0b0000_1010, Bit4), byte(0b0000_1010))

	assert.Equal(t, First(0b1111_1111, Bit1), byte(0b0000_0001))
	assert.Equal(t, First(0b1010_1111, Bit4), byte(0b0000_1010))

	assert.Equal(t, Range(0b1101_1000, Bit1, Bit2), byte(0b0000_0011))
	assert.Equal(t, Range(0b1101_1000, Bit2, Bit4), byte(0b0000_0101))
	assert.Equal(t, Range(0b1101_1000, Bit4, Bit5), byte(0b0000_0011))
	assert.Equal(t, Range(0b1101_1000, Bit5, Bit8), byte(0b0000_1000))

	assert.Equal(t, Nibble(0b1101_1000), byte(0b0000_1101))
	assert.Equal(t, Nibble(0b0000_0111), byte(0b0000_0000))

	assert.True(t, IsSet(0b1101_1000, Bit1))
	assert.True(t, IsSet(0b1101_1000, Bit2))
	assert.False(t, IsSet(0b1101_1000, Bit3))
	assert.True(t, IsSet(0b1101_1000, Bit4))

	assert.Equal(t, Set(0b0000_0000, Bit1, 0b0000_0010), byte(0b1000_0000))
	assert.Equal(t, Set(0b0000_0000, Bit1, 0b0000_0101), byte(0b1010_0000))
	assert.Equal(t, Set(0b0000_0000, Bit1, 0b0000_0111), byte(0b1110_0000))
	assert.Equal(t, Set(0b0000_0000, Bit2, 0b0000_0011), byte(0b0110_0000))
	assert.Equal(t, Set(0b0000_0000, Bit2, 0b0000_0111), byte(0b0111_0000))
	assert.Equal(t, Set(0b0000_0000, Bit5, 0b0000_1111), byte(0b0000_1111))
	assert.Equal(t, Set(0b0000_0000, Bit7, 0b0000_1000), byte(0b0000_0010))
	assert.Equal(t, Set(0b0000_0000, Bit7, 0b0000_1111), byte(0b0000_0011))
	assert.Equal(t, Set(0b1111_1111, Bit1, 0), byte(0b1111_1111))

	assert.Equal(t, Unset(0b1111_0000, Bit5, Bit8), byte(0b1111_0000))
	assert.Equal(t, Unset(0b1111_1111, Bit5, Bit8), byte(0b1111_0000))

	assert.Equal(t, Flip(0b1111_0000, Bit5, Bit5), byte(0b1111_1000))
	assert.Equal(t, Flip(0b1111_0000, Bit5, Bit8), byte(0b1111_1111))
	assert.Equal(t, Flip(0b1111_0000, Bit8, Bit8), byte(0b1111_0001))
	assert.Equal(t, Flip(0b1111_1111, Bit5, Bit8), byte(0b1111_0000))
}

func BenchmarkLast(b *testing.B) {
	Last(0b1000_1111, Bit4)
}

func BenchmarkLastLoop(b *testing.B) {
	lastLoop(0b1000_1111, Bit4)
}

func BenchmarkFirst(b *testing.B) {
	First(0b1000_1111, Bit4)
}
