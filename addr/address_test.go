package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHighLow(t *testing.T) {
	a := New(0x12, 0x34)
	assert.Equal(t, byte(0x12), a.High())
	assert.Equal(t, byte(0x34), a.Low())
	assert.Equal(t, Address(0x1234), a)
}

func TestSetHighLow(t *testing.T) {
	a := New(0x00, 0x00)
	a.SetLow(0xFF)
	a.SetHigh(0x80)
	assert.Equal(t, Address(0x80FF), a)
}

func TestIncrementWraps(t *testing.T) {
	a := Address(0xFFFF)
	a.Increment()
	assert.Equal(t, Address(0x0000), a)
}

// Index never carries into the high byte.
func TestIndexNoPageCarry(t *testing.T) {
	a := New(0x12, 0xFF)
	indexed := a.Index(0x02)
	assert.Equal(t, byte(0x12), indexed.High(), "Index must not carry into the high byte")
	assert.Equal(t, byte(0x01), indexed.Low())
}

// Add does carry into the high byte on overflow.
func TestAddCarriesPage(t *testing.T) {
	a := New(0x12, 0xFF)
	added := a.Add(0x02)
	assert.Equal(t, byte(0x13), added.High(), "Add must carry into the high byte")
	assert.Equal(t, byte(0x01), added.Low())
}

func TestOffsetForwardAndBackward(t *testing.T) {
	a := Address(0x00FD)
	a.Offset(4)
	assert.Equal(t, Address(0x0101), a)

	b := Address(0x0010)
	b.Offset(-5)
	assert.Equal(t, Address(0x000B), b)
}

func TestSamePage(t *testing.T) {
	assert.True(t, New(0x12, 0x00).SamePage(New(0x12, 0xFF)))
	assert.False(t, New(0x12, 0xFF).SamePage(New(0x13, 0x00)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "$1234", New(0x12, 0x34).String())
}
