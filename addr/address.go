// Package addr implements 16-bit bus addresses and the mirrored-window
// decoding used to map them onto device storage.
//
// Address arithmetic is split deliberately into two shapes, both present in
// the 6502's addressing modes: Index wraps within the low byte only (no
// carry into the high byte — the zero-page and indirect-pointer quirk), and
// Add carries across the full 16 bits (absolute-indexed addressing).
package addr

import "fmt"

// An Address is a 16-bit bus address.
type Address uint16

// New combines a high and low byte into an Address, high byte first as the
// 6502 stores it (little-endian in memory, big-endian in this constructor).
func New(high, low byte) Address {
	return Address(uint16(high)<<8 | uint16(low))
}

// High returns the high (page) byte.
func (a Address) High() byte {
	return byte(a >> 8)
}

// Low returns the low byte.
func (a Address) Low() byte {
	return byte(a)
}

// SetHigh replaces the high byte in place.
func (a *Address) SetHigh(high byte) {
	*a = Address(uint16(high)<<8 | uint16(*a&0xFF))
}

// SetLow replaces the low byte in place.
func (a *Address) SetLow(low byte) {
	*a = Address(uint16(*a&0xFF00) | uint16(low))
}

// Increment advances the address by one, wrapping from $FFFF to $0000.
func (a *Address) Increment() {
	*a++
}

// Index adds off to the low byte only; the high byte is left untouched even
// when the low byte wraps. This is the zero-page and indirect-pointer
// addressing quirk: $FF,X with X=2 lands on $01, not $101.
func (a Address) Index(off byte) Address {
	return New(a.High(), a.Low()+off)
}

// Add performs a full 16-bit wrapping add, carrying into the high byte when
// the low byte overflows. This is absolute-indexed addressing, where a page
// cross is a real (and cycle-costing) event rather than a bug to reproduce.
func (a Address) Add(off byte) Address {
	return a + Address(off)
}

// Offset adds a signed 8-bit displacement with full 16-bit wraparound,
// matching relative (branch) addressing: PC + sign_extend(operand).
func (a *Address) Offset(rel int8) {
	*a = Address(uint16(int32(uint16(*a)) + int32(rel)))
}

// SamePage reports whether a and b share a high byte.
func (a Address) SamePage(b Address) bool {
	return a.High() == b.High()
}

func (a Address) String() string {
	return fmt.Sprintf("$%04X", uint16(a))
}
