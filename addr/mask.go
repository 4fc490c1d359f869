package addr

// A Mask decodes a device's address window: a prefix of high bits that must
// match start, and a mirror width of low bits that actually select storage.
// The gap between the two, if any, is mirrored away — this is how 2 KiB of
// internal RAM answers the full $0000-$1FFF range, and how the PPU's 8
// registers repeat every 8 bytes up to $3FFF.
type Mask struct {
	start       Address
	addressMask uint16
	mirrorMask  uint16
}

// NewMask builds a Mask for a window starting at start, where prefixBits is
// the width of the high-bit field that must equal start, and mirrorBits is
// the width of the low-bit field beyond the storage size that still repeats
// it (0 for no mirroring).
func NewMask(start Address, prefixBits, mirrorBits uint8) Mask {
	return Mask{
		start:       start,
		addressMask: ^(uint16(0xFFFF) >> prefixBits),
		mirrorMask:  uint16(0xFFFF) >> (prefixBits + mirrorBits),
	}
}

// Remap returns the storage offset for address and true iff address falls
// within the window. The offset is the low mirrorMask bits of address,
// independent of how much higher the true address range extends.
func (m Mask) Remap(address Address) (offset uint16, ok bool) {
	if uint16(address)&m.addressMask != uint16(m.start) {
		return 0, false
	}
	return uint16(address) & m.mirrorMask, true
}
