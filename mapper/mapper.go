// Package mapper builds a bus.Device out of a parsed ROM image. Real
// cartridges use dozens of mapper chips to bank-switch PRG/CHR far beyond
// what their address lines can reach directly; this package only
// implements mapper 0 (NROM).
package mapper

import (
	"github.com/pkg/errors"

	"nescore/addr"
	"nescore/bus"
	"nescore/rom"
)

// For builds the bus.Device for image's mapper number. Any mapper other
// than 0 is a recognized-but-unimplemented error, not a panic — the
// caller (cmd/nescore) is expected to report it and exit cleanly.
func For(image *rom.Image) (bus.Device, error) {
	switch image.Mapper {
	case 0:
		return newNROM(image), nil
	default:
		return nil, errors.Errorf("mapper: mapper %d is not implemented", image.Mapper)
	}
}

// nrom is mapper 0: PRG-ROM fixed at $8000-$FFFF (mirrored across the
// window when the cartridge has only one 16KB bank), with an optional
// 8KB window of battery or work RAM at $6000-$7FFF.
type nrom struct {
	prgROM    addr.Mask
	prgROMRaw []byte
	prgRAM    addr.Mask
	prgRAMRaw []byte
}

func newNROM(image *rom.Image) *nrom {
	// prefixBits=1 selects the top half of the address space ($8000-$FFFF);
	// mirrorBits=1 additionally folds that into a 16KB window when there's
	// only one bank to mirror.
	mirrorBits := uint8(0)
	if len(image.PRGROM) <= 16*1024 {
		mirrorBits = 1
	}
	n := &nrom{
		prgROM:    addr.NewMask(addr.Address(0x8000), 1, mirrorBits),
		prgROMRaw: image.PRGROM,
	}
	if image.PRGRAMBanks > 0 {
		n.prgRAM = addr.NewMask(addr.Address(0x6000), 3, 0)
		n.prgRAMRaw = make([]byte, 8*1024*image.PRGRAMBanks)
	}
	return n
}

func (n *nrom) Read(a addr.Address) (byte, bool) {
	if n.prgRAMRaw != nil {
		if off, ok := n.prgRAM.Remap(a); ok && int(off) < len(n.prgRAMRaw) {
			return n.prgRAMRaw[off], true
		}
	}
	if off, ok := n.prgROM.Remap(a); ok {
		return n.prgROMRaw[int(off)%len(n.prgROMRaw)], true
	}
	return 0, false
}

func (n *nrom) Write(a addr.Address, data byte) bool {
	if n.prgRAMRaw == nil {
		return false
	}
	off, ok := n.prgRAM.Remap(a)
	if !ok || int(off) >= len(n.prgRAMRaw) {
		return false
	}
	n.prgRAMRaw[off] = data
	return true
}
