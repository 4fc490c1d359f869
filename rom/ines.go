// Package rom parses iNES ROM images into the header fields and PRG/CHR
// banks the mapper package needs to build a cartridge bus device.
package rom

import (
	"github.com/pkg/errors"

	"nescore/mask"
)

const (
	prgBankSize = 16 * 1024
	chrBankSize = 8 * 1024
	headerSize  = 16
	trainerSize = 512
)

var magic = [4]byte{'N', 'E', 'S', 0x1A}

// Mirroring names how the two physical nametables are mapped onto the
// four logical ones the PPU addresses.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

// Image is a decoded iNES cartridge: the header fields the mapper factory
// needs plus the raw PRG/CHR banks.
type Image struct {
	Mapper      byte
	Mirroring   Mirroring
	HasBattery  bool
	PRGROM      []byte
	CHRROM      []byte // empty means the cartridge uses CHR RAM instead
	PRGRAMBanks int
}

// Load parses a complete iNES file image, trainer and all. It does not
// look past the 16-byte header plus banks. An NES 2.0 header is detected
// from flags 7 and rejected with an error; its extended fields are not
// parsed.
func Load(data []byte) (*Image, error) {
	if len(data) < headerSize {
		return nil, errors.New("rom: file shorter than the iNES header")
	}
	var header [headerSize]byte
	copy(header[:], data[:headerSize])

	if header[0] != magic[0] || header[1] != magic[1] || header[2] != magic[2] || header[3] != magic[3] {
		return nil, errors.New("rom: missing \"NES\\x1A\" magic")
	}

	flags6 := header[6]
	flags7 := header[7]

	mapperLow := mask.Nibble(flags6)
	mapperHigh := mask.Nibble(flags7)
	mapperNum := mapperHigh<<4 | mapperLow

	isNES2 := mask.Range(flags7, mask.Bit5, mask.Bit6) == 0x02
	if isNES2 {
		return nil, errors.New("rom: NES 2.0 extended headers are not supported")
	}

	mirroring := MirrorHorizontal
	if mask.IsSet(flags6, mask.Bit8) {
		mirroring = MirrorVertical
	}
	if mask.IsSet(flags6, mask.Bit5) {
		mirroring = MirrorFourScreen
	}
	hasTrainer := mask.IsSet(flags6, mask.Bit6)
	hasBattery := mask.IsSet(flags6, mask.Bit7)

	prgBanks := int(header[4])
	chrBanks := int(header[5])
	if prgBanks == 0 {
		return nil, errors.New("rom: zero PRG-ROM banks declared")
	}

	offset := headerSize
	if hasTrainer {
		offset += trainerSize
	}

	prgSize := prgBanks * prgBankSize
	if offset+prgSize > len(data) {
		return nil, errors.Wrapf(errIncomplete, "PRG-ROM: need %d bytes, have %d", prgSize, len(data)-offset)
	}
	prg := data[offset : offset+prgSize]
	offset += prgSize

	var chr []byte
	if chrBanks > 0 {
		chrSize := chrBanks * chrBankSize
		if offset+chrSize > len(data) {
			return nil, errors.Wrapf(errIncomplete, "CHR-ROM: need %d bytes, have %d", chrSize, len(data)-offset)
		}
		chr = data[offset : offset+chrSize]
	}

	prgRAMBanks := int(header[8])
	if prgRAMBanks == 0 {
		prgRAMBanks = 1 // iNES convention: 0 means "assume one 8KB bank"
	}

	return &Image{
		Mapper:      mapperNum,
		Mirroring:   mirroring,
		HasBattery:  hasBattery,
		PRGROM:      prg,
		CHRROM:      chr,
		PRGRAMBanks: prgRAMBanks,
	}, nil
}

var errIncomplete = errors.New("rom: truncated image")
