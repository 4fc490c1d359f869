package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nescore/addr"
	"nescore/rom"
)

func TestNROM16KBMirrorsAcrossBothHalves(t *testing.T) {
	prg := make([]byte, 16*1024)
	prg[0] = 0xEA
	prg[len(prg)-1] = 0x42
	dev, err := For(&rom.Image{Mapper: 0, PRGROM: prg})
	require.NoError(t, err)

	low, ok := dev.Read(addr.Address(0x8000))
	require.True(t, ok)
	assert.Equal(t, byte(0xEA), low)

	mirrored, ok := dev.Read(addr.Address(0xC000))
	require.True(t, ok)
	assert.Equal(t, byte(0xEA), mirrored)

	top, ok := dev.Read(addr.Address(0xFFFF))
	require.True(t, ok)
	assert.Equal(t, byte(0x42), top)
}

func TestNROM32KBDoesNotMirror(t *testing.T) {
	prg := make([]byte, 32*1024)
	prg[0] = 0x11
	prg[16*1024] = 0x22
	dev, err := For(&rom.Image{Mapper: 0, PRGROM: prg})
	require.NoError(t, err)

	a, _ := dev.Read(addr.Address(0x8000))
	b, _ := dev.Read(addr.Address(0xC000))
	assert.Equal(t, byte(0x11), a)
	assert.Equal(t, byte(0x22), b)
}

func TestNROMPRGRAMReadWrite(t *testing.T) {
	dev, err := For(&rom.Image{Mapper: 0, PRGROM: make([]byte, 16*1024), PRGRAMBanks: 1})
	require.NoError(t, err)

	ok := dev.Write(addr.Address(0x6000), 0x99)
	require.True(t, ok)
	v, ok := dev.Read(addr.Address(0x6000))
	require.True(t, ok)
	assert.Equal(t, byte(0x99), v)
}

func TestUnknownMapperIsAnError(t *testing.T) {
	_, err := For(&rom.Image{Mapper: 4})
	assert.Error(t, err)
}
