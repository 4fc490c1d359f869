package rom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildINES(prgBanks, chrBanks byte, flags6, flags7 byte, trainer bool) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	var body []byte
	if trainer {
		body = append(body, make([]byte, trainerSize)...)
	}
	body = append(body, make([]byte, int(prgBanks)*prgBankSize)...)
	body = append(body, make([]byte, int(chrBanks)*chrBankSize)...)
	return append(header, body...)
}

func TestLoadNROMSingleBank(t *testing.T) {
	data := buildINES(1, 1, 0x00, 0x00, false)
	img, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, byte(0), img.Mapper)
	assert.Equal(t, MirrorHorizontal, img.Mirroring)
	assert.Len(t, img.PRGROM, prgBankSize)
	assert.Len(t, img.CHRROM, chrBankSize)
}

func TestLoadVerticalMirroringAndMapperNumber(t *testing.T) {
	// Mapper 1 (MMC1): flags6 upper nibble = 0x1, flags7 upper nibble = 0x0;
	// flags6 bit 0 set selects vertical mirroring.
	data := buildINES(2, 1, 0x11, 0x00, false)
	img, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, byte(1), img.Mapper)
	assert.Equal(t, MirrorVertical, img.Mirroring)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildINES(1, 1, 0, 0, false)
	data[0] = 'X'
	_, err := Load(data)
	assert.Error(t, err)
}

func TestLoadRejectsTruncatedPRG(t *testing.T) {
	data := buildINES(2, 0, 0, 0, false)
	data = data[:len(data)-1]
	_, err := Load(data)
	assert.Error(t, err)
}

func TestLoadSkipsTrainer(t *testing.T) {
	data := buildINES(1, 0, 0x04, 0x00, true) // bit2 of flags6: trainer present
	img, err := Load(data)
	require.NoError(t, err)
	assert.Len(t, img.PRGROM, prgBankSize)
}

func TestLoadCHRRAMWhenNoCHRBanks(t *testing.T) {
	data := buildINES(1, 0, 0, 0, false)
	img, err := Load(data)
	require.NoError(t, err)
	assert.Nil(t, img.CHRROM)
}
