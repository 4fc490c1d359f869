package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nescore/addr"
)

type stubDevice struct {
	window map[addr.Address]byte
	writes map[addr.Address]byte
}

func newStub() *stubDevice {
	return &stubDevice{window: map[addr.Address]byte{}, writes: map[addr.Address]byte{}}
}

func (s *stubDevice) Read(a addr.Address) (byte, bool) {
	v, ok := s.window[a]
	return v, ok
}

func (s *stubDevice) Write(a addr.Address, data byte) bool {
	if _, ok := s.window[a]; !ok {
		return false
	}
	s.writes[a] = data
	return true
}

func TestRAMReadWriteAndMirroring(t *testing.T) {
	b := New(newStub())

	b.Write(addr.Address(0x0000), 0x42)
	assert.Equal(t, byte(0x42), b.Read(addr.Address(0x0000)))
	// $0800 mirrors $0000.
	assert.Equal(t, byte(0x42), b.Read(addr.Address(0x0800)))
	assert.Equal(t, byte(0x42), b.Read(addr.Address(0x1000)))
}

func TestMapperFallsThroughWhenRAMMisses(t *testing.T) {
	mapper := newStub()
	mapper.window[addr.Address(0x8000)] = 0xEA
	b := New(mapper)

	assert.Equal(t, byte(0xEA), b.Read(addr.Address(0x8000)))
}

func TestUnmappedReadReturnsOpenBus(t *testing.T) {
	b := New(newStub())

	b.Write(addr.Address(0x0000), 0x99)
	assert.Equal(t, byte(0x99), b.Read(addr.Address(0x0000)))
	// $5000 is unmapped by both RAM and the stub mapper; open bus retains
	// the last driven byte.
	assert.Equal(t, byte(0x99), b.Read(addr.Address(0x5000)))
}

func TestUnmappedWriteIsDropped(t *testing.T) {
	b := New(newStub())
	// No panic, no effect; RAM mask rejects it, mapper stub rejects it.
	// Reading $9000 back finds no device either, so it yields the open-bus
	// byte: the last value driven onto the data lines, here the dropped
	// write's own 0x11.
	b.Write(addr.Address(0x9000), 0x11)
	assert.Equal(t, byte(0x11), b.Read(addr.Address(0x9000)))
}

func TestPriorityOrderMMIOAfterMapper(t *testing.T) {
	mapper := newStub()
	mmio := newStub()
	mmio.window[addr.Address(0x2000)] = 0x55
	b := New(mapper, mmio)

	assert.Equal(t, byte(0x55), b.Read(addr.Address(0x2000)))

	b.Write(addr.Address(0x2000), 0xAB)
	assert.Equal(t, byte(0xAB), mmio.writes[addr.Address(0x2000)])
}
