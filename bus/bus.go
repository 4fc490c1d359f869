// Package bus implements the uniform device contract and the priority-order
// fan-out that composes RAM, a cartridge mapper, and memory-mapped device
// windows into a single 16-bit address space.
//
// Every access the CPU core performs resolves in exactly one call here —
// there is no deferred I/O, no queueing, no retry.
package bus

import (
	"log"

	"nescore/addr"
)

// A Device answers reads and writes for some sub-window of the 16-bit
// address space. Read returns ok=false when addr falls outside the device's
// window; Write returns false when the device did not capture the write.
type Device interface {
	Read(address addr.Address) (data byte, ok bool)
	Write(address addr.Address, data byte) (captured bool)
}

// ramSize is the console's internal work RAM: 2 KiB, mirrored four times
// across $0000-$1FFF.
const ramSize = 2 * 1024

// SystemBus composes the console's internal RAM with a cartridge mapper and
// any number of memory-mapped device windows (PPU, APU/IO), in priority
// order. Reads are answered by the first device whose window claims the
// address; writes are offered to every device in priority order.
type SystemBus struct {
	ram     *ram
	devices []Device // mapper first, then MMIO windows, in priority order

	// openBus is the last byte driven onto the data lines. Real hardware
	// leaves this floating when nothing responds to a read; software
	// sometimes relies on it.
	openBus byte

	Logger *log.Logger
}

// New builds a SystemBus with its internal RAM wired in first, followed by
// mapper and any additional devices in the priority order given.
func New(mapper Device, devices ...Device) *SystemBus {
	b := &SystemBus{
		ram:     newRAM(),
		Logger:  log.New(log.Writer(), "", 0),
		devices: make([]Device, 0, 1+len(devices)),
	}
	b.devices = append(b.devices, mapper)
	b.devices = append(b.devices, devices...)
	return b
}

// Read resolves exactly one bus read. Devices are consulted in priority
// order (RAM first, then mapper, then MMIO); the first Some wins. An
// unmapped address returns the open-bus byte — the data latch's last driven
// value — matching observable NES hardware rather than failing.
func (b *SystemBus) Read(address addr.Address) byte {
	if data, ok := b.ram.Read(address); ok {
		b.openBus = data
		return data
	}
	for _, d := range b.devices {
		if d == nil {
			continue
		}
		if data, ok := d.Read(address); ok {
			b.openBus = data
			return data
		}
	}
	return b.openBus
}

// Write resolves exactly one bus write, offering it to every device in
// priority order. A write that no device captures is silently dropped, as
// on real hardware.
func (b *SystemBus) Write(address addr.Address, data byte) {
	b.openBus = data
	captured := b.ram.Write(address, data)
	for _, d := range b.devices {
		if d == nil {
			continue
		}
		if d.Write(address, data) {
			captured = true
		}
	}
	if b.Logger != nil {
		b.Logger.Printf("%s <= %02X (captured=%v)", address, data, captured)
	}
}

// ram is the console's internal 2 KiB work RAM, mirrored across $0000-$1FFF.
type ram struct {
	mask   addr.Mask
	memory [ramSize]byte
}

func newRAM() *ram {
	return &ram{mask: addr.NewMask(addr.Address(0x0000), 3, 2)}
}

func (r *ram) Read(address addr.Address) (byte, bool) {
	off, ok := r.mask.Remap(address)
	if !ok {
		return 0, false
	}
	return r.memory[off], true
}

func (r *ram) Write(address addr.Address, data byte) bool {
	off, ok := r.mask.Remap(address)
	if !ok {
		return false
	}
	r.memory[off] = data
	return true
}
