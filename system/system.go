// Package system wires a cpu.CPU to a bus.SystemBus and the cartridge
// mapper built from a parsed ROM image into one runnable console.
package system

import (
	"log"

	"nescore/bus"
	"nescore/cpu"
	"nescore/mapper"
	"nescore/rom"
)

// System is one fully wired NES: a CPU, its bus, and whatever mapper the
// cartridge needs. PPU/APU are out of scope beyond the bus-device facade
// slots callers can pass into bus.New alongside the mapper.
type System struct {
	CPU    *cpu.CPU
	Bus    *bus.SystemBus
	cycles uint64
}

// New parses no files itself — callers load and decode the ROM with
// rom.Load first — but owns constructing the mapper, bus and CPU from the
// result and bringing the CPU out of reset.
func New(image *rom.Image, extraDevices ...bus.Device) (*System, error) {
	cartridge, err := mapper.For(image)
	if err != nil {
		return nil, err
	}
	b := bus.New(cartridge, extraDevices...)
	return &System{CPU: cpu.NewCPU(), Bus: b}, nil
}

// ClockPulse advances the CPU by exactly one cycle. It is the unit of
// work MasterClock calls at 1/12th its own tick rate.
func (s *System) ClockPulse() {
	s.CPU.Cycle(s.Bus)
	s.cycles++
}

// Cycles reports how many CPU cycles this system has executed.
func (s *System) Cycles() uint64 { return s.cycles }

// Instructions reports how many opcodes the CPU has dispatched.
func (s *System) Instructions() uint64 { return s.CPU.Instructions() }

// Trace reports the CPU state as of the last opcode fetch, for callers
// building a nestest-style execution log.
func (s *System) Trace() cpu.TraceEntry { return s.CPU.Trace() }

// TriggerNMI and SetIRQLine forward to the CPU; System exists so PPU/APU
// facades wired in via extraDevices have somewhere to raise them from
// without reaching past the bus into CPU internals directly.
func (s *System) TriggerNMI()              { s.CPU.TriggerNMI() }
func (s *System) SetIRQLine(asserted bool) { s.CPU.SetIRQLine(asserted) }

// Reset re-synchronizes the CPU to its power-on sequence without
// rebuilding the bus or cartridge state.
func (s *System) Reset() {
	s.CPU.Reset()
	log.Printf("system: reset, PC will resume from the cartridge's reset vector")
}
