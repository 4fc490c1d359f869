package cpu

import "fmt"

// TraceEntry is a snapshot of CPU state taken at an instruction boundary,
// the granularity nestest.log records at. It only exists to make Scenario
// A (log comparison against nestest.log) possible — nothing in the
// microcode engine itself depends on it.
type TraceEntry struct {
	PC     uint16
	Opcode byte
	A      byte
	X      byte
	Y      byte
	P      byte
	SP     byte
	Cycles uint64
}

// Trace snapshots the CPU as of the last opcode fetch. Call it right
// after Cycle returns from a step whose readPost was decodeOpcode, i.e.
// once per instruction, not once per cycle.
func (c *CPU) Trace() TraceEntry {
	return TraceEntry{
		PC:     uint16(c.Registers.PC),
		Opcode: c.opcode,
		A:      c.Registers.A,
		X:      c.Registers.X,
		Y:      c.Registers.Y,
		P:      byte(c.Registers.P),
		SP:     c.Registers.S,
		Cycles: c.cycles,
	}
}

// String renders the same fixed-width columns nestest.log uses for its
// register dump, minus the disassembly and PPU columns this core has no
// basis for producing — there is no PPU here, only whatever bus.Device
// facades a caller wires in alongside the cartridge mapper.
func (t TraceEntry) String() string {
	return fmt.Sprintf("%04X  %02X  A:%02X X:%02X Y:%02X P:%02X SP:%02X  CYC:%d",
		t.PC, t.Opcode, t.A, t.X, t.Y, t.P, t.SP, t.Cycles)
}
