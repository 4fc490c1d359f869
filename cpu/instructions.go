package cpu

import "nescore/addr"

// The instruction catalog is organized by I/O category, not by opcode: a
// Read instruction consumes one byte and updates registers; a ReadWrite
// instruction takes the byte already latched by an earlier cycle of the
// same addressing template, mutates it, and hands the mutated byte back to
// be written; a Write instruction has no incoming data at all, only
// register state to emit.
//
// None of these functions know anything about cycle timing or addressing
// modes — that is the microcode engine's job (see addressing.go, decode.go).

type readInstruction func(r *Registers, data byte)
type rwInstruction func(r *Registers, data *byte)
type writeInstruction func(r *Registers, data *byte)

// --- loads, stores, transfers --------------------------------------------

func instLDA(r *Registers, data byte) { r.A = data; r.P.setValueFlags(r.A) }
func instLDX(r *Registers, data byte) { r.X = data; r.P.setValueFlags(r.X) }
func instLDY(r *Registers, data byte) { r.Y = data; r.P.setValueFlags(r.Y) }

func instSTA(r *Registers, data *byte) { *data = r.A }
func instSTX(r *Registers, data *byte) { *data = r.X }
func instSTY(r *Registers, data *byte) { *data = r.Y }

func instTAX(r *Registers, _ byte) { r.X = r.A; r.P.setValueFlags(r.X) }
func instTAY(r *Registers, _ byte) { r.Y = r.A; r.P.setValueFlags(r.Y) }
func instTXA(r *Registers, _ byte) { r.A = r.X; r.P.setValueFlags(r.A) }
func instTYA(r *Registers, _ byte) { r.A = r.Y; r.P.setValueFlags(r.A) }
func instTSX(r *Registers, _ byte) { r.X = r.S; r.P.setValueFlags(r.X) }
func instTXS(r *Registers, _ byte) { r.S = r.X } // does not touch flags

// --- increments / decrements ---------------------------------------------

func instINX(r *Registers, _ byte) { r.X++; r.P.setValueFlags(r.X) }
func instINY(r *Registers, _ byte) { r.Y++; r.P.setValueFlags(r.Y) }
func instDEX(r *Registers, _ byte) { r.X--; r.P.setValueFlags(r.X) }
func instDEY(r *Registers, _ byte) { r.Y--; r.P.setValueFlags(r.Y) }

func instINC(r *Registers, data *byte) { *data++; r.P.setValueFlags(*data) }
func instDEC(r *Registers, data *byte) { *data--; r.P.setValueFlags(*data) }

// --- flag instructions ------------------------------------------------------

func instCLC(r *Registers, _ byte) { r.P.Set(FlagC, false) }
func instSEC(r *Registers, _ byte) { r.P.Set(FlagC, true) }
func instCLI(r *Registers, _ byte) { r.P.Set(FlagI, false) }
func instSEI(r *Registers, _ byte) { r.P.Set(FlagI, true) }
func instCLV(r *Registers, _ byte) { r.P.Set(FlagV, false) }
func instCLD(r *Registers, _ byte) { r.P.Set(FlagD, false) }
func instSED(r *Registers, _ byte) { r.P.Set(FlagD, true) }

func instNOP(*Registers, byte) {}

// --- logic / arithmetic -----------------------------------------------------

func instORA(r *Registers, data byte) { r.A |= data; r.P.setValueFlags(r.A) }
func instAND(r *Registers, data byte) { r.A &= data; r.P.setValueFlags(r.A) }
func instEOR(r *Registers, data byte) { r.A ^= data; r.P.setValueFlags(r.A) }

func instBIT(r *Registers, data byte) {
	r.P.Set(FlagN, data&0x80 != 0)
	r.P.Set(FlagV, data&0x40 != 0)
	r.P.Set(FlagZ, r.A&data == 0)
}

func instADC(r *Registers, data byte) {
	carryIn := uint16(0)
	if r.P.Has(FlagC) {
		carryIn = 1
	}
	sum := uint16(r.A) + uint16(data) + carryIn
	result := byte(sum)
	r.P.Set(FlagC, sum > 0xFF)
	r.P.Set(FlagV, (r.A^result)&(data^result)&0x80 != 0)
	r.A = result
	r.P.setValueFlags(r.A)
}

func instSBC(r *Registers, data byte) {
	instADC(r, ^data)
}

func instCMP(r *Registers, data byte) { compare(r, r.A, data) }
func instCPX(r *Registers, data byte) { compare(r, r.X, data) }
func instCPY(r *Registers, data byte) { compare(r, r.Y, data) }

func compare(r *Registers, reg, data byte) {
	r.P.Set(FlagC, reg >= data)
	r.P.Set(FlagZ, reg == data)
	r.P.Set(FlagN, (reg-data)&0x80 != 0)
}

// --- shifts / rotates (read-modify-write) -----------------------------------

func instASL(r *Registers, data *byte) {
	r.P.Set(FlagC, *data&0x80 != 0)
	*data <<= 1
	r.P.setValueFlags(*data)
}

func instLSR(r *Registers, data *byte) {
	r.P.Set(FlagC, *data&0x01 != 0)
	*data >>= 1
	r.P.setValueFlags(*data)
}

func instROL(r *Registers, data *byte) {
	carryIn := byte(0)
	if r.P.Has(FlagC) {
		carryIn = 1
	}
	r.P.Set(FlagC, *data&0x80 != 0)
	*data = (*data << 1) | carryIn
	r.P.setValueFlags(*data)
}

func instROR(r *Registers, data *byte) {
	carryIn := byte(0)
	if r.P.Has(FlagC) {
		carryIn = 0x80
	}
	r.P.Set(FlagC, *data&0x01 != 0)
	*data = (*data >> 1) | carryIn
	r.P.setValueFlags(*data)
}

// --- illegal/undocumented opcodes ------------------------------------------
//
// Each composes a documented RMW with an ALU read over the same byte,
// chained within a single callback — not by enqueuing extra cycles. This
// matches how real RP2A03 silicon produces these as a side effect of two
// internal operations sharing a decode path, not as deliberately designed
// instructions.

func instSLO(r *Registers, data *byte) { instASL(r, data); instORA(r, *data) }
func instRLA(r *Registers, data *byte) { instROL(r, data); instAND(r, *data) }
func instSRE(r *Registers, data *byte) { instLSR(r, data); instEOR(r, *data) }
func instRRA(r *Registers, data *byte) { instROR(r, data); instADC(r, *data) }
func instDCP(r *Registers, data *byte) { instDEC(r, data); instCMP(r, *data) }
func instISC(r *Registers, data *byte) { instINC(r, data); instSBC(r, *data) }

func instSAX(r *Registers, data *byte) { *data = r.A & r.X }

func instLAX(r *Registers, data byte) { instLDA(r, data); instTAX(r, data) }

// --- stack ------------------------------------------------------------------

func instPHA(r *Registers, data *byte) { *data = r.A }
func instPLA(r *Registers, data byte)  { r.A = data; r.P.setValueFlags(r.A) }

// instPHP pushes P with B and the unused bit forced to 1, regardless of
// their current in-register value.
func instPHP(r *Registers, data *byte) { *data = byte(r.P | FlagB | FlagU) }

// instPLP restores only the bits in stackMask; B and the unused bit keep
// whatever was already in the register.
func instPLP(r *Registers, data byte) {
	r.P = StatusFlags(data)&stackMask | r.P&^stackMask
}

// --- pseudo-instructions: PC bytes over the bus ----------------------------
//
// PCL/PCH have both a read face (used pulling PC off the stack in RTS/RTI)
// and a write face (used pushing PC during JSR), letting the engine reuse
// one template for both directions.

func instPCLRead(r *Registers, data byte)  { r.PC.SetLow(data) }
func instPCLWrite(r *Registers, data *byte) { *data = r.PC.Low() }
func instPCHRead(r *Registers, data byte)  { r.PC.SetHigh(data) }
func instPCHWrite(r *Registers, data *byte) { *data = r.PC.High() }

// instJMPTarget loads PC from the high byte just read and the operand
// latch set by the addressing mode — shared by JMP absolute/indirect and
// JSR's final cycle.
func instJMPTarget(r *Registers, data byte) {
	r.PC = addr.New(data, r.Operand)
}
