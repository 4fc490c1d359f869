package cpu

import "nescore/addr"

// addressingMode names one of the 12 effective-address calculations the
// generic templates below handle. Relative (branch) addressing, indirect JMP and the control-transfer instructions
// (JSR/RTS/RTI/JMP) are not represented here — they are hand-written
// microstep sequences, enqueued directly from the opcode decoder rather
// than through this generic dispatch.
type addressingMode int

const (
	modeImplied addressingMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeStack
)

// enqueueRead appends the microcode template for a Read-category
// instruction under the given addressing mode, ending in a decode step.
func enqueueRead(c *CPU, mode addressingMode, inst readInstruction) {
	switch mode {
	case modeImplied, modeAccumulator:
		// Dummy read @ PC; Accumulator instructions read register A
		// directly rather than dataLatch, via withAccumulatorRead.
		if mode == modeAccumulator {
			c.queueRead(withAccumulatorRead(inst), cpuPC)
		} else {
			c.queueRead(inst, cpuPC)
		}
	case modeImmediate:
		c.queueRead(inst, cpuPCInc)
	case modeZeroPage:
		c.queueMicrocode(cpuPCInc, cpuPullOperand)
		c.queueRead(inst, cpuZeroPage)
	case modeZeroPageX:
		enqueueZeroPageIndexedRead(c, inst, indexX)
	case modeZeroPageY:
		enqueueZeroPageIndexedRead(c, inst, indexY)
	case modeAbsolute:
		c.queueMicrocode(cpuPCInc, cpuBufferLow)
		c.queueMicrocode(cpuPCInc, cpuBufferHigh)
		c.queueRead(inst, cpuAddress)
	case modeAbsoluteX:
		enqueueAbsoluteIndexedRead(c, inst, indexX)
	case modeAbsoluteY:
		enqueueAbsoluteIndexedRead(c, inst, indexY)
	case modeIndirectX:
		enqueueIndirectXRead(c, inst)
	case modeIndirectY:
		enqueueIndirectYRead(c, inst)
	case modeStack:
		// Stack pull: dummy read @ PC, dummy read @ S, then the real
		// read at S+1 (S pre-incremented), which is where PLA/PLP
		// consume their byte.
		c.queueMicrocode(cpuPC, cpuNop)
		c.queueMicrocode(cpuStack, cpuNop)
		c.queueRead(inst, cpuStackPull)
	default:
		panic("enqueueRead: unhandled addressing mode")
	}
	c.queueDecode()
}

// enqueueReadWrite appends the microcode template for a read-modify-write
// instruction: read the operand, write the unmodified byte back (a real
// 6502 quirk visible to MMIO devices), then write the modified byte.
func enqueueReadWrite(c *CPU, mode addressingMode, inst rwInstruction) {
	switch mode {
	case modeAccumulator:
		// Dummy read @ PC; the instruction modifies A, not the bus.
		rw := withAccumulatorRW(inst)
		c.queueMicrocode(cpuPC, func(cc *CPU) { rw(&cc.Registers, &cc.dataLatch) })
	case modeZeroPage:
		c.queueMicrocode(cpuPCInc, cpuPullOperand)
		c.queueMicrocode(cpuZeroPage, cpuNop)
		c.queueMicrocodeWrite(cpuZeroPage, cpuNop)
		c.queueReadWrite(inst, cpuZeroPage)
	case modeZeroPageX:
		enqueueZeroPageIndexedRW(c, inst, indexX)
	case modeAbsolute:
		c.queueMicrocode(cpuPCInc, cpuBufferLow)
		c.queueMicrocode(cpuPCInc, cpuBufferHigh)
		c.queueMicrocode(cpuAddress, cpuNop)
		c.queueMicrocodeWrite(cpuAddress, cpuNop)
		c.queueReadWrite(inst, cpuAddress)
	case modeAbsoluteX:
		enqueueAbsoluteIndexedRW(c, inst, indexX)
	case modeAbsoluteY:
		enqueueAbsoluteIndexedRW(c, inst, indexY)
	case modeIndirectX:
		enqueueIndirectXRW(c, inst)
	case modeIndirectY:
		enqueueIndirectYRW(c, inst)
	default:
		panic("enqueueReadWrite: unhandled addressing mode")
	}
	c.queueDecode()
}

// enqueueWrite appends the microcode template for a Write-category
// instruction: the addressing mode resolves an address with no data read,
// then inst fills the byte that goes out on the bus.
func enqueueWrite(c *CPU, mode addressingMode, inst writeInstruction) {
	switch mode {
	case modeImplied:
		c.queueWrite(inst, cpuPC)
	case modeAccumulator:
		// Dummy read @ PC; the instruction writes A, not the bus.
		w := withAccumulatorWrite(inst)
		c.queueMicrocode(cpuPC, func(cc *CPU) { w(&cc.Registers, &cc.dataLatch) })
	case modeZeroPage:
		c.queueMicrocode(cpuPCInc, cpuPullOperand)
		c.queueWrite(inst, cpuZeroPage)
	case modeZeroPageX:
		enqueueZeroPageIndexedWrite(c, inst, indexX)
	case modeZeroPageY:
		enqueueZeroPageIndexedWrite(c, inst, indexY)
	case modeAbsolute:
		c.queueMicrocode(cpuPCInc, cpuBufferLow)
		c.queueMicrocode(cpuPCInc, cpuBufferHigh)
		c.queueWrite(inst, cpuAddress)
	case modeAbsoluteX:
		enqueueAbsoluteIndexedWrite(c, inst, indexX)
	case modeAbsoluteY:
		enqueueAbsoluteIndexedWrite(c, inst, indexY)
	case modeIndirectX:
		enqueueIndirectXWrite(c, inst)
	case modeIndirectY:
		enqueueIndirectYWrite(c, inst)
	case modeStack:
		// Stack push: dummy read @ PC, then write @ S (S-- after).
		c.queueMicrocode(cpuPC, cpuNop)
		c.queueWrite(inst, cpuStackPush)
	default:
		panic("enqueueWrite: unhandled addressing mode")
	}
	c.queueDecode()
}

// index selects which index register an indexed addressing mode uses.
type index bool

const (
	indexX index = true
	indexY index = false
)

func (i index) get(c *CPU) byte {
	if i == indexX {
		return c.Registers.X
	}
	return c.Registers.Y
}

// --- zero-page indexed -------------------------------------------------

func enqueueZeroPageIndexedRead(c *CPU, inst readInstruction, ix index) {
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuNop) // dummy read while the index is added
	c.queueRead(inst, func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(ix.get(cc)) })
}

func enqueueZeroPageIndexedWrite(c *CPU, inst writeInstruction, ix index) {
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuNop)
	c.queueWrite(inst, func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(ix.get(cc)) })
}

func enqueueZeroPageIndexedRW(c *CPU, inst rwInstruction, ix index) {
	indexed := func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(ix.get(cc)) }
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuNop)
	c.queueMicrocode(indexed, cpuNop)
	c.queueMicrocodeWrite(indexed, cpuNop)
	c.queueReadWrite(inst, indexed)
}

// --- absolute indexed ----------------------------------------------------
//
// Read category speculates: the indexed address is formed from the
// not-yet-fixed-up page, and only pays the extra cycle when that guess was
// wrong (a page cross). Write and RMW always pay it — the 6502 never
// writes speculatively.

func enqueueAbsoluteIndexedRead(c *CPU, inst readInstruction, ix index) {
	c.queueMicrocode(cpuPCInc, cpuBufferLow)
	c.queueMicrocode(cpuPCInc, func(cc *CPU) {
		cpuBufferHigh(cc)
		base := cpuAddress(cc)
		indexed := base.Index(ix.get(cc))
		fixed := base.Add(ix.get(cc))
		if indexed != fixed {
			cc.pushMicrocode(func(cc2 *CPU) addr.Address { return indexed }, cpuNop)
		}
	})
	c.queueRead(inst, func(cc *CPU) addr.Address { return cpuAddress(cc).Add(ix.get(cc)) })
}

func enqueueAbsoluteIndexedWrite(c *CPU, inst writeInstruction, ix index) {
	c.queueMicrocode(cpuPCInc, cpuBufferLow)
	c.queueMicrocode(cpuPCInc, cpuBufferHigh)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuAddress(cc).Index(ix.get(cc)) }, cpuNop)
	c.queueWrite(inst, func(cc *CPU) addr.Address { return cpuAddress(cc).Add(ix.get(cc)) })
}

func enqueueAbsoluteIndexedRW(c *CPU, inst rwInstruction, ix index) {
	final := func(cc *CPU) addr.Address { return cpuAddress(cc).Add(ix.get(cc)) }
	c.queueMicrocode(cpuPCInc, cpuBufferLow)
	c.queueMicrocode(cpuPCInc, cpuBufferHigh)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuAddress(cc).Index(ix.get(cc)) }, cpuNop)
	c.queueMicrocode(final, cpuNop)
	c.queueMicrocodeWrite(final, cpuNop)
	c.queueReadWrite(inst, final)
}

// --- (indirect,X) ----------------------------------------------------------

func enqueueIndirectXRead(c *CPU, inst readInstruction) {
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuNop)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(cc.Registers.X) }, cpuBufferLow)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(cc.Registers.X + 1) }, cpuBufferHigh)
	c.queueRead(inst, cpuAddress)
}

func enqueueIndirectXWrite(c *CPU, inst writeInstruction) {
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuNop)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(cc.Registers.X) }, cpuBufferLow)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(cc.Registers.X + 1) }, cpuBufferHigh)
	c.queueWrite(inst, cpuAddress)
}

func enqueueIndirectXRW(c *CPU, inst rwInstruction) {
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuNop)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(cc.Registers.X) }, cpuBufferLow)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(cc.Registers.X + 1) }, cpuBufferHigh)
	c.queueMicrocode(cpuAddress, cpuNop)
	c.queueMicrocodeWrite(cpuAddress, cpuNop)
	c.queueReadWrite(inst, cpuAddress)
}

// --- (indirect),Y ------------------------------------------------------
//
// The Y index is applied AFTER the indirection, so unlike (indirect,X) a
// page cross is possible here and must be detected.

func enqueueIndirectYRead(c *CPU, inst readInstruction) {
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuBufferLow)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(1) }, func(cc *CPU) {
		cpuBufferHigh(cc)
		base := cpuAddress(cc)
		indexed := base.Index(cc.Registers.Y)
		fixed := base.Add(cc.Registers.Y)
		if indexed != fixed {
			cc.pushMicrocode(func(cc2 *CPU) addr.Address { return indexed }, cpuNop)
		}
	})
	c.queueRead(inst, func(cc *CPU) addr.Address { return cpuAddress(cc).Add(cc.Registers.Y) })
}

func enqueueIndirectYWrite(c *CPU, inst writeInstruction) {
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuBufferLow)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(1) }, cpuBufferHigh)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuAddress(cc).Index(cc.Registers.Y) }, cpuNop)
	c.queueWrite(inst, func(cc *CPU) addr.Address { return cpuAddress(cc).Add(cc.Registers.Y) })
}

func enqueueIndirectYRW(c *CPU, inst rwInstruction) {
	final := func(cc *CPU) addr.Address { return cpuAddress(cc).Add(cc.Registers.Y) }
	c.queueMicrocode(cpuPCInc, cpuPullOperand)
	c.queueMicrocode(cpuZeroPage, cpuBufferLow)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuZeroPage(cc).Index(1) }, cpuBufferHigh)
	c.queueMicrocode(func(cc *CPU) addr.Address { return cpuAddress(cc).Index(cc.Registers.Y) }, cpuNop)
	c.queueMicrocode(final, cpuNop)
	c.queueMicrocodeWrite(final, cpuNop)
	c.queueReadWrite(inst, final)
}

// --- accumulator wrappers ------------------------------------------------
//
// Accumulator-mode instructions read and write register A directly instead
// of the bus; these adapt a normal instruction to do that while still
// fitting the same queueRead/queueReadWrite/queueWrite plumbing.

func withAccumulatorRead(inst readInstruction) readInstruction {
	return func(r *Registers, _ byte) { inst(r, r.A) }
}

func withAccumulatorRW(inst rwInstruction) rwInstruction {
	return func(r *Registers, _ *byte) {
		a := r.A
		inst(r, &a)
		r.A = a
	}
}

func withAccumulatorWrite(inst writeInstruction) writeInstruction {
	return func(r *Registers, _ *byte) {
		a := r.A
		inst(r, &a)
		r.A = a
	}
}
