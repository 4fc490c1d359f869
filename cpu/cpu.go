// Package cpu implements the cycle-driven RP2A03 microcode engine: a
// single-bus-cycle-at-a-time instruction decoder and executor built around
// a FIFO of queued bus transactions, rather than the whole-instruction
// step functions an interpreter-style 6502 core would use.
package cpu

import "nescore/addr"

// Bus is the narrow interface the CPU needs from whatever it's wired to —
// satisfied by *bus.SystemBus, but kept local so this package never
// imports bus and the two can be tested independently.
type Bus interface {
	Read(address addr.Address) byte
	Write(address addr.Address, data byte)
}

// CPU is one RP2A03 core. It carries no notion of wall-clock time; Cycle
// must be called once per CPU cycle by whatever is pacing the system (the
// master clock divides its own tick rate by 12 before calling in).
type CPU struct {
	Registers Registers

	decodeCache [256]func(*CPU)
	timing      microcodeQueue

	opcode    byte
	dataLatch byte
	cycles    uint64

	nmiPending   bool
	irqLine      bool
	instructions uint64
}

// NewCPU returns a CPU already queued up with its power-on reset sequence;
// the first several calls to Cycle execute that sequence rather than any
// ROM code.
func NewCPU() *CPU {
	c := &CPU{Registers: NewRegisters()}
	c.Reset()
	return c
}

// Reset clears any in-flight instruction and queues the 6502 reset
// sequence: two dummy program-counter reads, three dummy stack
// "pushes" that only decrement S without writing (real silicon holds
// R/W high through these), then the reset vector at $FFFC/$FFFD.
func (c *CPU) Reset() {
	c.clearMicrocode()
	c.nmiPending = false
	c.irqLine = false
	c.Registers.P.Set(FlagI, true)

	c.queueMicrocode(cpuPC, cpuNop)
	c.queueMicrocode(cpuPC, cpuNop)
	c.queueMicrocode(cpuStack, func(cc *CPU) { cc.Registers.S-- })
	c.queueMicrocode(cpuStack, func(cc *CPU) { cc.Registers.S-- })
	c.queueMicrocode(cpuStack, func(cc *CPU) { cc.Registers.S-- })
	c.queueMicrocode(vectorLow(0xFC), func(cc *CPU) { instPCLRead(&cc.Registers, cc.dataLatch) })
	c.queueMicrocode(func(cc *CPU) addr.Address { return addr.New(0xFF, 0xFD) }, func(cc *CPU) {
		instPCHRead(&cc.Registers, cc.dataLatch)
	})
	c.queueDecode()
}

// TriggerNMI latches a non-maskable interrupt. It is edge-sensitive: the
// pending flag is serviced and cleared the next time the microcode engine
// reaches an instruction boundary, regardless of the I flag.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// SetIRQLine sets the level of the CPU's maskable interrupt input. An IRQ
// is serviced at the next instruction boundary only while the line is
// asserted AND the I flag is clear; unlike NMI it is not edge-latched.
func (c *CPU) SetIRQLine(asserted bool) {
	c.irqLine = asserted
}

// Cycle executes exactly one bus transaction: the next queued microstep's
// address function runs, the resulting byte is moved across the bus in
// whichever direction that step specifies, and the matching callback
// fires. This is the system's unit of work — one call per CPU cycle.
func (c *CPU) Cycle(b Bus) {
	step, ok := c.timing.popFront()
	if !ok {
		// The queue is never supposed to run dry mid-instruction; every
		// template ends in a decode step. Recover by forcing one rather
		// than reading from an undefined address.
		c.queueDecode()
		step, _ = c.timing.popFront()
	}

	address := step.address(c)
	if step.isWrite() {
		step.writePre(c)
		b.Write(address, c.dataLatch)
	} else {
		c.dataLatch = b.Read(address)
		if step.readPost != nil {
			step.readPost(c)
		}
	}
	c.cycles++
}

// Cycles reports the number of CPU cycles executed since construction,
// the same counter nestest.log's CYC column tracks.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Instructions reports how many opcodes (not counting interrupt
// sequences) have been dispatched since construction. Tracing code uses
// it to tell when a fresh Trace() snapshot is ready rather than polling
// Cycles(), which advances every cycle, not just at instruction
// boundaries.
func (c *CPU) Instructions() uint64 { return c.instructions }
