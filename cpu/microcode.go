package cpu

import "nescore/addr"

// addrFn computes the bus address for one microcode cycle. It may have side
// effects on the register file — cpuPCInc returns PC then advances it;
// cpuStackPush returns the current stack address then decrements S.
type addrFn func(c *CPU) addr.Address

// A microStep is one bus transaction: an address function paired with
// exactly one of a post-read callback or a pre-write callback. Only one of
// readPost/writePre is ever set; which one determines the cycle's
// direction.
type microStep struct {
	address  addrFn
	readPost func(c *CPU) // consumes c.dataLatch after the bus read
	writePre func(c *CPU) // fills c.dataLatch before the bus write
}

func (s microStep) isWrite() bool { return s.writePre != nil }

// microcodeQueue is a FIFO of microSteps with a push-to-front escape hatch
// for cycle injection (the absolute,X/Y and (indirect),Y page-cross
// fix-up). Between completed instructions it is never empty: the last
// enqueued step of every instruction template is always a decode step.
type microcodeQueue struct {
	steps []microStep
}

func (q *microcodeQueue) pushBack(s microStep) {
	q.steps = append(q.steps, s)
}

func (q *microcodeQueue) pushFront(s microStep) {
	q.steps = append(q.steps, microStep{})
	copy(q.steps[1:], q.steps)
	q.steps[0] = s
}

func (q *microcodeQueue) popFront() (microStep, bool) {
	if len(q.steps) == 0 {
		return microStep{}, false
	}
	s := q.steps[0]
	q.steps = q.steps[1:]
	return s, true
}

func (q *microcodeQueue) clear() {
	q.steps = q.steps[:0]
}

func (q *microcodeQueue) len() int { return len(q.steps) }

// queueMicrocode appends a microstep with a post-read callback.
func (c *CPU) queueMicrocode(address addrFn, readPost func(*CPU)) {
	c.timing.pushBack(microStep{address: address, readPost: readPost})
}

// queueMicrocodeWrite appends a microstep with a pre-write callback.
func (c *CPU) queueMicrocodeWrite(address addrFn, writePre func(*CPU)) {
	c.timing.pushBack(microStep{address: address, writePre: writePre})
}

// pushMicrocode injects a microstep at the FRONT of the queue, for cycle
// fix-ups discovered mid-instruction (a detected page cross pushes one
// extra dummy read ahead of the steps already queued).
func (c *CPU) pushMicrocode(address addrFn, readPost func(*CPU)) {
	c.timing.pushFront(microStep{address: address, readPost: readPost})
}

// queueRead appends the terminal read cycle of a read-category instruction:
// the bus byte lands in dataLatch and inst consumes it directly.
func (c *CPU) queueRead(inst readInstruction, address addrFn) {
	c.queueMicrocode(address, func(cc *CPU) {
		inst(&cc.Registers, cc.dataLatch)
	})
}

// queueReadWrite appends the terminal write cycle of a read-modify-write
// instruction. By this point dataLatch already holds the byte read in an
// earlier cycle of the same template; inst mutates it in place and the
// mutated value is what gets written.
func (c *CPU) queueReadWrite(inst rwInstruction, address addrFn) {
	c.queueMicrocodeWrite(address, func(cc *CPU) {
		inst(&cc.Registers, &cc.dataLatch)
	})
}

// queueWrite appends the terminal write cycle of a write-category
// instruction: inst fills dataLatch from the register file before the byte
// goes out on the bus.
func (c *CPU) queueWrite(inst writeInstruction, address addrFn) {
	c.queueMicrocodeWrite(address, func(cc *CPU) {
		inst(&cc.Registers, &cc.dataLatch)
	})
}

// queueDecode appends the step every instruction template ends with: fetch
// the next opcode byte at PC++ and hand it to the decoder.
func (c *CPU) queueDecode() {
	c.queueMicrocode(cpuPCInc, decodeOpcode)
}

func (c *CPU) clearMicrocode() {
	c.timing.clear()
}

// --- addrFn implementations --------------------------------------------
//
// These are plain functions of *CPU, not methods, so they can be passed
// around as the addrFn/callback values the microcode templates are built
// from (cpuAddress, cpuPCInc, ... stand in for the Self-bound function
// pointers a trait-based dispatch would otherwise need).

func cpuAddress(c *CPU) addr.Address { return c.Registers.AddressBuffer }

func cpuPC(c *CPU) addr.Address { return c.Registers.PC }

func cpuPCInc(c *CPU) addr.Address {
	a := c.Registers.PC
	c.Registers.PC.Increment()
	return a
}

func cpuStack(c *CPU) addr.Address {
	return addr.New(0x01, c.Registers.S)
}

func cpuStackPush(c *CPU) addr.Address {
	a := cpuStack(c)
	c.Registers.S--
	return a
}

func cpuStackPull(c *CPU) addr.Address {
	c.Registers.S++
	return cpuStack(c)
}

func cpuZeroPage(c *CPU) addr.Address {
	return addr.Address(c.Registers.Operand)
}

// vectorLow builds an addrFn for one of the three fixed interrupt/reset
// vector addresses: $FFFA/B (NMI), $FFFC/D (reset), $FFFE/F (IRQ/BRK).
func vectorLow(v byte) addrFn {
	return func(c *CPU) addr.Address { return addr.New(0xFF, v) }
}

// --- shared post/pre callbacks ------------------------------------------

func cpuNop(*CPU) {}

func cpuPullOperand(c *CPU) {
	c.Registers.Operand = c.dataLatch
}

func cpuBufferLow(c *CPU) {
	c.Registers.AddressBuffer.SetLow(c.dataLatch)
}

func cpuBufferHigh(c *CPU) {
	c.Registers.AddressBuffer.SetHigh(c.dataLatch)
}
