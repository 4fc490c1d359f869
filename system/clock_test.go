package system

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nescore/rom"
)

// cyclesPerSecond is CPUFrequencyHz truncated to whole cycles. The constant
// has a fractional part, so it is converted through a float64 variable.
var cyclesPerSecond = func() uint64 { hz := CPUFrequencyHz; return uint64(hz) }()

func TestCatchUpBatchComputesCyclesFromElapsedWallTime(t *testing.T) {
	batch, total := catchUpBatch(time.Second, 0)
	assert.Equal(t, cyclesPerSecond, batch)
	assert.Equal(t, cyclesPerSecond, total)
}

func TestCatchUpBatchIsZeroWhenAlreadyCaughtUp(t *testing.T) {
	batch, total := catchUpBatch(time.Millisecond, cyclesPerSecond)
	assert.Equal(t, uint64(0), batch)
	assert.Equal(t, cyclesPerSecond, total)
}

func TestMasterClockRunPacesAgainstWallClock(t *testing.T) {
	prg := make([]byte, 16*1024)
	sys, err := New(&rom.Image{Mapper: 0, PRGROM: prg})
	require.NoError(t, err)

	clk := NewMasterClock()
	clk.interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		clk.Run(ctx, sys)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	clk.Stop()
	cancel()
	<-done

	// 20ms at ~1.79MHz should be on the order of tens of thousands of
	// cycles; assert a loose lower bound rather than an exact count to
	// avoid coupling the test to scheduler jitter.
	assert.Greater(t, sys.Cycles(), uint64(1000))
}

func TestMasterClockStopHaltsPacing(t *testing.T) {
	prg := make([]byte, 16*1024)
	sys, err := New(&rom.Image{Mapper: 0, PRGROM: prg})
	require.NoError(t, err)

	clk := NewMasterClock()
	clk.interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		clk.Run(ctx, sys)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	clk.Stop()
	<-done

	stopped := sys.Cycles()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, sys.Cycles())
}
