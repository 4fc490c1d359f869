package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nescore/rom"
	"nescore/system"
)

func loadSystem(path string) (*system.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	image, err := rom.Load(data)
	if err != nil {
		return nil, err
	}
	return system.New(image)
}

func newRunCommand() *cobra.Command {
	var cycles uint64

	cmd := &cobra.Command{
		Use:   "run <rom.nes>",
		Short: "Run a ROM against the master clock for a fixed number of CPU cycles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := loadSystem(args[0])
			if err != nil {
				return err
			}

			clock := system.NewMasterClock()
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			done := make(chan struct{})
			go func() {
				clock.Run(ctx, sys)
				close(done)
			}()

			for sys.Cycles() < cycles {
				time.Sleep(time.Millisecond)
			}
			clock.Stop()
			cancel()
			<-done

			fmt.Fprintf(cmd.OutOrStdout(), "ran %d CPU cycles, PC=$%04X\n", sys.Cycles(), sys.Trace().PC)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&cycles, "cycles", 1_000_000, "number of CPU cycles to run before stopping")
	return cmd
}

func newTraceCommand() *cobra.Command {
	var instructions int

	cmd := &cobra.Command{
		Use:   "trace <rom.nes>",
		Short: "Print a nestest-style execution trace to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := loadSystem(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lastInstructions := sys.Instructions()
			for n := 0; n < instructions; n++ {
				for sys.Instructions() == lastInstructions {
					sys.ClockPulse()
				}
				lastInstructions = sys.Instructions()
				fmt.Fprintln(out, sys.Trace())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&instructions, "instructions", 100, "number of instruction boundaries to print")
	return cmd
}
