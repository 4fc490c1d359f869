package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nescore",
		Short: "A cycle-accurate RP2A03 CPU core for the NES/Famicom",
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newTraceCommand())
	return root
}
