// Command nescore is a thin CLI shell around the nescore core: enough to
// load a ROM and either run it headless against the master clock or
// print a nestest-style execution trace for it.
package main

import (
	"log"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.SetFlags(0)
		log.Println(err)
		os.Exit(1)
	}
}
