package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the fully resolved model, including derived Check and Magic (-d).",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m, _, _, err := resolveGuess(cmd)
		if err != nil {
			fatal("%v", err)
		}
		if m.Width() == 0 {
			fatal("a width must be supplied via -w, -p, -k or -m")
		}
		if err := m.Canonicalize(); err != nil {
			fatal("%v", err)
		}
		m.RecomputeChecks()
		fmt.Println(m.String())
	},
}

func init() {
	registerParamFlags(dumpCmd)
	rootCmd.AddCommand(dumpCmd)
}
