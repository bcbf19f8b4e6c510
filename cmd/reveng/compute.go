package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revengio/reveng/pkg/crcengine"
)

var computeCmd = &cobra.Command{
	Use:   "compute [data ...]",
	Short: "Compute the CRC of the given data under a model (-c).",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, _, _, err := resolveGuess(cmd)
		if err != nil {
			fatal("%v", err)
		}
		if m.Width() == 0 {
			fatal("a width must be supplied via -w, -p, -k or -m")
		}
		out := outputFlags(cmd)
		for _, arg := range args {
			msg, err := readArg(cmd, arg, GetInt(cmd, "ibits"), m.Flags)
			if err != nil {
				fatal("%v", err)
			}
			crc := crcengine.FullCRC(msg, m.SPoly, m.Init, m.XorOut, m.Flags)
			fmt.Println(ptostr(crc, GetInt(cmd, "obits"), out))
		}
	},
}

func init() {
	registerParamFlags(computeCmd)
	rootCmd.AddCommand(computeCmd)
}
