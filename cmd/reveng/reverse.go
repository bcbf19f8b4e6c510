package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revengio/reveng/pkg/crcengine"
)

var reverseCmd = &cobra.Command{
	Use:   "reverse [data ...]",
	Short: "Compute the CRC under the reverse algorithm of a model (-v).",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, _, _, err := resolveGuess(cmd)
		if err != nil {
			fatal("%v", err)
		}
		if m.Width() == 0 {
			fatal("a width must be supplied via -w, -p, -k or -m")
		}
		rm := m.Reverse()
		out := outputFlags(cmd)
		for _, arg := range args {
			msg, err := readArg(cmd, arg, GetInt(cmd, "ibits"), rm.Flags)
			if err != nil {
				fatal("%v", err)
			}
			crc := crcengine.FullCRC(msg, rm.SPoly, rm.Init, rm.XorOut, rm.Flags)
			fmt.Println(ptostr(crc, GetInt(cmd, "obits"), out))
		}
	},
}

func init() {
	registerParamFlags(reverseCmd)
	rootCmd.AddCommand(reverseCmd)
}
