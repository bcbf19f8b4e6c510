package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var echoCmd = &cobra.Command{
	Use:   "echo [data ...]",
	Short: "Reparse and reformat data under the current I/O modifiers (-e).",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := outputFlags(cmd)
		for _, arg := range args {
			p, err := readArg(cmd, arg, GetInt(cmd, "ibits"), flags)
			if err != nil {
				fatal("%v", err)
			}
			fmt.Println(ptostr(p, GetInt(cmd, "obits"), flags))
		}
	},
}

func init() {
	registerParamFlags(echoCmd)
	rootCmd.AddCommand(echoCmd)
}
