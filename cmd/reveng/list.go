package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revengio/reveng/pkg/preset"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every named preset model, sorted by name (-D).",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, e := range preset.All() {
			m := preset.ToModel(e)
			fmt.Println(m.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
